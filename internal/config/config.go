package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window    WindowConfig    `toml:"window"`
	Paths     PathsConfig     `toml:"paths"`
	Scripting ScriptingConfig `toml:"scripting"`
	Random    RandomConfig    `toml:"random"`
	Logging   LoggingConfig   `toml:"logging"`
}

type WindowConfig struct {
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int32  `toml:"target_fps"`
}

type PathsConfig struct {
	Resources string `toml:"resources"` // manifest, .json or .yaml; empty = builtins only
	Scene     string `toml:"scene"`     // loaded at start when present, written by Ctrl+Shift+S
	Scripts   string `toml:"scripts"`   // Lua script directory
}

type ScriptingConfig struct {
	Lua       bool `toml:"lua"`
	HotReload bool `toml:"hot_reload"`
}

type RandomConfig struct {
	Seed int64 `toml:"seed"` // 0 = time based
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

var ErrInvalidConfig = errors.New("invalid config")

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		return fmt.Errorf("%w: target_fps %d", ErrInvalidConfig, c.Window.TargetFPS)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "planegame",
			TargetFPS: 60,
		},
		Paths: PathsConfig{
			Scene:   "scene.json",
			Scripts: "scripts",
		},
		Scripting: ScriptingConfig{
			Lua:       true,
			HotReload: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
