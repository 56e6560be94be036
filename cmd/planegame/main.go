package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"planegame/internal/config"
	"planegame/internal/game"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/planegame.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (default "+defaultConfigPath+", or $PLANEGAME_CONFIG)")
	flag.Parse()

	path := resolveConfigPath(*configPath)
	if path == "" {
		chdirToExecutable()
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	g := game.New(cfg, log)
	return g.Run()
}

// chdirToExecutable makes relative asset paths resolve next to a deployed
// binary. "go run" builds into a go-build temp dir, which is skipped.
func chdirToExecutable() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(execPath)
	if strings.Contains(execDir, "go-build") {
		return
	}
	if _, err := os.Stat(filepath.Join(execDir, defaultConfigPath)); err == nil {
		_ = os.Chdir(execDir)
	}
}

// resolveConfigPath returns the explicitly requested config, from the flag
// or $PLANEGAME_CONFIG, or "" when the default applies.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("PLANEGAME_CONFIG")
}

// loadConfig reads an explicit path strictly. Without one the default path
// may be missing, in which case built-in defaults are used.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
