package main

import (
	"os"
	"path/filepath"
	"testing"

	"planegame/internal/config"

	"go.uber.org/zap/zapcore"
)

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("PLANEGAME_CONFIG", "")
	cfg, err := loadConfig(resolveConfigPath(""))
	if err != nil {
		t.Fatalf("Expected defaults without a config file, got %v", err)
	}
	if cfg.Window.Width != config.Default().Window.Width {
		t.Errorf("Expected default width, got %d", cfg.Window.Width)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.toml")
	if err := os.WriteFile(path, []byte("[window]\ntitle = \"from env\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANEGAME_CONFIG", path)

	cfg, err := loadConfig(resolveConfigPath(""))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Window.Title != "from env" {
		t.Errorf("Expected title from env config, got %q", cfg.Window.Title)
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("PLANEGAME_CONFIG", "env.toml")
	if got := resolveConfigPath("flag.toml"); got != "flag.toml" {
		t.Errorf("Flag should win over env, got %q", got)
	}
	if got := resolveConfigPath(""); got != "env.toml" {
		t.Errorf("Expected env path, got %q", got)
	}
	t.Setenv("PLANEGAME_CONFIG", "")
	if got := resolveConfigPath(""); got != "" {
		t.Errorf("Expected default (empty) path, got %q", got)
	}
}

func TestExplicitRelativePathUsesWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "local.toml"), []byte("[window]\ntitle = \"local\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("PLANEGAME_CONFIG", "")

	path := resolveConfigPath("local.toml")
	if path == "" {
		t.Fatal("Explicit path should not fall back to the default")
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("Relative explicit path should load from the working dir: %v", err)
	}
	if cfg.Window.Title != "local" {
		t.Errorf("Expected title local, got %q", cfg.Window.Title)
	}
}

func TestLoadConfigExplicitPathMustExist(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for a missing explicit config")
	}
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Info should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Warn should be enabled at warn level")
	}

	log, err = newLogger(config.LoggingConfig{Level: "bogus", Format: "console"})
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) || log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Unknown level should fall back to info")
	}
}
