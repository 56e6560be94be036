package world

import (
	"fmt"

	"planegame/internal/assets"
	"planegame/internal/debugdraw"
	"planegame/internal/engine"
	"planegame/internal/scripting"

	"go.uber.org/zap"
)

// Options configures a World. Empty paths skip the corresponding load.
type Options struct {
	Name          string
	ResourcesPath string
	ScriptsDir    string
	Seed          int64
}

// World wires a scene to the resources, input and script types it runs with.
type World struct {
	Scene     *engine.Scene
	Resources *assets.Resources
	Debug     *debugdraw.Debug
	Input     *engine.Input
	Time      *engine.Time
	Random    *engine.Random
	Scripts   *engine.ScriptRegistry

	lua        *scripting.Engine
	scriptsDir string
	log        *zap.Logger
}

func New(opts Options, log *zap.Logger) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Name == "" {
		opts.Name = "Main"
	}
	scene := engine.NewScene(opts.Name, log.Named("scene"))
	ctx := scene.Context()

	w := &World{
		Scene:      scene,
		Resources:  ctx.Resources,
		Debug:      ctx.Debug,
		Input:      ctx.Input,
		Time:       ctx.Time,
		Random:     engine.NewRandom(opts.Seed),
		Scripts:    engine.DefaultScripts.Clone(),
		scriptsDir: opts.ScriptsDir,
		log:        log,
	}
	ctx.Random = w.Random
	ctx.Scripts = w.Scripts

	if err := w.Resources.AddBuiltins(); err != nil {
		return nil, fmt.Errorf("builtin resources: %w", err)
	}
	if opts.ResourcesPath != "" {
		if err := w.LoadResources(opts.ResourcesPath); err != nil {
			return nil, err
		}
	}
	if opts.ScriptsDir != "" {
		if err := w.LoadLuaScripts(opts.ScriptsDir); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Step advances time by dt and runs one frame. Input must already hold
// this frame's snapshot.
func (w *World) Step(dt float32) {
	w.Time.Advance(dt)
	w.Scene.Step()
}

func (w *World) LoadResources(path string) error {
	if err := w.Resources.Load(path, w.log.Named("assets")); err != nil {
		return fmt.Errorf("load resources %s: %w", path, err)
	}
	return nil
}

// LoadLuaScripts compiles the Lua types in dir and swaps in a registry made
// of the built-in types plus those. Live scripts are rebuilt against it. On
// a compile error the current types stay in place.
func (w *World) LoadLuaScripts(dir string) error {
	lua, err := scripting.NewEngine(dir, w.log.Named("lua"))
	if err != nil {
		return fmt.Errorf("compile lua scripts: %w", err)
	}
	reg := engine.DefaultScripts.Clone()
	if err := lua.Register(reg); err != nil {
		lua.Close()
		return fmt.Errorf("register lua scripts: %w", err)
	}

	rebuildErr := w.Scene.RebuildScripts(reg)
	w.Scripts = reg
	if w.lua != nil {
		w.lua.Close()
	}
	w.lua = lua
	w.scriptsDir = dir
	w.log.Info("lua scripts loaded", zap.String("dir", dir), zap.Strings("types", lua.Names()))
	return rebuildErr
}

// ReloadScripts recompiles the Lua directory the world was loaded from.
func (w *World) ReloadScripts() error {
	if w.scriptsDir == "" {
		return w.Scene.RebuildScripts(w.Scripts)
	}
	return w.LoadLuaScripts(w.scriptsDir)
}

func (w *World) ScriptsDir() string {
	return w.scriptsDir
}

func (w *World) Close() {
	if w.lua != nil {
		w.lua.Close()
		w.lua = nil
	}
}
