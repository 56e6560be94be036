package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"planegame/internal/config"
	"planegame/internal/engine"
	"planegame/internal/scripting"
	"planegame/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const statusDuration = 3 * time.Second

type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	World    *world.World
	Renderer *world.Renderer
	watcher  *scripting.Watcher

	cursorLocked bool
	ShowStats    bool
	TimeScale    float32

	destroyed int

	status      string
	statusUntil time.Time

	// Frame timing (ms)
	updateMs float64
	drawMs   float64
}

func New(cfg *config.Config, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		cfg:       cfg,
		log:       log,
		Renderer:  world.NewRenderer(),
		TimeScale: 1,
	}
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(g.cfg.Window.Width, g.cfg.Window.Height, g.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(g.cfg.Window.TargetFPS)
	rl.SetExitKey(rl.KeyEscape)

	if err := g.setup(); err != nil {
		return err
	}
	defer g.shutdown()

	g.lockCursor(true)
	initStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

// setup builds the world after the window exists so mesh loading can use
// the GL context.
func (g *Game) setup() error {
	seed := g.cfg.Random.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := world.Options{
		Name:          "Main",
		ResourcesPath: g.cfg.Paths.Resources,
		Seed:          seed,
	}
	if g.cfg.Scripting.Lua {
		opts.ScriptsDir = g.cfg.Paths.Scripts
	}
	w, err := world.New(opts, g.log.Named("world"))
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}
	g.World = w
	w.Scene.ObjectsDestroyed.AddListener(func(objs []*engine.Object) {
		g.destroyed += len(objs)
	})

	if err := g.loadInitialScene(); err != nil {
		return err
	}

	if opts.ScriptsDir != "" && g.cfg.Scripting.HotReload {
		watcher, err := scripting.NewWatcher(opts.ScriptsDir)
		if err != nil {
			g.log.Warn("script hot reload disabled", zap.String("dir", opts.ScriptsDir), zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}
	g.log.Info("game started",
		zap.Int64("seed", seed),
		zap.Int("objects", g.World.Scene.ObjectCount()),
		zap.Bool("hot_reload", g.watcher != nil),
	)
	return nil
}

func (g *Game) loadInitialScene() error {
	path := g.cfg.Paths.Scene
	if path != "" {
		err := g.World.LoadScene(path)
		if err == nil {
			g.log.Info("scene loaded", zap.String("path", path))
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load scene: %w", err)
		}
	}
	g.World.BuildDemoScene(float32(g.cfg.Window.Width) / float32(g.cfg.Window.Height))
	return nil
}

func (g *Game) shutdown() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close script watcher", zap.Error(err))
		}
	}
	g.World.Close()
}

func (g *Game) Update() {
	updateStart := time.Now()

	g.pollInput()
	g.handleCommand(commandFor(g.World.Input))
	g.pollWatcher()

	g.World.Step(rl.GetFrameTime() * g.TimeScale)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) pollInput() {
	in := g.World.Input
	in.BeginFrame()
	for key := int32(0); key < engine.MaxKeys; key++ {
		in.SetKey(key, rl.IsKeyDown(key))
	}
	if g.cursorLocked {
		in.MouseDelta = rl.GetMouseDelta()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warn("script watcher", zap.Error(err))
		}
	default:
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	g.log.Info("scripts changed", zap.Strings("files", changed))
	g.handleCommand(CmdReloadScripts)
}

func (g *Game) handleCommand(cmd Command) {
	switch cmd {
	case CmdNone:
		return
	case CmdToggleCursor:
		g.lockCursor(!g.cursorLocked)
		return
	case CmdToggleStats:
		g.ShowStats = !g.ShowStats
		return
	}

	err := g.run(cmd)
	if err != nil {
		g.log.Error("command failed", zap.Stringer("command", cmd), zap.Error(err))
		g.setStatus(fmt.Sprintf("%s failed: %v", cmd, err))
		return
	}
	g.log.Info("command done", zap.Stringer("command", cmd))
	g.setStatus(cmd.String() + " done")
}

func (g *Game) run(cmd Command) error {
	path := g.cfg.Paths.Scene
	switch cmd {
	case CmdSaveScene:
		if path == "" {
			return errors.New("no scene path configured")
		}
		return g.World.SaveScene(path)
	case CmdLoadScene:
		if path == "" {
			return errors.New("no scene path configured")
		}
		if _, err := os.Stat(path); err != nil {
			return err
		}
		return g.World.LoadScene(path)
	case CmdReloadScripts:
		return g.World.ReloadScripts()
	}
	return nil
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(statusDuration)
}

func (g *Game) lockCursor(locked bool) {
	g.cursorLocked = locked
	if locked {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

func (g *Game) Draw() {
	rl.BeginDrawing()

	drawStart := time.Now()
	g.Renderer.Draw(g.World)
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}
