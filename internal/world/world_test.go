package world

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"planegame/internal/engine"
	"planegame/internal/scripts"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newTestWorld(t *testing.T, opts Options) *World {
	t.Helper()
	w, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func TestNewWiresContext(t *testing.T) {
	w := newTestWorld(t, Options{Seed: 7})
	ctx := w.Scene.Context()
	if ctx.Random != w.Random || ctx.Scripts != w.Scripts || ctx.Resources != w.Resources {
		t.Error("Scene context not wired to the world")
	}
	if !w.Scripts.Has("PlaneControlScript") {
		t.Error("Built-in script types missing from the world registry")
	}
	if _, ok := w.Resources.Meshes.Lookup("land"); !ok {
		t.Error("Builtin resources not loaded")
	}
}

func TestNewMissingResources(t *testing.T) {
	_, err := New(Options{ResourcesPath: filepath.Join(t.TempDir(), "missing.json")}, nil)
	if err == nil {
		t.Error("Expected error for missing resource manifest")
	}
}

func TestBuildDemoScene(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.BuildDemoScene(1.5)
	s := w.Scene

	if s.ObjectCount() != 8 {
		t.Fatalf("Expected 8 objects, got %d", s.ObjectCount())
	}
	plane := s.FindObjectWithTag(PlaneTag)
	if plane == nil {
		t.Fatal("Plane not tagged")
	}
	if engine.GetComponent[*scripts.PlaneControlScript](plane) == nil {
		t.Error("Plane has no control script")
	}
	children := plane.Children()
	if len(children) != 1 || engine.GetComponent[*engine.Light](children[0]) == nil {
		t.Error("Plane should carry one headlight child")
	}

	cam := s.MainCamera()
	if cam == nil {
		t.Fatal("No main camera")
	}
	if math.Abs(float64(cam.Fov)-70*math.Pi/180) > 1e-6 || cam.AspectRatio != 1.5 {
		t.Errorf("Unexpected camera fov %f aspect %f", cam.Fov, cam.AspectRatio)
	}

	comps := s.Components()
	if len(comps.Lights) != 3 || len(comps.MeshRenderers) != 3 || len(comps.Cameras) != 1 {
		t.Errorf("Unexpected component counts: %d lights, %d renderers, %d cameras",
			len(comps.Lights), len(comps.MeshRenderers), len(comps.Cameras))
	}
	if len(s.PendingScripts()) != 3 {
		t.Errorf("Expected 3 pending scripts, got %d", len(s.PendingScripts()))
	}
}

func TestDemoSceneRuns(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.BuildDemoScene(1)
	for i := 0; i < 10; i++ {
		w.Input.BeginFrame()
		w.Step(1.0 / 60)
	}

	plane := w.Scene.FindObjectWithTag(PlaneTag)
	if plane.Transform.Position.Z >= 0 {
		t.Errorf("Plane should have flown forward, at %v", plane.Transform.Position)
	}
	cam := w.Scene.MainCamera()
	d := rl.Vector3Distance(cam.Transform().Position, plane.Transform.Position)
	if d < 4 || d > 6 {
		t.Errorf("Chase camera should trail the plane, distance %f", d)
	}
	if len(w.Scene.ActiveScripts()) != 3 {
		t.Errorf("Expected 3 active scripts, got %d", len(w.Scene.ActiveScripts()))
	}
}

const spinnerSrc = `
local Spinner = {}
function Spinner:update()
  self:rotate_local(0, 1, 0, self.speed or 1)
  self.ticks = (self.ticks or 0) + 1
end
return Spinner
`

func TestWorldLuaScripts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Spinner.lua"), []byte(spinnerSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	w := newTestWorld(t, Options{ScriptsDir: dir})
	if !w.Scripts.Has("Spinner") || !w.Scripts.Has("MissileScript") {
		t.Fatalf("Expected Lua and built-in types, got %v", w.Scripts.Names())
	}

	o := w.Scene.MakeObject()
	if _, err := w.Scene.AddScript(o, "Spinner", map[string]any{"speed": 0.5}); err != nil {
		t.Fatal(err)
	}
	w.Step(0.1)
	w.Step(0.1)

	if err := w.ReloadScripts(); err != nil {
		t.Fatalf("ReloadScripts failed: %v", err)
	}
	pending := w.Scene.PendingScripts()
	if len(pending) != 1 || pending[0].TypeName() != "Spinner" {
		t.Fatalf("Expected the Spinner to be rebuilt, got %v", pending)
	}
	props := w.Scripts.Properties(pending[0])
	if props["ticks"] != 1.0 || props["speed"] != 0.5 {
		t.Errorf("Expected state carried over, got %v", props)
	}
}

func TestWorldLuaCompileErrorKeepsTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Spinner.lua")
	os.WriteFile(path, []byte(spinnerSrc), 0o644)
	w := newTestWorld(t, Options{ScriptsDir: dir})
	before := w.Scripts

	os.WriteFile(path, []byte("return {"), 0o644)
	if err := w.ReloadScripts(); err == nil {
		t.Error("Expected compile error")
	}
	if w.Scripts != before || !w.Scripts.Has("Spinner") {
		t.Error("Registry should survive a failed reload")
	}
}
