package world

import (
	"math"

	"planegame/internal/engine"
	"planegame/internal/scripts"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlaneTag marks the player plane for the chase camera.
const PlaneTag = 0

// planeMeshName picks the exported su37 when it was loaded, else the builtin dart.
func (w *World) planeMeshName() string {
	if _, ok := w.Resources.Meshes.Lookup("su37"); ok {
		return "su37"
	}
	return "plane"
}

func (w *World) addPlaneRenderer(o *engine.Object) {
	mr := engine.AddComponent[engine.MeshRenderer](o)
	mr.Mesh = w.Resources.MustMesh(w.planeMeshName())
	for _, name := range []string{"su37.body", "su37.cockpit", "su37.engine"} {
		mr.Materials = append(mr.Materials, w.Resources.MustMaterial(name))
	}
}

// BuildDemoScene clears the scene and sets up the default flight scene: a
// generator, the land, two lights, the player plane with a headlight, a
// parked plane and the chase camera.
func (w *World) BuildDemoScene(aspectRatio float32) {
	s := w.Scene
	s.Clear()

	engine.AddComponent[scripts.MovingObjectGeneratorScript](s.MakeObject())

	land := s.MakeObject()
	land.Transform.Position = rl.Vector3{Y: -10}
	landRenderer := engine.AddComponent[engine.MeshRenderer](land)
	landRenderer.Mesh = w.Resources.MustMesh("land")
	landRenderer.Materials = append(landRenderer.Materials, w.Resources.MustMaterial("default.land"))

	light0 := s.MakeObject()
	light0.Transform.Position = rl.Vector3{Y: 5}
	engine.AddComponent[engine.Light](light0).Color = rl.Vector3{X: 5, Y: 5, Z: 5}
	light1 := s.MakeObject()
	light1.Transform.Position = rl.Vector3{X: 2, Y: 2}
	engine.AddComponent[engine.Light](light1).Color = rl.Vector3{X: 3}

	plane := s.MakeObject()
	plane.SetTag(PlaneTag)
	plane.Transform.Position = rl.Vector3{Y: 10}
	w.addPlaneRenderer(plane)
	engine.AddComponent[scripts.PlaneControlScript](plane)

	headlight := s.MakeObject()
	plane.AddChild(headlight)
	headlight.Transform.Position = rl.Vector3{Z: 4}
	engine.AddComponent[engine.Light](headlight).Color = rl.Vector3{X: 5, Y: 5, Z: 5}

	parked := s.MakeObject()
	parked.Transform.Position = rl.Vector3{Y: 10}
	w.addPlaneRenderer(parked)

	cameraObj := s.MakeObject()
	cam := engine.AddComponent[engine.Camera](cameraObj)
	cam.AspectRatio = aspectRatio
	cam.IsMain = true
	cam.Fov = 70 * math.Pi / 180
	chase := engine.AddComponent[scripts.PlaneChaseCameraScript](cameraObj)
	chase.TargetTag = PlaneTag

	w.log.Info("demo scene built")
}
