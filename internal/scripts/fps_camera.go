package scripts

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FPSCameraScript is a free-fly camera: WASD moves, Q/Z rise and sink,
// Shift doubles the speed and the mouse looks around.
type FPSCameraScript struct {
	engine.BaseScript
	Speed float32
}

func (f *FPSCameraScript) TypeName() string { return "FPSCameraScript" }

func (f *FPSCameraScript) SetDefaults() {
	f.Speed = 10
}

func (f *FPSCameraScript) Update() {
	t := f.Transform()
	in := f.Input()
	dt := f.Time().Dt

	speed := f.Speed
	if in.Down(rl.KeyLeftShift) {
		speed *= 2
	}
	step := speed * dt

	moves := []struct {
		key int32
		dir rl.Vector3
	}{
		{rl.KeyW, t.Forward()},
		{rl.KeyS, rl.Vector3Negate(t.Forward())},
		{rl.KeyD, t.Right()},
		{rl.KeyA, rl.Vector3Negate(t.Right())},
		{rl.KeyQ, t.Up()},
		{rl.KeyZ, rl.Vector3Negate(t.Up())},
	}
	for _, m := range moves {
		if in.Down(m.key) {
			t.Translate(rl.Vector3Scale(m.dir, step))
		}
	}

	t.RotateGlobal(engine.UpAxis, -dt*in.MouseDelta.X)
	t.RotateLocal(engine.RightAxis, -dt*in.MouseDelta.Y)
}

func init() {
	engine.RegisterScript("FPSCameraScript", func(props map[string]any) engine.Script {
		f := &FPSCameraScript{}
		f.SetDefaults()
		f.Speed = propFloat(props, "speed", f.Speed)
		return f
	}, func(s engine.Script) map[string]any {
		f, ok := s.(*FPSCameraScript)
		if !ok {
			return nil
		}
		return map[string]any{"speed": f.Speed}
	})
}
