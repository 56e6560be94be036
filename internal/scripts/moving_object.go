package scripts

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MovingObjectScript tumbles and drifts toward the main camera. Pressing E
// pushes it away, harder the closer it is.
type MovingObjectScript struct {
	engine.BaseScript
	ForwardRotationSpeed float32
	RightRotationSpeed   float32

	chased   engine.ObjectRef
	velocity rl.Vector3
}

func (m *MovingObjectScript) TypeName() string { return "MovingObjectScript" }

func (m *MovingObjectScript) Initialize() {
	if cam := m.Scene().MainCamera(); cam != nil {
		m.chased = engine.RefTo(cam.GetObject())
	}
	r := m.Random()
	m.ForwardRotationSpeed = r.Next(-1, 1)
	m.RightRotationSpeed = r.Next(-1, 1)
	t := m.Transform()
	t.Position.X += r.Next(-20, 20)
	t.Position.Y += 0.1 * r.Next(-10, 10)
	t.Position.Z += r.Next(-20, 20)
}

func (m *MovingObjectScript) Update() {
	t := m.Transform()
	dt := m.Time().Dt
	t.RotateLocal(t.Forward(), m.ForwardRotationSpeed*dt)
	t.RotateLocal(t.Right(), m.RightRotationSpeed*dt)

	chased := m.chased.Get(m.Scene())
	if chased == nil {
		t.Translate(rl.Vector3Scale(m.velocity, dt))
		return
	}
	delta := rl.Vector3Subtract(chased.Transform.WorldPosition(), t.WorldPosition())
	dir := rl.Vector3Normalize(delta)
	if m.Input().Pressed(rl.KeyE) {
		dir = rl.Vector3Scale(dir, -10000/(1+rl.Vector3Length(delta)))
	}
	m.velocity = rl.Vector3Add(m.velocity, rl.Vector3Scale(dir, dt))
	t.Translate(rl.Vector3Scale(m.velocity, dt))
}

func (m *MovingObjectScript) Velocity() rl.Vector3 {
	return m.velocity
}

func init() {
	engine.RegisterScript("MovingObjectScript", func(map[string]any) engine.Script {
		return &MovingObjectScript{}
	}, nil)
}
