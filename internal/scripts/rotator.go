package scripts

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RotatorScript spins its object around a local axis.
type RotatorScript struct {
	engine.BaseScript
	Axis  rl.Vector3
	Speed float32 // radians per second
}

func (r *RotatorScript) TypeName() string { return "RotatorScript" }

func (r *RotatorScript) SetDefaults() {
	r.Axis = engine.UpAxis
	r.Speed = 0.5
}

func (r *RotatorScript) Update() {
	r.Transform().RotateLocal(r.Axis, r.Speed*r.Time().Dt)
}

func init() {
	engine.RegisterScript("RotatorScript", rotatorFactory, rotatorSerializer)
}

func rotatorFactory(props map[string]any) engine.Script {
	r := &RotatorScript{}
	r.SetDefaults()
	r.Axis = propVec3(props, "axis", r.Axis)
	r.Speed = propFloat(props, "speed", r.Speed)
	return r
}

func rotatorSerializer(s engine.Script) map[string]any {
	r, ok := s.(*RotatorScript)
	if !ok {
		return nil
	}
	return map[string]any{
		"axis":  vec3Prop(r.Axis),
		"speed": r.Speed,
	}
}
