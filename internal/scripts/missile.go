package scripts

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MissileScript flies at a constant velocity and destroys its object when
// its lifetime runs out.
type MissileScript struct {
	engine.BaseScript
	TargetSpeed     float32
	Thrust          float32
	InitialVelocity rl.Vector3
	InitialTime     float32

	velocity  rl.Vector3
	timeToDie float32
}

func (m *MissileScript) TypeName() string { return "MissileScript" }

func (m *MissileScript) SetDefaults() {
	m.TargetSpeed = 50
	m.Thrust = 100
	m.InitialTime = 10
}

func (m *MissileScript) Initialize() {
	m.velocity = m.InitialVelocity
	m.timeToDie = m.InitialTime
}

func (m *MissileScript) Update() {
	dt := m.Time().Dt
	m.Transform().Translate(rl.Vector3Scale(m.velocity, dt))
	m.timeToDie -= dt
	if m.timeToDie <= 0 {
		m.GetObject().Destroy()
	}
}

// TimeLeft is the remaining lifetime in seconds.
func (m *MissileScript) TimeLeft() float32 {
	return m.timeToDie
}

func init() {
	engine.RegisterScript("MissileScript", missileFactory, missileSerializer)
}

func missileFactory(props map[string]any) engine.Script {
	m := &MissileScript{}
	m.SetDefaults()
	m.TargetSpeed = propFloat(props, "targetSpeed", m.TargetSpeed)
	m.Thrust = propFloat(props, "thrust", m.Thrust)
	m.InitialVelocity = propVec3(props, "initialVelocity", m.InitialVelocity)
	m.InitialTime = propFloat(props, "initialTime", m.InitialTime)
	return m
}

func missileSerializer(s engine.Script) map[string]any {
	m, ok := s.(*MissileScript)
	if !ok {
		return nil
	}
	return map[string]any{
		"targetSpeed":     m.TargetSpeed,
		"thrust":          m.Thrust,
		"initialVelocity": vec3Prop(m.InitialVelocity),
		"initialTime":     m.InitialTime,
	}
}
