package scripts

import (
	"fmt"
	"math"

	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlaneControlScript flies its object: thrust from Shift/Ctrl, pitch W/S,
// roll A/D, yaw Q/E, F fires a missile. Lift drops below stall speed and the
// controls stop responding. It also draws the flight HUD.
type PlaneControlScript struct {
	engine.BaseScript

	MinThrust         float32
	MaxThrust         float32
	BaseThrust        float32
	CurrentThrust     float32
	VelocityShiftRate float32
	MinSpeed          float32
	MaxSpeed          float32
	MaxPitchSpeed     float32
	MaxRollSpeed      float32
	MaxYawSpeed       float32
	PitchAcceleration float32
	RollAcceleration  float32
	YawAcceleration   float32
	CurrentPitchSpeed float32
	CurrentRollSpeed  float32
	CurrentYawSpeed   float32
	TargetSpeed       float32
	MissileSpeed      float32

	velocity rl.Vector3
	stalling bool
}

const (
	planeWeight    = 20
	planeLift      = 20
	stallSpeed     = 15
	thrustInput    = 100
	thrustRecovery = 50
)

func (p *PlaneControlScript) TypeName() string { return "PlaneControlScript" }

func (p *PlaneControlScript) SetDefaults() {
	p.MinThrust = 100
	p.MaxThrust = 1000
	p.BaseThrust = 200
	p.CurrentThrust = 200
	p.VelocityShiftRate = 4
	p.MinSpeed = 5
	p.MaxSpeed = 25
	p.MaxPitchSpeed = 1
	p.MaxRollSpeed = 3
	p.MaxYawSpeed = 0.25
	p.PitchAcceleration = 2
	p.RollAcceleration = 5
	p.YawAcceleration = 0.25
	p.TargetSpeed = 20
	p.MissileSpeed = 50
}

func (p *PlaneControlScript) Velocity() rl.Vector3 {
	return p.velocity
}

func (p *PlaneControlScript) Stalling() bool {
	return p.stalling
}

func (p *PlaneControlScript) Initialize() {
	p.velocity = rl.Vector3Scale(p.Transform().Forward(), p.TargetSpeed)
}

// approach moves current toward target by rate*dt without overshooting.
func approach(current, target, step float32) float32 {
	if current > target {
		return clamp(current-step, target, current)
	}
	return clamp(current+step, current, target)
}

func (p *PlaneControlScript) Update() {
	t := p.Transform()
	in := p.Input()
	dt := p.Time().Dt

	forward := t.Forward()
	up := t.Up()
	right := t.Right()

	switch {
	case in.Down(rl.KeyLeftShift):
		p.CurrentThrust += thrustInput * dt
	case in.Down(rl.KeyLeftControl):
		p.CurrentThrust -= thrustInput * dt
	default:
		p.CurrentThrust = approach(p.CurrentThrust, p.BaseThrust, thrustRecovery*dt)
	}
	p.CurrentThrust = clamp(p.CurrentThrust, p.MinThrust, p.MaxThrust)

	lift := float32(planeLift)
	p.stalling = p.TargetSpeed < stallSpeed
	if p.stalling {
		lift = 10 - (stallSpeed - p.TargetSpeed)
	}

	accel := rl.Vector3Add(
		rl.Vector3Scale(forward, p.CurrentThrust),
		rl.Vector3Add(rl.Vector3Scale(engine.UpAxis, -planeWeight), rl.Vector3Scale(up, lift)))
	p.TargetSpeed = 20 * (rl.Vector3Length(accel) / p.BaseThrust)

	// The velocity turns toward the acceleration vector.
	targetVelocity := rl.Vector3Scale(rl.Vector3Normalize(accel), p.TargetSpeed)
	delta := rl.Vector3Subtract(targetVelocity, p.velocity)
	p.velocity = rl.Vector3Add(p.velocity, rl.Vector3Scale(delta, p.VelocityShiftRate*dt))
	p.velocity = rl.Vector3Scale(rl.Vector3Normalize(p.velocity), p.TargetSpeed)
	t.Translate(rl.Vector3Scale(p.velocity, dt))

	basePitchSpeed := 0.0025 * rl.Vector3DotProduct(up, accel)
	baseYawSpeed := -0.001 * rl.Vector3DotProduct(right, accel)
	var baseRollSpeed float32

	var pitchInput, rollInput, yawInput float32
	if !p.stalling {
		if in.Down(rl.KeyW) {
			pitchInput = -p.PitchAcceleration
		}
		if in.Down(rl.KeyS) {
			pitchInput = p.PitchAcceleration
		}
		if in.Down(rl.KeyD) {
			rollInput = -p.RollAcceleration
		}
		if in.Down(rl.KeyA) {
			rollInput = p.RollAcceleration
		}
		if in.Down(rl.KeyE) {
			yawInput = -p.YawAcceleration
		}
		if in.Down(rl.KeyQ) {
			yawInput = p.YawAcceleration
		}
	}

	if pitchInput != 0 {
		p.CurrentPitchSpeed += pitchInput * dt
	} else {
		p.CurrentPitchSpeed = approach(p.CurrentPitchSpeed, basePitchSpeed, 2*dt)
	}

	if rollInput != 0 {
		// Counter-rolling snaps back faster than rolling further.
		a := rollInput
		if p.CurrentRollSpeed < baseRollSpeed && rollInput > 0 {
			a = 8
		}
		if p.CurrentRollSpeed > baseRollSpeed && rollInput < 0 {
			a = -8
		}
		p.CurrentRollSpeed += a * dt
	} else {
		p.CurrentRollSpeed = approach(p.CurrentRollSpeed, baseRollSpeed, 8*dt)
	}

	if yawInput != 0 {
		p.CurrentYawSpeed += yawInput * dt
	} else {
		p.CurrentYawSpeed = approach(p.CurrentYawSpeed, baseYawSpeed, 0.4*dt)
	}

	p.CurrentPitchSpeed = clamp(p.CurrentPitchSpeed, -p.MaxPitchSpeed, p.MaxPitchSpeed)
	p.CurrentRollSpeed = clamp(p.CurrentRollSpeed, -p.MaxRollSpeed, p.MaxRollSpeed)
	p.CurrentYawSpeed = clamp(p.CurrentYawSpeed, -p.MaxYawSpeed, p.MaxYawSpeed)

	t.RotateLocal(engine.RightAxis, p.CurrentPitchSpeed*dt)
	t.RotateLocal(rl.Vector3{Z: 1}, p.CurrentRollSpeed*dt)
	t.RotateLocal(engine.UpAxis, p.CurrentYawSpeed*dt)

	if in.Pressed(rl.KeyF) {
		p.fireMissile()
	}

	p.drawHUD()
}

func (p *PlaneControlScript) fireMissile() {
	t := p.Transform()
	res := p.Resources()

	obj := p.Scene().MakeObject()
	obj.Transform.Position = rl.Vector3Add(t.WorldPosition(), rl.Vector3Scale(t.WorldDirection(engine.ForwardAxis), 4))
	obj.Transform.Rotation = t.WorldRotation()

	mr := engine.AddComponent[engine.MeshRenderer](obj)
	mr.Mesh = res.MustMesh("object")
	mr.Materials = append(mr.Materials, res.MustMaterial("default.object"))

	m := engine.AddComponent[MissileScript](obj)
	m.InitialVelocity = rl.Vector3Add(p.velocity, rl.Vector3Scale(t.WorldDirection(engine.ForwardAxis), p.MissileSpeed))
	p.Log().Debug("missile fired")
}

var hudGreen = rl.Vector3{Y: 0.8}

func (p *PlaneControlScript) drawHUD() {
	cam := p.Scene().MainCamera()
	if cam == nil {
		return
	}
	dbg := p.Debug()
	t := p.Transform()
	forward := t.Forward()

	marker := func(dir rl.Vector3, a, b, c, d rl.Vector2, color rl.Vector3) {
		hint, ok := cam.ProjectDirection(dir)
		if !ok {
			return
		}
		dbg.DrawScreenLine(rl.Vector2Add(a, hint), rl.Vector2Add(b, hint), color)
		dbg.DrawScreenLine(rl.Vector2Add(c, hint), rl.Vector2Add(d, hint), color)
	}

	// nose
	marker(forward,
		rl.Vector2{X: -0.05, Y: 0.05}, rl.Vector2{},
		rl.Vector2{}, rl.Vector2{X: 0.05, Y: 0.05},
		rl.Vector3{Y: 0.7})

	// pitch ladder
	for angle := -40; angle <= 40; angle += 10 {
		s := float32(math.Sin(float64(angle) * math.Pi / 180))
		rx, rz := rotate2(forward.X, forward.Z, 0.2)
		from, ok1 := cam.ProjectDirection(rl.Vector3Normalize(rl.Vector3{X: forward.X, Y: s, Z: forward.Z}))
		to, ok2 := cam.ProjectDirection(rl.Vector3Normalize(rl.Vector3{X: rx, Y: s, Z: rz}))
		if !ok1 || !ok2 {
			continue
		}
		dbg.DrawScreenLine(from, to, hudGreen)
		if angle == 0 {
			dbg.DrawScreenLine(rl.Vector2Add(from, rl.Vector2{Y: 0.01}), to, hudGreen)
			dbg.DrawScreenLine(rl.Vector2Subtract(from, rl.Vector2{Y: 0.01}), to, hudGreen)
		}
	}

	heading, pitch, roll := Attitude(t)
	dbg.DrawScreenText(rl.Vector2{X: -1, Y: 0.9}, fmt.Sprintf("pitch: %f", pitch*rl.Rad2deg))
	dbg.DrawScreenText(rl.Vector2{X: -1, Y: 0.8}, fmt.Sprintf("roll : %f", roll*rl.Rad2deg))
	dbg.DrawScreenText(rl.Vector2{X: -1, Y: 0.7}, fmt.Sprintf("heading: %f", heading*rl.Rad2deg))

	// velocity vector
	marker(p.velocity,
		rl.Vector2{X: -0.05}, rl.Vector2{X: 0.05},
		rl.Vector2{}, rl.Vector2{Y: 0.05},
		rl.Vector3{Y: 1})

	dbg.DrawScreenText(rl.Vector2{X: -0.5, Y: 0.3}, fmt.Sprintf("%f", rl.Vector3Length(p.velocity)))
	dbg.DrawScreenText(rl.Vector2{X: -0.5, Y: 0.2}, fmt.Sprintf("%f", p.velocity.X))
	dbg.DrawScreenText(rl.Vector2{X: -0.5, Y: 0.1}, fmt.Sprintf("%f", p.velocity.Y))
	dbg.DrawScreenText(rl.Vector2{X: -0.5, Y: 0.0}, fmt.Sprintf("%f", p.velocity.Z))
	dbg.DrawScreenText(rl.Vector2{X: 0.5, Y: 0.3}, fmt.Sprintf("%f", t.Position.Y))
}

// rotate2 turns (x, y) clockwise by a radians.
func rotate2(x, y, a float32) (float32, float32) {
	c, s := float32(math.Cos(float64(a))), float32(math.Sin(float64(a)))
	return c*x + s*y, -s*x + c*y
}

// Attitude returns heading, pitch and roll in radians. Heading 0 faces -Z
// and grows turning left; pitch is positive nose up; roll is positive
// banking left.
func Attitude(t *engine.Transform) (heading, pitch, roll float32) {
	f := t.Forward()
	u := t.Up()
	r := t.Right()
	heading = float32(math.Atan2(float64(-f.X), float64(-f.Z)))
	pitch = float32(math.Asin(float64(clamp(f.Y, -1, 1))))
	roll = float32(math.Atan2(float64(r.Y), float64(u.Y)))
	return heading, pitch, roll
}

func init() {
	engine.RegisterScript("PlaneControlScript", planeControlFactory, planeControlSerializer)
}

func planeControlFactory(props map[string]any) engine.Script {
	p := &PlaneControlScript{}
	p.SetDefaults()
	for key, field := range p.properties() {
		*field = propFloat(props, key, *field)
	}
	return p
}

func planeControlSerializer(s engine.Script) map[string]any {
	p, ok := s.(*PlaneControlScript)
	if !ok {
		return nil
	}
	out := map[string]any{}
	for key, field := range p.properties() {
		out[key] = *field
	}
	return out
}

func (p *PlaneControlScript) properties() map[string]*float32 {
	return map[string]*float32{
		"velocityShiftRate": &p.VelocityShiftRate,
		"minSpeed":          &p.MinSpeed,
		"maxPitchSpeed":     &p.MaxPitchSpeed,
		"maxRollSpeed":      &p.MaxRollSpeed,
		"maxYawSpeed":       &p.MaxYawSpeed,
		"pitchAcceleration": &p.PitchAcceleration,
		"rollAcceleration":  &p.RollAcceleration,
		"yawAcceleration":   &p.YawAcceleration,
		"currentPitchSpeed": &p.CurrentPitchSpeed,
		"currentRollSpeed":  &p.CurrentRollSpeed,
		"currentYawSpeed":   &p.CurrentYawSpeed,
		"targetSpeed":       &p.TargetSpeed,
	}
}
