package scripts

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PlaneChaseCameraScript keeps its object behind and above the object
// carrying TargetTag, looking at it. Holding left Alt orbits around the
// target with the mouse; on release the orbit eases back behind it. Holding
// C only turns toward the target.
type PlaneChaseCameraScript struct {
	engine.BaseScript
	TargetTag        uint32
	HorizAngleOffset float32
	ForwardOffset    float32
	UpOffset         float32
	LookAtUpOffset   float32
	ReturnDuration   float32

	target      engine.ObjectRef
	orbitReturn *gween.Tween
}

func (c *PlaneChaseCameraScript) TypeName() string { return "PlaneChaseCameraScript" }

func (c *PlaneChaseCameraScript) SetDefaults() {
	c.ForwardOffset = -5
	c.UpOffset = 1
	c.LookAtUpOffset = 1
	c.ReturnDuration = 0.4
}

func (c *PlaneChaseCameraScript) Initialize() {
	c.target = engine.RefTo(c.Scene().FindObjectWithTag(c.TargetTag))
}

func (c *PlaneChaseCameraScript) Update() {
	chased := c.target.Get(c.Scene())
	if chased == nil {
		// The target may have been recreated by a scene reload.
		c.target = engine.RefTo(c.Scene().FindObjectWithTag(c.TargetTag))
		if chased = c.target.Get(c.Scene()); chased == nil {
			return
		}
	}
	t := c.Transform()
	in := c.Input()
	dt := c.Time().Dt

	targetPos := chased.Transform.WorldPosition()
	forward := chased.Transform.WorldDirection(engine.ForwardAxis)
	up := chased.Transform.WorldDirection(engine.UpAxis)

	if in.Down(rl.KeyC) {
		t.Rotation = engine.LookRotation(rl.Vector3Subtract(targetPos, t.Position), t.Up())
		return
	}

	switch {
	case in.Down(rl.KeyLeftAlt):
		c.orbitReturn = nil
		c.HorizAngleOffset += in.MouseDelta.X * dt
	case c.HorizAngleOffset != 0:
		if c.orbitReturn == nil {
			c.orbitReturn = gween.New(c.HorizAngleOffset, 0, c.ReturnDuration, ease.OutCubic)
		}
		v, done := c.orbitReturn.Update(dt)
		c.HorizAngleOffset = v
		if done {
			c.HorizAngleOffset = 0
			c.orbitReturn = nil
		}
	}

	offset := rl.Vector3Add(rl.Vector3Scale(forward, c.ForwardOffset), rl.Vector3Scale(up, c.UpOffset))
	offset = rl.Vector3RotateByQuaternion(offset, rl.QuaternionFromAxisAngle(up, c.HorizAngleOffset))
	t.Position = rl.Vector3Add(targetPos, offset)
	lookAt := rl.Vector3Add(targetPos, rl.Vector3Scale(up, c.LookAtUpOffset))
	t.Rotation = engine.LookRotation(rl.Vector3Subtract(lookAt, t.Position), up)
}

func init() {
	engine.RegisterScript("PlaneChaseCameraScript", chaseCameraFactory, chaseCameraSerializer)
}

func chaseCameraFactory(props map[string]any) engine.Script {
	c := &PlaneChaseCameraScript{}
	c.SetDefaults()
	c.TargetTag = uint32(propFloat(props, "targetTag", 0))
	c.ForwardOffset = propFloat(props, "forwardOffset", c.ForwardOffset)
	c.UpOffset = propFloat(props, "upOffset", c.UpOffset)
	c.LookAtUpOffset = propFloat(props, "lookAtUpOffset", c.LookAtUpOffset)
	c.ReturnDuration = propFloat(props, "returnDuration", c.ReturnDuration)
	return c
}

func chaseCameraSerializer(s engine.Script) map[string]any {
	c, ok := s.(*PlaneChaseCameraScript)
	if !ok {
		return nil
	}
	return map[string]any{
		"targetTag":      float32(c.TargetTag),
		"forwardOffset":  c.ForwardOffset,
		"upOffset":       c.UpOffset,
		"lookAtUpOffset": c.LookAtUpOffset,
		"returnDuration": c.ReturnDuration,
	}
}
