package engine

import (
	"fmt"
	"math"

	"planegame/internal/assets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Components is the scene's typed storage for every non-script component.
// The set of types is closed; anything else is rejected at registration.
type Components struct {
	Cameras       []*Camera
	Lights        []*Light
	MeshRenderers []*MeshRenderer
}

func (cs *Components) register(c Component) error {
	switch v := c.(type) {
	case *Camera:
		cs.Cameras = append(cs.Cameras, v)
	case *Light:
		cs.Lights = append(cs.Lights, v)
	case *MeshRenderer:
		cs.MeshRenderers = append(cs.MeshRenderers, v)
	default:
		return fmt.Errorf("register %T: %w", c, ErrUnknownComponent)
	}
	return nil
}

func (cs *Components) sweep() int {
	before := len(cs.Cameras) + len(cs.Lights) + len(cs.MeshRenderers)
	cs.Cameras = compact(cs.Cameras)
	cs.Lights = compact(cs.Lights)
	cs.MeshRenderers = compact(cs.MeshRenderers)
	return before - len(cs.Cameras) - len(cs.Lights) - len(cs.MeshRenderers)
}

// compact drops destroyed entries in place, keeping order.
func compact[T Component](items []T) []T {
	kept := items[:0]
	for _, item := range items {
		if !item.IsDestroyed() {
			kept = append(kept, item)
		}
	}
	clear(items[len(kept):])
	return kept
}

const (
	CameraNear float32 = 0.1
	CameraFar  float32 = 50000
)

// Camera is a perspective view attached to an object. Fov is the vertical
// field of view in radians.
type Camera struct {
	BaseComponent
	Fov         float32
	AspectRatio float32
	IsMain      bool
}

func (c *Camera) SetDefaults() {
	c.Fov = math.Pi / 4
	c.AspectRatio = 1
	c.IsMain = true
}

// ViewMatrix is the inverse of the owning object's world matrix.
func (c *Camera) ViewMatrix() rl.Matrix {
	t := c.Transform()
	if t == nil {
		return rl.MatrixIdentity()
	}
	return rl.MatrixInvert(t.Matrix())
}

func (c *Camera) ProjectionMatrix() rl.Matrix {
	return rl.MatrixPerspective(c.Fov, c.AspectRatio, CameraNear, CameraFar)
}

// Raylib converts the camera into raylib's look-at form.
func (c *Camera) Raylib() rl.Camera3D {
	cam := rl.Camera3D{
		Up:         UpAxis,
		Target:     ForwardAxis,
		Fovy:       c.Fov * rl.Rad2deg,
		Projection: rl.CameraPerspective,
	}
	if t := c.Transform(); t != nil {
		cam.Position = t.WorldPosition()
		cam.Target = rl.Vector3Add(cam.Position, t.WorldDirection(ForwardAxis))
		cam.Up = t.WorldDirection(UpAxis)
	}
	return cam
}

// ProjectDirection maps a world-space direction to normalized screen
// coordinates in [-1, 1], y up. ok is false for directions behind the camera.
func (c *Camera) ProjectDirection(dir rl.Vector3) (p rl.Vector2, ok bool) {
	rot := rl.QuaternionIdentity()
	if t := c.Transform(); t != nil {
		rot = t.WorldRotation()
	}
	v := rl.Vector3RotateByQuaternion(dir, rl.QuaternionInvert(rot))
	if v.Z >= 0 {
		return rl.Vector2{}, false
	}
	s := float32(math.Sin(float64(c.Fov) * 0.5))
	return rl.Vector2{
		X: v.X / (-v.Z * c.AspectRatio * s),
		Y: v.Y / (-v.Z * s),
	}, true
}

type LightType int

const (
	PointLight LightType = iota
	DirectionalLight
)

func (t LightType) String() string {
	switch t {
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	}
	return fmt.Sprintf("LightType(%d)", int(t))
}

// Light contributes diffuse light of Color. A point light shines from the
// object's world position; a directional light along its forward axis.
type Light struct {
	BaseComponent
	Type  LightType
	Color rl.Vector3
}

func (l *Light) SetDefaults() {
	l.Color = rl.Vector3{X: 1, Y: 1, Z: 1}
}

// MeshRenderer draws Mesh with one material per submesh, in order.
type MeshRenderer struct {
	BaseComponent
	Mesh      *assets.Mesh
	Materials []*assets.Material
}

// Material returns the material for a submesh, reusing the last one when
// fewer materials than submeshes are set.
func (m *MeshRenderer) Material(submesh int) *assets.Material {
	if len(m.Materials) == 0 {
		return nil
	}
	if submesh >= len(m.Materials) {
		return m.Materials[len(m.Materials)-1]
	}
	return m.Materials[submesh]
}
