package world

import (
	"math"

	"planegame/internal/assets"
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// CheckerSize is the edge length of one land checker cell.
	CheckerSize = 20
	// pointFalloff scales the inverse-square attenuation of point lights.
	pointFalloff = 0.01
)

// LightSample is a light resolved to world space for one frame.
type LightSample struct {
	Type      engine.LightType
	Position  rl.Vector3
	Direction rl.Vector3
	Color     rl.Vector3
}

// CollectLights resolves every light of the scene.
func CollectLights(scene *engine.Scene) []LightSample {
	lights := scene.Components().Lights
	out := make([]LightSample, 0, len(lights))
	for _, l := range lights {
		t := l.Transform()
		out = append(out, LightSample{
			Type:      l.Type,
			Position:  t.WorldPosition(),
			Direction: t.WorldDirection(engine.ForwardAxis),
			Color:     l.Color,
		})
	}
	return out
}

// Shade returns the linear colour of a surface point: the material colour
// times ambient plus the Lambert term of every light. The land shader darkens
// alternate checker cells.
func Shade(mat *assets.Material, pos, normal rl.Vector3, lights []LightSample) rl.Vector3 {
	base := rl.Vector3{X: 1, Y: 1, Z: 1}
	ambient := rl.Vector3{X: 0.1, Y: 0.1, Z: 0.1}
	if mat != nil {
		base = mat.Color()
		ambient = mat.Ambient()
		if mat.ShaderName() == assets.ShaderLand && Checker(pos) {
			base = rl.Vector3Scale(base, 0.5)
		}
	}

	n := rl.Vector3Normalize(normal)
	light := ambient
	for _, l := range lights {
		var dir rl.Vector3
		atten := float32(1)
		switch l.Type {
		case engine.DirectionalLight:
			dir = rl.Vector3Negate(rl.Vector3Normalize(l.Direction))
		default:
			delta := rl.Vector3Subtract(l.Position, pos)
			d2 := rl.Vector3DotProduct(delta, delta)
			dir = rl.Vector3Normalize(delta)
			atten = 1 / (1 + pointFalloff*d2)
		}
		lambert := max(0, rl.Vector3DotProduct(n, dir))
		light = rl.Vector3Add(light, rl.Vector3Scale(l.Color, lambert*atten))
	}
	return rl.Vector3Multiply(base, light)
}

// Checker reports whether pos lies in a dark cell of the land grid.
func Checker(pos rl.Vector3) bool {
	ix := int64(math.Floor(float64(pos.X / CheckerSize)))
	iz := int64(math.Floor(float64(pos.Z / CheckerSize)))
	return (ix+iz)&1 != 0
}

// ToColor clamps a linear colour into an opaque raylib colour.
func ToColor(c rl.Vector3) rl.Color {
	ch := func(x float32) uint8 {
		return uint8(math.Round(float64(min(max(x, 0), 1) * 255)))
	}
	return rl.Color{R: ch(c.X), G: ch(c.Y), B: ch(c.Z), A: 255}
}
