package world

import (
	"planegame/internal/assets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum extracts the planes of a combined view-projection matrix
// (Gribb/Hartmann). raylib matrices are column-major, so row i of the math
// matrix is (Mi, Mi+4, Mi+8, Mi+12).
func ExtractFrustum(vp rl.Matrix) Frustum {
	row := func(i int) [4]float32 {
		switch i {
		case 0:
			return [4]float32{vp.M0, vp.M4, vp.M8, vp.M12}
		case 1:
			return [4]float32{vp.M1, vp.M5, vp.M9, vp.M13}
		case 2:
			return [4]float32{vp.M2, vp.M6, vp.M10, vp.M14}
		}
		return [4]float32{vp.M3, vp.M7, vp.M11, vp.M15}
	}
	w := row(3)
	plane := func(r [4]float32, sign float32) Plane {
		return normalizePlane(Plane{
			normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
			distance: w[3] + sign*r[3],
		})
	}

	var f Frustum
	f.planes[0] = plane(row(0), 1)
	f.planes[1] = plane(row(0), -1)
	f.planes[2] = plane(row(1), 1)
	f.planes[3] = plane(row(1), -1)
	f.planes[4] = plane(row(2), 1)
	f.planes[5] = plane(row(2), -1)
	return f
}

// normalizePlane normalizes a plane equation
func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, point) + f.planes[i].distance
		if dist < 0 {
			return false
		}
	}
	return true
}

// Sphere is a bounding sphere in mesh space.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// BoundingSphere centers a sphere on the vertex bounding box.
func BoundingSphere(m *assets.Mesh) Sphere {
	if m == nil || len(m.Vertices) == 0 {
		return Sphere{}
	}
	lo, hi := m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		lo = rl.Vector3Min(lo, v.Position)
		hi = rl.Vector3Max(hi, v.Position)
	}
	center := rl.Vector3Scale(rl.Vector3Add(lo, hi), 0.5)
	var radius float32
	for _, v := range m.Vertices {
		radius = max(radius, rl.Vector3Distance(center, v.Position))
	}
	return Sphere{Center: center, Radius: radius}
}
