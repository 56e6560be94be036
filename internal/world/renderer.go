package world

import (
	"math"

	"planegame/internal/assets"
	"planegame/internal/debugdraw"
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// landRadius bounds the checker cells drawn around the camera.
	landRadius    = 25 * CheckerSize
	debugFontSize = 20
)

// Renderer draws a scene through its main camera in raylib immediate mode.
// Shading is computed on the CPU per triangle.
type Renderer struct {
	Background rl.Color

	bounds map[*assets.Mesh]Sphere
	lights []LightSample
	Culled int
}

func NewRenderer() *Renderer {
	return &Renderer{
		Background: rl.Color{R: 135, G: 170, B: 210, A: 255},
		bounds:     map[*assets.Mesh]Sphere{},
	}
}

// Draw renders one frame between BeginDrawing and EndDrawing, then clears
// the debug queue. Without a main camera only the debug overlay is drawn.
func (r *Renderer) Draw(w *World) {
	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.ClearBackground(r.Background)

	if cam := w.Scene.MainCamera(); cam != nil {
		if height > 0 {
			cam.AspectRatio = float32(width) / float32(height)
		}
		r.drawWorld(w, cam)
	}
	r.drawOverlay(w.Debug, width, height)
	w.Debug.Clear()
}

func (r *Renderer) drawWorld(w *World, cam *engine.Camera) {
	frustum := ExtractFrustum(rl.MatrixMultiply(cam.ViewMatrix(), cam.ProjectionMatrix()))
	r.lights = CollectLights(w.Scene)
	r.Culled = 0

	rl.BeginMode3D(cam.Raylib())
	rl.DisableBackfaceCulling()

	for _, mr := range w.Scene.Components().MeshRenderers {
		if mr.Mesh == nil {
			continue
		}
		t := mr.Transform()
		model := t.Matrix()
		s := r.boundsOf(mr.Mesh)
		if !frustum.ContainsSphere(rl.Vector3Transform(s.Center, model), s.Radius) {
			r.Culled++
			continue
		}
		r.drawMesh(mr, model, t.WorldRotation(), cam)
	}

	for _, l := range w.Debug.Lines() {
		rl.DrawLine3D(l.Start, l.End, ToColor(l.Color))
	}

	rl.EnableBackfaceCulling()
	rl.EndMode3D()
}

func (r *Renderer) boundsOf(m *assets.Mesh) Sphere {
	s, ok := r.bounds[m]
	if !ok {
		s = BoundingSphere(m)
		r.bounds[m] = s
	}
	return s
}

func (r *Renderer) drawMesh(mr *engine.MeshRenderer, model rl.Matrix, rot rl.Quaternion, cam *engine.Camera) {
	m := mr.Mesh
	for i, part := range m.Parts() {
		mat := mr.Material(i)
		if mat != nil && mat.ShaderName() == assets.ShaderLand {
			r.drawLand(m, part, mat, model, cam)
			continue
		}
		end := part.IndexStart + part.IndexCount
		for j := part.IndexStart; j+2 < end; j += 3 {
			a, b, c := m.Vertices[m.Indices[j]], m.Vertices[m.Indices[j+1]], m.Vertices[m.Indices[j+2]]
			pa := rl.Vector3Transform(a.Position, model)
			pb := rl.Vector3Transform(b.Position, model)
			pc := rl.Vector3Transform(c.Position, model)
			n := rl.Vector3Add(a.Normal, rl.Vector3Add(b.Normal, c.Normal))
			n = rl.Vector3RotateByQuaternion(n, rot)
			centroid := rl.Vector3Scale(rl.Vector3Add(pa, rl.Vector3Add(pb, pc)), 1.0/3)
			rl.DrawTriangle3D(pa, pb, pc, ToColor(Shade(mat, centroid, n, r.lights)))
		}
	}
}

// drawLand tiles the land's local XZ extent with checker cells, limited to
// landRadius around the camera.
func (r *Renderer) drawLand(m *assets.Mesh, part assets.Submesh, mat *assets.Material, model rl.Matrix, cam *engine.Camera) {
	if part.IndexCount == 0 {
		return
	}
	lo := m.Vertices[m.Indices[part.IndexStart]].Position
	hi := lo
	var normal rl.Vector3
	for j := part.IndexStart; j < part.IndexStart+part.IndexCount; j++ {
		v := m.Vertices[m.Indices[j]]
		lo = rl.Vector3Min(lo, v.Position)
		hi = rl.Vector3Max(hi, v.Position)
		normal = rl.Vector3Add(normal, v.Normal)
	}
	camLocal := rl.Vector3Transform(cam.Transform().WorldPosition(), rl.MatrixInvert(model))
	minX := max(lo.X, snap(camLocal.X-landRadius))
	maxX := min(hi.X, camLocal.X+landRadius)
	minZ := max(lo.Z, snap(camLocal.Z-landRadius))
	maxZ := min(hi.Z, camLocal.Z+landRadius)
	y := lo.Y
	worldNormal := rl.Vector3Transform(normal, model)
	worldNormal = rl.Vector3Subtract(worldNormal, rl.Vector3Transform(rl.Vector3{}, model))

	for x := minX; x < maxX; x += CheckerSize {
		for z := minZ; z < maxZ; z += CheckerSize {
			x1, z1 := min(x+CheckerSize, maxX), min(z+CheckerSize, maxZ)
			p00 := rl.Vector3Transform(rl.Vector3{X: x, Y: y, Z: z}, model)
			p10 := rl.Vector3Transform(rl.Vector3{X: x1, Y: y, Z: z}, model)
			p11 := rl.Vector3Transform(rl.Vector3{X: x1, Y: y, Z: z1}, model)
			p01 := rl.Vector3Transform(rl.Vector3{X: x, Y: y, Z: z1}, model)
			center := rl.Vector3Scale(rl.Vector3Add(p00, p11), 0.5)
			color := ToColor(Shade(mat, center, worldNormal, r.lights))
			rl.DrawTriangle3D(p00, p01, p11, color)
			rl.DrawTriangle3D(p00, p11, p10, color)
		}
	}
}

// snap rounds down to the checker grid so cells stay aligned as the camera moves.
func snap(v float32) float32 {
	return float32(math.Floor(float64(v/CheckerSize))) * CheckerSize
}

func (r *Renderer) drawOverlay(d *debugdraw.Debug, width, height int32) {
	for _, l := range d.ScreenLines() {
		rl.DrawLineV(debugdraw.ToPixels(l.Start, width, height), debugdraw.ToPixels(l.End, width, height), ToColor(l.Color))
	}
	for _, t := range d.Texts() {
		p := debugdraw.ToPixels(t.TopLeft, width, height)
		rl.DrawText(t.Text, int32(p.X), int32(p.Y), debugFontSize, rl.White)
	}
}
