package assets

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Built-in shader names. The renderer keys its shading on these.
const (
	ShaderDefault = "default"
	ShaderLand    = "default.land"
)

func v3(x, y, z float32) rl.Vector3 {
	return rl.Vector3{X: x, Y: y, Z: z}
}

// AddBuiltins registers the resources every scene can rely on: the land
// quad, the generator triangle, a small three-part plane, the two default
// shaders and the default materials.
func (r *Resources) AddBuiltins() error {
	up := v3(0, 1, 0)
	land := &Mesh{
		Vertices: []Vertex{
			{Position: v3(-10000, 0, -10000), Normal: up},
			{Position: v3(10000, 0, -10000), Normal: up},
			{Position: v3(10000, 0, 10000), Normal: up},
			{Position: v3(-10000, 0, 10000), Normal: up},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
	object := &Mesh{
		Vertices: []Vertex{
			{Position: v3(-1, -1, 0), Normal: v3(1, 0, 0)},
			{Position: v3(1, -1, 0), Normal: v3(0, 1, 0)},
			{Position: v3(0, 1, 0), Normal: v3(0, 0, 1)},
		},
		Indices: []uint32{0, 1, 2},
	}

	for name, mesh := range map[string]*Mesh{"land": land, "object": object, "plane": planeMesh()} {
		if _, err := r.Meshes.Add(name, mesh); err != nil {
			return err
		}
	}

	def, err := r.Shaders.Add(ShaderDefault, &Shader{Name: ShaderDefault})
	if err != nil {
		return err
	}
	landShader, err := r.Shaders.Add(ShaderLand, &Shader{Name: ShaderLand})
	if err != nil {
		return err
	}

	materials := []struct {
		name   string
		shader *Shader
		color  rl.Vector3
	}{
		{"default.land", landShader, v3(0.4, 0.2, 0.1)},
		{"default.object", def, v3(1, 1, 1)},
		{"su37.body", def, v3(0.2, 0.4, 0.2)},
		{"su37.cockpit", def, v3(0.274425, 0.282128, 0.8)},
		{"su37.engine", def, v3(0.1, 0.1, 0.1)},
	}
	for _, m := range materials {
		mat := NewMaterial(m.shader)
		mat.SetValue(ValueColor, m.color)
		if _, err := r.Materials.Add(m.name, mat); err != nil {
			return fmt.Errorf("builtin material: %w", err)
		}
	}
	return nil
}

// planeMesh is a flat dart pointing down -Z with body, cockpit and engine
// submeshes, used when no exported plane mesh is loaded.
func planeMesh() *Mesh {
	up := v3(0, 1, 0)
	back := v3(0, 0, 1)
	m := &Mesh{
		Vertices: []Vertex{
			// body: nose and wing tips
			{Position: v3(0, 0, -3), Normal: up},
			{Position: v3(-3, 0, 1.5), Normal: up},
			{Position: v3(3, 0, 1.5), Normal: up},
			// cockpit
			{Position: v3(0, 0.4, -1.5), Normal: up},
			{Position: v3(-0.4, 0, -0.5), Normal: up},
			{Position: v3(0.4, 0, -0.5), Normal: up},
			// engine plate
			{Position: v3(-0.6, -0.3, 1.5), Normal: back},
			{Position: v3(0.6, -0.3, 1.5), Normal: back},
			{Position: v3(0, 0.3, 1.5), Normal: back},
		},
		Indices: []uint32{
			0, 1, 2,
			3, 4, 5,
			6, 7, 8,
		},
		Submeshes: []Submesh{
			{IndexStart: 0, IndexCount: 3},
			{IndexStart: 3, IndexCount: 3},
			{IndexStart: 6, IndexCount: 3},
		},
	}
	return m
}
