package assets

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Well-known material value names.
const (
	ValueColor   = "Material.color"
	ValueAmbient = "Material.ambient"
)

// Shader names the shading model a material uses. Source is kept for
// inspection; the renderer selects its shading by Name.
type Shader struct {
	Name   string
	Path   string
	Source string
}

// Texture2D is a texture file registered by the manifest. GPU upload is left
// to the renderer.
type Texture2D struct {
	Path string
}

// Material binds a shader to a set of named vec3 values.
type Material struct {
	Shader *Shader
	values map[string]rl.Vector3
}

func NewMaterial(shader *Shader) *Material {
	return &Material{Shader: shader, values: map[string]rl.Vector3{}}
}

func (m *Material) SetValue(name string, v rl.Vector3) {
	if m.values == nil {
		m.values = map[string]rl.Vector3{}
	}
	m.values[name] = v
}

func (m *Material) Vec3(name string) (rl.Vector3, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Color returns Material.color, white when unset.
func (m *Material) Color() rl.Vector3 {
	if v, ok := m.values[ValueColor]; ok {
		return v
	}
	return rl.Vector3{X: 1, Y: 1, Z: 1}
}

// Ambient returns Material.ambient, a dim grey when unset.
func (m *Material) Ambient() rl.Vector3 {
	if v, ok := m.values[ValueAmbient]; ok {
		return v
	}
	return rl.Vector3{X: 0.1, Y: 0.1, Z: 0.1}
}

// ValueNames returns the set value names, sorted.
func (m *Material) ValueNames() []string {
	names := make([]string, 0, len(m.values))
	for name := range m.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ShaderName returns the shader's name, or "" without a shader.
func (m *Material) ShaderName() string {
	if m.Shader == nil {
		return ""
	}
	return m.Shader.Name
}

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
}

// LookupColor returns a named raylib color as a linear vec3.
func LookupColor(name string) (rl.Vector3, bool) {
	c, ok := colorByName[name]
	if !ok {
		return rl.Vector3{}, false
	}
	return rl.Vector3{X: float32(c.R) / 255, Y: float32(c.G) / 255, Z: float32(c.B) / 255}, true
}
