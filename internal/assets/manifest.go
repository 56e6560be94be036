package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Manifest lists the resources to load from disk. It is read from JSON or
// YAML depending on the file extension.
type Manifest struct {
	Textures  map[string]FileEntry     `json:"texture2d" yaml:"texture2d"`
	Meshes    map[string]FileEntry     `json:"mesh" yaml:"mesh"`
	Shaders   map[string]FileEntry     `json:"shader" yaml:"shader"`
	Materials map[string]MaterialEntry `json:"material" yaml:"material"`
}

type FileEntry struct {
	Path string `json:"path" yaml:"path"`
}

// MaterialEntry values are [type, value] pairs, for example
// "Material.color": ["vec3", [0.4, 0.2, 0.1]] or ["color", "SkyBlue"].
type MaterialEntry struct {
	Shader string           `json:"shader" yaml:"shader"`
	Values map[string][]any `json:"values" yaml:"values"`
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads the manifest at path into r. Textures, meshes, shaders and
// materials are loaded in that order, names sorted within each section.
// Relative paths are resolved against the manifest's directory.
func (r *Resources) Load(path string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	m, err := ReadManifest(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	for _, name := range sortedKeys(m.Textures) {
		if _, err := r.Textures.Add(name, &Texture2D{Path: resolve(m.Textures[name].Path)}); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(m.Meshes) {
		mesh, err := ReadMeshFile(resolve(m.Meshes[name].Path))
		if err != nil {
			return err
		}
		if _, err := r.Meshes.Add(name, mesh); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(m.Shaders) {
		p := resolve(m.Shaders[name].Path)
		src, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("shader %q: %w", name, err)
		}
		if _, err := r.Shaders.Add(name, &Shader{Name: name, Path: p, Source: string(src)}); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(m.Materials) {
		entry := m.Materials[name]
		shader, err := r.Shaders.Get(entry.Shader)
		if err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
		mat := NewMaterial(shader)
		for _, valueName := range sortedKeys(entry.Values) {
			v, err := parseValue(entry.Values[valueName])
			if err != nil {
				return fmt.Errorf("material %q value %q: %w", name, valueName, err)
			}
			mat.SetValue(valueName, v)
		}
		if _, err := r.Materials.Add(name, mat); err != nil {
			return err
		}
	}

	log.Info("resources loaded",
		zap.String("manifest", path),
		zap.Int("textures", len(m.Textures)),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("shaders", len(m.Shaders)),
		zap.Int("materials", len(m.Materials)))
	return nil
}

func parseValue(raw []any) (rl.Vector3, error) {
	if len(raw) != 2 {
		return rl.Vector3{}, fmt.Errorf("want [type, value], got %d elements", len(raw))
	}
	typeName, _ := raw[0].(string)
	switch typeName {
	case "vec3":
		list, ok := raw[1].([]any)
		if !ok || len(list) != 3 {
			return rl.Vector3{}, fmt.Errorf("vec3 wants 3 numbers, got %v", raw[1])
		}
		var f [3]float32
		for i, x := range list {
			n, ok := toFloat(x)
			if !ok {
				return rl.Vector3{}, fmt.Errorf("vec3 element %d is %T", i, x)
			}
			f[i] = n
		}
		return rl.Vector3{X: f[0], Y: f[1], Z: f[2]}, nil
	case "color":
		name, _ := raw[1].(string)
		c, ok := LookupColor(name)
		if !ok {
			return rl.Vector3{}, fmt.Errorf("unknown color %q", name)
		}
		return c, nil
	}
	return rl.Vector3{}, fmt.Errorf("unknown value type %q", typeName)
}

// toFloat accepts the number types JSON and YAML decoders produce.
func toFloat(x any) (float32, bool) {
	switch n := x.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	}
	return 0, false
}
