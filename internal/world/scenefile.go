package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrBadSceneFile = errors.New("bad scene file")

// --- JSON types ---

type SceneFile struct {
	Objects    []ObjectDef   `json:"objects"`
	Components ComponentDefs `json:"components"`
}

type ObjectDef struct {
	ID        int          `json:"id"`
	Parent    *int         `json:"parent,omitempty"`
	Transform TransformDef `json:"transform"`
	Tag       *uint32      `json:"tag,omitempty"`
}

// TransformDef is written as [[px,py,pz],[qx,qy,qz,qw]].
type TransformDef struct {
	Position [3]float32
	Rotation [4]float32
}

func (t TransformDef) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Position, t.Rotation})
}

func (t *TransformDef) UnmarshalJSON(data []byte) error {
	var parts [][]float32
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 4 {
		return fmt.Errorf("%w: transform must be [[x,y,z],[x,y,z,w]]", ErrBadSceneFile)
	}
	copy(t.Position[:], parts[0])
	copy(t.Rotation[:], parts[1])
	return nil
}

type ComponentDefs struct {
	Cameras       []cameraDef       `json:"cameras"`
	Lights        []lightDef        `json:"lights"`
	MeshRenderers []meshRendererDef `json:"meshRenderers"`
	Scripts       []scriptDef       `json:"scripts"`
}

type cameraDef struct {
	Object      int     `json:"object"`
	Fov         float32 `json:"fov"`
	AspectRatio float32 `json:"aspectRatio"`
	IsMain      bool    `json:"isMain"`
}

type lightDef struct {
	Object int        `json:"object"`
	Type   int        `json:"type"`
	Color  [3]float32 `json:"color"`
}

type meshRendererDef struct {
	Object    int      `json:"object"`
	Mesh      string   `json:"mesh"`
	Materials []string `json:"materials"`
}

type scriptDef struct {
	Object int            `json:"object"`
	Type   string         `json:"type"`
	Props  map[string]any `json:"props,omitempty"`
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func arr3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Saving ---

// Snapshot describes the scene as a SceneFile. Object ids are indices in
// storage order. Both active and pending scripts are included.
func Snapshot(scene *engine.Scene) (*SceneFile, error) {
	ctx := scene.Context()
	objects := scene.Objects()
	ids := make(map[*engine.Object]int, len(objects))
	for i, o := range objects {
		ids[o] = i
	}
	idOf := func(c engine.Component) (int, error) {
		id, ok := ids[c.GetObject()]
		if !ok {
			return 0, fmt.Errorf("%T belongs to an object outside the scene", c)
		}
		return id, nil
	}

	sf := &SceneFile{Objects: make([]ObjectDef, 0, len(objects))}
	for i, o := range objects {
		def := ObjectDef{ID: i}
		if p := o.Parent(); p != nil {
			pid := ids[p]
			def.Parent = &pid
		}
		r := o.Transform.Rotation
		def.Transform = TransformDef{
			Position: arr3(o.Transform.Position),
			Rotation: [4]float32{r.X, r.Y, r.Z, r.W},
		}
		if tag, ok := o.Tag(); ok {
			def.Tag = &tag
		}
		sf.Objects = append(sf.Objects, def)
	}

	comps := scene.Components()
	sf.Components = ComponentDefs{
		Cameras:       []cameraDef{},
		Lights:        []lightDef{},
		MeshRenderers: []meshRendererDef{},
		Scripts:       []scriptDef{},
	}
	for _, c := range comps.Cameras {
		id, err := idOf(c)
		if err != nil {
			return nil, err
		}
		sf.Components.Cameras = append(sf.Components.Cameras, cameraDef{
			Object: id, Fov: c.Fov, AspectRatio: c.AspectRatio, IsMain: c.IsMain,
		})
	}
	for _, l := range comps.Lights {
		id, err := idOf(l)
		if err != nil {
			return nil, err
		}
		sf.Components.Lights = append(sf.Components.Lights, lightDef{
			Object: id, Type: int(l.Type), Color: arr3(l.Color),
		})
	}
	for _, m := range comps.MeshRenderers {
		id, err := idOf(m)
		if err != nil {
			return nil, err
		}
		def := meshRendererDef{Object: id, Materials: []string{}}
		if m.Mesh != nil {
			name, ok := ctx.Resources.Meshes.NameOf(m.Mesh)
			if !ok {
				return nil, fmt.Errorf("mesh renderer on object %d: mesh is not a registered resource", id)
			}
			def.Mesh = name
		}
		for _, mat := range m.Materials {
			name, ok := ctx.Resources.Materials.NameOf(mat)
			if !ok {
				return nil, fmt.Errorf("mesh renderer on object %d: material is not a registered resource", id)
			}
			def.Materials = append(def.Materials, name)
		}
		sf.Components.MeshRenderers = append(sf.Components.MeshRenderers, def)
	}
	for _, s := range append(scene.ActiveScripts(), scene.PendingScripts()...) {
		if s.IsDestroyed() {
			continue
		}
		id, err := idOf(s)
		if err != nil {
			return nil, err
		}
		def := scriptDef{Object: id, Type: s.TypeName()}
		if ctx.Scripts != nil {
			if props := ctx.Scripts.Properties(s); len(props) > 0 {
				def.Props = props
			}
		}
		sf.Components.Scripts = append(sf.Components.Scripts, def)
	}
	return sf, nil
}

func EncodeScene(w io.Writer, scene *engine.Scene) error {
	sf, err := Snapshot(scene)
	if err != nil {
		return fmt.Errorf("snapshot scene: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	return nil
}

func SaveScene(path string, scene *engine.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	if err := EncodeScene(f, scene); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// --- Loading ---

// DecodeScene replaces the content of scene with the file read from r. The
// scene is untouched when the file is rejected.
func DecodeScene(r io.Reader, scene *engine.Scene) error {
	var sf SceneFile
	if err := json.NewDecoder(r).Decode(&sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}
	return Apply(&sf, scene)
}

// Validate checks every reference in sf against the scene's resources and
// script registry: object ids, parent links, tags, light types, meshes,
// materials and script types.
func (sf *SceneFile) Validate(ctx *engine.ScriptContext) error {
	parents := make(map[int]*int, len(sf.Objects))
	for _, def := range sf.Objects {
		if _, dup := parents[def.ID]; dup {
			return fmt.Errorf("%w: duplicate object id %d", ErrBadSceneFile, def.ID)
		}
		parents[def.ID] = def.Parent
		if def.Tag != nil && *def.Tag == engine.NoTag {
			return fmt.Errorf("object %d: tag %d: %w", def.ID, *def.Tag, engine.ErrReservedTag)
		}
	}
	known := func(id int) error {
		if _, ok := parents[id]; !ok {
			return fmt.Errorf("%w: unknown object id %d", ErrBadSceneFile, id)
		}
		return nil
	}

	for _, def := range sf.Objects {
		if def.Parent == nil {
			continue
		}
		if err := known(*def.Parent); err != nil {
			return err
		}
		// A chain longer than the object count loops.
		steps := 0
		for p := def.Parent; p != nil; p = parents[*p] {
			if *p == def.ID || steps > len(parents) {
				return fmt.Errorf("%w: object %d cannot be a child of %d", ErrBadSceneFile, def.ID, *def.Parent)
			}
			steps++
		}
	}

	for _, def := range sf.Components.Cameras {
		if err := known(def.Object); err != nil {
			return err
		}
	}
	for _, def := range sf.Components.Lights {
		if err := known(def.Object); err != nil {
			return err
		}
		switch engine.LightType(def.Type) {
		case engine.PointLight, engine.DirectionalLight:
		default:
			return fmt.Errorf("%w: object %d: unknown light type %d", ErrBadSceneFile, def.Object, def.Type)
		}
	}
	for _, def := range sf.Components.MeshRenderers {
		if err := known(def.Object); err != nil {
			return err
		}
		if def.Mesh != "" {
			if _, err := ctx.Resources.Mesh(def.Mesh); err != nil {
				return fmt.Errorf("object %d: %w", def.Object, err)
			}
		}
		for _, name := range def.Materials {
			if _, err := ctx.Resources.Material(name); err != nil {
				return fmt.Errorf("object %d: %w", def.Object, err)
			}
		}
	}
	reg := ctx.Scripts
	if reg == nil {
		reg = engine.DefaultScripts
	}
	for _, def := range sf.Components.Scripts {
		if err := known(def.Object); err != nil {
			return err
		}
		if !reg.Has(def.Type) {
			return fmt.Errorf("object %d: %w: %q", def.Object, engine.ErrUnknownScript, def.Type)
		}
	}
	return nil
}

// Apply validates sf, then clears scene and rebuilds it from sf. A rejected
// file leaves the scene as it was.
func Apply(sf *SceneFile, scene *engine.Scene) error {
	ctx := scene.Context()
	if err := sf.Validate(ctx); err != nil {
		return err
	}
	scene.Clear()

	byID := make(map[int]*engine.Object, len(sf.Objects))
	for _, def := range sf.Objects {
		o := scene.MakeObject()
		o.Transform.Position = vec3(def.Transform.Position)
		q := def.Transform.Rotation
		o.Transform.Rotation = rl.Quaternion{X: q[0], Y: q[1], Z: q[2], W: q[3]}
		if def.Tag != nil {
			if err := o.SetTag(*def.Tag); err != nil {
				return fmt.Errorf("object %d: %w", def.ID, err)
			}
		}
		byID[def.ID] = o
	}

	for _, def := range sf.Objects {
		if def.Parent == nil {
			continue
		}
		if !byID[*def.Parent].AddChild(byID[def.ID]) {
			return fmt.Errorf("%w: object %d cannot be a child of %d", ErrBadSceneFile, def.ID, *def.Parent)
		}
	}

	for _, def := range sf.Components.Cameras {
		c := engine.AddComponent[engine.Camera](byID[def.Object])
		c.Fov = def.Fov
		c.AspectRatio = def.AspectRatio
		c.IsMain = def.IsMain
	}
	for _, def := range sf.Components.Lights {
		l := engine.AddComponent[engine.Light](byID[def.Object])
		l.Type = engine.LightType(def.Type)
		l.Color = vec3(def.Color)
	}
	for _, def := range sf.Components.MeshRenderers {
		m := engine.AddComponent[engine.MeshRenderer](byID[def.Object])
		var err error
		if def.Mesh != "" {
			if m.Mesh, err = ctx.Resources.Mesh(def.Mesh); err != nil {
				return fmt.Errorf("object %d: %w", def.Object, err)
			}
		}
		for _, name := range def.Materials {
			mat, err := ctx.Resources.Material(name)
			if err != nil {
				return fmt.Errorf("object %d: %w", def.Object, err)
			}
			m.Materials = append(m.Materials, mat)
		}
	}
	for _, def := range sf.Components.Scripts {
		if _, err := scene.AddScript(byID[def.Object], def.Type, def.Props); err != nil {
			return fmt.Errorf("object %d: %w", def.Object, err)
		}
	}
	return nil
}

func LoadScene(path string, scene *engine.Scene) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	defer f.Close()
	return DecodeScene(f, scene)
}

func (w *World) SaveScene(path string) error {
	return SaveScene(path, w.Scene)
}

func (w *World) LoadScene(path string) error {
	return LoadScene(path, w.Scene)
}
