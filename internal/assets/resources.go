// Package assets holds the named resource tables (meshes, shaders, materials,
// textures) and their loaders.
package assets

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrResourceNotFound  = errors.New("resource not found")
	ErrResourceCollision = errors.New("resource name already in use")
)

// NamedResources is a name-keyed table of one resource kind. Lookups by name
// fail hard: a missing name is a configuration bug, not a runtime condition.
type NamedResources[T any] struct {
	kind   string
	byName map[string]*T
	names  map[*T]string
}

func NewNamedResources[T any](kind string) *NamedResources[T] {
	return &NamedResources[T]{
		kind:   kind,
		byName: map[string]*T{},
		names:  map[*T]string{},
	}
}

// Add stores r under name. Reusing a name is an error.
func (n *NamedResources[T]) Add(name string, r *T) (*T, error) {
	if _, exists := n.byName[name]; exists {
		return nil, fmt.Errorf("add %s %q: %w", n.kind, name, ErrResourceCollision)
	}
	n.byName[name] = r
	n.names[r] = name
	return r, nil
}

func (n *NamedResources[T]) Get(name string) (*T, error) {
	r, ok := n.byName[name]
	if !ok {
		return nil, fmt.Errorf("get %s %q: %w", n.kind, name, ErrResourceNotFound)
	}
	return r, nil
}

// MustGet panics when name is missing.
func (n *NamedResources[T]) MustGet(name string) *T {
	r, err := n.Get(name)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// Lookup is the soft variant of Get.
func (n *NamedResources[T]) Lookup(name string) (*T, bool) {
	r, ok := n.byName[name]
	return r, ok
}

// NameOf returns the name r was added under.
func (n *NamedResources[T]) NameOf(r *T) (string, bool) {
	name, ok := n.names[r]
	return name, ok
}

// Names returns every name, sorted.
func (n *NamedResources[T]) Names() []string {
	names := make([]string, 0, len(n.byName))
	for name := range n.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n *NamedResources[T]) Len() int {
	return len(n.byName)
}

// Resources is the full resource table shared by the scene and its scripts.
type Resources struct {
	Meshes    *NamedResources[Mesh]
	Shaders   *NamedResources[Shader]
	Materials *NamedResources[Material]
	Textures  *NamedResources[Texture2D]
}

func NewResources() *Resources {
	return &Resources{
		Meshes:    NewNamedResources[Mesh]("mesh"),
		Shaders:   NewNamedResources[Shader]("shader"),
		Materials: NewNamedResources[Material]("material"),
		Textures:  NewNamedResources[Texture2D]("texture2d"),
	}
}

func (r *Resources) Mesh(name string) (*Mesh, error) {
	return r.Meshes.Get(name)
}

func (r *Resources) Material(name string) (*Material, error) {
	return r.Materials.Get(name)
}

func (r *Resources) MustMesh(name string) *Mesh {
	return r.Meshes.MustGet(name)
}

func (r *Resources) MustMaterial(name string) *Material {
	return r.Materials.MustGet(name)
}
