package engine

import (
	"fmt"
	"sort"
)

// ScriptFactory creates a script from scene-file props. props may be nil.
type ScriptFactory func(props map[string]any) Script

// ScriptSerializer converts a script back to props for saving.
type ScriptSerializer func(s Script) map[string]any

type scriptEntry struct {
	factory    ScriptFactory
	serializer ScriptSerializer
}

// ScriptRegistry maps script type names to factories. It is how scene files
// and script reloads reconstruct the right script type from a name.
type ScriptRegistry struct {
	entries map[string]scriptEntry
}

func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{entries: map[string]scriptEntry{}}
}

// DefaultScripts holds the script types compiled into the binary. Packages
// register into it from init.
var DefaultScripts = NewScriptRegistry()

// RegisterScript registers a script type into DefaultScripts. The serializer
// may be nil. It panics on a duplicate name.
func RegisterScript(name string, factory ScriptFactory, serializer ScriptSerializer) {
	if err := DefaultScripts.Register(name, factory, serializer); err != nil {
		panic(err.Error())
	}
}

// CreateScript creates a script from DefaultScripts.
func CreateScript(name string, props map[string]any) (Script, error) {
	return DefaultScripts.Create(name, props)
}

func (r *ScriptRegistry) Register(name string, factory ScriptFactory, serializer ScriptSerializer) error {
	if factory == nil {
		return fmt.Errorf("register script %q: nil factory", name)
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("register script %q: %w", name, ErrDuplicateScript)
	}
	r.entries[name] = scriptEntry{factory: factory, serializer: serializer}
	return nil
}

func (r *ScriptRegistry) Unregister(name string) bool {
	if _, exists := r.entries[name]; !exists {
		return false
	}
	delete(r.entries, name)
	return true
}

func (r *ScriptRegistry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Create looks up name and builds a new, unattached script.
func (r *ScriptRegistry) Create(name string, props map[string]any) (Script, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("create script %q: %w", name, ErrUnknownScript)
	}
	s := entry.factory(props)
	if s == nil {
		return nil, fmt.Errorf("create script %q: factory returned nil", name)
	}
	return s, nil
}

// Properties returns the saved props of s, or nil when its type has no serializer.
func (r *ScriptRegistry) Properties(s Script) map[string]any {
	entry, ok := r.entries[s.TypeName()]
	if !ok || entry.serializer == nil {
		return nil
	}
	return entry.serializer(s)
}

// Names returns the registered type names, sorted.
func (r *ScriptRegistry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ScriptRegistry) Len() int {
	return len(r.entries)
}

// Clone returns an independent copy that can be extended without touching r.
func (r *ScriptRegistry) Clone() *ScriptRegistry {
	c := NewScriptRegistry()
	for name, entry := range r.entries {
		c.entries[name] = entry
	}
	return c
}
