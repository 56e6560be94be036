package engine

import (
	"fmt"
	"math"
)

// ObjectID identifies an object within its scene. IDs start at 1 and are
// never reused while the scene lives.
type ObjectID uint32

// NoTag is the stored value of an untagged object. It cannot be assigned.
const NoTag uint32 = math.MaxUint32

// Object is a node of the scene graph. The Scene owns every Object; the
// parent, children and component links are navigational only.
type Object struct {
	Transform  Transform
	id         ObjectID
	tag        uint32
	scene      *Scene
	parent     *Object
	children   []*Object
	components []Component
	destroyed  bool
}

func (o *Object) ID() ObjectID {
	return o.id
}

func (o *Object) Scene() *Scene {
	return o.scene
}

func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns a copy of the child list.
func (o *Object) Children() []*Object {
	return append([]*Object(nil), o.children...)
}

// Components returns a copy of the attached component list, in attachment order.
func (o *Object) Components() []Component {
	return append([]Component(nil), o.components...)
}

// Tag returns the object's tag and whether it has one.
func (o *Object) Tag() (uint32, bool) {
	return o.tag, o.tag != NoTag
}

func (o *Object) SetTag(tag uint32) error {
	if tag == NoTag {
		return fmt.Errorf("set tag %d: %w", tag, ErrReservedTag)
	}
	o.tag = tag
	return nil
}

func (o *Object) ClearTag() {
	o.tag = NoTag
}

// AddChild links child under o. It fails without side effects when the child
// already has a parent, is already listed, is o itself, is an ancestor of o,
// or belongs to another scene.
func (o *Object) AddChild(child *Object) bool {
	if child == nil || child == o || child.parent != nil || child.scene != o.scene {
		return false
	}
	if o.Removed() || child.Removed() {
		return false
	}
	for _, c := range o.children {
		if c == child {
			return false
		}
	}
	for p := o.parent; p != nil; p = p.parent {
		if p == child {
			return false
		}
	}
	child.parent = o
	child.Transform.parent = &o.Transform
	o.children = append(o.children, child)
	return true
}

// DetachFromParent unlinks o from its parent. The local transform is kept
// as is, so the object's world placement changes.
func (o *Object) DetachFromParent() bool {
	if o.parent == nil {
		return false
	}
	o.parent.removeChild(o)
	o.parent = nil
	o.Transform.parent = nil
	return true
}

func (o *Object) removeChild(child *Object) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// Destroy requests removal of the object, its components and its whole
// subtree at the next sweep.
func (o *Object) Destroy() {
	o.destroyed = true
}

func (o *Object) IsDestroyed() bool {
	return o.destroyed
}

// IsDoomed reports whether the object or any ancestor has requested destruction.
func (o *Object) IsDoomed() bool {
	for p := o; p != nil; p = p.parent {
		if p.destroyed {
			return true
		}
	}
	return false
}

// Removed reports whether a sweep or Clear has taken o out of its scene.
func (o *Object) Removed() bool {
	return o.scene == nil || o.scene.byID[o.id] != o
}

// Attach binds an already constructed component to o and hands it to the
// scene. Scripts land in the pending list. Objects already swept out of the
// scene accept nothing.
func (o *Object) Attach(c Component) error {
	if o.Removed() {
		return fmt.Errorf("attach %T to object %d: %w", c, o.id, ErrObjectRemoved)
	}
	b := c.base()
	if b.object != nil {
		return fmt.Errorf("attach %T: %w", c, ErrAlreadyAttached)
	}
	b.object = o
	if err := o.scene.register(c); err != nil {
		b.object = nil
		return err
	}
	o.components = append(o.components, c)
	return nil
}

func (o *Object) removeComponent(c Component) {
	for i, existing := range o.components {
		if existing == c {
			o.components = append(o.components[:i], o.components[i+1:]...)
			return
		}
	}
}

type componentPtr[T any] interface {
	*T
	Component
}

// AddComponent creates a T on o and returns it immediately. Scripts are not
// initialized until the scene's next promotion. Types the scene has no
// storage for, and objects already removed from the scene, panic.
func AddComponent[T any, PT componentPtr[T]](o *Object) PT {
	c := PT(new(T))
	if d, ok := any(c).(Defaulter); ok {
		d.SetDefaults()
	}
	if err := o.Attach(c); err != nil {
		panic(fmt.Sprintf("add component: %v", err))
	}
	return c
}

// GetComponent returns the first attached component of type T.
func GetComponent[T Component](o *Object) T {
	var zero T
	for _, c := range o.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}
