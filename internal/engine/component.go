package engine

// Component is anything attached to an Object. The set is closed: a type
// satisfies Component only by embedding BaseComponent, and the Scene rejects
// types it has no storage for.
type Component interface {
	GetObject() *Object
	Transform() *Transform
	Destroy()
	IsDestroyed() bool
	base() *BaseComponent
}

// Defaulter is implemented by components that need non-zero defaults when
// created through AddComponent.
type Defaulter interface {
	SetDefaults()
}

// BaseComponent holds the non-owning link to the owning Object and the
// destroy-request flag.
type BaseComponent struct {
	object    *Object
	destroyed bool
}

func (b *BaseComponent) base() *BaseComponent {
	return b
}

func (b *BaseComponent) GetObject() *Object {
	return b.object
}

// Transform returns the owning object's transform, or nil when detached.
func (b *BaseComponent) Transform() *Transform {
	if b.object == nil {
		return nil
	}
	return &b.object.Transform
}

// Destroy requests removal at the next sweep. Calling it again has no effect.
func (b *BaseComponent) Destroy() {
	b.destroyed = true
}

func (b *BaseComponent) IsDestroyed() bool {
	return b.destroyed
}
