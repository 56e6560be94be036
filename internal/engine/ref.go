package engine

// ObjectRef is a weak reference to an Object by ID. It resolves to nil once
// the object has been swept, so scripts can hold it across frames.
//
//	type Follower struct {
//	    engine.BaseScript
//	    Target engine.ObjectRef
//	}
//
//	func (f *Follower) Update() {
//	    if target := f.Target.Get(f.Scene()); target != nil {
//	        // ...
//	    }
//	}
type ObjectRef struct {
	ID ObjectID // 0 = none
}

func RefTo(o *Object) ObjectRef {
	if o == nil {
		return ObjectRef{}
	}
	return ObjectRef{ID: o.id}
}

// Get resolves the reference. It returns nil for an empty reference or an
// object no longer in the scene.
func (r ObjectRef) Get(scene *Scene) *Object {
	if r.ID == 0 || scene == nil {
		return nil
	}
	return scene.FindByID(r.ID)
}

// IsValid reports whether the reference was set. It does not check the scene.
func (r ObjectRef) IsValid() bool {
	return r.ID != 0
}

func (r *ObjectRef) Set(o *Object) {
	*r = RefTo(o)
}

func (r *ObjectRef) Clear() {
	r.ID = 0
}
