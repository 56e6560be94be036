package engine

import (
	"errors"
	"fmt"

	"planegame/internal/assets"
	"planegame/internal/debugdraw"

	"go.uber.org/zap"
)

// Scene owns every Object, every component and every script. A frame is
// UpdateScripts, PromotePendingScripts and DestroyObjects, in that order;
// Step runs all three.
type Scene struct {
	Name string

	// ObjectsDestroyed fires once per sweep with the objects it removed.
	ObjectsDestroyed Event[[]*Object]

	objects    []*Object
	byID       map[ObjectID]*Object
	nextID     ObjectID
	components Components
	active     []Script
	pending    []Script
	ctx        ScriptContext
	log        *zap.Logger
}

// NewScene creates an empty scene with a default script context. A nil
// logger disables logging.
func NewScene(name string, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		Name: name,
		byID: map[ObjectID]*Object{},
		log:  log,
	}
	s.ctx = ScriptContext{
		Scene:     s,
		Input:     NewInput(),
		Time:      &Time{},
		Random:    NewRandom(1),
		Resources: assets.NewResources(),
		Debug:     debugdraw.New(),
		Scripts:   DefaultScripts,
		Log:       log,
	}
	return s
}

// Context returns the context shared with every script of the scene. The
// application may replace its members before the first frame.
func (s *Scene) Context() *ScriptContext {
	return &s.ctx
}

func (s *Scene) Components() *Components {
	return &s.components
}

// MakeObject creates an untagged root object at the origin.
func (s *Scene) MakeObject() *Object {
	s.nextID++
	o := &Object{
		Transform: NewTransform(),
		id:        s.nextID,
		tag:       NoTag,
		scene:     s,
	}
	s.objects = append(s.objects, o)
	s.byID[o.id] = o
	return o
}

// AddScript creates a script through the context's registry and attaches it.
func (s *Scene) AddScript(o *Object, typeName string, props map[string]any) (Script, error) {
	reg := s.ctx.Scripts
	if reg == nil {
		reg = DefaultScripts
	}
	sc, err := reg.Create(typeName, props)
	if err != nil {
		return nil, err
	}
	if err := o.Attach(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Objects returns a copy of the object list in creation order.
func (s *Scene) Objects() []*Object {
	return append([]*Object(nil), s.objects...)
}

func (s *Scene) ObjectCount() int {
	return len(s.objects)
}

func (s *Scene) FindByID(id ObjectID) *Object {
	return s.byID[id]
}

// FindObjectWithTag returns the first object in storage order carrying tag.
func (s *Scene) FindObjectWithTag(tag uint32) *Object {
	if tag == NoTag {
		return nil
	}
	for _, o := range s.objects {
		if o.tag == tag {
			return o
		}
	}
	return nil
}

// MainCamera returns the first camera flagged as main, or nil.
func (s *Scene) MainCamera() *Camera {
	for _, c := range s.components.Cameras {
		if c.IsMain {
			return c
		}
	}
	return nil
}

// ActiveScripts returns a copy of the scripts receiving Update.
func (s *Scene) ActiveScripts() []Script {
	return append([]Script(nil), s.active...)
}

// PendingScripts returns a copy of the scripts awaiting Initialize.
func (s *Scene) PendingScripts() []Script {
	return append([]Script(nil), s.pending...)
}

func (s *Scene) register(c Component) error {
	if sc, ok := c.(Script); ok {
		sc.scriptBase().ctx = &s.ctx
		s.pending = append(s.pending, sc)
		return nil
	}
	return s.components.register(c)
}

// Step runs one full frame of the lifecycle.
func (s *Scene) Step() {
	s.UpdateScripts()
	s.PromotePendingScripts()
	s.DestroyObjects()
}

// UpdateScripts calls Update on every active script in order. Scripts
// created meanwhile go to the pending list and are not updated this frame.
func (s *Scene) UpdateScripts() {
	for _, sc := range s.active {
		sc.Update()
	}
}

// PromotePendingScripts initializes pending scripts and moves them to the
// active list. A script that was destroyed, or whose object is doomed, is
// dropped without being initialized. Scripts created by Initialize wait for
// the next frame.
func (s *Scene) PromotePendingScripts() {
	pending := s.pending
	s.pending = nil
	for _, sc := range pending {
		if sc.IsDestroyed() || sc.GetObject().IsDoomed() {
			sc.Destroy()
			s.log.Debug("dropped pending script",
				zap.String("type", sc.TypeName()),
				zap.Uint32("object", uint32(sc.GetObject().ID())))
			continue
		}
		sc.Initialize()
		s.active = append(s.active, sc)
	}
}

// DestroyObjects is the end-of-frame sweep. Destroy requests cascade down
// the hierarchy and onto components; then component storage is compacted,
// and destroyed objects are removed last.
func (s *Scene) DestroyObjects() {
	doomed := 0
	for _, o := range s.objects {
		if o.destroyed {
			o.cascadeDestroy()
		}
	}
	for _, o := range s.objects {
		if o.destroyed {
			doomed++
		}
	}

	removedComponents := s.components.sweep()
	before := len(s.active) + len(s.pending)
	s.active = compact(s.active)
	s.pending = compact(s.pending)
	removedScripts := before - len(s.active) - len(s.pending)

	if doomed == 0 && removedComponents == 0 && removedScripts == 0 {
		return
	}

	var removed []*Object
	kept := s.objects[:0]
	for _, o := range s.objects {
		if o.destroyed {
			removed = append(removed, o)
			delete(s.byID, o.id)
			continue
		}
		o.components = compact(o.components)
		if len(o.children) > 0 {
			o.children = pruneDestroyed(o.children)
		}
		kept = append(kept, o)
	}
	clear(s.objects[len(kept):])
	s.objects = kept

	s.log.Debug("destroy sweep",
		zap.Int("objects", len(removed)),
		zap.Int("components", removedComponents),
		zap.Int("scripts", removedScripts))
	if len(removed) > 0 {
		s.ObjectsDestroyed.Invoke(removed)
	}
}

func (o *Object) cascadeDestroy() {
	o.destroyed = true
	for _, c := range o.components {
		c.Destroy()
	}
	for _, child := range o.children {
		child.cascadeDestroy()
	}
}

func pruneDestroyed(objects []*Object) []*Object {
	kept := objects[:0]
	for _, o := range objects {
		if !o.destroyed {
			kept = append(kept, o)
		}
	}
	clear(objects[len(kept):])
	return kept
}

// Clear drops every object, component and script. Object ids keep counting
// so references taken before Clear never resolve to new objects.
func (s *Scene) Clear() {
	for _, o := range s.objects {
		o.cascadeDestroy()
	}
	s.objects = nil
	s.byID = map[ObjectID]*Object{}
	s.components = Components{}
	s.active = nil
	s.pending = nil
}

type scriptRecord struct {
	typeName string
	props    map[string]any
	object   *Object
}

// RebuildScripts replaces every live script with a fresh instance built by
// reg under the same type name, on the same object. The replacements are
// pending and get Initialize at the next promotion. reg becomes the scene's
// registry. Scripts whose type reg no longer knows are dropped and reported.
func (s *Scene) RebuildScripts(reg *ScriptRegistry) error {
	old := append(s.ActiveScripts(), s.pending...)
	records := make([]scriptRecord, 0, len(old))
	for _, sc := range old {
		if sc.IsDestroyed() || sc.GetObject().IsDoomed() {
			continue
		}
		records = append(records, scriptRecord{
			typeName: sc.TypeName(),
			props:    s.scriptProperties(sc),
			object:   sc.GetObject(),
		})
	}
	for _, sc := range old {
		sc.Destroy()
		sc.GetObject().removeComponent(sc)
	}
	s.active = nil
	s.pending = nil
	s.ctx.Scripts = reg

	var errs []error
	for _, r := range records {
		if _, err := s.AddScript(r.object, r.typeName, r.props); err != nil {
			errs = append(errs, fmt.Errorf("object %d: %w", r.object.ID(), err))
		}
	}
	s.log.Info("scripts rebuilt", zap.Int("scripts", len(records)-len(errs)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (s *Scene) scriptProperties(sc Script) map[string]any {
	if s.ctx.Scripts == nil {
		return nil
	}
	return s.ctx.Scripts.Properties(sc)
}
