package engine

import (
	"errors"
	"testing"
)

// recordingScript counts lifecycle calls and runs optional hooks.
type recordingScript struct {
	BaseScript
	initialized int
	updated     int
	events      *[]string
	label       string
	onUpdate    func(s *recordingScript)
	speed       float64
}

func (s *recordingScript) TypeName() string { return "RecordingScript" }

func (s *recordingScript) Initialize() {
	s.initialized++
	if s.events != nil {
		*s.events = append(*s.events, "init:"+s.label)
	}
}

func (s *recordingScript) Update() {
	s.updated++
	if s.events != nil {
		*s.events = append(*s.events, "update:"+s.label)
	}
	if s.onUpdate != nil {
		s.onUpdate(s)
	}
}

func contains[T comparable](items []T, want T) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func TestCascadeDestroy(t *testing.T) {
	scene := NewScene("Test", nil)
	p := scene.MakeObject()
	c1 := scene.MakeObject()
	c2 := scene.MakeObject()
	g := scene.MakeObject()
	other := scene.MakeObject()
	p.AddChild(c1)
	p.AddChild(c2)
	c2.AddChild(g)

	AddComponent[Light](p)
	AddComponent[MeshRenderer](c1)
	AddComponent[Camera](g)
	gScript := AddComponent[recordingScript](g)
	keep := AddComponent[Light](other)
	scene.Step()

	p.Destroy()
	scene.DestroyObjects()

	objects := scene.Objects()
	if len(objects) != 1 || objects[0] != other {
		t.Errorf("Expected only the unrelated object to survive, got %d objects", len(objects))
	}
	for _, o := range []*Object{p, c1, c2, g} {
		if scene.FindByID(o.ID()) != nil {
			t.Errorf("Object %d still indexed after sweep", o.ID())
		}
	}
	comps := scene.Components()
	if len(comps.Lights) != 1 || comps.Lights[0] != keep {
		t.Errorf("Expected only the unrelated light to remain, got %d", len(comps.Lights))
	}
	if len(comps.MeshRenderers) != 0 || len(comps.Cameras) != 0 {
		t.Error("Descendant components not removed")
	}
	if contains(scene.ActiveScripts(), Script(gScript)) {
		t.Error("Descendant script still active")
	}
	if !gScript.IsDestroyed() {
		t.Error("Descendant script not flagged")
	}
}

func TestDestroyChildDetachesFromParent(t *testing.T) {
	scene := NewScene("Test", nil)
	parent := scene.MakeObject()
	child := scene.MakeObject()
	parent.AddChild(child)

	child.Destroy()
	scene.DestroyObjects()

	if len(parent.Children()) != 0 {
		t.Error("Surviving parent still lists the destroyed child")
	}
	if scene.ObjectCount() != 1 {
		t.Errorf("Expected 1 object, got %d", scene.ObjectCount())
	}
}

func TestDestroyComponentOnly(t *testing.T) {
	scene := NewScene("Test", nil)
	o := scene.MakeObject()
	light := AddComponent[Light](o)
	mesh := AddComponent[MeshRenderer](o)

	light.Destroy()
	scene.DestroyObjects()

	if scene.ObjectCount() != 1 {
		t.Error("Destroying a component must not remove its object")
	}
	if len(scene.Components().Lights) != 0 {
		t.Error("Light not removed from registry")
	}
	if comps := o.Components(); len(comps) != 1 || comps[0] != Component(mesh) {
		t.Errorf("Expected only the mesh renderer left on the object, got %v", comps)
	}
}

func TestScriptLifecycleOrdering(t *testing.T) {
	scene := NewScene("Test", nil)
	var events []string
	var spawned *recordingScript

	host := scene.MakeObject()
	spawner := AddComponent[recordingScript](host)
	spawner.label = "spawner"
	spawner.events = &events
	spawner.onUpdate = func(s *recordingScript) {
		if spawned != nil {
			return
		}
		spawned = AddComponent[recordingScript](scene.MakeObject())
		spawned.label = "spawned"
		spawned.events = &events
		if spawned.initialized != 0 {
			t.Error("Script initialized on creation")
		}
	}

	// Frame 0 promotes the spawner.
	scene.Step()
	events = nil

	// Frame 1: spawner creates a script during update.
	scene.UpdateScripts()
	if spawned == nil {
		t.Fatal("Spawner did not run")
	}
	if spawned.updated != 0 || spawned.initialized != 0 {
		t.Error("New script touched during the update pass that created it")
	}
	if !contains(scene.PendingScripts(), Script(spawned)) {
		t.Error("New script should be pending")
	}
	scene.PromotePendingScripts()
	if spawned.initialized != 1 || spawned.updated != 0 {
		t.Errorf("Expected initialize during promotion only, got init=%d update=%d", spawned.initialized, spawned.updated)
	}
	scene.DestroyObjects()

	// Frame 2: both update.
	scene.Step()

	want := []string{"update:spawner", "init:spawned", "update:spawner", "update:spawned"}
	if len(events) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("Event %d: expected %q, got %q", i, want[i], events[i])
		}
	}
	if spawned.initialized != 1 {
		t.Errorf("Initialize should run exactly once, ran %d times", spawned.initialized)
	}
}

func TestDestroyedPendingScriptNeverInitialized(t *testing.T) {
	scene := NewScene("Test", nil)

	selfDestroyed := AddComponent[recordingScript](scene.MakeObject())
	selfDestroyed.Destroy()

	doomedObject := scene.MakeObject()
	onDoomed := AddComponent[recordingScript](doomedObject)
	doomedObject.Destroy()

	parent := scene.MakeObject()
	child := scene.MakeObject()
	parent.AddChild(child)
	onChild := AddComponent[recordingScript](child)
	parent.Destroy()

	scene.Step()
	scene.Step()

	for i, s := range []*recordingScript{selfDestroyed, onDoomed, onChild} {
		if s.initialized != 0 || s.updated != 0 {
			t.Errorf("Script %d received calls after being destroyed while pending", i)
		}
	}
	if len(scene.ActiveScripts()) != 0 || len(scene.PendingScripts()) != 0 {
		t.Error("Destroyed scripts left in storage")
	}
	if scene.ObjectCount() != 1 {
		t.Errorf("Expected only the first host object to remain, got %d", scene.ObjectCount())
	}
}

func TestSelfDestroyDuringUpdate(t *testing.T) {
	scene := NewScene("Test", nil)
	o := scene.MakeObject()
	s := AddComponent[recordingScript](o)
	s.onUpdate = func(s *recordingScript) {
		s.GetObject().Destroy()
	}
	var observedDoomed bool
	watcher := AddComponent[recordingScript](scene.MakeObject())
	watcher.onUpdate = func(*recordingScript) {
		observedDoomed = scene.FindByID(o.ID()) == o
	}
	scene.Step()

	scene.Step()

	if s.updated != 1 {
		t.Errorf("Expected exactly one update, got %d", s.updated)
	}
	if !observedDoomed {
		t.Error("Doomed object should stay visible until the sweep")
	}
	if scene.FindByID(o.ID()) != nil {
		t.Error("Object not swept")
	}
	scene.Step()
	if s.updated != 1 {
		t.Error("Destroyed script updated after the sweep")
	}
}

func TestFindObjectWithTag(t *testing.T) {
	scene := NewScene("Test", nil)
	scene.MakeObject()
	five := scene.MakeObject()
	five.SetTag(5)

	if scene.FindObjectWithTag(5) != five {
		t.Error("FindObjectWithTag(5) failed")
	}
	if scene.FindObjectWithTag(6) != nil {
		t.Error("Expected nil for an unused tag")
	}
	if scene.FindObjectWithTag(NoTag) != nil {
		t.Error("The no-tag sentinel must never match")
	}

	second := scene.MakeObject()
	second.SetTag(5)
	if scene.FindObjectWithTag(5) != five {
		t.Error("Expected the first object in storage order")
	}
}

func TestIdempotentDestroy(t *testing.T) {
	build := func(twice bool) *Scene {
		scene := NewScene("Test", nil)
		o := scene.MakeObject()
		l := AddComponent[Light](o)
		AddComponent[Light](scene.MakeObject())
		o.Destroy()
		l.Destroy()
		if twice {
			o.Destroy()
			l.Destroy()
		}
		scene.Step()
		return scene
	}

	once, twice := build(false), build(true)
	if once.ObjectCount() != twice.ObjectCount() {
		t.Errorf("Object count differs: %d vs %d", once.ObjectCount(), twice.ObjectCount())
	}
	if len(once.Components().Lights) != len(twice.Components().Lights) {
		t.Error("Light count differs")
	}
}

func TestMainCamera(t *testing.T) {
	scene := NewScene("Test", nil)
	if scene.MainCamera() != nil {
		t.Error("Expected no main camera in an empty scene")
	}

	side := AddComponent[Camera](scene.MakeObject())
	side.IsMain = false
	first := AddComponent[Camera](scene.MakeObject())
	AddComponent[Camera](scene.MakeObject())

	if scene.MainCamera() != first {
		t.Error("Expected the first main camera")
	}

	first.GetObject().Destroy()
	scene.DestroyObjects()
	if scene.MainCamera() == nil || scene.MainCamera() == first {
		t.Error("Expected the next main camera after the sweep")
	}
}

func TestObjectsDestroyedEvent(t *testing.T) {
	scene := NewScene("Test", nil)
	var removed []*Object
	scene.ObjectsDestroyed.AddListener(func(objs []*Object) {
		removed = append(removed, objs...)
	})
	o := scene.MakeObject()
	scene.MakeObject()

	scene.DestroyObjects()
	if len(removed) != 0 {
		t.Error("Event fired without destroyed objects")
	}

	o.Destroy()
	scene.DestroyObjects()
	if len(removed) != 1 || removed[0] != o {
		t.Errorf("Expected [o], got %v", removed)
	}
}

func TestClear(t *testing.T) {
	scene := NewScene("Test", nil)
	o := scene.MakeObject()
	AddComponent[Camera](o)
	s := AddComponent[recordingScript](o)

	scene.Clear()

	if scene.ObjectCount() != 0 || len(scene.Components().Cameras) != 0 || len(scene.PendingScripts()) != 0 {
		t.Error("Clear left content behind")
	}
	if !s.IsDestroyed() {
		t.Error("Cleared script should be flagged")
	}
	if id := scene.MakeObject().ID(); id <= o.ID() {
		t.Errorf("IDs should keep counting after Clear, got %d", id)
	}
}

func TestAddScript(t *testing.T) {
	scene := NewScene("Test", nil)
	reg := NewScriptRegistry()
	reg.Register("RecordingScript", func(props map[string]any) Script {
		return &recordingScript{}
	}, nil)
	scene.Context().Scripts = reg
	o := scene.MakeObject()

	s, err := scene.AddScript(o, "RecordingScript", nil)
	if err != nil {
		t.Fatalf("AddScript failed: %v", err)
	}
	if s.GetObject() != o || !contains(scene.PendingScripts(), s) {
		t.Error("Script not attached and pending")
	}
	if s.(*recordingScript).Scene() != scene {
		t.Error("Script context not bound")
	}

	if _, err := scene.AddScript(o, "Missing", nil); !errors.Is(err, ErrUnknownScript) {
		t.Errorf("Expected ErrUnknownScript, got %v", err)
	}
}

func TestRebuildScripts(t *testing.T) {
	scene := NewScene("Test", nil)
	newRegistry := func(speed float64) *ScriptRegistry {
		reg := NewScriptRegistry()
		reg.Register("RecordingScript", func(props map[string]any) Script {
			s := &recordingScript{speed: speed}
			if v, ok := props["speed"].(float64); ok {
				s.speed = v
			}
			return s
		}, func(s Script) map[string]any {
			return map[string]any{"speed": s.(*recordingScript).speed + 1}
		})
		return reg
	}
	scene.Context().Scripts = newRegistry(0)

	active := scene.MakeObject()
	oldActive, _ := scene.AddScript(active, "RecordingScript", map[string]any{"speed": 1.0})
	scene.Step()
	pending := scene.MakeObject()
	oldPending, _ := scene.AddScript(pending, "RecordingScript", nil)

	if err := scene.RebuildScripts(newRegistry(10)); err != nil {
		t.Fatalf("RebuildScripts failed: %v", err)
	}

	if !oldActive.IsDestroyed() || !oldPending.IsDestroyed() {
		t.Error("Old scripts should be flagged")
	}
	if len(scene.ActiveScripts()) != 0 || len(scene.PendingScripts()) != 2 {
		t.Fatalf("Expected 2 pending replacements, got %d active / %d pending", len(scene.ActiveScripts()), len(scene.PendingScripts()))
	}
	replaced := GetComponent[*recordingScript](active)
	if replaced == nil || replaced == oldActive {
		t.Fatal("Active object did not get a new script")
	}
	if replaced.speed != 2 {
		t.Errorf("Expected props carried through serializer (2), got %v", replaced.speed)
	}
	if len(active.Components()) != 1 {
		t.Errorf("Old script still attached, %d components", len(active.Components()))
	}

	scene.Step()
	if replaced.initialized != 1 || replaced.updated != 0 {
		t.Errorf("Replacement should be initialized on the next frame, init=%d update=%d", replaced.initialized, replaced.updated)
	}
}

func TestRebuildScriptsUnknownType(t *testing.T) {
	scene := NewScene("Test", nil)
	reg := NewScriptRegistry()
	reg.Register("RecordingScript", func(map[string]any) Script { return &recordingScript{} }, nil)
	scene.Context().Scripts = reg
	scene.AddScript(scene.MakeObject(), "RecordingScript", nil)

	err := scene.RebuildScripts(NewScriptRegistry())
	if !errors.Is(err, ErrUnknownScript) {
		t.Errorf("Expected ErrUnknownScript, got %v", err)
	}
	if len(scene.PendingScripts()) != 0 {
		t.Error("Unknown script type should be dropped")
	}
}
