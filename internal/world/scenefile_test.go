package world

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"planegame/internal/assets"
	"planegame/internal/engine"
	"planegame/internal/scripts"
)

func TestSceneRoundTrip(t *testing.T) {
	src := newTestWorld(t, Options{})
	src.BuildDemoScene(1.5)
	src.Input.BeginFrame()
	src.Step(0.1)
	src.Step(0.1)

	var buf bytes.Buffer
	if err := EncodeScene(&buf, src.Scene); err != nil {
		t.Fatalf("EncodeScene failed: %v", err)
	}
	dst := newTestWorld(t, Options{})
	if err := DecodeScene(&buf, dst.Scene); err != nil {
		t.Fatalf("DecodeScene failed: %v", err)
	}

	a, b := src.Scene.Objects(), dst.Scene.Objects()
	if len(a) != len(b) {
		t.Fatalf("Expected %d objects, got %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Transform.Position != b[i].Transform.Position || a[i].Transform.Rotation != b[i].Transform.Rotation {
			t.Errorf("Object %d transform differs", i)
		}
		ta, oka := a[i].Tag()
		tb, okb := b[i].Tag()
		if ta != tb || oka != okb {
			t.Errorf("Object %d tag differs", i)
		}
		if (a[i].Parent() == nil) != (b[i].Parent() == nil) {
			t.Errorf("Object %d parent differs", i)
		}
	}

	plane := dst.Scene.FindObjectWithTag(PlaneTag)
	if len(plane.Children()) != 1 {
		t.Error("Headlight not reattached")
	}
	mr := engine.GetComponent[*engine.MeshRenderer](plane)
	if mr == nil || len(mr.Materials) != 3 || mr.Mesh != dst.Resources.MustMesh("plane") {
		t.Error("Plane renderer not restored")
	}

	pending := dst.Scene.PendingScripts()
	active := src.Scene.ActiveScripts()
	if len(pending) != len(active) {
		t.Fatalf("Expected %d scripts, got %d", len(active), len(pending))
	}
	for i := range active {
		if active[i].TypeName() != pending[i].TypeName() {
			t.Errorf("Script %d: expected %s, got %s", i, active[i].TypeName(), pending[i].TypeName())
		}
	}
	want := engine.GetComponent[*scripts.PlaneControlScript](src.Scene.FindObjectWithTag(PlaneTag))
	got := engine.GetComponent[*scripts.PlaneControlScript](plane)
	if got.TargetSpeed != want.TargetSpeed || got.CurrentPitchSpeed != want.CurrentPitchSpeed {
		t.Errorf("Plane props not restored: %f vs %f", got.TargetSpeed, want.TargetSpeed)
	}
}

func TestSnapshotIncludesPendingScripts(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.BuildDemoScene(1)
	sf, err := Snapshot(w.Scene)
	if err != nil {
		t.Fatal(err)
	}
	if len(sf.Components.Scripts) != 3 {
		t.Errorf("Expected 3 scripts, got %d", len(sf.Components.Scripts))
	}
	if sf.Objects[0].ID != 0 || sf.Objects[len(sf.Objects)-1].ID != len(sf.Objects)-1 {
		t.Error("Object ids should be dense storage indices")
	}
	if sf.Objects[0].Tag != nil {
		t.Error("Untagged object should omit its tag")
	}
}

func TestSnapshotUnregisteredMesh(t *testing.T) {
	w := newTestWorld(t, Options{})
	mr := engine.AddComponent[engine.MeshRenderer](w.Scene.MakeObject())
	mr.Mesh = &assets.Mesh{}
	if _, err := Snapshot(w.Scene); err == nil {
		t.Error("Expected error for an unregistered mesh")
	}
}

func TestSaveLoadSceneFile(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.BuildDemoScene(1)
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := w.SaveScene(path); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}
	w.Scene.Clear()
	if err := w.LoadScene(path); err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if w.Scene.ObjectCount() != 8 {
		t.Errorf("Expected 8 objects, got %d", w.Scene.ObjectCount())
	}
}

func TestDecodeSceneMinimal(t *testing.T) {
	w := newTestWorld(t, Options{})
	doc := `{
  "objects": [
    {"id": 3, "transform": [[1, 2, 3], [0, 0, 0, 1]], "tag": 7},
    {"id": 9, "parent": 3, "transform": [[0, 0, 4], [0, 0, 0, 1]]}
  ],
  "components": {
    "cameras": [{"object": 3, "fov": 1.2, "aspectRatio": 2, "isMain": true}],
    "lights": [{"object": 9, "type": 1, "color": [1, 0.5, 0]}],
    "meshRenderers": [{"object": 3, "mesh": "object", "materials": ["default.object"]}],
    "scripts": [{"object": 3, "type": "RotatorScript", "props": {"speed": 2}}]
  }
}`
	if err := DecodeScene(strings.NewReader(doc), w.Scene); err != nil {
		t.Fatalf("DecodeScene failed: %v", err)
	}
	o := w.Scene.FindObjectWithTag(7)
	if o == nil || o.Transform.Position.Y != 2 {
		t.Fatal("Tagged object not restored")
	}
	child := o.Children()[0]
	if child.Transform.WorldPosition().Z != 7 {
		t.Errorf("Expected child world z 7, got %f", child.Transform.WorldPosition().Z)
	}
	l := engine.GetComponent[*engine.Light](child)
	if l == nil || l.Type != engine.DirectionalLight || l.Color.Y != 0.5 {
		t.Error("Light not restored")
	}
	if cam := w.Scene.MainCamera(); cam == nil || cam.AspectRatio != 2 {
		t.Error("Camera not restored")
	}
	r := engine.GetComponent[*scripts.RotatorScript](o)
	if r == nil || r.Speed != 2 {
		t.Error("Script props not applied")
	}
}

func TestDecodeSceneErrors(t *testing.T) {
	obj := `{"id": 0, "transform": [[0,0,0],[0,0,0,1]]}`
	empty := `"cameras": [], "lights": [], "meshRenderers": []`
	cases := map[string]string{
		"syntax":         `{"objects": [`,
		"transform":      `{"objects": [{"id": 0, "transform": [[0,0],[0,0,0,1]]}], "components": {}}`,
		"duplicate id":   `{"objects": [` + obj + `,` + obj + `], "components": {}}`,
		"unknown parent": `{"objects": [{"id": 0, "parent": 5, "transform": [[0,0,0],[0,0,0,1]]}], "components": {}}`,
		"cycle": `{"objects": [{"id": 0, "parent": 1, "transform": [[0,0,0],[0,0,0,1]]},
			{"id": 1, "parent": 0, "transform": [[0,0,0],[0,0,0,1]]}], "components": {}}`,
		"unknown object": `{"objects": [` + obj + `], "components": {"cameras": [{"object": 4, "fov": 1, "aspectRatio": 1, "isMain": true}]}}`,
		"unknown mesh":   `{"objects": [` + obj + `], "components": {"meshRenderers": [{"object": 0, "mesh": "nope", "materials": []}]}}`,
		"unknown script": `{"objects": [` + obj + `], "components": {` + empty + `, "scripts": [{"object": 0, "type": "NoSuchScript"}]}}`,
		"reserved tag":   `{"objects": [{"id": 0, "transform": [[0,0,0],[0,0,0,1]], "tag": 4294967295}], "components": {}}`,
		"light type":     `{"objects": [` + obj + `], "components": {"lights": [{"object": 0, "type": 7, "color": [1,1,1]}]}}`,
		"ancestor cycle": `{"objects": [{"id": 0, "parent": 1, "transform": [[0,0,0],[0,0,0,1]]},
			{"id": 1, "parent": 2, "transform": [[0,0,0],[0,0,0,1]]},
			{"id": 2, "parent": 1, "transform": [[0,0,0],[0,0,0,1]]}], "components": {}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t, Options{})
			if err := DecodeScene(strings.NewReader(doc), w.Scene); err == nil {
				t.Error("Expected error")
			}
		})
	}

	w := newTestWorld(t, Options{})
	err := DecodeScene(strings.NewReader(`{"objects": [`+obj+`], "components": {"scripts": [{"object": 0, "type": "NoSuchScript"}]}}`), w.Scene)
	if !errors.Is(err, engine.ErrUnknownScript) {
		t.Errorf("Expected ErrUnknownScript, got %v", err)
	}
	err = DecodeScene(strings.NewReader(`{"objects": [`+obj+`], "components": {"meshRenderers": [{"object": 0, "mesh": "nope"}]}}`), w.Scene)
	if !errors.Is(err, assets.ErrResourceNotFound) {
		t.Errorf("Expected ErrResourceNotFound, got %v", err)
	}
	err = DecodeScene(strings.NewReader(`{"objects": [`+obj+`], "components": {"lights": [{"object": 0, "type": -1, "color": [1,1,1]}]}}`), w.Scene)
	if !errors.Is(err, ErrBadSceneFile) {
		t.Errorf("Expected ErrBadSceneFile for a bad light type, got %v", err)
	}
}

func TestRejectedSceneKeepsCurrent(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.BuildDemoScene(1)
	objects := w.Scene.ObjectCount()
	pending := len(w.Scene.PendingScripts())
	cameras := len(w.Scene.Components().Cameras)

	docs := []string{
		`{"objects": [{"id": 0, "transform": [[0,0,0],[0,0,0,1]]}],
		  "components": {"cameras": [{"object": 0, "fov": 1, "aspectRatio": 1, "isMain": true}],
		  "scripts": [{"object": 0, "type": "NoSuchScript"}]}}`,
		`{"objects": [{"id": 0, "transform": [[0,0,0],[0,0,0,1]]}],
		  "components": {"meshRenderers": [{"object": 0, "mesh": "object", "materials": ["missing"]}]}}`,
		`{"objects": [{"id": 0, "transform": [[0,0,0],[0,0,0,1]]}],
		  "components": {"lights": [{"object": 0, "type": 2, "color": [1,1,1]}]}}`,
	}
	for i, doc := range docs {
		if err := DecodeScene(strings.NewReader(doc), w.Scene); err == nil {
			t.Fatalf("Document %d: expected error", i)
		}
		if w.Scene.ObjectCount() != objects || len(w.Scene.PendingScripts()) != pending || len(w.Scene.Components().Cameras) != cameras {
			t.Errorf("Document %d: rejected file changed the scene", i)
		}
	}
	if w.Scene.FindObjectWithTag(PlaneTag) == nil {
		t.Error("Demo plane should still be in the scene")
	}
}

func TestDecodeClearsScene(t *testing.T) {
	w := newTestWorld(t, Options{})
	w.BuildDemoScene(1)
	if err := DecodeScene(strings.NewReader(`{"objects": [], "components": {}}`), w.Scene); err != nil {
		t.Fatal(err)
	}
	if w.Scene.ObjectCount() != 0 || len(w.Scene.PendingScripts()) != 0 {
		t.Error("Decoding should replace the previous scene")
	}
}
