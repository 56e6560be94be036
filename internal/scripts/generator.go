package scripts

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MovingObjectGeneratorScript spawns a parent/child pair of moving objects
// on Space and destroys a random half of what it spawned on P.
type MovingObjectGeneratorScript struct {
	engine.BaseScript
	generated []engine.ObjectRef
}

func (g *MovingObjectGeneratorScript) TypeName() string { return "MovingObjectGeneratorScript" }

func (g *MovingObjectGeneratorScript) Update() {
	in := g.Input()
	if in.Pressed(rl.KeySpace) {
		g.SpawnPair()
	}
	if in.Pressed(rl.KeyP) {
		g.DestroySome()
	}
}

// SpawnPair creates two moving objects, the first parented to the second.
func (g *MovingObjectGeneratorScript) SpawnPair() (child, parent *engine.Object) {
	child = g.spawn()
	parent = g.spawn()
	parent.AddChild(child)
	g.generated = append(g.generated, engine.RefTo(child), engine.RefTo(parent))
	return child, parent
}

func (g *MovingObjectGeneratorScript) spawn() *engine.Object {
	res := g.Resources()
	o := g.Scene().MakeObject()
	engine.AddComponent[MovingObjectScript](o)
	mr := engine.AddComponent[engine.MeshRenderer](o)
	mr.Mesh = res.MustMesh("object")
	mr.Materials = append(mr.Materials, res.MustMaterial("default.object"))
	return o
}

// DestroySome destroys each generated object with probability one half.
// Destroying a parent takes its child with it.
func (g *MovingObjectGeneratorScript) DestroySome() int {
	r := g.Random()
	kept := g.generated[:0]
	destroyed := 0
	for _, ref := range g.generated {
		o := ref.Get(g.Scene())
		if o == nil || o.IsDoomed() {
			continue
		}
		if r.Next(0, 1) > 0.5 {
			o.Destroy()
			destroyed++
			continue
		}
		kept = append(kept, ref)
	}
	g.generated = kept
	return destroyed
}

// Generated returns the references still tracked.
func (g *MovingObjectGeneratorScript) Generated() []engine.ObjectRef {
	return append([]engine.ObjectRef(nil), g.generated...)
}

func init() {
	engine.RegisterScript("MovingObjectGeneratorScript", func(map[string]any) engine.Script {
		return &MovingObjectGeneratorScript{}
	}, nil)
}
