package engine

import (
	"math/rand"

	"planegame/internal/assets"
	"planegame/internal/debugdraw"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// ScriptContext is the per-scene bundle every script reads from. The
// application refreshes Input and Time once per frame before stepping.
type ScriptContext struct {
	Scene     *Scene
	Input     *Input
	Time      *Time
	Random    *Random
	Resources *assets.Resources
	Debug     *debugdraw.Debug
	Scripts   *ScriptRegistry
	Log       *zap.Logger
}

// MaxKeys bounds the key codes tracked by Input; raylib codes fit below it.
const MaxKeys = 512

// Input is a per-frame keyboard and mouse snapshot.
type Input struct {
	down       [MaxKeys]bool
	prev       [MaxKeys]bool
	MouseDelta rl.Vector2
}

func NewInput() *Input {
	return &Input{}
}

// BeginFrame rolls the current key state into the previous one and clears
// the mouse delta. Call it before feeding the new frame's state.
func (in *Input) BeginFrame() {
	in.prev = in.down
	in.MouseDelta = rl.Vector2{}
}

func (in *Input) SetKey(key int32, down bool) {
	if key < 0 || key >= MaxKeys {
		return
	}
	in.down[key] = down
}

func (in *Input) Down(key int32) bool {
	if key < 0 || key >= MaxKeys {
		return false
	}
	return in.down[key]
}

// Pressed reports a key that went down this frame.
func (in *Input) Pressed(key int32) bool {
	if key < 0 || key >= MaxKeys {
		return false
	}
	return in.down[key] && !in.prev[key]
}

// Released reports a key that went up this frame.
func (in *Input) Released(key int32) bool {
	if key < 0 || key >= MaxKeys {
		return false
	}
	return !in.down[key] && in.prev[key]
}

// Time holds the frame delta and the elapsed time since start, in seconds.
type Time struct {
	Dt         float32
	SinceStart float64
}

func (t *Time) Advance(dt float32) {
	t.Dt = dt
	t.SinceStart += float64(dt)
}

// Random is the scene's deterministic random source.
type Random struct {
	r *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{r: rand.New(rand.NewSource(seed))}
}

// Next returns a value in [min, max).
func (r *Random) Next(min, max float32) float32 {
	return min + r.r.Float32()*(max-min)
}

func (r *Random) Intn(n int) int {
	return r.r.Intn(n)
}
