package engine

import (
	"planegame/internal/assets"
	"planegame/internal/debugdraw"

	"go.uber.org/zap"
)

// Script is a component with per-frame behavior. A script is Pending from
// creation until the Scene's next promotion, where it receives Initialize
// exactly once; from then on it is Active and receives Update every frame
// until it is swept.
type Script interface {
	Component
	Initialize()
	Update()
	// TypeName is the registry key used to recreate the script from a scene
	// file or after a reload.
	TypeName() string
	scriptBase() *BaseScript
}

// BaseScript is embedded by every script. It provides a no-op Initialize and
// access to the scene's shared context.
type BaseScript struct {
	BaseComponent
	ctx *ScriptContext
}

func (b *BaseScript) scriptBase() *BaseScript {
	return b
}

func (b *BaseScript) Initialize() {}

// Context returns the scene context, or nil before the script is attached.
func (b *BaseScript) Context() *ScriptContext {
	return b.ctx
}

func (b *BaseScript) Scene() *Scene {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Scene
}

func (b *BaseScript) Input() *Input {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Input
}

func (b *BaseScript) Time() *Time {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Time
}

func (b *BaseScript) Random() *Random {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Random
}

func (b *BaseScript) Resources() *assets.Resources {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Resources
}

func (b *BaseScript) Debug() *debugdraw.Debug {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Debug
}

func (b *BaseScript) Log() *zap.Logger {
	if b.ctx == nil || b.ctx.Log == nil {
		return zap.NewNop()
	}
	return b.ctx.Log
}
