package scripting

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// keyNames are exposed to Lua as keys.<Name>; letters A-Z are added in openAPI.
var keyNames = map[string]int32{
	"Space":        rl.KeySpace,
	"Enter":        rl.KeyEnter,
	"Escape":       rl.KeyEscape,
	"Up":           rl.KeyUp,
	"Down":         rl.KeyDown,
	"Left":         rl.KeyLeft,
	"Right":        rl.KeyRight,
	"LeftShift":    rl.KeyLeftShift,
	"LeftControl":  rl.KeyLeftControl,
	"LeftAlt":      rl.KeyLeftAlt,
	"RightShift":   rl.KeyRightShift,
	"RightControl": rl.KeyRightControl,
}

func (e *Engine) openAPI() {
	L := e.vm

	e.methods = L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"position":       e.selfPosition,
		"world_position": e.selfWorldPosition,
		"set_position":   e.selfSetPosition,
		"translate":      e.selfTranslate,
		"rotate_local":   e.selfRotateLocal,
		"rotate_global":  e.selfRotateGlobal,
		"forward":        e.selfAxis(func(t *engine.Transform) rl.Vector3 { return t.Forward() }),
		"up":             e.selfAxis(func(t *engine.Transform) rl.Vector3 { return t.Up() }),
		"right":          e.selfAxis(func(t *engine.Transform) rl.Vector3 { return t.Right() }),
		"destroy":        e.selfDestroy,
		"object_id":      e.selfObjectID,
	})

	L.SetGlobal("input", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"down":     e.inputKey((*engine.Input).Down),
		"pressed":  e.inputKey((*engine.Input).Pressed),
		"released": e.inputKey((*engine.Input).Released),
		"mouse":    e.inputMouse,
	}))

	keys := L.NewTable()
	for name, code := range keyNames {
		keys.RawSetString(name, lua.LNumber(code))
	}
	for c := 'A'; c <= 'Z'; c++ {
		keys.RawSetString(string(c), lua.LNumber(rl.KeyA+int32(c-'A')))
	}
	L.SetGlobal("keys", keys)

	L.SetGlobal("time", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"dt":          e.timeDt,
		"since_start": e.timeSinceStart,
	}))
	L.SetGlobal("random", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"next": e.randomNext,
	}))
	L.SetGlobal("debug", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"line": e.debugLine,
		"text": e.debugText,
	}))
	L.SetGlobal("log", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": e.logAt(zap.DebugLevel),
		"info":  e.logAt(zap.InfoLevel),
		"warn":  e.logAt(zap.WarnLevel),
		"error": e.logAt(zap.ErrorLevel),
	}))
}

func checkScript(L *lua.LState) *LuaScript {
	self := L.CheckTable(1)
	ud, ok := self.RawGetString(scriptKey).(*lua.LUserData)
	if !ok {
		L.ArgError(1, "script instance expected")
		return nil
	}
	s, ok := ud.Value.(*LuaScript)
	if !ok {
		L.ArgError(1, "script instance expected")
		return nil
	}
	return s
}

func checkVector(L *lua.LState, first int) rl.Vector3 {
	return rl.Vector3{
		X: float32(L.CheckNumber(first)),
		Y: float32(L.CheckNumber(first + 1)),
		Z: float32(L.CheckNumber(first + 2)),
	}
}

func pushVector(L *lua.LState, v rl.Vector3) int {
	L.Push(lua.LNumber(v.X))
	L.Push(lua.LNumber(v.Y))
	L.Push(lua.LNumber(v.Z))
	return 3
}

func (e *Engine) selfPosition(L *lua.LState) int {
	return pushVector(L, checkScript(L).Transform().Position)
}

func (e *Engine) selfWorldPosition(L *lua.LState) int {
	return pushVector(L, checkScript(L).Transform().WorldPosition())
}

func (e *Engine) selfSetPosition(L *lua.LState) int {
	checkScript(L).Transform().Position = checkVector(L, 2)
	return 0
}

func (e *Engine) selfTranslate(L *lua.LState) int {
	checkScript(L).Transform().Translate(checkVector(L, 2))
	return 0
}

func (e *Engine) selfRotateLocal(L *lua.LState) int {
	s := checkScript(L)
	s.Transform().RotateLocal(checkVector(L, 2), float32(L.CheckNumber(5)))
	return 0
}

func (e *Engine) selfRotateGlobal(L *lua.LState) int {
	s := checkScript(L)
	s.Transform().RotateGlobal(checkVector(L, 2), float32(L.CheckNumber(5)))
	return 0
}

func (e *Engine) selfAxis(axis func(*engine.Transform) rl.Vector3) lua.LGFunction {
	return func(L *lua.LState) int {
		return pushVector(L, axis(checkScript(L).Transform()))
	}
}

// selfDestroy destroys the script's object, or only the script when called
// with true.
func (e *Engine) selfDestroy(L *lua.LState) int {
	s := checkScript(L)
	if L.OptBool(2, false) {
		s.Destroy()
		return 0
	}
	s.GetObject().Destroy()
	return 0
}

func (e *Engine) selfObjectID(L *lua.LState) int {
	L.Push(lua.LNumber(checkScript(L).GetObject().ID()))
	return 1
}

func (e *Engine) inputKey(query func(*engine.Input, int32) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		key := int32(L.CheckInt(1))
		in := e.input()
		L.Push(lua.LBool(in != nil && query(in, key)))
		return 1
	}
}

func (e *Engine) inputMouse(L *lua.LState) int {
	var d rl.Vector2
	if in := e.input(); in != nil {
		d = in.MouseDelta
	}
	L.Push(lua.LNumber(d.X))
	L.Push(lua.LNumber(d.Y))
	return 2
}

func (e *Engine) input() *engine.Input {
	if e.current == nil {
		return nil
	}
	return e.current.Input()
}

func (e *Engine) timeDt(L *lua.LState) int {
	var dt float32
	if e.current != nil && e.current.Time() != nil {
		dt = e.current.Time().Dt
	}
	L.Push(lua.LNumber(dt))
	return 1
}

func (e *Engine) timeSinceStart(L *lua.LState) int {
	var t float64
	if e.current != nil && e.current.Time() != nil {
		t = e.current.Time().SinceStart
	}
	L.Push(lua.LNumber(t))
	return 1
}

func (e *Engine) randomNext(L *lua.LState) int {
	lo := float32(L.OptNumber(1, 0))
	hi := float32(L.OptNumber(2, 1))
	if e.current == nil || e.current.Random() == nil {
		L.Push(lua.LNumber(lo))
		return 1
	}
	L.Push(lua.LNumber(e.current.Random().Next(lo, hi)))
	return 1
}

// debugLine takes two points and an optional colour: x1,y1,z1, x2,y2,z2 [,r,g,b].
func (e *Engine) debugLine(L *lua.LState) int {
	from := checkVector(L, 1)
	to := checkVector(L, 4)
	color := rl.Vector3{
		X: float32(L.OptNumber(7, 1)),
		Y: float32(L.OptNumber(8, 1)),
		Z: float32(L.OptNumber(9, 1)),
	}
	if e.current != nil && e.current.Debug() != nil {
		e.current.Debug().DrawLine(from, to, color)
	}
	return 0
}

func (e *Engine) debugText(L *lua.LState) int {
	pos := rl.Vector2{X: float32(L.CheckNumber(1)), Y: float32(L.CheckNumber(2))}
	text := L.CheckString(3)
	if e.current != nil && e.current.Debug() != nil {
		e.current.Debug().DrawScreenText(pos, text)
	}
	return 0
}

func (e *Engine) logAt(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)
		log := e.log
		if e.current != nil {
			log = e.current.Log().With(zap.String("script", e.current.typeName))
		}
		if ce := log.Check(level, msg); ce != nil {
			ce.Write()
		}
		return 0
	}
}
