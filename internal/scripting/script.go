package scripting

import (
	"planegame/internal/engine"

	lua "github.com/yuin/gopher-lua"
)

// scriptKey holds the owning *LuaScript inside every self table.
const scriptKey = "__script"

// LuaScript is a script instance whose behavior lives in a Lua table.
type LuaScript struct {
	engine.BaseScript
	typeName string
	eng      *Engine
	self     *lua.LTable
}

func (s *LuaScript) TypeName() string { return s.typeName }

func (s *LuaScript) Initialize() {
	s.eng.call(s, "initialize")
}

func (s *LuaScript) Update() {
	s.eng.call(s, "update")
}

// Field reads a value from the script's self table.
func (s *LuaScript) Field(name string) any {
	return fromLua(s.self.RawGetString(name))
}

// serializeLuaScript exports the plain fields of self: numbers, strings,
// booleans and arrays of those.
func serializeLuaScript(sc engine.Script) map[string]any {
	s, ok := sc.(*LuaScript)
	if !ok {
		return nil
	}
	props := map[string]any{}
	s.self.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok || string(key) == scriptKey {
			return
		}
		if x := fromLua(v); x != nil {
			props[string(key)] = x
		}
	})
	return props
}

func toLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case float64:
		return lua.LNumber(x)
	case float32:
		return lua.LNumber(x)
	case int:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	case []float32:
		t := L.NewTable()
		for _, f := range x {
			t.Append(lua.LNumber(f))
		}
		return t
	case []any:
		t := L.NewTable()
		for _, item := range x {
			if lv := toLua(L, item); lv != lua.LNil {
				t.Append(lv)
			}
		}
		return t
	}
	return lua.LNil
}

func fromLua(v lua.LValue) any {
	switch x := v.(type) {
	case lua.LNumber:
		return float64(x)
	case lua.LString:
		return string(x)
	case lua.LBool:
		return bool(x)
	case *lua.LTable:
		if x.MaxN() == 0 {
			return nil
		}
		out := make([]any, 0, x.MaxN())
		for i := 1; i <= x.MaxN(); i++ {
			item := fromLua(x.RawGetInt(i))
			if _, nested := item.([]any); nested || item == nil {
				return nil
			}
			out = append(out, item)
		}
		return out
	}
	return nil
}
