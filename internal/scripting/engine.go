package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"planegame/internal/engine"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the compiled script types of
// one directory. Single-goroutine access only (game loop).
type Engine struct {
	vm      *lua.LState
	log     *zap.Logger
	dir     string
	types   map[string]*lua.LTable
	methods *lua.LTable
	closed  bool

	// current is the script whose Lua code is running; the global API
	// tables resolve input, time and friends through it.
	current *LuaScript
}

// NewEngine creates a Lua engine and compiles every .lua file in dir. Each
// file must return a table; its base name becomes the script type name. A
// missing directory yields an engine with no types.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:    vm,
		log:   log,
		dir:   dir,
		types: map[string]*lua.LTable{},
	}
	e.openAPI()

	if err := e.loadDir(dir); err != nil {
		vm.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.loadFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) loadFile(path string) error {
	fn, err := e.vm.LoadFile(path)
	if err != nil {
		return err
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, 1, nil); err != nil {
		return err
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	class, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("script returned %s, want table", ret.Type())
	}
	// Lookups fall through the class table to the built-in methods.
	mt := e.vm.NewTable()
	mt.RawSetString("__index", e.methods)
	e.vm.SetMetatable(class, mt)

	name := strings.TrimSuffix(filepath.Base(path), ".lua")
	e.types[name] = class
	return nil
}

// Dir is the directory the engine was compiled from.
func (e *Engine) Dir() string {
	return e.dir
}

// Names returns the compiled type names, sorted.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.types))
	for name := range e.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a factory for every compiled type to reg.
func (e *Engine) Register(reg *engine.ScriptRegistry) error {
	var errs []error
	for _, name := range e.Names() {
		if err := reg.Register(name, e.factory(name), serializeLuaScript); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) factory(name string) engine.ScriptFactory {
	class := e.types[name]
	return func(props map[string]any) engine.Script {
		s := &LuaScript{typeName: name, eng: e}
		s.self = e.newSelf(s, class, props)
		return s
	}
}

func (e *Engine) newSelf(s *LuaScript, class *lua.LTable, props map[string]any) *lua.LTable {
	self := e.vm.NewTable()
	for key, v := range props {
		if lv := toLua(e.vm, v); lv != lua.LNil {
			self.RawSetString(key, lv)
		}
	}
	ud := e.vm.NewUserData()
	ud.Value = s
	self.RawSetString(scriptKey, ud)

	mt := e.vm.NewTable()
	mt.RawSetString("__index", class)
	e.vm.SetMetatable(self, mt)
	return self
}

// call runs method on the script's self table if the type defines it.
// Runtime errors are logged and swallowed.
func (e *Engine) call(s *LuaScript, method string) {
	fn := e.vm.GetField(s.self, method)
	if fn.Type() != lua.LTFunction {
		return
	}
	prev := e.current
	e.current = s
	err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, s.self)
	e.current = prev
	if err != nil {
		e.log.Error("lua script error",
			zap.String("type", s.typeName),
			zap.String("method", method),
			zap.Error(err))
	}
}

// Close releases the VM. Scripts created by this engine must not run after.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.vm.Close()
}
