// Package scripting lets Lua files declare script classes. A script calls
//
//	class("Door", { init = function(self, obj, args) end, update = ... })
//
// and the class becomes constructible by name from scene documents.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps one Lua VM. Like the scene it serves, it is driven from the
// frame loop goroutine only.
type Engine struct {
	vm      *lua.LState
	log     log.Log
	classes *scene.ClassRegistry

	declared []string
}

// NewEngine creates a VM whose class() global registers into classes.
func NewEngine(classes *scene.ClassRegistry, logger log.Log) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	e := &Engine{vm: vm, log: logger.Named("lua"), classes: classes}

	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	vm.SetGlobal("class", vm.NewFunction(e.luaClass))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))
	return e
}

// Close releases the VM. Behaviors created by this engine must not be used afterwards.
func (e *Engine) Close() {
	e.vm.Close()
}

// LoadDir runs every .lua file of dir in name order. A missing directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", log.String("file", path))
	}
	return nil
}

// LoadString runs src as a chunk named name.
func (e *Engine) LoadString(name, src string) error {
	fn, err := e.vm.LoadString(src)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Declared returns the class names declared by scripts, in declaration order.
func (e *Engine) Declared() []string {
	return append([]string(nil), e.declared...)
}

// class(name, def) registers a script class.
func (e *Engine) luaClass(L *lua.LState) int {
	name := L.CheckString(1)
	def := L.CheckTable(2)
	for _, hook := range []string{"init", "update", "draw", "shutdown"} {
		v := def.RawGetString(hook)
		if v == lua.LNil {
			continue
		}
		if _, ok := v.(*lua.LFunction); !ok {
			L.RaiseError("class %s: %s must be a function, got %s", name, hook, v.Type().String())
			return 0
		}
	}

	c := &scene.Class{
		Name:   name,
		New:    func() scene.Behavior { return e.newBehavior(name, def) },
		Fields: e.fields,
	}
	if err := e.classes.Register(c); err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	e.declared = append(e.declared, name)
	L.Push(def)
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	e.log.Info(msg)
	return 0
}

// fields converts a Fields block to a Lua table handed to init.
func (e *Engine) fields(node document.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return toLua(e.vm, v), nil
}

func toLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case uint64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case []any:
		t := L.NewTable()
		for _, item := range x {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, item := range x {
			t.RawSetString(k, toLua(L, item))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(x))
	}
}
