package scripting

import (
	"github.com/go-gl/mathgl/mgl64"
	lua "github.com/yuin/gopher-lua"

	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
)

// luaBehavior forwards object hooks to the class table. Each instance owns
// a self table whose missing keys fall back to the class table.
type luaBehavior struct {
	e     *Engine
	class string
	def   *lua.LTable

	self   *lua.LTable
	handle *lua.LTable
}

func (e *Engine) newBehavior(class string, def *lua.LTable) *luaBehavior {
	self := e.vm.NewTable()
	mt := e.vm.NewTable()
	mt.RawSetString("__index", def)
	e.vm.SetMetatable(self, mt)
	return &luaBehavior{e: e, class: class, def: def, self: self}
}

func (b *luaBehavior) Init(obj *scene.GameObject, args any) {
	lv, ok := args.(lua.LValue)
	if !ok {
		lv = lua.LNil
	}
	b.call("init", obj, lv)
}

func (b *luaBehavior) Update(obj *scene.GameObject, dt float64) {
	b.call("update", obj, lua.LNumber(dt))
}

func (b *luaBehavior) Draw(obj *scene.GameObject)     { b.call("draw", obj) }
func (b *luaBehavior) Shutdown(obj *scene.GameObject) { b.call("shutdown", obj) }

// call runs one hook. Errors are logged and never reach the frame loop.
func (b *luaBehavior) call(hook string, obj *scene.GameObject, args ...lua.LValue) {
	fn, ok := b.def.RawGetString(hook).(*lua.LFunction)
	if !ok {
		return
	}
	params := append([]lua.LValue{b.self, b.objectHandle(obj)}, args...)
	if err := b.e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, params...); err != nil {
		b.e.log.Warn("lua hook failed",
			log.String("class", b.class),
			log.String("hook", hook),
			log.String("object", obj.Name()),
			log.Error(err),
		)
	}
}

// objectHandle exposes a narrow view of obj to scripts.
func (b *luaBehavior) objectHandle(obj *scene.GameObject) *lua.LTable {
	L := b.e.vm
	if b.handle == nil {
		h := L.NewTable()
		h.RawSetString("id", lua.LNumber(obj.ID()))
		h.RawSetString("position", L.NewFunction(func(L *lua.LState) int {
			p := obj.Transform().Position
			L.Push(lua.LNumber(p[0]))
			L.Push(lua.LNumber(p[1]))
			L.Push(lua.LNumber(p[2]))
			return 3
		}))
		h.RawSetString("set_position", L.NewFunction(func(L *lua.LState) int {
			obj.Transform().Position = mgl64.Vec3{
				float64(L.CheckNumber(1)),
				float64(L.CheckNumber(2)),
				float64(L.CheckNumber(3)),
			}
			return 0
		}))
		h.RawSetString("translate", L.NewFunction(func(L *lua.LState) int {
			obj.Transform().Translate(mgl64.Vec3{
				float64(L.OptNumber(1, 0)),
				float64(L.OptNumber(2, 0)),
				float64(L.OptNumber(3, 0)),
			})
			return 0
		}))
		h.RawSetString("rotate", L.NewFunction(func(L *lua.LState) int {
			q := scene.EulerToQuat(
				float64(L.OptNumber(1, 0)),
				float64(L.OptNumber(2, 0)),
				float64(L.OptNumber(3, 0)),
			)
			obj.Transform().Rotate(q)
			return 0
		}))
		b.handle = h
	}
	b.handle.RawSetString("name", lua.LString(obj.Name()))
	return b.handle
}
