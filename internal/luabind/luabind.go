// Package luabind exposes simpledata components to Lua scripts as the
// "simpledata" module.
package luabind

import (
	lua "github.com/yuin/gopher-lua"

	"simpledata/internal/component"
	"simpledata/internal/property"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "simpledata"

// Resolver finds the component instance addressed by a url string.
type Resolver interface {
	ResolveComponent(url string) (*component.World, component.Handle, error)
}

type module struct {
	resolver Resolver
}

// Preload registers the module with L so that require("simpledata")
// returns it.
func Preload(L *lua.LState, r Resolver) {
	m := &module{resolver: r}
	L.PreloadModule(ModuleName, m.loader)
}

func (m *module) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get_array_f32": m.getArrayF32,
		"get":           m.get,
	})
	L.Push(mod)
	return 1
}

// simpledata.get_array_f32(url) returns the float array as a 1-based table.
func (m *module) getArrayF32(L *lua.LState) int {
	w, h := m.component(L, 1)
	values := component.GetArrayData(w.Component(h))

	tbl := L.CreateTable(len(values), 0)
	for i, v := range values {
		tbl.RawSetInt(i+1, lua.LNumber(v))
	}
	L.Push(tbl)
	return 1
}

// simpledata.get(url, property [, index | {index=n, key=k}])
func (m *module) get(L *lua.LState) int {
	w, h := m.component(L, 1)
	id := property.Hash(L.CheckString(2))
	opts := options(L, 3)

	v, err := w.GetProperty(h, id, opts)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(toLua(L, v))
	return 1
}

func (m *module) component(L *lua.LState, n int) (*component.World, component.Handle) {
	url := L.CheckString(n)
	w, h, err := m.resolver.ResolveComponent(url)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return w, h
}

// options reads the optional query argument. Lua indices are 1-based;
// property.Options are 0-based.
func options(L *lua.LState, n int) property.Options {
	switch arg := L.Get(n).(type) {
	case *lua.LNilType:
		return property.Options{}
	case lua.LNumber:
		return property.At(int(arg) - 1)
	case *lua.LTable:
		if key, ok := arg.RawGetString("key").(lua.LString); ok {
			return property.WithKey(property.Hash(string(key)))
		}
		if index, ok := arg.RawGetString("index").(lua.LNumber); ok {
			return property.At(int(index) - 1)
		}
		return property.Options{}
	default:
		L.ArgError(n, "expected index or options table")
		return property.Options{}
	}
}

func toLua(L *lua.LState, v property.Var) lua.LValue {
	if v.IsNumber() {
		return lua.LNumber(v.Float64())
	}
	switch v.Kind {
	case property.KindText:
		return lua.LString(v.Text)
	case property.KindVector3:
		tbl := L.CreateTable(0, 3)
		tbl.RawSetString("x", lua.LNumber(v.V3.X))
		tbl.RawSetString("y", lua.LNumber(v.V3.Y))
		tbl.RawSetString("z", lua.LNumber(v.V3.Z))
		return tbl
	default:
		return lua.LNil
	}
}
