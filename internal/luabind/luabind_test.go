package luabind

import (
	"errors"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"simpledata/internal/component"
	"simpledata/internal/config"
	"simpledata/internal/loader/schema"
	"simpledata/internal/logger"
	"simpledata/internal/resource"
)

type staticResolver struct {
	world  *component.World
	handle component.Handle
}

func (r *staticResolver) ResolveComponent(url string) (*component.World, component.Handle, error) {
	if url != "main:/go#simpledata" {
		return nil, 0, errors.New("component not found: " + url)
	}
	return r.world, r.handle, nil
}

func newState(t *testing.T) *lua.LState {
	t.Helper()
	cfg := config.Default()
	w := component.NewType(component.NewContext(cfg, logger.NewNop())).NewWorld(4)
	h, err := w.Create(resource.NewHolder(&schema.Desc{
		Name:     "x",
		F32:      1.5,
		U32:      2,
		I64:      -5,
		V3:       schema.Vector3{X: 1, Y: 2, Z: 3},
		ArrayF32: []float32{10, 20, 30},
	}))
	if err != nil {
		t.Fatal(err)
	}

	L := lua.NewState()
	t.Cleanup(L.Close)
	Preload(L, &staticResolver{world: w, handle: h})
	return L
}

func TestGetArrayF32(t *testing.T) {
	L := newState(t)
	err := L.DoString(`
		local sd = require("simpledata")
		local a = sd.get_array_f32("main:/go#simpledata")
		n, first, last = #a, a[1], a[3]
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if n := L.GetGlobal("n"); n != lua.LNumber(3) {
		t.Errorf("expected length 3, got %v", n)
	}
	if v := L.GetGlobal("first"); v != lua.LNumber(10) {
		t.Errorf("expected a[1] == 10, got %v", v)
	}
	if v := L.GetGlobal("last"); v != lua.LNumber(30) {
		t.Errorf("expected a[3] == 30, got %v", v)
	}
}

func TestGet(t *testing.T) {
	L := newState(t)
	err := L.DoString(`
		local sd = require("simpledata")
		local url = "main:/go#simpledata"
		name = sd.get(url, "name")
		f32 = sd.get(url, "f32")
		u32 = sd.get(url, "u32")
		i64 = sd.get(url, "i64")
		second = sd.get(url, "array_f32", 2)
		third = sd.get(url, "array_f32", { index = 3 })
		local v = sd.get(url, "v3")
		vy = v.y
	`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}

	tests := map[string]lua.LValue{
		"name":   lua.LString("x"),
		"f32":    lua.LNumber(1.5),
		"u32":    lua.LNumber(2),
		"i64":    lua.LNumber(-5),
		"second": lua.LNumber(20),
		"third":  lua.LNumber(30),
		"vy":     lua.LNumber(2),
	}
	for name, want := range tests {
		if got := L.GetGlobal(name); got != want {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestGet_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"out of range", `sd.get(url, "array_f32", 6)`, "index out of range"},
		{"zero index", `sd.get(url, "array_f32", 0)`, "index out of range"},
		{"keyed", `sd.get(url, "array_f32", { key = "a" })`, "keyed access"},
		{"unknown property", `sd.get(url, "missing")`, "property not found"},
		{"unknown url", `sd.get_array_f32("main:/other")`, "component not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L := newState(t)
			err := L.DoString(`
				sd = require("simpledata")
				url = "main:/go#simpledata"
				ok, msg = pcall(function() return ` + tt.script + ` end)
			`)
			if err != nil {
				t.Fatalf("script failed: %v", err)
			}
			if L.GetGlobal("ok") != lua.LFalse {
				t.Fatal("expected the call to raise")
			}
			if msg := L.GetGlobal("msg").String(); !strings.Contains(msg, tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, msg)
			}
		})
	}
}
