package resource

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"simpledata/internal/loader/schema"
	"simpledata/internal/logger"
)

func newTestFactory(t *testing.T) (*Factory, fstest.MapFS, *observer.ObservedLogs) {
	t.Helper()
	fsys := fstest.MapFS{
		"main/hero.simpledatac":   {Data: compiled(t, schema.Desc{Name: "hero", F32: 1})},
		"main/enemy.simpledatac":  {Data: compiled(t, schema.Desc{Name: "enemy"})},
		"main/broken.simpledatac": {Data: []byte{0x0a, 0x05, 'a'}},
	}
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFactory(fsys, logger.Wrap(zap.New(core))), fsys, logs
}

func TestFactory_GetSharesHolder(t *testing.T) {
	f, _, _ := newTestFactory(t)

	a, err := f.Get("/main/hero.simpledatac")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	b, err := f.Get("main/./hero.simpledatac")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if a != b {
		t.Error("expected the same holder for the same path")
	}
	if n := f.RefCount("main/hero.simpledatac"); n != 2 {
		t.Errorf("expected 2 refs, got %d", n)
	}
	if p, ok := f.PathOf(a); !ok || p != "main/hero.simpledatac" {
		t.Errorf("unexpected path %q %v", p, ok)
	}
}

func TestFactory_GetErrors(t *testing.T) {
	f, _, logs := newTestFactory(t)

	if _, err := f.Get("main/missing.simpledatac"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	if _, err := f.Get("main/broken.simpledatac"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
	if logs.FilterMessage("failed to load resource").Len() != 1 {
		t.Error("expected format failure to be logged")
	}
	if len(f.Paths()) != 0 {
		t.Errorf("failed loads must not be cached: %v", f.Paths())
	}
}

func TestFactory_Release(t *testing.T) {
	f, _, _ := newTestFactory(t)
	h, _ := f.Get("main/hero.simpledatac")
	f.Get("main/hero.simpledatac")

	f.Release(h)
	if h.Desc() == nil {
		t.Fatal("holder released while still referenced")
	}
	f.Release(h)
	if h.Desc() != nil {
		t.Error("expected holder to be released at zero refs")
	}
	if f.RefCount("main/hero.simpledatac") != 0 {
		t.Error("expected entry to be dropped")
	}

	// unknown holders are ignored
	f.Release(NewHolder(&schema.Desc{}))
}

func TestFactory_Reload(t *testing.T) {
	f, fsys, logs := newTestFactory(t)
	h, _ := f.Get("main/hero.simpledatac")

	fsys["main/hero.simpledatac"] = &fstest.MapFile{Data: []byte("not a desc")}
	if _, err := f.Reload("main/hero.simpledatac"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if h.Desc().Name != "hero" {
		t.Errorf("previous content lost: %+v", h.Desc())
	}
	if logs.FilterMessage("resource reload rejected, keeping previous content").Len() != 1 {
		t.Error("expected rejected reload to be logged")
	}

	fsys["main/hero.simpledatac"] = &fstest.MapFile{Data: compiled(t, schema.Desc{Name: "hero2", F32: 9})}
	got, err := f.Reload("main/hero.simpledatac")
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got != h {
		t.Error("reload must keep holder identity")
	}
	if h.Desc().Name != "hero2" || h.Desc().F32 != 9 {
		t.Errorf("unexpected desc %+v", h.Desc())
	}

	if _, err := f.Reload("main/enemy.simpledatac"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("reloading an unloaded path should fail with ErrNotExist, got %v", err)
	}
}

func TestFactory_Paths(t *testing.T) {
	f, _, _ := newTestFactory(t)
	f.Get("main/hero.simpledatac")
	f.Get("main/enemy.simpledatac")

	want := []string{"main/enemy.simpledatac", "main/hero.simpledatac"}
	if got := f.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
