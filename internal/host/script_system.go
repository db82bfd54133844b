package host

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"
	lua "github.com/yuin/gopher-lua"

	"simpledata/internal/logger"
	"simpledata/internal/luabind"
)

// ScriptSystem runs a Lua script inside the app loop. The script may define
// global init(), update(dt) and final() functions and can require the
// simpledata module.
type ScriptSystem struct {
	Name   string
	Source string
	DT     float64

	resolver luabind.Resolver
	log      logger.Logger
	state    *lua.LState
	ticks    int
	errs     []error
}

func NewScriptSystem(name, source string, dt float64, resolver luabind.Resolver, log logger.Logger) *ScriptSystem {
	return &ScriptSystem{
		Name:     name,
		Source:   source,
		DT:       dt,
		resolver: resolver,
		log:      log.With(logger.F("script", name)),
	}
}

func (s *ScriptSystem) Initialize(_ *ecs.World) {
	s.state = lua.NewState()
	luabind.Preload(s.state, s.resolver)

	if err := s.state.DoString(s.Source); err != nil {
		s.fail("load", err)
		return
	}
	s.call("init")
}

func (s *ScriptSystem) Update(_ *ecs.World) {
	if s.state == nil {
		return
	}
	s.ticks++
	s.call("update", lua.LNumber(s.DT))
}

func (s *ScriptSystem) Finalize(_ *ecs.World) {
	if s.state == nil {
		return
	}
	s.call("final")
	s.state.Close()
	s.state = nil
}

// State exposes the Lua state between Initialize and Finalize.
func (s *ScriptSystem) State() *lua.LState {
	return s.state
}

// Ticks is the number of updates run so far.
func (s *ScriptSystem) Ticks() int {
	return s.ticks
}

// Err joins every script error raised so far.
func (s *ScriptSystem) Err() error {
	return errors.Join(s.errs...)
}

func (s *ScriptSystem) call(name string, args ...lua.LValue) {
	fn, ok := s.state.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return
	}
	err := s.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	if err != nil {
		s.fail(name, err)
	}
}

func (s *ScriptSystem) fail(stage string, err error) {
	s.log.Error("script error", logger.F("stage", stage), logger.F("error", err))
	s.errs = append(s.errs, fmt.Errorf("%s %s: %w", s.Name, stage, err))
}
