package truntime

import (
	"maps"

	"github.com/gosuda/tarobot/diag"
)

type frame struct {
	vars map[string]Variable
	// proc marks the first frame of a procedure call. Lookups stop here and
	// fall through to the global frame.
	proc bool
}

// Scopes is a stack of variable frames. The bottom frame is the global
// scope and is never popped.
type Scopes struct {
	frames []*frame
}

func NewScopes() *Scopes {
	return &Scopes{frames: []*frame{{vars: map[string]Variable{}}}}
}

// Push opens a block frame. The returned release func pops it together with
// anything pushed after it; call it exactly once, usually with defer.
func (s *Scopes) Push() func() {
	return s.push(false)
}

// PushProc opens a procedure frame, hiding the caller's frames.
func (s *Scopes) PushProc() func() {
	return s.push(true)
}

func (s *Scopes) push(proc bool) func() {
	n := len(s.frames)
	s.frames = append(s.frames, &frame{vars: map[string]Variable{}, proc: proc})
	return func() {
		clear(s.frames[n:])
		s.frames = s.frames[:n]
	}
}

// Depth returns the number of open frames including the global one.
func (s *Scopes) Depth() int {
	return len(s.frames)
}

// Declare binds name in the innermost frame.
func (s *Scopes) Declare(name string, v Variable) error {
	top := s.frames[len(s.frames)-1]
	if prev, ok := top.vars[name]; ok {
		return diag.Errorf(diag.Redeclaration, 0, "%s is already declared as %s", name, prev.typ)
	}
	top.vars[name] = v
	return nil
}

// find walks the visible frames innermost first.
func (s *Scopes) find(name string) (*frame, bool) {
	for i := len(s.frames) - 1; i > 0; i-- {
		f := s.frames[i]
		if _, ok := f.vars[name]; ok {
			return f, true
		}
		if f.proc {
			break
		}
	}
	g := s.frames[0]
	_, ok := g.vars[name]
	return g, ok
}

func (s *Scopes) Lookup(name string) (Variable, bool) {
	f, ok := s.find(name)
	if !ok {
		return Variable{}, false
	}
	return f.vars[name], true
}

// Assign rebinds an existing name in the frame that declares it. Constancy
// is the caller's concern.
func (s *Scopes) Assign(name string, v Variable) error {
	f, ok := s.find(name)
	if !ok {
		return diag.Errorf(diag.UndeclaredVariable, 0, "%s is not declared", name)
	}
	f.vars[name] = v
	return nil
}

// Global returns a copy of the global frame.
func (s *Scopes) Global() map[string]Variable {
	return maps.Clone(s.frames[0].vars)
}
