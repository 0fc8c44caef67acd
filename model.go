package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten"

	"github.com/zucenko/conduit/controls"
)

type ModeKind int

const (
	LEVEL_SELECT ModeKind = iota + 1
	PLAYING
	SIMULATING
	ENDING
)

func (k ModeKind) Name() string {
	switch k {
	case LEVEL_SELECT:
		return "LEVEL_SELECT"
	case PLAYING:
		return "PLAYING"
	case SIMULATING:
		return "SIMULATING"
	case ENDING:
		return "ENDING"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// Mode is one screen on the mode stack. Only the top mode is updated.
type Mode interface {
	Kind() ModeKind
	Update(in controls.Input, frame uint64) Transition
	Draw(screen *ebiten.Image)
}

// Resumer refreshes a mode when it is on top again.
type Resumer interface {
	OnResume()
}

// Transition pops Pop modes, then pushes Push when it is set.
type Transition struct {
	Pop  int
	Push Mode
}

func (t Transition) None() bool {
	return t.Pop == 0 && t.Push == nil
}

// ModeStack is the client's screen history. The bottom mode is never
// popped.
type ModeStack struct {
	modes []Mode
}

func (s *ModeStack) Top() Mode {
	return s.modes[len(s.modes)-1]
}

func (s *ModeStack) Push(m Mode) {
	s.modes = append(s.modes, m)
}

// Apply runs a transition and reports whether the top mode changed.
func (s *ModeStack) Apply(t Transition) bool {
	if t.None() {
		return false
	}
	pop := t.Pop
	if pop > len(s.modes)-1 {
		pop = len(s.modes) - 1
	}
	s.modes = s.modes[:len(s.modes)-pop]
	if t.Push != nil {
		s.modes = append(s.modes, t.Push)
	} else if r, ok := s.Top().(Resumer); ok {
		r.OnResume()
	}
	return true
}
