package controls

import (
	"fmt"

	"github.com/zucenko/conduit/model"
)

type Control int

const (
	Select Control = iota
	Up
	Down
	Left
	Right
	Start
	StepOnce
	Escape
	Ctrl
	controlCount
)

func (c Control) Name() string {
	switch c {
	case Select:
		return "Select"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Start:
		return "Start"
	case StepOnce:
		return "StepOnce"
	case Escape:
		return "Escape"
	case Ctrl:
		return "Ctrl"
	default:
		return fmt.Sprintf("N/A(%d)", c)
	}
}

// Set is a set of controls.
type Set uint16

func NewSet(cs ...Control) Set {
	var s Set
	for _, c := range cs {
		s = s.With(c)
	}
	return s
}

func (s Set) With(c Control) Set {
	return s | 1<<uint(c)
}

func (s Set) Has(c Control) bool {
	return s&(1<<uint(c)) != 0
}

// Input is what the engine reads each tick: controls pressed this tick,
// controls held down, and where the cursor is on the grid.
type Input struct {
	Pressed Set
	Held    Set
	Cursor  model.Coord
	// CursorValid is false when the pointer maps to no grid cell at all.
	CursorValid bool
}

func (in Input) ClickedDown(c Control) bool {
	return in.Pressed.Has(c)
}

func (in Input) IsHeld(c Control) bool {
	return in.Held.Has(c)
}

// Source delivers one Input per tick.
type Source interface {
	Poll() Input
}

// Script replays a fixed list of inputs, then repeats an empty one.
type Script struct {
	Inputs []Input
	i      int
}

func (s *Script) Poll() Input {
	if s.i >= len(s.Inputs) {
		if len(s.Inputs) == 0 {
			return Input{}
		}
		last := s.Inputs[len(s.Inputs)-1]
		return Input{Cursor: last.Cursor, CursorValid: last.CursorValid}
	}
	in := s.Inputs[s.i]
	s.i++
	return in
}

// MoveDir maps the arrow controls pressed this tick to a direction.
func (in Input) MoveDir() (model.Dir, bool) {
	switch {
	case in.ClickedDown(Up):
		return model.North, true
	case in.ClickedDown(Down):
		return model.South, true
	case in.ClickedDown(Left):
		return model.West, true
	case in.ClickedDown(Right):
		return model.East, true
	}
	return 0, false
}
