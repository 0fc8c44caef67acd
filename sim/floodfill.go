package sim

import (
	"errors"
	"fmt"

	"github.com/zucenko/conduit/model"
)

type ErrorKind int

const (
	// BadCableKind: the resource does not fit the cable it entered.
	BadCableKind ErrorKind = iota + 1
	// NoEntrance: the cable has no opening on the side the resource came from.
	NoEntrance
	// SpilledIntoSpace: the resource left the cable area where no port is.
	SpilledIntoSpace
	// Backtrack: the resource entered a cell along an axis already travelled.
	Backtrack
	// BadOutput: the sink wants a different resource.
	BadOutput
)

func (k ErrorKind) Name() string {
	switch k {
	case BadCableKind:
		return "BadCableKind"
	case NoEntrance:
		return "NoEntrance"
	case SpilledIntoSpace:
		return "SpilledIntoSpace"
	case Backtrack:
		return "Backtrack"
	case BadOutput:
		return "BadOutput"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

func (k ErrorKind) String() string {
	return k.Name()
}

// FloodFillError is a routing fault at a position. Expected is only set for
// BadOutput and holds what the sink wanted.
type FloodFillError struct {
	Kind     ErrorKind
	Pos      model.Coord
	Expected model.Resource
}

func (e FloodFillError) Error() string {
	if e.Kind == BadOutput {
		return fmt.Sprintf("%s at %v: sink wants %v", e.Kind, e.Pos, e.Expected)
	}
	return fmt.Sprintf("%s at %v", e.Kind, e.Pos)
}

// Tip is a resource in flight.
type Tip struct {
	Pos model.Coord
	// Facing is the direction the tip was travelling when it entered Pos.
	Facing   model.Dir
	Resource model.Resource
	// Stalled holds the fault that stopped this tip; it is reported again
	// on every later step.
	Stalled *FloodFillError
}

type VisitKey struct {
	Pos        model.Coord
	Horizontal bool
}

// FloodFiller moves every tip one cell per step over its own copy of the
// board.
type FloodFiller struct {
	Board *model.Board
	// Tips keep their index for the whole run; a nil slot is a tip consumed
	// by a matching sink.
	Tips []*Tip
	// Visited records which resource passed each cell along each axis.
	Visited map[VisitKey]model.Resource
	Cycles  uint64
}

func NewFloodFiller(b *model.Board) *FloodFiller {
	board := b.Clone()
	tips := make([]*Tip, 0)
	for _, side := range []struct {
		conn   model.Connector
		facing model.Dir
		x      int
	}{
		// ports on the left push east into column 0
		{board.Left, model.East, 0},
		// ports on the right push west into the last column
		{board.Right, model.West, board.Width - 1},
	} {
		for y, port := range side.conn.Ports {
			if port != nil && port.Type == model.Source {
				tips = append(tips, &Tip{
					Pos:      model.Coord{X: side.x, Y: y},
					Facing:   side.facing,
					Resource: port.Resource,
				})
			}
		}
	}
	return &FloodFiller{
		Board:   board,
		Tips:    tips,
		Visited: make(map[VisitKey]model.Resource),
	}
}

// Step advances every live tip by one cell and returns every fault found.
// An empty result means the step was clean.
func (f *FloodFiller) Step() []FloodFillError {
	f.Cycles++
	errs := make([]FloodFillError, 0)

	for i, tip := range f.Tips {
		if tip == nil {
			continue
		}
		if tip.Stalled != nil {
			errs = append(errs, *tip.Stalled)
			continue
		}
		stall := func(kind ErrorKind, pos model.Coord, expected model.Resource) {
			e := FloodFillError{Kind: kind, Pos: pos, Expected: expected}
			tip.Stalled = &e
			errs = append(errs, e)
		}

		key := VisitKey{tip.Pos, tip.Facing.IsHorizontal()}
		if _, seen := f.Visited[key]; seen {
			stall(Backtrack, tip.Pos, model.Resource{})
			continue
		}
		f.Visited[key] = tip.Resource

		cable, ok := f.Board.Cables[tip.Pos]
		if !ok {
			// only reachable from a spawn with nothing in front of it
			stall(SpilledIntoSpace, tip.Pos, model.Resource{})
			continue
		}
		out, err := cable.ExitDir(tip.Resource, tip.Facing)
		if err != nil {
			kind := NoEntrance
			if errors.Is(err, model.ErrBadCableKind) {
				kind = BadCableKind
			}
			stall(kind, tip.Pos, model.Resource{})
			continue
		}

		target := tip.Pos.Add(out)
		if _, ok := f.Board.Cables[target]; ok {
			tip.Pos = target
			tip.Facing = out
			continue
		}
		port, _, ok := f.Board.GetPort(target)
		switch {
		case !ok || port.Type != model.Sink:
			stall(SpilledIntoSpace, target, model.Resource{})
		case port.Resource != tip.Resource:
			stall(BadOutput, target, port.Resource)
		default:
			f.Tips[i] = nil
		}
	}
	return errs
}

// DidWin is true once every tip reached a matching sink.
func (f *FloodFiller) DidWin() bool {
	for _, tip := range f.Tips {
		if tip != nil {
			return false
		}
	}
	return true
}

// Live returns the tips still in flight.
func (f *FloodFiller) Live() []Tip {
	out := make([]Tip, 0, len(f.Tips))
	for _, tip := range f.Tips {
		if tip != nil {
			out = append(out, *tip)
		}
	}
	return out
}

// Metrics of the run so far; MinCycles is left for the solution record.
func (f *FloodFiller) Metrics() model.Metrics {
	return model.Metrics{
		TotalCycles: f.Cycles,
		Crossovers:  uint64(f.Board.Cables.CountShape(model.Crossover)),
	}
}
