package model

import (
	"errors"
	"fmt"
)

// Why a resource could not be transferred across a cable.
var (
	ErrBadCableKind = errors.New("resource does not fit the cable kind")
	ErrNoEntrance   = errors.New("cable has no entrance from that side")
)

// AppropriateCable is the kind of cable that can carry the resource.
func (r Resource) AppropriateCable() CableKind {
	switch r.Type {
	case Water, Fuel:
		return Pipe
	default:
		return Wire
	}
}

func (k CableKind) CanCarry(r Resource) bool {
	switch k {
	case Pipe:
		return r.Type == Water || r.Type == Fuel
	case Wire:
		return r.Type == Electricity || r.Type == Data
	default:
		return false
	}
}

// ExitDir returns the direction a resource leaves the cable when it enters
// travelling in enterDir.
func (c Cable) ExitDir(r Resource, enterDir Dir) (Dir, error) {
	switch c.Shape {
	case Straight:
		if !c.Kind.CanCarry(r) {
			return 0, ErrBadCableKind
		}
		if c.Horizontal != enterDir.IsHorizontal() {
			return 0, ErrNoEntrance
		}
		return enterDir, nil
	case Bent:
		if !c.Kind.CanCarry(r) {
			return 0, ErrBadCableKind
		}
		other := c.CCWDir.Clockwise()
		switch enterDir.Flip() {
		case c.CCWDir:
			return other, nil
		case other:
			return c.CCWDir, nil
		}
		return 0, ErrNoEntrance
	case Crossover:
		kind := c.VertKind
		if enterDir.IsHorizontal() {
			kind = c.HorizKind
		}
		if !kind.CanCarry(r) {
			return 0, ErrBadCableKind
		}
		return enterDir, nil
	default:
		panic(fmt.Sprintf("exit dir of invalid cable %v", c))
	}
}

// Outputs are the cable kinds this cable exposes on each side, indexed by
// Dir; 0 means nothing can connect on that side.
type Outputs [4]CableKind

func (o Outputs) Has(d Dir) bool {
	return o[d] != 0
}

func (c Cable) Outputs() Outputs {
	var out Outputs
	for _, d := range Dirs {
		switch c.Shape {
		case Straight:
			if d.IsHorizontal() == c.Horizontal {
				out[d] = c.Kind
			}
		case Bent:
			if d == c.CCWDir || d == c.CCWDir.Clockwise() {
				out[d] = c.Kind
			}
		case Crossover:
			if d.IsHorizontal() {
				out[d] = c.HorizKind
			} else {
				out[d] = c.VertKind
			}
		}
	}
	return out
}

// KindToward is the kind the cable carries through side d, falling back to
// the cable's main kind for sides it does not output on.
func (c Cable) KindToward(d Dir) CableKind {
	if c.Shape == Crossover {
		if d.IsHorizontal() {
			return c.HorizKind
		}
		return c.VertKind
	}
	return c.Kind
}

// FromDirs makes a Straight or Bent cable joining the two sides.
// Panics if both are the same direction.
func FromDirs(kind CableKind, dir1, dir2 Dir) Cable {
	switch {
	case dir1.Flip() == dir2:
		return NewStraight(kind, dir1.IsHorizontal())
	case dir1.Clockwise() == dir2:
		return NewBent(kind, dir1)
	case dir2.Clockwise() == dir1:
		return NewBent(kind, dir2)
	default:
		panic(fmt.Sprintf("%v and %v are the same direction", dir1, dir2))
	}
}

func (p Port) AppropriateCable() CableKind {
	return p.Resource.AppropriateCable()
}
