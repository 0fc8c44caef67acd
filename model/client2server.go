package model

import "sort"

// ClientMessage is one gob frame from a verification client. A layout
// starts a new run, replacing any run in progress.
type ClientMessage struct {
	Cables []PlacedCable
	Stop   bool
}

type PlacedCable struct {
	Pos   Coord
	Cable Cable
}

// Placed lists the cables row by row.
func (c Cables) Placed() []PlacedCable {
	out := make([]PlacedCable, 0, len(c))
	for pos, cable := range c {
		out = append(out, PlacedCable{Pos: pos, Cable: cable})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Y != out[j].Pos.Y {
			return out[i].Pos.Y < out[j].Pos.Y
		}
		return out[i].Pos.X < out[j].Pos.X
	})
	return out
}
