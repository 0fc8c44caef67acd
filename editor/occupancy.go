package editor

import "github.com/zucenko/conduit/model"

// FullyOccupied reports whether every side the cable at pos outputs on is
// already joined: by a neighbouring cable that outputs back, or, when
// portsOccupy is set, by a port facing it. Sides without an output never
// count as free. ok is false when there is no cable at pos.
//
// Edits use portsOccupy=true: a cable plugged into a port is done on that
// side. Picking a cable up uses false so lines can be pulled off a port.
func FullyOccupied(pos model.Coord, cables model.Cables, b *model.Board, portsOccupy bool) (occupied, ok bool) {
	cable, ok := cables[pos]
	if !ok {
		return false, false
	}
	out := cable.Outputs()
	for _, d := range model.Dirs {
		if !out.Has(d) {
			continue
		}
		n := pos.Add(d)
		if neighbor, ok := cables[n]; ok {
			if !neighbor.Outputs().Has(d.Flip()) {
				return false, true
			}
			continue
		}
		if portsOccupy {
			if _, facing, ok := b.GetPort(n); ok && facing == d.Flip() {
				continue
			}
		}
		return false, true
	}
	return true, true
}
