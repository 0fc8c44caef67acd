package model

// Solution is what gets persisted per level.
type Solution struct {
	LevelKey string
	Cables   Cables
	Left     Connector
	Right    Connector
	// Metrics is set once the level has been solved.
	Metrics *Metrics
}

type Metrics struct {
	TotalCycles uint64
	MinCycles   uint64
	Crossovers  uint64
}

func NewSolution(levelKey string, b *Board) *Solution {
	return &Solution{
		LevelKey: levelKey,
		Cables:   b.Cables.Clone(),
		Left:     b.Left.Clone(),
		Right:    b.Right.Clone(),
	}
}

// Board rebuilds a board of the given width from the solution.
func (s *Solution) Board(width int) *Board {
	return &Board{
		Left:   s.Left.Clone(),
		Right:  s.Right.Clone(),
		Width:  width,
		Cables: s.Cables.Clone(),
	}
}

// RecordWin stores the metrics of a winning run, keeping the best cycle
// count ever reached for the level.
func (s *Solution) RecordWin(m Metrics) {
	if s.Metrics != nil && s.Metrics.MinCycles != 0 && s.Metrics.MinCycles < m.TotalCycles {
		m.MinCycles = s.Metrics.MinCycles
	} else {
		m.MinCycles = m.TotalCycles
	}
	s.Metrics = &m
}
