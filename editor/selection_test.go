package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/conduit/controls"
	"github.com/zucenko/conduit/model"
	"github.com/zucenko/conduit/sim"
)

type fakeCommitter struct {
	saved []model.Cables
}

func (f *fakeCommitter) SaveCables(levelKey string, b *model.Board) error {
	f.saved = append(f.saved, b.Cables.Clone())
	return nil
}

func at(x, y int) controls.Input {
	return controls.Input{Cursor: model.Coord{X: x, Y: y}, CursorValid: true}
}

func clickAt(x, y int) controls.Input {
	in := at(x, y)
	in.Pressed = controls.NewSet(controls.Select)
	return in
}

// water from the left at row y to a water sink on the right at row y, on a
// 3x3 cable area
func waterBoard(y int) *model.Board {
	left := model.Connector{Ports: make([]*model.Port, 3)}
	right := model.Connector{Ports: make([]*model.Port, 3)}
	left.Ports[y] = model.SourceOf(model.WaterRes())
	right.Ports[y] = model.SinkOf(model.WaterRes())
	return model.NewBoard(left, right, 3)
}

func drive(t *testing.T, p *Playing, steps []controls.Input, want []Result) {
	t.Helper()
	require.Len(t, want, len(steps))
	for i, in := range steps {
		assert.Equal(t, want[i].Name(), p.HandleSelection(in).Name(), "step %d at %v", i, in.Cursor)
	}
}

func TestDragPortToPortCommits(t *testing.T) {
	c := &fakeCommitter{}
	p := NewPlaying("straight", "Straight", waterBoard(0), c)

	drive(t, p,
		[]controls.Input{clickAt(-1, 0), at(0, 0), at(1, 0), at(2, 0)},
		[]Result{Started, Extended, Extended, Committed},
	)

	assert.False(t, p.Editing())
	want := model.Cables{
		{X: 0, Y: 0}: model.NewStraight(model.Pipe, true),
		{X: 1, Y: 0}: model.NewStraight(model.Pipe, true),
		{X: 2, Y: 0}: model.NewStraight(model.Pipe, true),
	}
	if diff := cmp.Diff(want, p.Board.Cables); diff != "" {
		t.Errorf("cables mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, c.saved, 1)
	assert.Equal(t, want, c.saved[0])

	f := sim.NewFloodFiller(p.Board)
	for i := 0; i < 3; i++ {
		assert.Empty(t, f.Step())
	}
	assert.True(t, f.DidWin())
}

func TestBacktrackRemovesAndReshapes(t *testing.T) {
	p := NewPlaying("bend", "Bend", waterBoard(0), nil)

	drive(t, p,
		[]controls.Input{clickAt(-1, 0), at(0, 0), at(1, 0), at(1, 1)},
		[]Result{Started, Extended, Extended, Extended},
	)
	// turning south bent the cable we left
	assert.Equal(t, model.NewBent(model.Pipe, model.South), p.Selection.Cables[model.Coord{X: 1, Y: 0}])
	assert.Equal(t, model.NewStraight(model.Pipe, false), p.Selection.Cables[model.Coord{X: 1, Y: 1}])

	assert.Equal(t, Backtracked, p.HandleSelection(at(1, 0)))
	assert.Equal(t, model.Coord{X: 1, Y: 0}, p.Cursor)
	assert.NotContains(t, p.Selection.Cables, model.Coord{X: 1, Y: 1})
	assert.Len(t, p.Selection.History, 2)
	// nothing is committed yet
	assert.Empty(t, p.Board.Cables)

	// carry on east: the bend straightens again
	assert.Equal(t, Committed, p.HandleSelection(at(2, 0)))
	assert.Equal(t, model.NewStraight(model.Pipe, true), p.Board.Cables[model.Coord{X: 1, Y: 0}])
	assert.Len(t, p.Board.Cables, 3)
}

func TestBacktrackIntoPortCommits(t *testing.T) {
	c := &fakeCommitter{}
	p := NewPlaying("lvl", "Level", waterBoard(0), c)

	drive(t, p,
		[]controls.Input{clickAt(-1, 0), at(0, 0), at(-1, 0)},
		[]Result{Started, Extended, Committed},
	)
	assert.False(t, p.Editing())
	assert.Empty(t, p.Board.Cables)
	assert.Len(t, c.saved, 1)
}

func TestCrossoverPromotion(t *testing.T) {
	b := waterBoard(1)
	for y := 0; y < 3; y++ {
		b.Place(model.Coord{X: 1, Y: y}, model.NewStraight(model.Wire, false))
	}
	p := NewPlaying("cross", "Cross", b, nil)

	drive(t, p,
		[]controls.Input{clickAt(-1, 1), at(0, 1), at(1, 1)},
		[]Result{Started, Extended, Extended},
	)
	assert.Equal(t, model.NewCrossover(model.Pipe, model.Wire), p.Selection.Cables[model.Coord{X: 1, Y: 1}])

	// a crossover can only be left straight on
	assert.Equal(t, BadDirection, p.HandleSelection(at(1, 0)))
	assert.Equal(t, model.Coord{X: 1, Y: 1}, p.Cursor)

	assert.Equal(t, Committed, p.HandleSelection(at(2, 1)))
	assert.Equal(t, 1, p.Board.Cables.CountShape(model.Crossover))

	f := sim.NewFloodFiller(p.Board)
	for i := 0; i < 3; i++ {
		require.Empty(t, f.Step())
	}
	assert.True(t, f.DidWin())
	assert.Equal(t, uint64(1), f.Metrics().Crossovers)
}

func TestBacktrackDemotesCrossover(t *testing.T) {
	b := waterBoard(1)
	for y := 0; y < 3; y++ {
		b.Place(model.Coord{X: 1, Y: y}, model.NewStraight(model.Wire, false))
	}
	p := NewPlaying("cross", "Cross", b, nil)

	drive(t, p,
		[]controls.Input{clickAt(-1, 1), at(0, 1), at(1, 1), at(0, 1)},
		[]Result{Started, Extended, Extended, Backtracked},
	)
	assert.Equal(t, model.NewStraight(model.Wire, false), p.Selection.Cables[model.Coord{X: 1, Y: 1}])
}

func TestTargetTaken(t *testing.T) {
	for name, existing := range map[string]model.Cable{
		"bent north": model.NewBent(model.Pipe, model.North),
		"bent east":  model.NewBent(model.Wire, model.East),
	} {
		t.Run(name, func(t *testing.T) {
			b := waterBoard(1)
			b.Place(model.Coord{X: 1, Y: 1}, existing)
			p := NewPlaying("lvl", "Level", b, nil)

			drive(t, p,
				[]controls.Input{clickAt(-1, 1), at(0, 1), at(1, 1)},
				[]Result{Started, Extended, TargetTaken},
			)
			assert.Equal(t, model.Coord{X: 0, Y: 1}, p.Cursor)
			assert.Equal(t, existing, p.Selection.Cables[model.Coord{X: 1, Y: 1}])
		})
	}
}

func TestTargetTakenByStraightOnSameAxis(t *testing.T) {
	b := waterBoard(0)
	b.Place(model.Coord{X: 1, Y: 1}, model.NewStraight(model.Wire, true))
	p := NewPlaying("lvl", "Level", b, nil)

	// a straight run would close the gap first, so turn down before heading east
	drive(t, p,
		[]controls.Input{clickAt(-1, 0), at(0, 0), at(0, 1)},
		[]Result{Started, Extended, Extended},
	)
	before := p.Selection.Cables.Clone()

	assert.Equal(t, TargetTaken, p.HandleSelection(at(1, 1)))
	assert.Equal(t, model.Coord{X: 0, Y: 1}, p.Cursor)
	if diff := cmp.Diff(before, p.Selection.Cables); diff != "" {
		t.Errorf("selection changed (-before +after):\n%s", diff)
	}
}

func TestPortOnlyLeavesInward(t *testing.T) {
	p := NewPlaying("lvl", "Level", waterBoard(1), nil)
	require.Equal(t, Started, p.HandleSelection(clickAt(-1, 1)))

	assert.Equal(t, BadDirection, p.HandleSelection(at(-1, 2)))
	assert.Equal(t, BadDirection, p.HandleSelection(at(-1, 0)))
	assert.Equal(t, model.Coord{X: -1, Y: 1}, p.Cursor)
	assert.Empty(t, p.Selection.Cables)
}

func TestMovedTooFast(t *testing.T) {
	p := NewPlaying("lvl", "Level", waterBoard(0), nil)
	require.Equal(t, Started, p.HandleSelection(clickAt(-1, 0)))

	assert.Equal(t, TooFast, p.HandleSelection(at(1, 0)))
	assert.Equal(t, TooFast, p.HandleSelection(at(0, 1)))
	assert.Equal(t, NoMove, p.HandleSelection(at(-1, 0)))
	assert.Empty(t, p.Selection.Cables)

	// still able to carry on from where the head stayed
	assert.Equal(t, Extended, p.HandleSelection(at(0, 0)))
}

func TestPickUpFromLooseEnd(t *testing.T) {
	p := NewPlaying("lvl", "Level", waterBoard(0), nil)
	drive(t, p,
		[]controls.Input{clickAt(-1, 0), at(0, 0), at(1, 0), at(2, 0)},
		[]Result{Started, Extended, Extended, Committed},
	)

	// the middle of a finished line cannot be grabbed and dragged along it
	drive(t, p,
		[]controls.Input{clickAt(1, 0), at(2, 0)},
		[]Result{Started, Occupied},
	)
	require.Equal(t, Committed, p.HandleSelection(clickAt(1, 0)))

	// pull it off the sink a cell at a time
	drive(t, p,
		[]controls.Input{at(2, 0), clickAt(2, 0), at(1, 0), at(0, 0), clickAt(0, 0)},
		[]Result{CursorMoved, Started, PickedUp, PickedUp, Committed},
	)
	want := model.Cables{{X: 0, Y: 0}: model.NewStraight(model.Pipe, true)}
	if diff := cmp.Diff(want, p.Board.Cables); diff != "" {
		t.Errorf("cables mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectThenCommitIsNoChange(t *testing.T) {
	b := waterBoard(0)
	b.Place(model.Coord{X: 0, Y: 0}, model.NewStraight(model.Pipe, true))
	b.Place(model.Coord{X: 1, Y: 2}, model.NewBent(model.Wire, model.East))
	before := b.Cables.Clone()
	c := &fakeCommitter{}
	p := NewPlaying("lvl", "Level", b, c)

	require.Equal(t, Started, p.HandleSelection(clickAt(1, 2)))
	if diff := cmp.Diff(before, p.Selection.Cables); diff != "" {
		t.Errorf("selection should start as the board (-want +got):\n%s", diff)
	}
	require.Equal(t, Committed, p.HandleSelection(clickAt(1, 2)))
	if diff := cmp.Diff(before, p.Board.Cables); diff != "" {
		t.Errorf("board changed (-want +got):\n%s", diff)
	}
	assert.Len(t, c.saved, 1)
}

func TestIdleCursor(t *testing.T) {
	p := NewPlaying("lvl", "Level", waterBoard(0), nil)

	assert.Equal(t, Idle, p.HandleSelection(at(7, 7)))
	assert.Equal(t, model.Coord{X: 0, Y: 0}, p.Cursor)

	assert.Equal(t, CursorMoved, p.HandleSelection(at(3, 2)))
	assert.Equal(t, model.Coord{X: 3, Y: 2}, p.Cursor)

	// keyboard moves stop at the edge of the board
	right := controls.Input{Pressed: controls.NewSet(controls.Right)}
	assert.Equal(t, Idle, p.HandleSelection(right))
	left := controls.Input{Pressed: controls.NewSet(controls.Left)}
	assert.Equal(t, CursorMoved, p.HandleSelection(left))
	assert.Equal(t, model.Coord{X: 2, Y: 2}, p.Cursor)

	// nothing to pick up on an empty cell
	assert.Equal(t, Idle, p.HandleSelection(clickAt(2, 2)))
	assert.False(t, p.Editing())
}

func TestKeyboardDrag(t *testing.T) {
	p := NewPlaying("lvl", "Level", waterBoard(0), nil)
	key := func(c controls.Control) controls.Input {
		return controls.Input{Pressed: controls.NewSet(c)}
	}
	drive(t, p,
		[]controls.Input{key(controls.Left), key(controls.Select), key(controls.Right), key(controls.Right), key(controls.Right)},
		[]Result{CursorMoved, Started, Extended, Extended, Committed},
	)
	assert.Len(t, p.Board.Cables, 3)
}

func TestSimulateRefusedWhileEditing(t *testing.T) {
	p := NewPlaying("lvl", "Level", waterBoard(0), nil)
	require.Equal(t, Started, p.HandleSelection(clickAt(-1, 0)))

	_, ok := p.Simulate(sim.ByFrames{Interval: sim.StepFrames}, nil)
	assert.False(t, ok)

	require.Equal(t, Committed, p.HandleSelection(clickAt(-1, 0)))
	r, ok := p.Simulate(sim.OnDemand{}, nil)
	require.True(t, ok)
	assert.Equal(t, "lvl", r.LevelKey)
}

func TestFullyOccupied(t *testing.T) {
	b := waterBoard(0)
	b.Place(model.Coord{X: 0, Y: 0}, model.NewStraight(model.Pipe, true))
	b.Place(model.Coord{X: 1, Y: 0}, model.NewBent(model.Pipe, model.South))

	_, ok := FullyOccupied(model.Coord{X: 2, Y: 2}, b.Cables, b, true)
	assert.False(t, ok)

	occupied, ok := FullyOccupied(model.Coord{X: 0, Y: 0}, b.Cables, b, true)
	require.True(t, ok)
	assert.True(t, occupied)

	occupied, _ = FullyOccupied(model.Coord{X: 0, Y: 0}, b.Cables, b, false)
	assert.False(t, occupied, "port side is free when ports do not count")

	occupied, _ = FullyOccupied(model.Coord{X: 1, Y: 0}, b.Cables, b, true)
	assert.False(t, occupied, "south side has nothing")

	b.Place(model.Coord{X: 1, Y: 1}, model.NewStraight(model.Pipe, true))
	occupied, _ = FullyOccupied(model.Coord{X: 1, Y: 0}, b.Cables, b, true)
	assert.False(t, occupied, "neighbour does not output back")
}

func TestFullyOccupiedLeavesCablesAlone(t *testing.T) {
	b := waterBoard(0)
	b.Place(model.Coord{X: 0, Y: 0}, model.NewStraight(model.Pipe, true))
	b.Place(model.Coord{X: 1, Y: 0}, model.NewBent(model.Pipe, model.South))
	before := b.Cables.Clone()

	for _, pos := range []model.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}} {
		for _, portsOccupy := range []bool{true, false} {
			occ1, ok1 := FullyOccupied(pos, b.Cables, b, portsOccupy)
			occ2, ok2 := FullyOccupied(pos, b.Cables, b, portsOccupy)
			assert.Equal(t, ok1, ok2, "%v ports=%v", pos, portsOccupy)
			assert.Equal(t, occ1, occ2, "%v ports=%v", pos, portsOccupy)
		}
	}
	if diff := cmp.Diff(before, b.Cables); diff != "" {
		t.Errorf("cables changed (-before +after):\n%s", diff)
	}
}
