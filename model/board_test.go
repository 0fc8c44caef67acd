package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard() *Board {
	left := Connector{Ports: []*Port{SourceOf(WaterRes()), nil, SinkOf(DataRes(1))}}
	right := Connector{Ports: []*Port{SinkOf(WaterRes()), SourceOf(DataRes(1))}}
	return NewBoard(left, right, 4)
}

func TestBoardHeight(t *testing.T) {
	b := testBoard()
	assert.Equal(t, 3, b.Height())
}

func TestGetPort(t *testing.T) {
	b := testBoard()

	p, facing, ok := b.GetPort(Coord{-1, 0})
	require.True(t, ok)
	assert.Equal(t, East, facing)
	assert.Equal(t, *SourceOf(WaterRes()), *p)

	p, facing, ok = b.GetPort(Coord{4, 1})
	require.True(t, ok)
	assert.Equal(t, West, facing)
	assert.Equal(t, *SourceOf(DataRes(1)), *p)

	for _, pos := range []Coord{{-1, 1}, {-1, 3}, {-1, -1}, {4, 2}, {0, 0}, {3, 0}, {5, 0}} {
		_, _, ok = b.GetPort(pos)
		assert.False(t, ok, pos.String())
	}
}

func TestBounds(t *testing.T) {
	b := testBoard()
	assert.True(t, b.IsInCableArea(Coord{0, 0}))
	assert.True(t, b.IsInCableArea(Coord{3, 2}))
	assert.False(t, b.IsInCableArea(Coord{4, 0}))
	assert.False(t, b.IsInCableArea(Coord{-1, 0}))
	assert.False(t, b.IsInCableArea(Coord{0, 3}))

	assert.True(t, b.IsInBoard(Coord{-1, 0}))
	assert.True(t, b.IsInBoard(Coord{4, 2}))
	assert.False(t, b.IsInBoard(Coord{5, 0}))
	assert.False(t, b.IsInBoard(Coord{0, -1}))
}

func TestPixelMapping(t *testing.T) {
	b := testBoard()
	x, y := b.CoordToPixel(Coord{0, 0}, 320, 180)
	assert.Equal(t, 128.0, x)
	assert.Equal(t, 66.0, y)
	x, y = b.CoordToPixel(Coord{-1, 2}, 320, 180)
	assert.Equal(t, 112.0, x)
	assert.Equal(t, 98.0, y)

	assert.Equal(t, Coord{2, 0}, b.PixelToCoord(128+2*16+5, 67, 320, 180))
	assert.Equal(t, Coord{-1, 0}, b.PixelToCoord(127, 66, 320, 180))
	assert.Equal(t, Coord{-2, -1}, b.PixelToCoord(100, 60, 320, 180))
	for _, c := range []Coord{{0, 0}, {3, 2}, {-1, 1}, {4, 0}} {
		px, py := b.CoordToPixel(c, 320, 180)
		assert.Equal(t, c, b.PixelToCoord(px+CellPixels/2, py+CellPixels/2, 320, 180))
	}
}

func TestPlaceKeepsOutOfPortColumns(t *testing.T) {
	b := testBoard()
	assert.False(t, b.Place(Coord{-1, 0}, NewStraight(Pipe, true)))
	assert.False(t, b.Place(Coord{4, 0}, NewStraight(Pipe, true)))
	assert.True(t, b.Place(Coord{0, 0}, NewStraight(Pipe, true)))
	assert.Len(t, b.Cables, 1)
}

func TestCloneIsIndependent(t *testing.T) {
	b := testBoard()
	b.Place(Coord{1, 1}, NewBent(Wire, South))
	c := b.Clone()
	c.Cables[Coord{2, 2}] = NewCrossover(Pipe, Pipe)
	c.Left.Ports[0].Resource = FuelRes()

	assert.Len(t, b.Cables, 1)
	assert.Equal(t, WaterRes(), b.Left.Ports[0].Resource)
}

func TestRecordWinKeepsMinimum(t *testing.T) {
	s := NewSolution("lvl", testBoard())
	s.RecordWin(Metrics{TotalCycles: 12, Crossovers: 1})
	assert.Equal(t, Metrics{TotalCycles: 12, MinCycles: 12, Crossovers: 1}, *s.Metrics)

	s.RecordWin(Metrics{TotalCycles: 20})
	assert.Equal(t, Metrics{TotalCycles: 20, MinCycles: 12}, *s.Metrics)

	s.RecordWin(Metrics{TotalCycles: 9, Crossovers: 2})
	assert.Equal(t, Metrics{TotalCycles: 9, MinCycles: 9, Crossovers: 2}, *s.Metrics)
}
