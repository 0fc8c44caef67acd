package model

import (
	"math"

	"golang.org/x/exp/maps"
)

// Cables is the sparse cable layout of a board.
type Cables map[Coord]Cable

func (c Cables) Clone() Cables {
	if c == nil {
		return Cables{}
	}
	return maps.Clone(c)
}

// CountShape counts the cables of the given shape.
func (c Cables) CountShape(shape CableShape) int {
	n := 0
	for _, cable := range c {
		if cable.Shape == shape {
			n++
		}
	}
	return n
}

// Board is the two connectors plus the cables between them. The height is
// set by the connectors; Width counts only the cable area, so x runs from 0
// to Width-1 with the ports at -1 and Width.
type Board struct {
	Left   Connector
	Right  Connector
	Width  int
	Cables Cables
}

func NewBoard(left, right Connector, width int) *Board {
	return &Board{
		Left:   left,
		Right:  right,
		Width:  width,
		Cables: Cables{},
	}
}

func (b *Board) Clone() *Board {
	return &Board{
		Left:   b.Left.Clone(),
		Right:  b.Right.Clone(),
		Width:  b.Width,
		Cables: b.Cables.Clone(),
	}
}

// Height is the longer of the two connectors.
func (b *Board) Height() int {
	h := len(b.Left.Ports)
	if len(b.Right.Ports) > h {
		h = len(b.Right.Ports)
	}
	return h
}

// GetPort returns the port at pos and the side it faces into the board.
func (b *Board) GetPort(pos Coord) (*Port, Dir, bool) {
	if pos.Y < 0 {
		return nil, 0, false
	}
	var ports []*Port
	var facing Dir
	switch pos.X {
	case -1:
		ports, facing = b.Left.Ports, East
	case b.Width:
		ports, facing = b.Right.Ports, West
	default:
		return nil, 0, false
	}
	if pos.Y >= len(ports) || ports[pos.Y] == nil {
		return nil, 0, false
	}
	return ports[pos.Y], facing, true
}

func (b *Board) IsInCableArea(pos Coord) bool {
	return pos.X >= 0 && pos.X < b.Width && pos.Y >= 0 && pos.Y < b.Height()
}

// IsInBoard includes the port columns.
func (b *Board) IsInBoard(pos Coord) bool {
	return pos.X >= -1 && pos.X <= b.Width && pos.Y >= 0 && pos.Y < b.Height()
}

// Place puts a cable on the board, refusing anything outside the cable area.
func (b *Board) Place(pos Coord, c Cable) bool {
	if !b.IsInCableArea(pos) {
		return false
	}
	if b.Cables == nil {
		b.Cables = Cables{}
	}
	b.Cables[pos] = c
	return true
}

// CellPixels is the side of one grid cell on screen.
const CellPixels = 16

// origin is the upper-left pixel of cell (0,0) with the board centred on a
// screen of the given size.
func (b *Board) origin(screenW, screenH int) (float64, float64) {
	return float64(screenW)/2 - float64(b.Width)*CellPixels/2,
		float64(screenH)/2 - float64(b.Height())*CellPixels/2
}

// CoordToPixel is the upper-left pixel of pos.
func (b *Board) CoordToPixel(pos Coord, screenW, screenH int) (float64, float64) {
	ox, oy := b.origin(screenW, screenH)
	return ox + float64(pos.X)*CellPixels, oy + float64(pos.Y)*CellPixels
}

// PixelToCoord is the cell under the pixel. It may lie outside the board.
func (b *Board) PixelToCoord(px, py float64, screenW, screenH int) Coord {
	ox, oy := b.origin(screenW, screenH)
	return Coord{
		X: int(math.Floor((px - ox) / CellPixels)),
		Y: int(math.Floor((py - oy) / CellPixels)),
	}
}
