package main

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	"golang.org/x/image/font"

	"github.com/zucenko/conduit/model"
	"github.com/zucenko/conduit/sim"
)

var (
	COLOR_CELL_LIGHT = color.RGBA{0xa3, 0xa7, 0xc2, 0x88}
	COLOR_CELL_DARK  = color.RGBA{0x2f, 0x57, 0x53, 0x60}
	COLOR_PIPE       = color.RGBA{0x8a, 0x9b, 0xa8, 0xff}
	COLOR_WIRE       = color.RGBA{0xe0, 0xb0, 0x40, 0xff}
	COLOR_CURSOR     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	COLOR_ERROR      = color.RGBA{0xe0, 0x20, 0x20, 0xcc}
	COLOR_VISITED    = color.RGBA{0x99, 0x00, 0x00, 0x99}
	COLOR_TEXT       = color.RGBA{0xff, 0x52, 0x77, 0xdd}
)

func resourceColor(r model.Resource) color.RGBA {
	switch r.Type {
	case model.Water:
		return color.RGBA{0x30, 0x80, 0xff, 0xff}
	case model.Fuel:
		return color.RGBA{0xff, 0x80, 0x20, 0xff}
	case model.Electricity:
		return color.RGBA{0xff, 0xf0, 0x40, 0xff}
	case model.Data:
		return color.RGBA{0x40, 0xe0, 0x80, 0xff}
	default:
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
}

func kindColor(k model.CableKind) color.RGBA {
	if k == model.Wire {
		return COLOR_WIRE
	}
	return COLOR_PIPE
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	c.A = uint8(float64(c.A) * a)
	return c
}

func cellRect(screen *ebiten.Image, b *model.Board, pos model.Coord, inset float64, clr color.Color) {
	x, y := b.CoordToPixel(pos, screenWidth, screenHeight)
	side := float64(model.CellPixels) - 2*inset
	ebitenutil.DrawRect(screen, x+inset, y+inset, side, side, clr)
}

// drawCable draws one arm from the centre of the cell to each side the
// cable outputs toward.
func drawCable(screen *ebiten.Image, b *model.Board, pos model.Coord, c model.Cable) {
	x, y := b.CoordToPixel(pos, screenWidth, screenHeight)
	const half = model.CellPixels / 2
	const thick = 4.0
	cx, cy := x+half, y+half
	outs := c.Outputs()
	// vertical arms first so a crossover shows its horizontal cable on top
	for _, d := range []model.Dir{model.North, model.South, model.East, model.West} {
		if !outs.Has(d) {
			continue
		}
		clr := kindColor(outs[d])
		switch d {
		case model.East:
			ebitenutil.DrawRect(screen, cx-thick/2, cy-thick/2, half+thick/2, thick, clr)
		case model.West:
			ebitenutil.DrawRect(screen, x, cy-thick/2, half+thick/2, thick, clr)
		case model.South:
			ebitenutil.DrawRect(screen, cx-thick/2, cy-thick/2, thick, half+thick/2, clr)
		case model.North:
			ebitenutil.DrawRect(screen, cx-thick/2, y, thick, half+thick/2, clr)
		}
	}
}

func drawPorts(screen *ebiten.Image, b *model.Board, face font.Face) {
	for _, side := range []struct {
		conn model.Connector
		x    int
	}{{b.Left, -1}, {b.Right, b.Width}} {
		for y, port := range side.conn.Ports {
			if port == nil {
				continue
			}
			pos := model.Coord{X: side.x, Y: y}
			clr := resourceColor(port.Resource)
			if port.Type == model.Sink {
				cellRect(screen, b, pos, 2, withAlpha(clr, 0.45))
				cellRect(screen, b, pos, 5, clr)
			} else {
				cellRect(screen, b, pos, 2, clr)
			}
			if port.Resource.Type == model.Electricity || port.Resource.Type == model.Data {
				px, py := b.CoordToPixel(pos, screenWidth, screenHeight)
				text.Draw(screen, strconv.Itoa(int(port.Resource.Level)), face, int(px)+5, int(py)+12, color.Black)
			}
		}
	}
}

// drawBoard draws the checkerboard, the ports and the cables.
func drawBoard(screen *ebiten.Image, b *model.Board, cables model.Cables, face font.Face) {
	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Height(); y++ {
			clr := COLOR_CELL_DARK
			if (x+y)%2 == 0 {
				clr = COLOR_CELL_LIGHT
			}
			cellRect(screen, b, model.Coord{X: x, Y: y}, 0, clr)
		}
	}
	drawPorts(screen, b, face)
	for pos, c := range cables {
		drawCable(screen, b, pos, c)
	}
}

func drawCursor(screen *ebiten.Image, b *model.Board, pos model.Coord, alpha float64) {
	x, y := b.CoordToPixel(pos, screenWidth, screenHeight)
	clr := withAlpha(COLOR_CURSOR, alpha)
	const side = float64(model.CellPixels)
	ebitenutil.DrawRect(screen, x, y, side, 1, clr)
	ebitenutil.DrawRect(screen, x, y+side-1, side, 1, clr)
	ebitenutil.DrawRect(screen, x, y, 1, side, clr)
	ebitenutil.DrawRect(screen, x+side-1, y, 1, side, clr)
}

// drawRun draws the tips in flight, the cells they passed and any errors.
func drawRun(screen *ebiten.Image, r *sim.Runner, face font.Face) {
	f := r.Flooder
	for key := range f.Visited {
		cellRect(screen, f.Board, key.Pos, 6, COLOR_VISITED)
	}
	for _, tip := range f.Live() {
		cellRect(screen, f.Board, tip.Pos, 4, resourceColor(tip.Resource))
	}
	if errs, ok := r.Advance.(sim.Errors); ok {
		for i, e := range errs.Errs {
			cellRect(screen, f.Board, e.Pos, 1, COLOR_ERROR)
			text.Draw(screen, e.Error(), face, 8, 20+i*lineHeight, COLOR_ERROR)
		}
	}
}
