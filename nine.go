package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/text"
	"golang.org/x/image/font"
)

// Nine draws a box from a 9-patch image: the corners keep their size, the
// edges and the centre stretch.
type Nine struct {
	image               *ebiten.Image
	border              int
	alpha               float64
	R, G, B             float64
	x, y, width, height int
}

func NewNine(img *ebiten.Image, border int) *Nine {
	return &Nine{image: img, border: border, alpha: 1, R: 1, G: 1, B: 1}
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
}

// spans cuts [0,size) of the source and [at,at+length) of the target into
// the three patch bands.
func spans(size, border, at, length int) (src, dst [3][2]int) {
	src = [3][2]int{{0, border}, {border, size - border}, {size - border, size}}
	dst = [3][2]int{{at, at + border}, {at + border, at + length - border}, {at + length - border, at + length}}
	return
}

func (n *Nine) Draw(screen *ebiten.Image) {
	w, h := n.image.Size()
	srcX, dstX := spans(w, n.border, n.x, n.width)
	srcY, dstY := spans(h, n.border, n.y, n.height)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sw := srcX[col][1] - srcX[col][0]
			sh := srcY[row][1] - srcY[row][0]
			dw := dstX[col][1] - dstX[col][0]
			dh := dstY[row][1] - dstY[row][0]
			if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(dw)/float64(sw), float64(dh)/float64(sh))
			op.GeoM.Translate(float64(dstX[col][0]), float64(dstY[row][0]))
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			patch := n.image.SubImage(image.Rect(srcX[col][0], srcY[row][0], srcX[col][1], srcY[row][1])).(*ebiten.Image)
			screen.DrawImage(patch, op)
		}
	}
}

// TextBox is a framed block of text centred on the screen.
type TextBox struct {
	Frame *Nine
	Face  font.Face
	Color color.Color
	Text  string
	// Columns and Rows size the box in characters and lines.
	Columns, Rows int
}

func (tb *TextBox) Corner() (int, int) {
	w, h := tb.Size()
	return (screenWidth - w) / 2, (screenHeight - h) / 2
}

func (tb *TextBox) Size() (int, int) {
	return tb.Columns*charWidth + 2*textPadding, tb.Rows*lineHeight + 2*textPadding
}

// LineAt is the text line under the pixel row.
func (tb *TextBox) LineAt(py int) int {
	_, cy := tb.Corner()
	off := py - cy - textPadding
	if off < 0 {
		return -1
	}
	return off / lineHeight
}

// DrawAt draws the box with its corner dy pixels below the centred spot.
func (tb *TextBox) DrawAt(screen *ebiten.Image, dy int) {
	x, y := tb.Corner()
	w, h := tb.Size()
	tb.Frame.SetPosition(x, y+dy)
	tb.Frame.SetSize(w, h)
	tb.Frame.Draw(screen)
	drawLines(screen, tb.Text, tb.Face, x+textPadding, y+dy+textPadding, tb.Color)
}

func drawLines(screen *ebiten.Image, s string, face font.Face, x, y int, clr color.Color) {
	line := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			text.Draw(screen, s[start:i], face, x, y+line*lineHeight+fontSize, clr)
			line++
			start = i + 1
		}
	}
}
