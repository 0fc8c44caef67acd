package main

import (
	"flag"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"

	"github.com/zucenko/conduit/controls"
	"github.com/zucenko/conduit/model"
)

// keymap binds keys to controls; the left mouse button is Select as well.
var keymap = map[ebiten.Key]controls.Control{
	ebiten.KeyEnter:   controls.Select,
	ebiten.KeyW:       controls.Up,
	ebiten.KeyUp:      controls.Up,
	ebiten.KeyA:       controls.Left,
	ebiten.KeyLeft:    controls.Left,
	ebiten.KeyS:       controls.Down,
	ebiten.KeyDown:    controls.Down,
	ebiten.KeyD:       controls.Right,
	ebiten.KeyRight:   controls.Right,
	ebiten.KeySpace:   controls.Start,
	ebiten.KeyTab:     controls.StepOnce,
	ebiten.KeyEscape:  controls.Escape,
	ebiten.KeyControl: controls.Ctrl,
}

// StrokeSource is a pointer device.
type StrokeSource interface {
	Position() (int, int)
	IsJustPressed() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// TouchStrokeSource follows the newest touch.
type TouchStrokeSource struct {
	ID    int
	valid bool
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustPressed() bool {
	ids := inpututil.JustPressedTouchIDs()
	if len(ids) == 0 {
		return false
	}
	t.ID, t.valid = ids[len(ids)-1], true
	return true
}

// EbitenSource turns the keyboard and the pointers into controls.Input.
// Board maps the pointer onto the grid; without one the cursor is invalid.
type EbitenSource struct {
	Mouse StrokeSource
	Touch *TouchStrokeSource
	Board *model.Board
}

func (s *EbitenSource) Poll() controls.Input {
	in := controls.Input{}
	for key, c := range keymap {
		if inpututil.IsKeyJustPressed(key) {
			in.Pressed = in.Pressed.With(c)
		}
		if ebiten.IsKeyPressed(key) {
			in.Held = in.Held.With(c)
		}
	}
	px, py := s.Pointer()
	if s.Mouse.IsJustPressed() {
		in.Pressed = in.Pressed.With(controls.Select)
	}
	if s.Touch.IsJustPressed() {
		in.Pressed = in.Pressed.With(controls.Select)
		px, py = s.Touch.Position()
	}
	if s.Board != nil {
		in.Cursor = s.Board.PixelToCoord(float64(px), float64(py), screenWidth, screenHeight)
		in.CursorValid = true
	}
	return in
}

// Pointer is the pointer position in screen pixels.
func (s *EbitenSource) Pointer() (int, int) {
	if s.Touch.valid && len(ebiten.TouchIDs()) > 0 {
		return s.Touch.Position()
	}
	return s.Mouse.Position()
}

// Boarded is a mode whose pointer maps onto a board.
type Boarded interface {
	Board() *model.Board
}

type Game struct {
	Assets      *Assets
	Stack       ModeStack
	Input       *EbitenSource
	Frame       uint64
	Tweens      map[*gween.Tween]*Action
	CursorAlpha float64
}

var theGame *Game

func NewGame(assets *Assets) *Game {
	g := &Game{
		Assets:      assets,
		Input:       &EbitenSource{Mouse: &MouseStrokeSource{}, Touch: &TouchStrokeSource{}},
		Tweens:      make(map[*gween.Tween]*Action),
		CursorAlpha: 1,
	}
	g.Stack.Push(NewModeLevelSelect(g))
	g.pulseCursor()
	return g
}

func (g *Game) update(screen *ebiten.Image) error {
	g.Frame++
	g.updateTweens()

	top := g.Stack.Top()
	g.Input.Board = nil
	if b, ok := top.(Boarded); ok {
		g.Input.Board = b.Board()
	}
	in := g.Input.Poll()
	if t := top.Update(in, g.Frame); g.Stack.Apply(t) {
		log.WithFields(log.Fields{"from": top.Kind().Name(), "to": g.Stack.Top().Kind().Name()}).Info("mode changed")
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if err := screen.Fill(color.RGBA{0x0b, 0x0b, 0x1a, 255}); err != nil {
		log.Errorf("fill: %v", err)
	}
	g.Stack.Top().Draw(screen)
	ebitenutil.DebugPrintAt(screen, g.Stack.Top().Kind().Name(), 2, screenHeight-16)
	return nil
}

func main() {
	cfgPath := flag.String("config", "", "yaml config file")
	flag.Parse()

	assets, err := Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	defer assets.Store.Close()
	theGame = NewGame(assets)
	if err := ebiten.Run(theGame.update, screenWidth, screenHeight, screenScale, "Conduit"); err != nil {
		log.Fatal(err)
	}
}
