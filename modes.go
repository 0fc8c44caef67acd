package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/conduit/controls"
	"github.com/zucenko/conduit/editor"
	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/menu"
	"github.com/zucenko/conduit/model"
	"github.com/zucenko/conduit/sim"
)

type ModeLevelSelect struct {
	game     *Game
	box      *TextBox
	advanced bool
	hovered  int
	lastPx   int
	lastPy   int
}

func NewModeLevelSelect(g *Game) *ModeLevelSelect {
	m := &ModeLevelSelect{
		game: g,
		box: &TextBox{
			Frame:   NewNine(g.Assets.Frame, frameBorder),
			Face:    g.Assets.Font,
			Color:   COLOR_TEXT,
			Columns: 60,
			Rows:    len(g.Assets.Levels) + menu.HeaderLines,
		},
	}
	m.OnResume()
	return m
}

func (m *ModeLevelSelect) Kind() ModeKind { return LEVEL_SELECT }

func (m *ModeLevelSelect) OnResume() {
	m.box.Text = menu.LevelSelectText(m.game.Assets.Levels, m.game.Assets.Profile, m.advanced)
}

func (m *ModeLevelSelect) Update(in controls.Input, frame uint64) Transition {
	if advanced := in.IsHeld(controls.Ctrl); advanced != m.advanced {
		m.advanced = advanced
		m.OnResume()
	}
	count := len(m.game.Assets.Levels)
	if px, py := m.game.Input.Pointer(); px != m.lastPx || py != m.lastPy {
		m.lastPx, m.lastPy = px, py
		if idx, ok := menu.LevelAtLine(m.box.LineAt(py), count); ok {
			m.hovered = idx
		}
	}
	switch {
	case in.ClickedDown(controls.Up) && m.hovered > 0:
		m.hovered--
	case in.ClickedDown(controls.Down) && m.hovered < count-1:
		m.hovered++
	}
	if in.ClickedDown(controls.Select) && count > 0 {
		return Transition{Push: NewModePlaying(m.game, m.hovered)}
	}
	return Transition{}
}

func (m *ModeLevelSelect) Draw(screen *ebiten.Image) {
	m.box.DrawAt(screen, 0)
	x, y := m.box.Corner()
	line := m.hovered + menu.HeaderLines
	text.Draw(screen, ">", m.game.Assets.Font, x+2, y+textPadding+line*lineHeight+fontSize, COLOR_TEXT)
}

type ModePlaying struct {
	game     *Game
	levelIdx int
	level    *levels.Level
	Playing  *editor.Playing
	last     editor.Result
}

func NewModePlaying(g *Game, idx int) *ModePlaying {
	l := g.Assets.Levels[idx]
	b := g.Assets.Profile.StartingBoard(l)
	log.WithFields(log.Fields{"level": l.Filename, "cables": len(b.Cables)}).Info("level started")
	return &ModePlaying{
		game:     g,
		levelIdx: idx,
		level:    l,
		Playing:  editor.NewPlaying(l.Filename, l.Name, b, g.Assets.Profile),
	}
}

func (m *ModePlaying) Kind() ModeKind { return PLAYING }

func (m *ModePlaying) Board() *model.Board { return m.Playing.Board }

func (m *ModePlaying) Update(in controls.Input, frame uint64) Transition {
	if !m.Playing.Editing() {
		if in.ClickedDown(controls.Escape) {
			return Transition{Pop: 1}
		}
		var method sim.Advance
		switch {
		case in.ClickedDown(controls.Start):
			method = sim.ByFrames{StartFrame: frame, Interval: m.game.Assets.Config.Sim.StepFrames}
		case in.ClickedDown(controls.StepOnce):
			method = sim.OnDemand{}
		}
		if method != nil {
			if runner, ok := m.Playing.Simulate(method, m.game.Assets.Profile); ok {
				runner.FastInterval = m.game.Assets.Config.Sim.FastStepFrames
				if _, single := method.(sim.OnDemand); single {
					runner.Step()
				}
				return Transition{Push: &ModeSimulating{game: m.game, levelIdx: m.levelIdx, runner: runner}}
			}
		}
	}
	m.last = m.Playing.HandleSelection(in)
	return Transition{}
}

func (m *ModePlaying) Draw(screen *ebiten.Image) {
	face := m.game.Assets.Font
	drawBoard(screen, m.Playing.Board, m.Playing.Cables(), face)
	drawCursor(screen, m.Playing.Board, m.Playing.Cursor, m.game.CursorAlpha)
	text.Draw(screen, m.level.Name, face, 8, 12, COLOR_TEXT)
	hint := "ENTER/CLICK: EDIT   SPACE: RUN   TAB: STEP   ESC: LEVELS"
	if m.Playing.Editing() {
		hint = "DRAG TO LAY CABLE   ENTER/CLICK: DONE"
	}
	text.Draw(screen, hint, face, 8, screenHeight-24, COLOR_TEXT)
	if m.last.Blocked() {
		text.Draw(screen, m.last.Name(), face, screenWidth-100, 12, COLOR_ERROR)
	}
}

type ModeSimulating struct {
	game     *Game
	levelIdx int
	runner   *sim.Runner
	winBox   *TextBox
}

func (m *ModeSimulating) Kind() ModeKind { return SIMULATING }

func (m *ModeSimulating) Board() *model.Board { return m.runner.Flooder.Board }

func (m *ModeSimulating) Update(in controls.Input, frame uint64) Transition {
	if in.ClickedDown(controls.Escape) {
		return Transition{Pop: 1}
	}
	m.runner.Update(in, frame)
	if m.runner.WinReady() && in.ClickedDown(controls.Select) {
		next, idx, ok := menu.Next(m.game.Assets.Levels, m.levelIdx)
		if !ok {
			return Transition{Pop: 2, Push: &ModeEnding{game: m.game}}
		}
		log.WithField("level", next.Filename).Info("next level")
		return Transition{Pop: 2, Push: NewModePlaying(m.game, idx)}
	}
	return Transition{}
}

func (m *ModeSimulating) Draw(screen *ebiten.Image) {
	face := m.game.Assets.Font
	f := m.runner.Flooder
	drawBoard(screen, f.Board, f.Board.Cables, face)
	drawRun(screen, m.runner, face)
	text.Draw(screen, fmt.Sprintf("CYCLE %d  %s", f.Cycles, m.runner.Advance.Name()), face, 8, 12, COLOR_TEXT)

	win, ok := m.runner.Advance.(sim.WinScreen)
	if !ok {
		return
	}
	if m.winBox == nil {
		m.winBox = &TextBox{
			Frame:   NewNine(m.game.Assets.Frame, frameBorder),
			Face:    face,
			Color:   COLOR_TEXT,
			Text:    win.Text,
			Columns: 26,
			Rows:    5,
		}
	}
	// slides up from below the screen
	m.winBox.DrawAt(screen, int(float32(screenHeight)*(1-m.runner.WinProgress)))
}

type ModeEnding struct {
	game *Game
	box  *TextBox
}

func (m *ModeEnding) Kind() ModeKind { return ENDING }

func (m *ModeEnding) Update(in controls.Input, frame uint64) Transition {
	if in.ClickedDown(controls.Escape) {
		return Transition{Pop: 1}
	}
	return Transition{}
}

func (m *ModeEnding) Draw(screen *ebiten.Image) {
	if m.box == nil {
		m.box = &TextBox{
			Frame:   NewNine(m.game.Assets.Frame, frameBorder),
			Face:    m.game.Assets.Font,
			Color:   COLOR_TEXT,
			Text:    menu.EndingText,
			Columns: 30,
			Rows:    11,
		}
	}
	m.box.DrawAt(screen, 0)
}
