package editor

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/conduit/controls"
	"github.com/zucenko/conduit/model"
	"github.com/zucenko/conduit/sim"
)

// Move is one entry of the drag path: the cell left and the direction it
// was left in.
type Move struct {
	Pos model.Coord
	Dir model.Dir
}

// Selection is an edit in progress. Cables starts as a copy of the board's
// cables and only replaces them on commit.
type Selection struct {
	History []Move
	Cables  model.Cables
}

func (s *Selection) last() (Move, bool) {
	if len(s.History) == 0 {
		return Move{}, false
	}
	return s.History[len(s.History)-1], true
}

type Result int

const (
	Idle Result = iota
	CursorMoved
	Started
	Extended
	Backtracked
	PickedUp
	Committed
	Discarded
	// the rest leave the selection as it was
	NoMove
	TooFast
	BadDirection
	Occupied
	OutOfBounds
	TargetTaken
)

func (r Result) Name() string {
	switch r {
	case Idle:
		return "IDLE"
	case CursorMoved:
		return "CURSOR_MOVED"
	case Started:
		return "STARTED"
	case Extended:
		return "EXTENDED"
	case Backtracked:
		return "BACKTRACKED"
	case PickedUp:
		return "PICKED_UP"
	case Committed:
		return "COMMITTED"
	case Discarded:
		return "DISCARDED"
	case NoMove:
		return "NO_MOVE"
	case TooFast:
		return "TOO_FAST"
	case BadDirection:
		return "BAD_DIRECTION"
	case Occupied:
		return "OCCUPIED"
	case OutOfBounds:
		return "OUT_OF_BOUNDS"
	case TargetTaken:
		return "TARGET_TAKEN"
	default:
		return fmt.Sprintf("N/A(%d)", r)
	}
}

// Blocked is true for results that refused an edit.
func (r Result) Blocked() bool {
	return r >= BadDirection
}

// Committer is the persistence hook called after every commit.
type Committer interface {
	SaveCables(levelKey string, b *model.Board) error
}

// Playing is the editing mode of a level: the committed board, the cursor
// and at most one selection.
type Playing struct {
	LevelKey  string
	LevelName string
	Board     *model.Board
	// Cursor is where the drag head is while editing.
	Cursor    model.Coord
	Selection *Selection
	Committer Committer
}

func NewPlaying(levelKey, levelName string, b *model.Board, c Committer) *Playing {
	return &Playing{
		LevelKey:  levelKey,
		LevelName: levelName,
		Board:     b,
		Cursor:    model.Coord{X: 0, Y: 0},
		Committer: c,
	}
}

// Editing is true while a selection exists.
func (p *Playing) Editing() bool {
	return p.Selection != nil
}

// Cables are the cables to show: the selection's while editing.
func (p *Playing) Cables() model.Cables {
	if p.Selection != nil {
		return p.Selection.Cables
	}
	return p.Board.Cables
}

func (p *Playing) occupiedAt(pos model.Coord) bool {
	if _, ok := p.Board.Cables[pos]; ok {
		return true
	}
	_, _, ok := p.Board.GetPort(pos)
	return ok
}

// target is where the controls point this tick.
func (p *Playing) target(in controls.Input) (model.Coord, bool) {
	if d, ok := in.MoveDir(); ok {
		return p.Cursor.Add(d), true
	}
	if in.CursorValid {
		return in.Cursor, true
	}
	return model.Coord{}, false
}

// HandleSelection runs one tick of editing. While editing, the move is
// measured from the drag head, which only moves on a successful edit.
func (p *Playing) HandleSelection(in controls.Input) Result {
	if p.Selection == nil {
		res := Idle
		if next, ok := p.target(in); ok && next != p.Cursor && p.Board.IsInBoard(next) {
			p.Cursor = next
			res = CursorMoved
		}
		if in.ClickedDown(controls.Select) {
			log.Debugf("select at %v", p.Cursor)
			if p.occupiedAt(p.Cursor) {
				p.Selection = &Selection{
					History: make([]Move, 0),
					Cables:  p.Board.Cables.Clone(),
				}
				return Started
			}
		}
		return res
	}

	if in.ClickedDown(controls.Select) {
		p.commit()
		return Committed
	}
	next, ok := p.target(in)
	if !ok || next == p.Cursor {
		return NoMove
	}
	res := p.drag(next)
	if res.Blocked() {
		log.WithFields(log.Fields{"from": p.Cursor, "to": next}).Debugf("failed to place cable: %s", res.Name())
	}
	return res
}

func (p *Playing) commit() {
	sel := p.Selection
	p.Selection = nil
	p.Board.Cables = sel.Cables
	log.WithFields(log.Fields{"level": p.LevelKey, "cables": len(sel.Cables)}).Info("selection committed")
	if p.Committer != nil {
		if err := p.Committer.SaveCables(p.LevelKey, p.Board); err != nil {
			log.WithField("level", p.LevelKey).Warnf("could not save solution: %v", err)
		}
	}
}

// drag moves the selection head from the cursor to next.
func (p *Playing) drag(next model.Coord) Result {
	sel := p.Selection
	cur := p.Cursor
	dir, ok := cur.DirTo(next)
	if !ok {
		return TooFast
	}

	if cable, ok := sel.Cables[cur]; ok {
		backtrack, toPort, pickup := false, false, false
		if last, ok := sel.last(); ok {
			if last.Pos == next {
				backtrack = true
				_, _, toPort = p.Board.GetPort(next)
			}
		} else {
			pickup = p.pickingUp(cur, next, dir, cable)
		}

		if backtrack || pickup {
			if cable.Shape == model.Crossover {
				// keep only the axis we are not backing out of
				horizontal := !dir.IsHorizontal()
				kind := cable.VertKind
				if horizontal {
					kind = cable.HorizKind
				}
				sel.Cables[cur] = model.NewStraight(kind, horizontal)
			} else {
				delete(sel.Cables, cur)
			}
			p.Cursor = next
			if toPort {
				p.commit()
				return Committed
			}
			if backtrack {
				sel.History = sel.History[:len(sel.History)-1]
				return Backtracked
			}
			log.Debugf("picked up cable at %v", cur)
			return PickedUp
		}
	}
	return p.extend(cur, next, dir)
}

// pickingUp: with nothing dragged yet, leaving a cable along a side that is
// already joined to next pulls the cable up instead of adding another one,
// as long as the cable still has a free end.
func (p *Playing) pickingUp(cur, next model.Coord, dir model.Dir, cable model.Cable) bool {
	if !cable.Outputs().Has(dir) {
		return false
	}
	connected := false
	if target, ok := p.Selection.Cables[next]; ok {
		connected = target.Outputs().Has(dir.Flip())
	} else if _, facing, ok := p.Board.GetPort(next); ok {
		connected = facing == dir.Flip()
	}
	if !connected {
		return false
	}
	occupied, _ := FullyOccupied(cur, p.Selection.Cables, p.Board, false)
	return !occupied
}

func (p *Playing) extend(cur, next model.Coord, dir model.Dir) Result {
	sel := p.Selection
	cable, hasCable := sel.Cables[cur]
	port, _, hasPort := p.Board.GetPort(cur)
	if !hasCable && !hasPort {
		// the head lost its cable; nothing sensible to continue from
		log.Warnf("selection head %v has no cable or port, discarding", cur)
		p.Selection = nil
		return Discarded
	}
	last, dragging := sel.last()

	okDir := true
	switch {
	case hasCable && cable.Shape == model.Crossover && dragging:
		okDir = last.Dir == dir
	case hasCable && dragging:
		okDir = last.Dir.Flip() != dir
	case !hasCable:
		// only outwards from a port
		okDir = (cur.X == -1 && dir == model.East) || (cur.X == p.Board.Width && dir == model.West)
	}
	if !okDir {
		return BadDirection
	}
	if occupied, _ := FullyOccupied(cur, sel.Cables, p.Board, true); occupied {
		return Occupied
	}
	_, _, nextIsPort := p.Board.GetPort(next)
	if !p.Board.IsInCableArea(next) && !nextIsPort {
		return OutOfBounds
	}

	kind := cable.KindToward(dir)
	if !hasCable {
		kind = port.AppropriateCable()
	}

	var newCur *model.Cable
	if hasCable && cable.Shape != model.Crossover && dragging {
		// we entered through last.Dir flipped
		c := model.FromDirs(kind, dir, last.Dir.Flip())
		newCur = &c
	}

	target, hasTarget := sel.Cables[next]
	switch {
	case !hasTarget:
		// never put a cable on top of a port
		if !nextIsPort {
			sel.Cables[next] = model.NewStraight(kind, dir.IsHorizontal())
		}
	case target.Shape == model.Straight && target.Horizontal != dir.IsHorizontal():
		h, v := kind, target.Kind
		if target.Horizontal {
			h, v = target.Kind, kind
		}
		sel.Cables[next] = model.NewCrossover(h, v)
	default:
		return TargetTaken
	}

	if newCur != nil {
		sel.Cables[cur] = *newCur
	}
	sel.History = append(sel.History, Move{Pos: cur, Dir: dir})
	p.Cursor = next

	if occupied, _ := FullyOccupied(next, sel.Cables, p.Board, true); nextIsPort || occupied {
		// reached a port or closed a gap
		p.commit()
		return Committed
	}
	return Extended
}

// Simulate starts a run over the committed board. Runs cannot start while
// a selection is being edited.
func (p *Playing) Simulate(method sim.Advance, rec sim.Recorder) (*sim.Runner, bool) {
	if p.Selection != nil {
		return nil, false
	}
	log.WithFields(log.Fields{"level": p.LevelKey, "method": method.Name()}).Info("starting run")
	return sim.NewRunner(p.LevelKey, p.Board, method, rec), true
}
