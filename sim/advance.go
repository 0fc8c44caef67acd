package sim

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/conduit/controls"
	"github.com/zucenko/conduit/model"
)

const (
	// StepFrames is the standard time for one step in frames.
	StepFrames uint64 = 30
	// FastStepFrames is the step time while Ctrl is held.
	FastStepFrames uint64 = 10
	// frames for the win box to slide fully in
	winBoxFrames = 15
	winTextWidth = 25
)

// Advance is how the run moves on: ByFrames, OnDemand, Errors or WinScreen.
type Advance interface {
	isAdvance()
	Name() string
}

// ByFrames steps once every Interval frames counted from StartFrame.
type ByFrames struct {
	StartFrame uint64
	Interval   uint64
}

// OnDemand steps only when StepOnce is pressed.
type OnDemand struct{}

// Errors halts the run showing what went wrong.
type Errors struct {
	Errs []FloodFillError
}

// WinScreen halts the run showing the metrics.
type WinScreen struct {
	Metrics model.Metrics
	Text    string
}

func (ByFrames) isAdvance()  {}
func (OnDemand) isAdvance()  {}
func (Errors) isAdvance()    {}
func (WinScreen) isAdvance() {}

func (ByFrames) Name() string  { return "BY_FRAMES" }
func (OnDemand) Name() string  { return "ON_DEMAND" }
func (Errors) Name() string    { return "ERRORS" }
func (WinScreen) Name() string { return "WIN_SCREEN" }

// Halted is true for the terminal methods that never step again.
func Halted(a Advance) bool {
	switch a.(type) {
	case Errors, WinScreen:
		return true
	}
	return false
}

// Recorder is the persistence hook called once a run wins. It returns the
// metrics as stored, with MinCycles filled in.
type Recorder interface {
	RecordWin(levelKey string, b *model.Board, m model.Metrics) (model.Metrics, error)
}

// Runner layers cadence over a FloodFiller.
type Runner struct {
	LevelKey     string
	Flooder      *FloodFiller
	Advance      Advance
	Interval     uint64
	// FastInterval replaces the interval while Ctrl is held.
	FastInterval uint64
	Recorder     Recorder

	// WinProgress goes from 0 to 1 as the win box slides in.
	WinProgress float32
	winTween    *gween.Tween
}

func NewRunner(levelKey string, b *model.Board, method Advance, rec Recorder) *Runner {
	interval := StepFrames
	if bf, ok := method.(ByFrames); ok && bf.Interval > 0 {
		interval = bf.Interval
	}
	return &Runner{
		LevelKey:     levelKey,
		Flooder:      NewFloodFiller(b),
		Advance:      method,
		Interval:     interval,
		FastInterval: FastStepFrames,
		Recorder:     rec,
	}
}

// HandleAdvance updates the advancing method from the controls and reports
// whether to step this frame.
func (r *Runner) HandleAdvance(in controls.Input, frame uint64) bool {
	if Halted(r.Advance) {
		return false
	}
	if in.ClickedDown(controls.StepOnce) {
		r.Advance = OnDemand{}
		return true
	}
	switch a := r.Advance.(type) {
	case ByFrames:
		if in.ClickedDown(controls.Start) {
			// pause
			r.Advance = OnDemand{}
			return false
		}
		interval := a.Interval
		if interval == 0 {
			interval = r.Interval
		}
		if in.IsHeld(controls.Ctrl) && r.FastInterval > 0 {
			interval = r.FastInterval
		}
		return (frame-a.StartFrame)%interval == 0
	case OnDemand:
		if in.ClickedDown(controls.Start) {
			// back to automatic play
			r.Advance = ByFrames{StartFrame: frame, Interval: r.Interval}
			return true
		}
	}
	return false
}

// Step runs one router step unless the run is halted.
func (r *Runner) Step() []FloodFillError {
	if Halted(r.Advance) {
		return nil
	}
	errs := r.Flooder.Step()
	if len(errs) > 0 {
		log.WithFields(log.Fields{"level": r.LevelKey, "cycle": r.Flooder.Cycles}).
			Infof("run halted with %d errors", len(errs))
		r.Advance = Errors{Errs: errs}
		return errs
	}
	if r.Flooder.DidWin() {
		r.win()
	}
	return errs
}

func (r *Runner) win() {
	m := r.Flooder.Metrics()
	m.MinCycles = m.TotalCycles
	if r.Recorder != nil {
		stored, err := r.Recorder.RecordWin(r.LevelKey, r.Flooder.Board, m)
		if err != nil {
			log.WithField("level", r.LevelKey).Warnf("could not record win: %v", err)
		} else {
			m = stored
		}
	}
	log.WithFields(log.Fields{
		"level":      r.LevelKey,
		"cycles":     m.TotalCycles,
		"crossovers": m.Crossovers,
	}).Info("level solved")
	r.Advance = WinScreen{Metrics: m, Text: WinText(m)}
	r.WinProgress = 0
	r.winTween = gween.New(0, 1, winBoxFrames, ease.OutQuad)
}

// Update runs one frame: advance the win box, or step when the cadence
// says so. It reports whether a step happened.
func (r *Runner) Update(in controls.Input, frame uint64) bool {
	if _, ok := r.Advance.(WinScreen); ok {
		if r.winTween != nil {
			p, done := r.winTween.Update(1)
			r.WinProgress = p
			if done {
				r.WinProgress = 1
				r.winTween = nil
			}
		}
		return false
	}
	if r.HandleAdvance(in, frame) {
		r.Step()
		return true
	}
	return false
}

// WinReady is true once the win box is fully in view.
func (r *Runner) WinReady() bool {
	_, ok := r.Advance.(WinScreen)
	return ok && r.WinProgress > 0.999
}

func dotted(label string, v uint64) string {
	num := strconv.FormatUint(v, 10)
	pad := winTextWidth - len(label) - len(num)
	if pad < 0 {
		pad = 0
	}
	return label + strings.Repeat(".", pad) + num
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

// WinText lays out the metrics for the win box.
func WinText(m model.Metrics) string {
	return fmt.Sprintf("%s\n%s\n%s\n\n%s",
		dotted("TOTAL CYCLES:", m.TotalCycles),
		dotted("MIN CYCLES:", m.MinCycles),
		dotted("CROSSOVERS:", m.Crossovers),
		center("CLICK TO CONTINUE", winTextWidth),
	)
}
