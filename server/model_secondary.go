package server

import (
	"fmt"

	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/model"
	"github.com/zucenko/conduit/sim"
)

// layout puts the proposed cables on a copy of the level's board. The
// level's own cables are replaced, not merged.
func layout(l *levels.Level, placed []model.PlacedCable) (*model.Board, error) {
	b := l.Board.Clone()
	b.Cables = model.Cables{}
	for _, pc := range placed {
		if _, dup := b.Cables[pc.Pos]; dup {
			return nil, fmt.Errorf("two cables at %v", pc.Pos)
		}
		if !b.Place(pc.Pos, pc.Cable) {
			return nil, fmt.Errorf("cable at %v is outside the %dx%d cable area", pc.Pos, b.Width, b.Height())
		}
	}
	return b, nil
}

func tipViews(f *sim.FloodFiller) []model.TipView {
	live := f.Live()
	views := make([]model.TipView, 0, len(live))
	for _, tip := range live {
		views = append(views, model.TipView{Pos: tip.Pos, Facing: tip.Facing, Resource: tip.Resource})
	}
	return views
}

func errorViews(errs []sim.FloodFillError) []model.StepError {
	views := make([]model.StepError, 0, len(errs))
	for _, e := range errs {
		views = append(views, model.StepError{
			Kind:     e.Kind.Name(),
			Pos:      e.Pos,
			Expected: e.Expected,
			Message:  e.Error(),
		})
	}
	return views
}

func stepView(f *sim.FloodFiller, errs []sim.FloodFillError) model.Step {
	return model.Step{
		Cycle:  f.Cycles,
		Tips:   tipViews(f),
		Errors: errorViews(errs),
	}
}
