package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pulseFrames is half a period of the cursor pulse.
const pulseFrames = 40

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// next queues t to start when the tween of a finishes and returns the
// action to run with it.
func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return action
}

// updateTweens moves every tween one frame on.
func (g *Game) updateTweens() {
	for t, a := range g.Tweens {
		curr, finished := t.Update(1)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}

// pulseCursor fades the cursor out and back in, then starts over.
func (g *Game) pulseCursor() {
	setAlpha := func(v float32) { g.CursorAlpha = float64(v) }
	out := &Action{onChange: setAlpha}
	in := out.next(gween.New(0.35, 1, pulseFrames, ease.InOutSine))
	in.onChange = setAlpha
	in.addOnFinish(g.pulseCursor)
	g.Tweens[gween.New(1, 0.35, pulseFrames, ease.InOutSine)] = out
}
