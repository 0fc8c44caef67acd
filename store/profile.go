package store

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/model"
)

// Profile is the player's progress on top of a Store. It is what the
// editor saves commits through and what runs record wins through.
type Profile struct {
	mu    sync.Mutex
	store Store
}

func NewProfile(s Store) *Profile {
	return &Profile{store: s}
}

// getOrCreate returns the stored solution, or a fresh unsolved one built
// from b. Callers hold mu.
func (p *Profile) getOrCreate(levelKey string, b *model.Board) (*model.Solution, error) {
	soln, err := p.store.Get(levelKey)
	if errors.Is(err, ErrNotFound) {
		return model.NewSolution(levelKey, b), nil
	}
	return soln, err
}

// Solution returns what is stored for the level; ok is false when the
// level was never touched.
func (p *Profile) Solution(levelKey string) (*model.Solution, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	soln, err := p.store.Get(levelKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithField("level", levelKey).Warnf("could not read solution: %v", err)
		}
		return nil, false
	}
	return soln, true
}

// StartingBoard is the board a level opens with: the stored layout when
// there is one, else the level's own.
func (p *Profile) StartingBoard(l *levels.Level) *model.Board {
	if soln, ok := p.Solution(l.Filename); ok {
		log.WithField("level", l.Filename).Debug("resuming stored solution")
		return soln.Board(l.Board.Width)
	}
	return l.Board.Clone()
}

// SaveCables stores the board's current layout, keeping any metrics.
func (p *Profile) SaveCables(levelKey string, b *model.Board) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	soln, err := p.getOrCreate(levelKey, b)
	if err != nil {
		return err
	}
	soln.Cables = b.Cables.Clone()
	soln.Left, soln.Right = b.Left.Clone(), b.Right.Clone()
	return p.store.Save(soln)
}

// RecordWin stores the winning layout and its metrics and returns the
// metrics with the level's best cycle count filled in.
func (p *Profile) RecordWin(levelKey string, b *model.Board, m model.Metrics) (model.Metrics, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	soln, err := p.getOrCreate(levelKey, b)
	if err != nil {
		return m, err
	}
	soln.Cables = b.Cables.Clone()
	soln.Left, soln.Right = b.Left.Clone(), b.Right.Clone()
	soln.RecordWin(m)
	if err := p.store.Save(soln); err != nil {
		return *soln.Metrics, err
	}
	return *soln.Metrics, nil
}
