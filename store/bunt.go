package store

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/buntdb"

	"github.com/zucenko/conduit/model"
)

// Bunt keeps solutions as JSON under "solution:<level key>:data".
type Bunt struct {
	db *buntdb.DB
}

func OpenBunt(path string) (*Bunt, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Bunt{db: db}, nil
}

func solutionKey(levelKey string) string {
	return fmt.Sprintf("solution:%s:data", levelKey)
}

func (b *Bunt) Get(levelKey string) (*model.Solution, error) {
	var soln *model.Solution
	err := b.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(solutionKey(levelKey))
		if err != nil {
			return err
		}
		soln = &model.Solution{}
		return json.Unmarshal([]byte(value), soln)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return soln, nil
}

func (b *Bunt) Save(soln *model.Solution) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		data, err := json.Marshal(soln)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(solutionKey(soln.LevelKey), string(data), nil)
		return err
	})
}

func (b *Bunt) List() ([]*model.Solution, error) {
	out := make([]*model.Solution, 0)
	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys("solution:*:data", func(key, value string) bool {
			soln := &model.Solution{}
			if err := json.Unmarshal([]byte(value), soln); err != nil {
				log.WithField("key", key).Errorf("unmarshalling solution failed: %v", err)
				return true
			}
			out = append(out, soln)
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Bunt) Close() error {
	return b.db.Close()
}
