package store

import (
	"errors"
	"fmt"

	"github.com/zucenko/conduit/model"
)

var ErrNotFound = errors.New("solution not found")

// Store keeps one Solution per level key.
type Store interface {
	// Get returns ErrNotFound when nothing is stored for the level.
	Get(levelKey string) (*model.Solution, error)
	Save(s *model.Solution) error
	// List returns every stored solution ordered by level key.
	List() ([]*model.Solution, error)
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverBunt   = "buntdb"
)

// Open opens the store for the configured driver. Both drivers accept
// ":memory:" as path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverBunt:
		return OpenBunt(path)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
