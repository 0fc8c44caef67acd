package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/zucenko/conduit/model"
)

// SQLite stores each solution as a zstd compressed JSON blob, with the
// metrics copied into columns for listing.
type SQLite struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection, so :memory: stays a single database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS solutions (
		level_key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		solved INTEGER NOT NULL DEFAULT 0,
		total_cycles INTEGER NOT NULL DEFAULT 0,
		min_cycles INTEGER NOT NULL DEFAULT 0,
		crossovers INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);`)
	return err
}

func (s *SQLite) decode(blob []byte) (*model.Solution, error) {
	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress solution: %w", err)
	}
	var soln model.Solution
	if err := json.Unmarshal(raw, &soln); err != nil {
		return nil, err
	}
	return &soln, nil
}

func (s *SQLite) Get(levelKey string) (*model.Solution, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT data FROM solutions WHERE level_key = ?`, levelKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.decode(blob)
}

func (s *SQLite) Save(soln *model.Solution) error {
	raw, err := json.Marshal(soln)
	if err != nil {
		return err
	}
	blob := s.enc.EncodeAll(raw, nil)
	var m model.Metrics
	solved := 0
	if soln.Metrics != nil {
		m, solved = *soln.Metrics, 1
	}
	_, err = s.db.Exec(`INSERT INTO solutions
		(level_key, data, solved, total_cycles, min_cycles, crossovers, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(level_key) DO UPDATE SET
			data = excluded.data,
			solved = excluded.solved,
			total_cycles = excluded.total_cycles,
			min_cycles = excluded.min_cycles,
			crossovers = excluded.crossovers,
			updated_at = excluded.updated_at`,
		soln.LevelKey, blob, solved, int64(m.TotalCycles), int64(m.MinCycles), int64(m.Crossovers),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLite) List() ([]*model.Solution, error) {
	rows, err := s.db.Query(`SELECT data FROM solutions ORDER BY level_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Solution, 0)
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		soln, err := s.decode(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, soln)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	s.dec.Close()
	_ = s.enc.Close()
	return s.db.Close()
}
