package levels

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/conduit/model"
)

// ManifestFile lists the levels in play order, one key per line. A key
// ending in .txt names an ASCII board; anything else names <key>.json.
const ManifestFile = "manifest.txt"

//go:embed schema.json
var schemaJSON []byte

//go:embed data
var builtin embed.FS

// Level is a named starting board. Filename is the manifest key and doubles
// as the key solutions are stored under.
type Level struct {
	Filename string
	Name     string
	Board    *model.Board
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func levelSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("level.schema.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("level.schema.json")
	})
	return schema, schemaErr
}

// Builtin is the level set shipped with the game.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Open returns the level set in dir, or the builtin one for an empty dir.
func Open(dir string) fs.FS {
	if dir == "" {
		return Builtin()
	}
	return os.DirFS(dir)
}

// Parse decodes and validates one JSON level file.
func Parse(filename string, data []byte) (*Level, error) {
	s, err := levelSchema()
	if err != nil {
		return nil, fmt.Errorf("level schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("level %s: %w", filename, err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("level %s: %w", filename, err)
	}

	var head struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("level %s: %w", filename, err)
	}
	b := &model.Board{}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("level %s: %w", filename, err)
	}
	l := &Level{Filename: filename, Name: head.Name, Board: b}
	if err := l.Check(); err != nil {
		return nil, err
	}
	return l, nil
}

// Check looks for what the schema cannot: cables outside the cable area.
func (l *Level) Check() error {
	if l.Board.Height() == 0 {
		return fmt.Errorf("level %s: no ports", l.Filename)
	}
	for pos := range l.Board.Cables {
		if !l.Board.IsInCableArea(pos) {
			return fmt.Errorf("level %s: cable at %v is outside the %dx%d cable area",
				l.Filename, pos, l.Board.Width, l.Board.Height())
		}
	}
	return nil
}

// Load reads every level the manifest in fsys names, in order.
func Load(fsys fs.FS) ([]*Level, error) {
	manifest, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("level manifest: %w", err)
	}
	levels := make([]*Level, 0)
	scanner := bufio.NewScanner(bytes.NewReader(manifest))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var l *Level
		if strings.HasSuffix(line, ".txt") {
			f, err := fsys.Open(line)
			if err != nil {
				return nil, fmt.Errorf("level %s: %w", line, err)
			}
			l, err = ParseASCII(strings.TrimSuffix(line, ".txt"), f)
			f.Close()
			if err != nil {
				return nil, err
			}
		} else {
			data, err := fs.ReadFile(fsys, path.Clean(line)+".json")
			if err != nil {
				return nil, fmt.Errorf("level %s: %w", line, err)
			}
			if l, err = Parse(line, data); err != nil {
				return nil, err
			}
		}
		levels = append(levels, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("level manifest: %w", err)
	}
	log.WithField("count", len(levels)).Debug("levels loaded")
	return levels, nil
}

// Find returns the level with the given key.
func Find(levels []*Level, key string) (*Level, bool) {
	for _, l := range levels {
		if l.Filename == key {
			return l, true
		}
	}
	return nil, false
}
