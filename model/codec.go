package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The JSON forms are externally tagged, the same shape the level files use:
//
//	"Water", {"Electricity": 5}
//	{"Source": "Fuel"}
//	{"Straight": {"kind": "Pipe", "horizontal": true}}
//	{"Bent": {"kind": "Wire", "ccw_dir": "North"}}
//	{"Crossover": {"horiz_kind": "Pipe", "vert_kind": "Wire"}}
//
// Cable maps are keyed by "x,y".

func (c Coord) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)), nil
}

func (c *Coord) UnmarshalText(b []byte) error {
	parts := strings.Split(string(b), ",")
	if len(parts) != 2 {
		return fmt.Errorf("bad coord %q", b)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("bad coord %q: %w", b, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("bad coord %q: %w", b, err)
	}
	c.X, c.Y = x, y
	return nil
}

func parseDir(s string) (Dir, error) {
	for _, d := range Dirs {
		if d.Name() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Dir) MarshalText() ([]byte, error) {
	if d < East || d > North {
		return nil, fmt.Errorf("invalid direction %d", d)
	}
	return []byte(d.Name()), nil
}

func (d *Dir) UnmarshalText(b []byte) error {
	v, err := parseDir(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (k CableKind) MarshalText() ([]byte, error) {
	switch k {
	case Pipe, Wire:
		return []byte(k.Name()), nil
	}
	return nil, fmt.Errorf("invalid cable kind %d", k)
}

func (k *CableKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Pipe":
		*k = Pipe
	case "Wire":
		*k = Wire
	default:
		return fmt.Errorf("unknown cable kind %q", b)
	}
	return nil
}

func (r Resource) MarshalJSON() ([]byte, error) {
	switch r.Type {
	case Water, Fuel:
		return json.Marshal(r.Type.Name())
	case Electricity, Data:
		return json.Marshal(map[string]uint8{r.Type.Name(): r.Level})
	}
	return nil, fmt.Errorf("invalid resource type %d", r.Type)
}

func (r *Resource) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		switch name {
		case "Water":
			*r = WaterRes()
		case "Fuel":
			*r = FuelRes()
		default:
			return fmt.Errorf("unknown resource %q", name)
		}
		return nil
	}
	var tagged map[string]uint8
	if err := json.Unmarshal(b, &tagged); err != nil {
		return fmt.Errorf("resource: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("resource must have exactly one tag, got %s", b)
	}
	for name, level := range tagged {
		switch name {
		case "Electricity":
			*r = ElectricityRes(level)
		case "Data":
			*r = DataRes(level)
		default:
			return fmt.Errorf("unknown resource %q", name)
		}
	}
	return nil
}

func (p Port) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case Source, Sink:
		return json.Marshal(map[string]Resource{p.Type.Name(): p.Resource})
	}
	return nil, fmt.Errorf("invalid port type %d", p.Type)
}

func (p *Port) UnmarshalJSON(b []byte) error {
	var tagged map[string]Resource
	if err := json.Unmarshal(b, &tagged); err != nil {
		return fmt.Errorf("port: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("port must have exactly one tag, got %s", b)
	}
	for name, res := range tagged {
		switch name {
		case "Source":
			*p = Port{Type: Source, Resource: res}
		case "Sink":
			*p = Port{Type: Sink, Resource: res}
		default:
			return fmt.Errorf("unknown port %q", name)
		}
	}
	return nil
}

type straightJSON struct {
	Kind       CableKind `json:"kind"`
	Horizontal bool      `json:"horizontal"`
}

type bentJSON struct {
	Kind   CableKind `json:"kind"`
	CCWDir Dir       `json:"ccw_dir"`
}

type crossoverJSON struct {
	HorizKind CableKind `json:"horiz_kind"`
	VertKind  CableKind `json:"vert_kind"`
}

func (c Cable) MarshalJSON() ([]byte, error) {
	switch c.Shape {
	case Straight:
		return json.Marshal(map[string]straightJSON{"Straight": {c.Kind, c.Horizontal}})
	case Bent:
		return json.Marshal(map[string]bentJSON{"Bent": {c.Kind, c.CCWDir}})
	case Crossover:
		return json.Marshal(map[string]crossoverJSON{"Crossover": {c.HorizKind, c.VertKind}})
	}
	return nil, fmt.Errorf("invalid cable shape %d", c.Shape)
}

func (c *Cable) UnmarshalJSON(b []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(b, &tagged); err != nil {
		return fmt.Errorf("cable: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("cable must have exactly one tag, got %s", b)
	}
	for name, raw := range tagged {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		switch name {
		case "Straight":
			var s straightJSON
			if err := dec.Decode(&s); err != nil {
				return fmt.Errorf("straight cable: %w", err)
			}
			*c = NewStraight(s.Kind, s.Horizontal)
		case "Bent":
			var s bentJSON
			if err := dec.Decode(&s); err != nil {
				return fmt.Errorf("bent cable: %w", err)
			}
			*c = NewBent(s.Kind, s.CCWDir)
		case "Crossover":
			var s crossoverJSON
			if err := dec.Decode(&s); err != nil {
				return fmt.Errorf("crossover cable: %w", err)
			}
			*c = NewCrossover(s.HorizKind, s.VertKind)
		default:
			return fmt.Errorf("unknown cable %q", name)
		}
	}
	return nil
}

// Gob goes through the JSON form so unused kind fields never hit
// CableKind.MarshalText.
func (c Cable) GobEncode() ([]byte, error) {
	return c.MarshalJSON()
}

func (c *Cable) GobDecode(b []byte) error {
	return c.UnmarshalJSON(b)
}

type connectorJSON struct {
	Ports  []*Port `json:"ports"`
	Slider []bool  `json:"slider"`
}

func (c Connector) MarshalJSON() ([]byte, error) {
	return json.Marshal(connectorJSON{Ports: c.Ports, Slider: c.Slider})
}

func (c *Connector) UnmarshalJSON(b []byte) error {
	var cj connectorJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return fmt.Errorf("connector: %w", err)
	}
	c.Ports, c.Slider = cj.Ports, cj.Slider
	return nil
}

type boardJSON struct {
	Left   Connector `json:"left"`
	Right  Connector `json:"right"`
	Width  int       `json:"width"`
	Cables Cables    `json:"cables,omitempty"`
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{b.Left, b.Right, b.Width, b.Cables})
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var bj boardJSON
	if err := json.Unmarshal(data, &bj); err != nil {
		return err
	}
	*b = Board{Left: bj.Left, Right: bj.Right, Width: bj.Width, Cables: bj.Cables}
	if b.Cables == nil {
		b.Cables = Cables{}
	}
	return nil
}

type metricsJSON struct {
	TotalCycles uint64 `json:"total_cycles"`
	MinCycles   uint64 `json:"min_cycles"`
	Crossovers  uint64 `json:"crossovers"`
}

type solutionJSON struct {
	LevelKey string       `json:"level_key"`
	Cables   Cables       `json:"cables"`
	Left     Connector    `json:"left"`
	Right    Connector    `json:"right"`
	Metrics  *metricsJSON `json:"metrics"`
}

func (s Solution) MarshalJSON() ([]byte, error) {
	sj := solutionJSON{LevelKey: s.LevelKey, Cables: s.Cables, Left: s.Left, Right: s.Right}
	if sj.Cables == nil {
		sj.Cables = Cables{}
	}
	if s.Metrics != nil {
		sj.Metrics = &metricsJSON{s.Metrics.TotalCycles, s.Metrics.MinCycles, s.Metrics.Crossovers}
	}
	return json.Marshal(sj)
}

func (s *Solution) UnmarshalJSON(b []byte) error {
	var sj solutionJSON
	if err := json.Unmarshal(b, &sj); err != nil {
		return fmt.Errorf("solution: %w", err)
	}
	*s = Solution{LevelKey: sj.LevelKey, Cables: sj.Cables, Left: sj.Left, Right: sj.Right}
	if s.Cables == nil {
		s.Cables = Cables{}
	}
	if sj.Metrics != nil {
		s.Metrics = &Metrics{sj.Metrics.TotalCycles, sj.Metrics.MinCycles, sj.Metrics.Crossovers}
	}
	return nil
}
