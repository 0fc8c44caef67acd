package model

import "fmt"

// Dir is one of the four grid directions. Values follow the cell path
// order East, South, West, North so that (d+2)%4 flips and (d+1)%4 turns
// clockwise.
type Dir int

const (
	East Dir = iota
	South
	West
	North
)

var Dirs = [4]Dir{East, South, West, North}

func (d Dir) Flip() Dir {
	return (d + 2) % 4
}

func (d Dir) Clockwise() Dir {
	return (d + 1) % 4
}

func (d Dir) CounterClockwise() Dir {
	return (d + 3) % 4
}

func (d Dir) IsHorizontal() bool {
	return d == East || d == West
}

// Delta is the unit step of the direction; y grows downwards.
func (d Dir) Delta() Coord {
	switch d {
	case East:
		return Coord{1, 0}
	case South:
		return Coord{0, 1}
	case West:
		return Coord{-1, 0}
	case North:
		return Coord{0, -1}
	default:
		panic(d)
	}
}

func (d Dir) Name() string {
	switch d {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

func (d Dir) String() string {
	return d.Name()
}

// Coord is a grid position. x = -1 and x = width are the port columns.
type Coord struct {
	X, Y int
}

func (c Coord) Add(d Dir) Coord {
	dd := d.Delta()
	return Coord{c.X + dd.X, c.Y + dd.Y}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{c.X - o.X, c.Y - o.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// DirTo returns the direction of a single axis-aligned unit step from c to
// o, or false for anything else (no move, diagonal, or more than a cell).
func (c Coord) DirTo(o Coord) (Dir, bool) {
	switch o.Sub(c) {
	case Coord{1, 0}:
		return East, true
	case Coord{-1, 0}:
		return West, true
	case Coord{0, 1}:
		return South, true
	case Coord{0, -1}:
		return North, true
	}
	return 0, false
}

type ResourceType int

const (
	Water ResourceType = iota + 1
	Fuel
	Electricity
	Data
)

func (t ResourceType) Name() string {
	switch t {
	case Water:
		return "Water"
	case Fuel:
		return "Fuel"
	case Electricity:
		return "Electricity"
	case Data:
		return "Data"
	default:
		return fmt.Sprintf("N/A(%d)", t)
	}
}

// Resource is anything that can be carried across a cable.
// Level is the GW of an Electricity resource and the channel of a Data
// resource; it is always 0 for Water and Fuel. Resources compare with ==,
// so Electricity(3) never matches Electricity(5).
type Resource struct {
	Type  ResourceType
	Level uint8
}

func WaterRes() Resource { return Resource{Type: Water} }
func FuelRes() Resource { return Resource{Type: Fuel} }
func ElectricityRes(gw uint8) Resource { return Resource{Type: Electricity, Level: gw} }
func DataRes(channel uint8) Resource { return Resource{Type: Data, Level: channel} }

func (r Resource) String() string {
	switch r.Type {
	case Electricity, Data:
		return fmt.Sprintf("%s(%d)", r.Type.Name(), r.Level)
	default:
		return r.Type.Name()
	}
}

// CableKind is the medium a cable transfers resources in.
type CableKind int

const (
	// Pipe carries fluids.
	Pipe CableKind = iota + 1
	// Wire carries electricity and data.
	Wire
)

func (k CableKind) Name() string {
	switch k {
	case Pipe:
		return "Pipe"
	case Wire:
		return "Wire"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

func (k CableKind) String() string {
	return k.Name()
}

type CableShape int

const (
	Straight CableShape = iota + 1
	Bent
	Crossover
)

func (s CableShape) Name() string {
	switch s {
	case Straight:
		return "Straight"
	case Bent:
		return "Bent"
	case Crossover:
		return "Crossover"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Cable occupies a single grid cell. Which fields matter depends on Shape:
//
//	Straight:  Kind, Horizontal
//	Bent:      Kind, CCWDir (the other end is CCWDir.Clockwise())
//	Crossover: HorizKind, VertKind
//
// Use the constructors; the zero Cable is not valid.
type Cable struct {
	Shape      CableShape
	Kind       CableKind
	Horizontal bool
	CCWDir     Dir
	HorizKind  CableKind
	VertKind   CableKind
}

func NewStraight(kind CableKind, horizontal bool) Cable {
	return Cable{Shape: Straight, Kind: kind, Horizontal: horizontal}
}

func NewBent(kind CableKind, ccw Dir) Cable {
	return Cable{Shape: Bent, Kind: kind, CCWDir: ccw}
}

func NewCrossover(horiz, vert CableKind) Cable {
	return Cable{Shape: Crossover, HorizKind: horiz, VertKind: vert}
}

func (c Cable) String() string {
	switch c.Shape {
	case Straight:
		axis := "V"
		if c.Horizontal {
			axis = "H"
		}
		return fmt.Sprintf("Straight{%s,%s}", c.Kind, axis)
	case Bent:
		return fmt.Sprintf("Bent{%s,%s}", c.Kind, c.CCWDir)
	case Crossover:
		return fmt.Sprintf("Crossover{%s,%s}", c.HorizKind, c.VertKind)
	default:
		return fmt.Sprintf("Cable{N/A(%d)}", c.Shape)
	}
}

type PortType int

const (
	// Source produces its resource.
	Source PortType = iota + 1
	// Sink wants its resource.
	Sink
)

func (t PortType) Name() string {
	switch t {
	case Source:
		return "Source"
	case Sink:
		return "Sink"
	default:
		return fmt.Sprintf("N/A(%d)", t)
	}
}

type Port struct {
	Type     PortType
	Resource Resource
}

func SourceOf(r Resource) *Port { return &Port{Type: Source, Resource: r} }
func SinkOf(r Resource) *Port { return &Port{Type: Sink, Resource: r} }

func (p Port) String() string {
	return fmt.Sprintf("%s(%s)", p.Type.Name(), p.Resource)
}

// Connector is one omniversal connector. Ports are indexed by row and nil
// means there is no port at that row. The length of Ports never changes.
type Connector struct {
	Ports  []*Port
	Slider []bool
}

func (c Connector) Clone() Connector {
	out := Connector{
		Ports:  make([]*Port, len(c.Ports)),
		Slider: append([]bool(nil), c.Slider...),
	}
	for i, p := range c.Ports {
		if p != nil {
			cp := *p
			out.Ports[i] = &cp
		}
	}
	return out
}
