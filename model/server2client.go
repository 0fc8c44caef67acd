package model

import "fmt"

// ServerMessage is one gob frame sent to a verification client. Each
// slice is empty or holds one item.
type ServerMessage struct {
	Setup   []Setup
	Steps   []Step
	Results []Result
}

// Setup opens a session: the level and the layout stored for it.
type Setup struct {
	SessionId string
	LevelKey  string
	LevelName string
	Width     int
	Height    int
	Left      []PortSlot
	Right     []PortSlot
	Cables    []PlacedCable
}

// PortSlot is a connector position; gob cannot carry nil pointers in a
// slice.
type PortSlot struct {
	Present bool
	Port    Port
}

func Slots(c Connector) []PortSlot {
	slots := make([]PortSlot, len(c.Ports))
	for i, p := range c.Ports {
		if p != nil {
			slots[i] = PortSlot{Present: true, Port: *p}
		}
	}
	return slots
}

// Connector rebuilds the connector the slots came from.
func ConnectorOf(slots []PortSlot) Connector {
	ports := make([]*Port, len(slots))
	for i, s := range slots {
		if s.Present {
			p := s.Port
			ports[i] = &p
		}
	}
	return Connector{Ports: ports}
}

type TipView struct {
	Pos      Coord
	Facing   Dir
	Resource Resource
}

type StepError struct {
	Kind     string
	Pos      Coord
	Expected Resource
	Message  string
}

// Step is the state after one router step.
type Step struct {
	Cycle  uint64
	Tips   []TipView
	Errors []StepError
}

type Outcome int

const (
	Won Outcome = iota + 1
	Failed
	Aborted
	Rejected
)

func (o Outcome) Name() string {
	switch o {
	case Won:
		return "WON"
	case Failed:
		return "FAILED"
	case Aborted:
		return "ABORTED"
	case Rejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("N/A(%d)", o)
	}
}

// Result ends a run.
type Result struct {
	Outcome Outcome
	Cycles  uint64
	Metrics Metrics
	Errors  []StepError
	Reason  string
}
