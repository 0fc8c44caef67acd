package levels

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zucenko/conduit/model"
)

// ASCII boards, one row per line, tokens split by blanks:
//
//	name: FUEL LINE
//	F  -p  .   .   f
//	.  .   |w  .   .
//	E1 .   +pw .   e1
//
// The first and last token of a row are the left and right ports: a
// resource letter, upper case for a source and lower case for a sink,
// followed by the level for electricity and data, or '.' for no port.
// Cable tokens end in the kind (p or w): "-" and "|" are straights, two
// direction letters are a bend (the counter-clockwise side first, e.g.
// "NE"), and "+" with two kinds is a crossover, horizontal first.
// '.' is an empty cell and lines starting with '#' are ignored.

var dirLetters = map[byte]model.Dir{'E': model.East, 'S': model.South, 'W': model.West, 'N': model.North}

func kindOf(c byte) (model.CableKind, error) {
	switch c {
	case 'p':
		return model.Pipe, nil
	case 'w':
		return model.Wire, nil
	}
	return 0, fmt.Errorf("unknown cable kind %q", c)
}

func kindLetter(k model.CableKind) string {
	if k == model.Pipe {
		return "p"
	}
	return "w"
}

func parsePort(tok string) (*model.Port, error) {
	if tok == "." {
		return nil, nil
	}
	letter := tok[0]
	typ := model.Source
	if letter >= 'a' && letter <= 'z' {
		typ = model.Sink
		letter -= 'a' - 'A'
	}
	var res model.Resource
	switch letter {
	case 'W':
		res = model.WaterRes()
	case 'F':
		res = model.FuelRes()
	case 'E', 'D':
		lvl, err := strconv.ParseUint(tok[1:], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("port %q: %w", tok, err)
		}
		res = model.ElectricityRes(uint8(lvl))
		if letter == 'D' {
			res = model.DataRes(uint8(lvl))
		}
	default:
		return nil, fmt.Errorf("unknown port %q", tok)
	}
	if (letter == 'W' || letter == 'F') && len(tok) != 1 {
		return nil, fmt.Errorf("unknown port %q", tok)
	}
	return &model.Port{Type: typ, Resource: res}, nil
}

func formatPort(p *model.Port) string {
	if p == nil {
		return "."
	}
	var s string
	switch p.Resource.Type {
	case model.Water:
		s = "W"
	case model.Fuel:
		s = "F"
	case model.Electricity:
		s = "E" + strconv.Itoa(int(p.Resource.Level))
	case model.Data:
		s = "D" + strconv.Itoa(int(p.Resource.Level))
	}
	if p.Type == model.Sink {
		s = strings.ToLower(s)
	}
	return s
}

func parseCable(tok string) (model.Cable, bool, error) {
	if tok == "." {
		return model.Cable{}, false, nil
	}
	bad := fmt.Errorf("unknown cable %q", tok)
	switch {
	case len(tok) == 2 && (tok[0] == '-' || tok[0] == '|'):
		k, err := kindOf(tok[1])
		if err != nil {
			return model.Cable{}, false, err
		}
		return model.NewStraight(k, tok[0] == '-'), true, nil
	case len(tok) == 3 && tok[0] == '+':
		h, err := kindOf(tok[1])
		if err != nil {
			return model.Cable{}, false, err
		}
		v, err := kindOf(tok[2])
		if err != nil {
			return model.Cable{}, false, err
		}
		return model.NewCrossover(h, v), true, nil
	case len(tok) == 3:
		ccw, ok1 := dirLetters[tok[0]]
		cw, ok2 := dirLetters[tok[1]]
		if !ok1 || !ok2 || ccw.Clockwise() != cw {
			return model.Cable{}, false, bad
		}
		k, err := kindOf(tok[2])
		if err != nil {
			return model.Cable{}, false, err
		}
		return model.NewBent(k, ccw), true, nil
	}
	return model.Cable{}, false, bad
}

func formatCable(c model.Cable) string {
	switch c.Shape {
	case model.Straight:
		if c.Horizontal {
			return "-" + kindLetter(c.Kind)
		}
		return "|" + kindLetter(c.Kind)
	case model.Bent:
		return c.CCWDir.Name()[:1] + c.CCWDir.Clockwise().Name()[:1] + kindLetter(c.Kind)
	case model.Crossover:
		return "+" + kindLetter(c.HorizKind) + kindLetter(c.VertKind)
	}
	return "?"
}

// ParseASCII reads an ASCII board under the given key.
func ParseASCII(filename string, reader io.Reader) (*Level, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	l := &Level{Filename: filename}
	left := make([]*model.Port, 0)
	right := make([]*model.Port, 0)
	cables := model.Cables{}
	width := -1
	row := 0

	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		switch {
		case s == "" || strings.HasPrefix(s, "#"):
			continue
		case strings.HasPrefix(s, "name:"):
			l.Name = strings.TrimSpace(strings.TrimPrefix(s, "name:"))
			continue
		}
		tokens := strings.Fields(s)
		if len(tokens) < 3 {
			return nil, fmt.Errorf("level %s row %d: need two ports and at least one cell", filename, row)
		}
		if width == -1 {
			width = len(tokens) - 2
		} else if len(tokens)-2 != width {
			return nil, fmt.Errorf("level %s row %d: %d cells, expected %d", filename, row, len(tokens)-2, width)
		}

		lp, err := parsePort(tokens[0])
		if err != nil {
			return nil, fmt.Errorf("level %s row %d: %w", filename, row, err)
		}
		rp, err := parsePort(tokens[len(tokens)-1])
		if err != nil {
			return nil, fmt.Errorf("level %s row %d: %w", filename, row, err)
		}
		left = append(left, lp)
		right = append(right, rp)

		for x, tok := range tokens[1 : len(tokens)-1] {
			c, ok, err := parseCable(tok)
			if err != nil {
				return nil, fmt.Errorf("level %s at %d,%d: %w", filename, x, row, err)
			}
			if ok {
				cables[model.Coord{X: x, Y: row}] = c
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("level %s: %w", filename, err)
	}
	if row == 0 {
		return nil, fmt.Errorf("level %s: no rows", filename)
	}
	if l.Name == "" {
		l.Name = strings.ToUpper(filename)
	}

	l.Board = model.NewBoard(model.Connector{Ports: left}, model.Connector{Ports: right}, width)
	l.Board.Cables = cables
	return l, nil
}

// FormatASCII writes a board in the form ParseASCII reads.
func FormatASCII(name string, b *model.Board) string {
	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "name: %s\n", name)
	}
	port := func(ports []*model.Port, y int) string {
		if y < len(ports) {
			return formatPort(ports[y])
		}
		return "."
	}
	for y := 0; y < b.Height(); y++ {
		cells := make([]string, 0, b.Width+2)
		cells = append(cells, port(b.Left.Ports, y))
		for x := 0; x < b.Width; x++ {
			tok := "."
			if c, ok := b.Cables[model.Coord{X: x, Y: y}]; ok {
				tok = formatCable(c)
			}
			cells = append(cells, tok)
		}
		cells = append(cells, port(b.Right.Ports, y))
		for i, c := range cells {
			if i == len(cells)-1 {
				sb.WriteString(c)
			} else {
				fmt.Fprintf(&sb, "%-4s", c)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
