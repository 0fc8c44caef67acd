package levels

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/conduit/model"
)

func TestBuiltinLevels(t *testing.T) {
	levels, err := Load(Builtin())
	require.NoError(t, err)
	require.Len(t, levels, 4)

	keys := make([]string, 0, len(levels))
	for _, l := range levels {
		keys = append(keys, l.Filename)
	}
	assert.Equal(t, []string{"01_first_steps", "02_crossing", "03_channels", "04_fuel_line"}, keys)

	first := levels[0]
	assert.Equal(t, "FIRST STEPS", first.Name)
	assert.Equal(t, 3, first.Board.Width)
	assert.Equal(t, 3, first.Board.Height())
	p, facing, ok := first.Board.GetPort(model.Coord{X: -1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, model.East, facing)
	assert.Equal(t, model.Port{Type: model.Source, Resource: model.WaterRes()}, *p)
	assert.Empty(t, first.Board.Cables)

	channels := levels[2]
	assert.Equal(t, model.NewCrossover(model.Pipe, model.Wire), channels.Board.Cables[model.Coord{X: 2, Y: 1}])

	fuel := levels[3]
	assert.Equal(t, "FUEL LINE", fuel.Name)
	assert.Equal(t, 4, fuel.Board.Width)
	assert.Equal(t, 4, fuel.Board.Height())
	assert.Len(t, fuel.Board.Cables, 5)
	p, _, ok = fuel.Board.GetPort(model.Coord{X: 4, Y: 3})
	require.True(t, ok)
	assert.Equal(t, model.Port{Type: model.Sink, Resource: model.ElectricityRes(2)}, *p)

	l, ok := Find(levels, "02_crossing")
	require.True(t, ok)
	assert.Equal(t, "CROSSING", l.Name)
	_, ok = Find(levels, "nope")
	assert.False(t, ok)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"no name", `{"width":1,"left":{"ports":[null]},"right":{"ports":[null]}}`},
		{"unknown field", `{"name":"x","width":1,"left":{"ports":[null]},"right":{"ports":[null]},"speed":3}`},
		{"zero width", `{"name":"x","width":0,"left":{"ports":[null]},"right":{"ports":[null]}}`},
		{"bad port", `{"name":"x","width":1,"left":{"ports":[{"Drain":"Water"}]},"right":{"ports":[null]}}`},
		{"bad resource", `{"name":"x","width":1,"left":{"ports":[{"Source":"Lava"}]},"right":{"ports":[null]}}`},
		{"bad cable", `{"name":"x","width":1,"left":{"ports":[null]},"right":{"ports":[null]},"cables":{"0,0":{"Spiral":{}}}}`},
		{"bad coord", `{"name":"x","width":1,"left":{"ports":[null]},"right":{"ports":[null]},"cables":{"a,b":{"Straight":{"kind":"Pipe","horizontal":true}}}}`},
		{"cable outside", `{"name":"x","width":1,"left":{"ports":[null]},"right":{"ports":[null]},"cables":{"1,0":{"Straight":{"kind":"Pipe","horizontal":true}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad", []byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestParseAcceptsAllShapes(t *testing.T) {
	l, err := Parse("shapes", []byte(`{
		"name": "SHAPES",
		"width": 3,
		"left": {"ports": [{"Source": {"Data": 3}}, {"Sink": "Fuel"}], "slider": [true, false]},
		"right": {"ports": [null, {"Source": {"Electricity": 7}}]},
		"cables": {
			"0,0": {"Straight": {"kind": "Wire", "horizontal": true}},
			"1,0": {"Bent": {"kind": "Wire", "ccw_dir": "South"}},
			"1,1": {"Crossover": {"horiz_kind": "Pipe", "vert_kind": "Wire"}}
		}
	}`))
	require.NoError(t, err)
	want := model.Cables{
		{X: 0, Y: 0}: model.NewStraight(model.Wire, true),
		{X: 1, Y: 0}: model.NewBent(model.Wire, model.South),
		{X: 1, Y: 1}: model.NewCrossover(model.Pipe, model.Wire),
	}
	if diff := cmp.Diff(want, l.Board.Cables); diff != "" {
		t.Errorf("cables mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []bool{true, false}, l.Board.Left.Slider)
}

func TestManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.txt": {Data: []byte("# comment\n\nonly\n")},
		"only.json":    {Data: []byte(`{"name":"ONLY","width":2,"left":{"ports":[{"Source":"Water"}]},"right":{"ports":[{"Sink":"Water"}]}}`)},
	}
	levels, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "only", levels[0].Filename)

	_, err = Load(fstest.MapFS{"manifest.txt": {Data: []byte("missing\n")}})
	assert.Error(t, err)

	_, err = Load(fstest.MapFS{})
	assert.Error(t, err)
}

func TestASCIIMatchesJSON(t *testing.T) {
	levels, err := Load(Builtin())
	require.NoError(t, err)
	for _, l := range levels {
		t.Run(l.Filename, func(t *testing.T) {
			text := FormatASCII(l.Name, l.Board)
			back, err := ParseASCII(l.Filename, strings.NewReader(text))
			require.NoError(t, err, text)
			assert.Equal(t, l.Name, back.Name)
			if diff := cmp.Diff(l.Board, back.Board); diff != "" {
				t.Errorf("board mismatch (-want +got):\n%s\n%s", diff, text)
			}
		})
	}
}

func TestParseASCII(t *testing.T) {
	l, err := ParseASCII("small", strings.NewReader(`
# two rows
D4  NEw  +pw  d4
.   .    |w   f
`))
	require.NoError(t, err)
	assert.Equal(t, "SMALL", l.Name)
	assert.Equal(t, 2, l.Board.Width)
	assert.Equal(t, 2, l.Board.Height())
	assert.Equal(t, model.NewBent(model.Wire, model.North), l.Board.Cables[model.Coord{X: 0, Y: 0}])
	assert.Equal(t, model.NewCrossover(model.Pipe, model.Wire), l.Board.Cables[model.Coord{X: 1, Y: 0}])
	assert.Equal(t, model.NewStraight(model.Wire, false), l.Board.Cables[model.Coord{X: 1, Y: 1}])
	assert.Equal(t, []*model.Port{model.SourceOf(model.DataRes(4)), nil}, l.Board.Left.Ports)
	assert.Equal(t, []*model.Port{model.SinkOf(model.DataRes(4)), model.SinkOf(model.FuelRes())}, l.Board.Right.Ports)
}

func TestParseASCIIErrors(t *testing.T) {
	for name, text := range map[string]string{
		"empty":        "name: NOTHING\n",
		"short row":    "W w\n",
		"ragged":       "W . . w\nW . w\n",
		"bad port":     "X . w\n",
		"bad level":    "E . e\n",
		"bad cable":    "W ~p w\n",
		"bad bend":     "W NSp w\n",
		"bad kind":     "W -x w\n",
		"water levels": "W3 . w\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseASCII(name, strings.NewReader(text))
			assert.Error(t, err)
		})
	}
}
