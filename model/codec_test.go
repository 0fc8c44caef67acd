package model

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardFromLevelJSON(t *testing.T) {
	raw := `{
		"left": {"ports": [{"Source": "Water"}, null, {"Sink": {"Electricity": 5}}], "slider": [false, false, true]},
		"right": {"ports": [{"Sink": "Water"}, {"Source": {"Data": 2}}], "slider": []},
		"width": 3,
		"cables": {
			"0,0": {"Straight": {"kind": "Pipe", "horizontal": true}},
			"1,0": {"Bent": {"kind": "Wire", "ccw_dir": "North"}},
			"2,1": {"Crossover": {"horiz_kind": "Pipe", "vert_kind": "Wire"}}
		}
	}`
	var b Board
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 3, b.Height())
	assert.Nil(t, b.Left.Ports[1])
	assert.Equal(t, *SinkOf(ElectricityRes(5)), *b.Left.Ports[2])
	assert.Equal(t, *SourceOf(DataRes(2)), *b.Right.Ports[1])

	want := Cables{
		{0, 0}: NewStraight(Pipe, true),
		{1, 0}: NewBent(Wire, North),
		{2, 1}: NewCrossover(Pipe, Wire),
	}
	if diff := cmp.Diff(want, b.Cables); diff != "" {
		t.Errorf("cables (-want +got):\n%s", diff)
	}
}

func TestSolutionSurvivesJSON(t *testing.T) {
	b := testBoard()
	b.Place(Coord{0, 0}, NewStraight(Pipe, true))
	b.Place(Coord{1, 2}, NewCrossover(Wire, Pipe))
	s := NewSolution("level_1", b)
	s.RecordWin(Metrics{TotalCycles: 7, Crossovers: 1})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var got Solution
	require.NoError(t, json.Unmarshal(data, &got))

	if diff := cmp.Diff(*s, got); diff != "" {
		t.Errorf("solution (-want +got):\n%s", diff)
	}
}

func TestBadJSON(t *testing.T) {
	var c Cable
	assert.Error(t, json.Unmarshal([]byte(`{"Twisted": {}}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"Bent": {"kind": "Pipe", "ccw_dir": "Up"}}`), &c))
	var r Resource
	assert.Error(t, json.Unmarshal([]byte(`"Plasma"`), &r))
	var p Port
	assert.Error(t, json.Unmarshal([]byte(`{"Source": "Water", "Sink": "Fuel"}`), &p))
	var pos Coord
	assert.Error(t, pos.UnmarshalText([]byte("1;2")))
}

func TestWireMessagesOverGob(t *testing.T) {
	cables := Cables{
		{1, 0}: NewBent(Wire, North),
		{0, 0}: NewStraight(Pipe, true),
		{0, 1}: NewCrossover(Pipe, Wire),
	}
	left := Connector{Ports: []*Port{SourceOf(WaterRes()), nil}}

	// one encoder and one decoder per frame, as on the websocket
	var clientFrame, serverFrame bytes.Buffer
	require.NoError(t, gob.NewEncoder(&clientFrame).Encode(ClientMessage{Cables: cables.Placed()}))
	require.NoError(t, gob.NewEncoder(&serverFrame).Encode(ServerMessage{Setup: []Setup{{
		LevelKey: "lvl",
		Width:    2,
		Height:   2,
		Left:     Slots(left),
		Cables:   cables.Placed(),
	}}}))

	var cm ClientMessage
	require.NoError(t, gob.NewDecoder(&clientFrame).Decode(&cm))
	assert.Equal(t, []Coord{{0, 0}, {1, 0}, {0, 1}}, []Coord{cm.Cables[0].Pos, cm.Cables[1].Pos, cm.Cables[2].Pos})
	got := Cables{}
	for _, pc := range cm.Cables {
		got[pc.Pos] = pc.Cable
	}
	if diff := cmp.Diff(cables, got); diff != "" {
		t.Errorf("cables (-want +got):\n%s", diff)
	}

	var sm ServerMessage
	require.NoError(t, gob.NewDecoder(&serverFrame).Decode(&sm))
	require.Len(t, sm.Setup, 1)
	assert.Equal(t, []PortSlot{{Present: true, Port: *SourceOf(WaterRes())}, {}}, sm.Setup[0].Left)
	assert.Equal(t, left, ConnectorOf(sm.Setup[0].Left))
}
