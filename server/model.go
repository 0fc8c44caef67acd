package server

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/model"
	"github.com/zucenko/conduit/sim"
	"github.com/zucenko/conduit/store"
)

// VerifyServer hands out verification sessions. Sessions is owned by Loop.
type VerifyServer struct {
	Levels   []*levels.Level
	Profile  *store.Profile
	Sessions map[uuid.UUID]*Session
	Requests chan SessionRequest
	Finished chan uuid.UUID
	Upgrader *websocket.Upgrader

	StepInterval   time.Duration
	MaxCycles      uint64
	ConnectTimeout time.Duration
}

type SessionState int

const (
	SS_NEW SessionState = iota
	SS_IDLE
	SS_RUN
	SS_WON
	SS_FAILED
	SS_ABORTED
	SS_ERR
	SS_OVER
)

// Session verifies layouts for one level over one websocket.
type Session struct {
	Id     uuid.UUID
	State  SessionState
	Level  *levels.Level
	server *VerifyServer

	Conn           *websocket.Conn
	Connects       chan SessionConnectRequest
	Events         chan model.ClientMessage
	Errors         chan error
	MessagesToSend chan model.ServerMessage
	// Done is closed when the session ends.
	Done chan struct{}

	runner *sim.Runner

	// written by the connection loops, safe to read from anywhere
	DebugInMessages  atomic.Int64
	DebugOutMessages atomic.Int64
	// DebugLastMessage is the unix nano time of the last frame read.
	DebugLastMessage atomic.Int64
	DebugRuns        atomic.Int64
}
