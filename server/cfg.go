package server

import (
	"fmt"

	"github.com/gorilla/websocket"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	SESSION_READY ResponseCode = iota
	LEVEL_NOT_FOUND
	SESSION_INVALID
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case LEVEL_NOT_FOUND:
		return HTTP_NOT_FOUND
	case SESSION_INVALID:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (ss SessionState) Name() string {
	switch ss {
	case SS_NEW:
		return "SS_NEW"
	case SS_IDLE:
		return "SS_IDLE"
	case SS_RUN:
		return "SS_RUN"
	case SS_WON:
		return "SS_WON"
	case SS_FAILED:
		return "SS_FAILED"
	case SS_ABORTED:
		return "SS_ABORTED"
	case SS_ERR:
		return "SS_ERR"
	case SS_OVER:
		return "SS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", ss)
	}
}

type SessionAwaiting struct {
	ResponseCode ResponseCode
	Session      *Session
}

type SessionRequest struct {
	LevelKey string
	Awaiting chan SessionAwaiting
}

type SessionConnectRequest struct {
	Con *websocket.Conn
}
