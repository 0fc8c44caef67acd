package main

import (
	"github.com/matryer/way"
)

const (
	URI_WS        = "/play"
	URI_LEVELS    = "/levels"
	URI_SOLUTIONS = "/solutions/:key"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_LEVELS, s.VerifyServer.HandleLevels())
	s.router.HandleFunc("GET", URI_SOLUTIONS, s.VerifyServer.HandleSolution())
	s.router.HandleFunc("GET", URI_WS, s.VerifyServer.HandleHttpCall())
}
