package server

import (
	"encoding/json"
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/conduit/model"
)

type LevelSummary struct {
	Key     string         `json:"key"`
	Name    string         `json:"name"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Solved  bool           `json:"solved"`
	Metrics *model.Metrics `json:"metrics,omitempty"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTP_SUCCESS)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON: %v", err)
	}
}

// HandleLevels lists the levels in manifest order with the player's
// progress on each.
func (s *VerifyServer) HandleLevels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]LevelSummary, 0, len(s.Levels))
		for _, l := range s.Levels {
			ls := LevelSummary{
				Key:    l.Filename,
				Name:   l.Name,
				Width:  l.Board.Width,
				Height: l.Board.Height(),
			}
			if s.Profile != nil {
				if soln, ok := s.Profile.Solution(l.Filename); ok && soln.Metrics != nil {
					ls.Solved = true
					ls.Metrics = soln.Metrics
				}
			}
			out = append(out, ls)
		}
		writeJSON(w, out)
	}
}

func (s *VerifyServer) HandleSolution() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := way.Param(r.Context(), "key")
		if s.Profile == nil {
			w.WriteHeader(HTTP_NOT_FOUND)
			return
		}
		soln, ok := s.Profile.Solution(key)
		if !ok {
			w.WriteHeader(HTTP_NOT_FOUND)
			return
		}
		writeJSON(w, soln)
	}
}
