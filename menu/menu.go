// Package menu builds the text screens of the client.
package menu

import (
	"fmt"
	"strings"

	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/store"
)

// HeaderLines is the number of text lines above the first level line.
const HeaderLines = 2

const EndingText = `EVERY LEVEL IS CONNECTED.

THE STATION HAS WATER, FUEL,
POWER AND DATA AGAIN.

THANK YOU FOR PLAYING!

        -=: FIN :=-


   [PRESS ESC TO GO BACK]`

// LevelSelectText lists the levels with their best metrics. Advanced
// shows file names instead of level names.
func LevelSelectText(lvls []*levels.Level, profile *store.Profile, advanced bool) string {
	lines := make([]string, 0, len(lvls)+HeaderLines)
	lines = append(lines, "  LEVEL SELECT", "")
	for _, l := range lvls {
		name := l.Name
		if advanced {
			name = l.Filename
		}
		line := "- " + name
		if profile != nil {
			if soln, ok := profile.Solution(l.Filename); ok && soln.Metrics != nil {
				m := soln.Metrics
				line = fmt.Sprintf("- %s (%d CYCLES, %d MIN CYCLES, %d XOVERS)",
					name, m.TotalCycles, m.MinCycles, m.Crossovers)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// LevelAtLine maps a text line of the level select screen to a level index.
func LevelAtLine(line, count int) (int, bool) {
	idx := line - HeaderLines
	if idx < 0 || idx >= count {
		return 0, false
	}
	return idx, true
}

// Next is the level after idx; ok is false after the last one.
func Next(lvls []*levels.Level, idx int) (*levels.Level, int, bool) {
	if idx+1 >= len(lvls) {
		return nil, 0, false
	}
	return lvls[idx+1], idx + 1, true
}
