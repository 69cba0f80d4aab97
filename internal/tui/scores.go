package tui

import (
	"fmt"
	"strings"

	"github.com/lox/minesweeper/internal/game"
	"github.com/lox/minesweeper/internal/leaderboard"
)

// RenderScores renders the leaderboard of each difficulty, best first. A
// limit of zero shows every kept entry.
func RenderScores(lb *leaderboard.Leaderboard, limit int, difficulties ...game.Difficulty) string {
	var s strings.Builder
	for i, d := range difficulties {
		if i > 0 {
			s.WriteByte('\n')
		}
		s.WriteString(HeaderStyle.Render(" " + d.Name + " "))
		s.WriteByte('\n')

		n := 0
		for entry := range lb.TopEntries(d.Key, limit) {
			n++
			fmt.Fprintf(&s, "%3d. %-*s %4ds\n", n, leaderboard.MaxNameLength, entry.Name, entry.Seconds)
		}
		if n == 0 {
			s.WriteString(InfoStyle.Render("     no times yet"))
			s.WriteByte('\n')
		}
	}
	return s.String()
}
