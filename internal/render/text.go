package render

import (
	"fmt"

	"github.com/ayusman/obakehunt/internal/game"
)

// centerX is the x offset that centers text in a box of the given width.
func centerX(text string, width int) int {
	return (width - len(text)*charW) / 2
}

func resultLines(stats game.RoundStats) []string {
	accuracy := 0
	if stats.Shots > 0 {
		accuracy = stats.Hits * 100 / stats.Shots
	}
	return []string{
		"RESULT",
		fmt.Sprintf("SCORE %d", stats.Score),
		fmt.Sprintf("HITS %d/%d (%d%%)", stats.Hits, stats.Shots, accuracy),
		fmt.Sprintf("SENS %.1f", stats.Sensitivity),
	}
}
