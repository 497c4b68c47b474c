package chart

import (
	"fmt"
	"strconv"
	"strings"
)

// Profile is the round profile of a sphere to draw.
type Profile struct {
	Title       string
	Rows        []int
	StuffingRow int
}

// GenerateMermaid produces a Mermaid xychart of the stitch count per round.
// Rounds are numbered from 1. The stuffing point is written as a comment
// since xychart has no annotations.
func GenerateMermaid(p Profile) string {
	var sb strings.Builder
	sb.WriteString("xychart-beta\n")

	if p.Title != "" {
		// Mermaid titles cannot contain double quotes
		sb.WriteString(fmt.Sprintf("    title \"%s\"\n", strings.ReplaceAll(p.Title, "\"", "'")))
	}

	rounds := make([]string, len(p.Rows))
	counts := make([]string, len(p.Rows))
	peak := 0
	for i, n := range p.Rows {
		rounds[i] = strconv.Itoa(i + 1)
		counts[i] = strconv.Itoa(n)
		peak = max(peak, n)
	}

	sb.WriteString(fmt.Sprintf("    x-axis \"Round\" [%s]\n", strings.Join(rounds, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Stitches\" 0 --> %d\n", peak))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(counts, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(counts, ", ")))

	if p.StuffingRow > 0 && p.StuffingRow < len(p.Rows) {
		sb.WriteString(fmt.Sprintf("    %%%% stuff after round %d\n", p.StuffingRow))
	} else if len(p.Rows) > 0 {
		sb.WriteString("    %% stuff before closing\n")
	}
	return sb.String()
}
