package chart_test

import (
	"strings"
	"testing"

	"github.com/aretw0/amigurumi/internal/presentation/chart"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		profile  chart.Profile
		contains []string
		excludes []string
	}{
		{
			name:    "Axes And Series",
			profile: chart.Profile{Rows: []int{5, 10, 14, 10, 5}, StuffingRow: 4},
			contains: []string{
				"xychart-beta\n",
				"x-axis \"Round\" [1, 2, 3, 4, 5]",
				"y-axis \"Stitches\" 0 --> 14",
				"bar [5, 10, 14, 10, 5]",
				"line [5, 10, 14, 10, 5]",
				"%% stuff after round 4",
			},
			excludes: []string{"title"},
		},
		{
			name:    "Title Quotes Are Replaced",
			profile: chart.Profile{Title: `A "round" sphere`, Rows: []int{4, 5, 4}, StuffingRow: 3},
			contains: []string{
				"title \"A 'round' sphere\"",
				"%% stuff before closing",
			},
		},
		{
			name:     "Empty Profile",
			profile:  chart.Profile{},
			contains: []string{"x-axis \"Round\" []", "y-axis \"Stitches\" 0 --> 0"},
			excludes: []string{"stuff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chart.GenerateMermaid(tt.profile)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() should not contain %q\nGot:\n%s", unwanted, got)
				}
			}
		})
	}
}
