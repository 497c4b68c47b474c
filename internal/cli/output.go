package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/amigurumi/internal/presentation/tui"
	"github.com/aretw0/amigurumi/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// patternDocument is the machine readable rendering of a result.
type patternDocument struct {
	Key         string           `json:"key" yaml:"key"`
	Title       string           `json:"title" yaml:"title"`
	Lines       []string         `json:"lines" yaml:"lines"`
	Rows        []int            `json:"rows" yaml:"rows,flow"`
	StuffingRow int              `json:"stuffing_row" yaml:"stuffing_row"`
	Warnings    []domain.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// WritePattern renders r to w. Text output on a terminal goes through glamour;
// everything else is written as is.
func WritePattern(w io.Writer, r *domain.Result, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document(r))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document(r)); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, tui.Markdown(r))
		return err
	case FormatText, "":
		if !tui.IsTerminal(w) {
			_, err := io.WriteString(w, tui.Plain(r))
			return err
		}
		render, err := tui.NewRenderer(0)
		if err != nil {
			return err
		}
		out, err := render(tui.Markdown(r))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return fmt.Errorf("unknown output format %q (expected text, markdown, json or yaml)", format)
}

func document(r *domain.Result) patternDocument {
	return patternDocument{
		Key:         r.Request.Key(),
		Title:       r.Title(),
		Lines:       r.Lines(),
		Rows:        r.Rows,
		StuffingRow: r.StuffingRow,
		Warnings:    r.Warnings,
	}
}
