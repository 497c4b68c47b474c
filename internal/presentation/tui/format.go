package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Plain renders a result as numbered plain text, one round per line.
func Plain(r *domain.Result) string {
	var sb strings.Builder
	sb.WriteString(r.Title())
	sb.WriteString("\n\n")
	for i, line := range r.Lines() {
		fmt.Fprintf(&sb, "Round %d: %s\n", i+1, line)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "\n%s: %s\n", w.Title, w.Message)
	}
	return sb.String()
}

// Markdown renders a result as a Markdown document: title, warnings as a
// quote, then the rounds as an ordered list.
func Markdown(r *domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Title())
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "> **%s:** %s\n\n", w.Title, w.Message)
	}
	for i, line := range r.Lines() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
	}
	return sb.String()
}

// Warning styles a non-fatal advisory for the terminal.
func Warning(w domain.Warning) string {
	p := termenv.ColorProfile()
	return termenv.String(w.Title+": ").Bold().Foreground(p.Color("#fbbf24")).String() + w.Message
}

// Error styles a fatal error for the terminal, titled like the web page's error box.
func Error(err error) string {
	p := termenv.ColorProfile()
	return termenv.String("Error: ").Bold().Foreground(p.Color("#f87171")).String() + err.Error()
}
