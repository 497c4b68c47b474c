package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`     _              _                              _ `, "#f9a8d4"},
	{`    / \   _ __ ___ (_) __ _ _   _ _ __ _   _ _ __ ___ (_)`, "#f472b6"},
	{`   / _ \ | '_ ' _ \| |/ _' | | | | '__| | | | '_ ' _ \| |`, "#e879f9"},
	{`  / ___ \| | | | | | | (_| | |_| | |  | |_| | | | | | | |`, "#c084fc"},
	{` /_/   \_\_| |_| |_|_|\__, |\__,_|_|   \__,_|_| |_| |_|_|`, "#a78bfa"},
	{`                      |___/ `, "#818cf8"},
}

// PrintBanner writes the amigurumi banner to w using the terminal's color profile.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
