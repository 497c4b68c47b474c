package domain

import "fmt"

// Mode selects which variant of a Text is shown.
type Mode string

const (
	// ModeAbbrev uses crochet abbreviations ("3 sc, 1 inc").
	ModeAbbrev Mode = "abbrev"
	// ModeDesc spells every instruction out ("3 single crochet, 1 increase").
	ModeDesc Mode = "desc"
)

// ParseMode maps a user supplied mode name to a Mode. Empty means ModeAbbrev.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAbbrev:
		return ModeAbbrev, nil
	case ModeDesc:
		return ModeDesc, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected %q or %q)", s, ModeAbbrev, ModeDesc)
}

// Text is one instruction in both of its written forms.
type Text struct {
	Abbrev string `json:"abbrev" yaml:"abbrev"`
	Desc   string `json:"desc" yaml:"desc"`
}

// Same returns a Text whose variants are identical.
func Same(s string) Text {
	return Text{Abbrev: s, Desc: s}
}

// In returns the variant for the given mode.
func (t Text) In(mode Mode) string {
	if mode == ModeDesc {
		return t.Desc
	}
	return t.Abbrev
}

// Pattern is a titled, ordered list of instructions for one sphere.
type Pattern struct {
	Title Text   `json:"title" yaml:"title"`
	Body  []Text `json:"body" yaml:"body"`
}

// Lines returns the body rendered in the given mode.
func (p *Pattern) Lines(mode Mode) []string {
	lines := make([]string, len(p.Body))
	for i, t := range p.Body {
		lines[i] = t.In(mode)
	}
	return lines
}

// Warning is a non-fatal advisory attached to a generated pattern.
type Warning struct {
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
}
