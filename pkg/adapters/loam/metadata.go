package loam

import (
	"fmt"

	"github.com/aretw0/amigurumi/pkg/domain"
)

// PatternMetadata is the frontmatter of a saved pattern document.
type PatternMetadata struct {
	ID            string           `json:"id" yaml:"id" mapstructure:"id"`
	Title         string           `json:"title" yaml:"title" mapstructure:"title"`
	TitleDesc     string           `json:"title_desc" yaml:"title_desc" mapstructure:"title_desc"`
	Circumference int              `json:"circumference" yaml:"circumference" mapstructure:"circumference"`
	Stitch        string           `json:"stitch" yaml:"stitch" mapstructure:"stitch"`
	Width         float64          `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height        float64          `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`
	Joined        bool             `json:"joined" yaml:"joined" mapstructure:"joined"`
	Mode          string           `json:"mode" yaml:"mode" mapstructure:"mode"`
	Rows          []int            `json:"rows" yaml:"rows,flow" mapstructure:"rows"`
	StuffingRow   int              `json:"stuffing_row" yaml:"stuffing_row" mapstructure:"stuffing_row"`
	Abbrev        []string         `json:"abbrev" yaml:"abbrev" mapstructure:"abbrev"`
	Desc          []string         `json:"desc" yaml:"desc" mapstructure:"desc"`
	Warnings      []domain.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty" mapstructure:"warnings"`
	SavedAt       string           `json:"saved_at" yaml:"saved_at" mapstructure:"saved_at"`
}

func newMetadata(id string, r *domain.Result, savedAt string) PatternMetadata {
	meta := PatternMetadata{
		ID:            id,
		Title:         r.Pattern.Title.Abbrev,
		TitleDesc:     r.Pattern.Title.Desc,
		Circumference: r.Request.Circumference,
		Stitch:        r.Stitch.Key,
		Joined:        r.Request.Joined,
		Mode:          string(r.Request.Mode),
		Rows:          r.Rows,
		StuffingRow:   r.StuffingRow,
		Abbrev:        r.Pattern.Lines(domain.ModeAbbrev),
		Desc:          r.Pattern.Lines(domain.ModeDesc),
		Warnings:      r.Warnings,
		SavedAt:       savedAt,
	}
	if r.Stitch.IsCustom() {
		meta.Width = r.Request.Width
		meta.Height = r.Request.Height
	}
	return meta
}

// result rebuilds the generator output from the stored frontmatter.
func (m PatternMetadata) result() (*domain.Result, error) {
	mode, err := domain.ParseMode(m.Mode)
	if err != nil {
		return nil, err
	}
	req := domain.Request{
		Circumference: m.Circumference,
		Stitch:        m.Stitch,
		Width:         m.Width,
		Height:        m.Height,
		Joined:        m.Joined,
		Mode:          mode,
	}
	stitch, err := req.ResolveStitch()
	if err != nil {
		return nil, err
	}
	if len(m.Abbrev) != len(m.Desc) {
		return nil, fmt.Errorf("pattern %s: %d abbreviated lines but %d descriptive lines", m.ID, len(m.Abbrev), len(m.Desc))
	}

	body := make([]domain.Text, len(m.Abbrev))
	for i := range m.Abbrev {
		body[i] = domain.Text{Abbrev: m.Abbrev[i], Desc: m.Desc[i]}
	}
	return &domain.Result{
		Request:     req,
		Stitch:      stitch,
		Pattern:     domain.Pattern{Title: domain.Text{Abbrev: m.Title, Desc: m.TitleDesc}, Body: body},
		Rows:        m.Rows,
		StuffingRow: m.StuffingRow,
		Warnings:    m.Warnings,
	}, nil
}
