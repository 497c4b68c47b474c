package domain

import (
	"fmt"
	"strconv"
)

// Request is a validated pattern request.
type Request struct {
	Circumference int     `json:"circumference" yaml:"circumference"`
	Stitch        string  `json:"stitch" yaml:"stitch"`
	Width         float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height        float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Joined        bool    `json:"joined" yaml:"joined"`
	Mode          Mode    `json:"mode" yaml:"mode"`
}

// Catalog builds the stitch catalog for this request, registering the custom
// stitch when one was asked for.
func (r Request) Catalog() (Catalog, error) {
	if r.Stitch != StitchCustom {
		return NewCatalog(nil), nil
	}
	custom, err := NewCustomStitch(r.Width, r.Height)
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(&custom), nil
}

// ResolveStitch returns the stitch the request refers to.
func (r Request) ResolveStitch() (Stitch, error) {
	catalog, err := r.Catalog()
	if err != nil {
		return Stitch{}, err
	}
	key := r.Stitch
	if key == "" {
		key = StitchSingle
	}
	return catalog.Lookup(key)
}

// Key identifies the generated pattern independently of the display mode.
func (r Request) Key() string {
	stitch := r.Stitch
	if stitch == "" {
		stitch = StitchSingle
	}
	joined := "continuous"
	if r.Joined {
		joined = "joined"
	}
	key := fmt.Sprintf("%d-%s-%s", r.Circumference, stitch, joined)
	if stitch == StitchCustom {
		key += "-" + strconv.FormatFloat(r.Width, 'f', -1, 64) + "x" + strconv.FormatFloat(r.Height, 'f', -1, 64)
	}
	return key
}

// Result is everything the generator computed for a request.
type Result struct {
	Request     Request   `json:"request" yaml:"request"`
	Stitch      Stitch    `json:"stitch" yaml:"stitch"`
	Pattern     Pattern   `json:"pattern" yaml:"pattern"`
	Rows        []int     `json:"rows" yaml:"rows"`
	StuffingRow int       `json:"stuffing_row" yaml:"stuffing_row"`
	Warnings    []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Lines returns the pattern body in the request's display mode.
func (r *Result) Lines() []string {
	return r.Pattern.Lines(r.Request.Mode)
}

// Title returns the pattern title in the request's display mode.
func (r *Result) Title() string {
	return r.Pattern.Title.In(r.Request.Mode)
}

// Clone returns a deep copy of the result.
func (r *Result) Clone() *Result {
	c := *r
	c.Rows = append([]int(nil), r.Rows...)
	c.Pattern.Body = append([]Text(nil), r.Pattern.Body...)
	c.Warnings = append([]Warning(nil), r.Warnings...)
	return &c
}
