package domain

import (
	"fmt"
	"math"
	"sort"
)

// Stitch keys accepted by the catalog.
const (
	StitchSingle     = "sc"
	StitchHalfDouble = "hdc"
	StitchDouble     = "dc"
	StitchTreble     = "tr"
	StitchCustom     = "custom"
)

// customShort is the abbreviation every custom stitch is written with.
const customShort = "st"

// Stitch describes a crochet stitch as far as the sphere algorithm cares.
// Ratio is width divided by height; ChainCount is the number of chains that
// lift the hook to the height of the next joined round.
type Stitch struct {
	Key        string  `json:"key" yaml:"key" mapstructure:"key"`
	Short      string  `json:"short" yaml:"short" mapstructure:"short"`
	Name       string  `json:"name" yaml:"name" mapstructure:"name"`
	TitleName  string  `json:"title_name" yaml:"title_name" mapstructure:"title_name"`
	Ratio      float64 `json:"ratio" yaml:"ratio" mapstructure:"ratio"`
	ChainCount int     `json:"chain_count" yaml:"chain_count" mapstructure:"chain_count"`
}

// IsCustom reports whether the stitch was derived from user supplied dimensions.
func (s Stitch) IsCustom() bool {
	return s.Short == customShort
}

var builtinStitches = [...]Stitch{
	{Key: StitchSingle, Short: "sc", Name: "single crochet", TitleName: "single crochet (sc)", Ratio: 5.5 / 4.5, ChainCount: 1},
	{Key: StitchHalfDouble, Short: "hdc", Name: "half double crochet", TitleName: "half double crochet (hdc)", Ratio: 5.5 / 7, ChainCount: 2},
	{Key: StitchDouble, Short: "dc", Name: "double crochet", TitleName: "double crochet (dc)", Ratio: 5.5 / 10.5, ChainCount: 3},
	{Key: StitchTreble, Short: "tr", Name: "treble crochet", TitleName: "treble crochet (tr)", Ratio: 6.5 / 15.5, ChainCount: 4},
}

// SingleCrochet returns the single crochet stitch.
func SingleCrochet() Stitch { return builtinStitches[0] }

// BuiltinStitches returns a copy of the fixed stitch definitions in catalog order.
func BuiltinStitches() []Stitch {
	out := make([]Stitch, len(builtinStitches))
	copy(out, builtinStitches[:])
	return out
}

// NewCustomStitch derives a stitch from a measured width and height.
// Both must be positive and finite.
func NewCustomStitch(width, height float64) (Stitch, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Stitch{}, fmt.Errorf("%w: width=%v height=%v", ErrInvalidStitch, width, height)
	}
	return Stitch{
		Key:        StitchCustom,
		Short:      customShort,
		Name:       "stitch",
		TitleName:  "custom stitch (st)",
		Ratio:      width / height,
		ChainCount: int(math.Ceil(height / width)),
	}, nil
}

// Catalog is an immutable lookup table of stitches, built once per request.
type Catalog struct {
	stitches map[string]Stitch
}

// NewCatalog builds a catalog from the built-in stitches plus an optional
// custom stitch registered under StitchCustom.
func NewCatalog(custom *Stitch) Catalog {
	m := make(map[string]Stitch, len(builtinStitches)+1)
	for _, s := range builtinStitches {
		m[s.Key] = s
	}
	if custom != nil {
		c := *custom
		c.Key = StitchCustom
		m[StitchCustom] = c
	}
	return Catalog{stitches: m}
}

// Lookup returns the stitch registered under key.
func (c Catalog) Lookup(key string) (Stitch, error) {
	s, ok := c.stitches[key]
	if !ok {
		return Stitch{}, fmt.Errorf("%w: %q", ErrUnknownStitch, key)
	}
	return s, nil
}

// Keys returns the registered keys, built-ins first in their fixed order.
func (c Catalog) Keys() []string {
	order := map[string]int{}
	for i, s := range builtinStitches {
		order[s.Key] = i
	}
	keys := make([]string, 0, len(c.stitches))
	for k := range c.stitches {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := order[keys[i]]
		oj, jok := order[keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
