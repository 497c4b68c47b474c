package pattern

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/amigurumi/pkg/domain"
)

const (
	stuffNowText     = "Stuff the sphere if desired. Weave a thread through all the stitches and pull tight to finish."
	finishStuffText  = "Finish stuffing the sphere. Weave a thread through all the stitches and pull tight to finish."
	lightlyStuffNote = " Lightly stuff the sphere if desired."
)

// RowOptions carries the context flags of a round.
type RowOptions struct {
	// Stuffing appends the stuffing note after the round.
	Stuffing bool
	// LastRow marks the final worked round; its join is not followed by chains.
	LastRow bool
	// Joined closes every round with a slip stitch and chains instead of
	// working in a continuous spiral.
	Joined bool
}

// GenerateFirstRow returns the magic ring instruction.
func GenerateFirstRow(count int, stitch domain.Stitch, joined bool) domain.Text {
	var l line
	l.write(
		fmt.Sprintf("Magic ring, %d %s", count, stitch.Short),
		fmt.Sprintf("Magic ring, %d %s", count, stitch.Name),
	)
	l.suffix(count, stitch, RowOptions{Joined: joined})
	return l.text()
}

// GenerateLastRow returns the closing instruction. stuffingHere is true when no
// earlier round carried the stuffing note.
func GenerateLastRow(stuffingHere bool) domain.Text {
	if stuffingHere {
		return domain.Same(stuffNowText)
	}
	return domain.Same(finishStuffText)
}

// GenerateMiddleRow returns the instruction for a round between the magic ring
// and the closing instruction.
func GenerateMiddleRow(curr, prev int, stitch domain.Stitch, opts RowOptions) (domain.Text, error) {
	switch {
	case curr > prev:
		return shapeRow(increase, curr, prev, stitch, opts)
	case curr < prev:
		return shapeRow(decrease, curr, prev, stitch, opts)
	default:
		return GenerateStraightRow(curr, stitch, opts), nil
	}
}

// GenerateStraightRow returns the instruction for a round without shaping.
func GenerateStraightRow(count int, stitch domain.Stitch, opts RowOptions) domain.Text {
	var l line
	l.write(
		capitalize(stitch.Short)+" in every stitch",
		capitalize(stitch.Name)+" in every stitch",
	)
	l.suffix(count, stitch, opts)
	return l.text()
}

// GenerateIncRow returns the instruction for a round growing from prev to curr
// stitches.
func GenerateIncRow(curr, prev int, stitch domain.Stitch, joined bool) (domain.Text, error) {
	return shapeRow(increase, curr, prev, stitch, RowOptions{Joined: joined})
}

// GenerateDecRow returns the instruction for a round shrinking from prev to curr
// stitches.
func GenerateDecRow(curr, prev int, stitch domain.Stitch, opts RowOptions) (domain.Text, error) {
	return shapeRow(decrease, curr, prev, stitch, opts)
}

type direction int

const (
	increase direction = iota
	decrease
)

func (d direction) abbrev() string {
	if d == increase {
		return "inc"
	}
	return "dec"
}

func (d direction) desc() string {
	if d == increase {
		return "increase"
	}
	return "decrease"
}

// shapeRow spreads the increases or decreases of a round as evenly as possible
// and compresses the result into a repeated group plus a tail.
//
// base is the number of stitches the shaping is distributed over: the previous
// round for increases, the current round for decreases.
func shapeRow(dir direction, curr, prev int, stitch domain.Stitch, opts RowOptions) (domain.Text, error) {
	base, delta := prev, curr-prev
	if dir == decrease {
		base, delta = curr, prev-curr
	}
	switch {
	case delta == 0:
		return GenerateStraightRow(curr, stitch, opts), nil
	case delta < 0:
		return domain.Text{}, domain.NewInvalidGeometryError(fmt.Sprintf(
			"Cannot %s from %d to %d stitches.", dir.desc(), prev, curr))
	}
	if delta > base {
		return domain.Text{}, domain.NewInvalidGeometryError(fmt.Sprintf(
			"A round of %d stitches cannot follow a round of %d stitches. At most one %s per stitch is possible.",
			curr, prev, dir.desc()))
	}

	var l line
	if delta == base {
		l.write(
			capitalize(dir.abbrev())+" in every stitch",
			capitalize(dir.desc())+" in every stitch",
		)
		l.suffix(curr, stitch, opts)
		return l.text(), nil
	}

	var (
		repeats, width int
		group          domain.Text
		tail           domain.Text
	)
	if base/delta < 2 {
		// more shaped than plain stitches, spread the plain ones
		repeats = base - delta
		width = base / repeats
		group = domain.Text{
			Abbrev: fmt.Sprintf("1 %s, %d %s", stitch.Short, width-1, dir.abbrev()),
			Desc:   fmt.Sprintf("1 %s, %d %s", stitch.Name, width-1, dir.desc()),
		}
		rest := base - repeats*width
		tail = domain.Text{
			Abbrev: fmt.Sprintf("%d %s", rest, dir.abbrev()),
			Desc:   fmt.Sprintf("%d %s", rest, dir.desc()),
		}
		if rest == 0 {
			tail = domain.Text{}
		}
	} else {
		// fewer shaped than plain stitches, spread the shaped ones
		repeats = delta
		width = base / delta
		group = domain.Text{
			Abbrev: fmt.Sprintf("%d %s, 1 %s", width-1, stitch.Short, dir.abbrev()),
			Desc:   fmt.Sprintf("%d %s, 1 %s", width-1, stitch.Name, dir.desc()),
		}
		rest := base - repeats*width
		tail = domain.Text{
			Abbrev: fmt.Sprintf("%d %s", rest, stitch.Short),
			Desc:   fmt.Sprintf("%d %s", rest, stitch.Name),
		}
		if rest == 0 {
			tail = domain.Text{}
		}
	}

	if repeats > 1 {
		l.write(
			fmt.Sprintf("*%s* ×%d", group.Abbrev, repeats),
			fmt.Sprintf("%s. Repeat from beginning of row %d times", group.Desc, repeats),
		)
	} else {
		l.write(group.Abbrev, group.Desc)
	}
	if tail.Abbrev != "" {
		l.write(", "+tail.Abbrev, ", "+tail.Desc)
	}
	l.suffix(curr, stitch, opts)
	return l.text(), nil
}

// line accumulates both variants of an instruction side by side.
type line struct {
	abbrev strings.Builder
	desc   strings.Builder
}

func (l *line) write(abbrev, desc string) {
	l.abbrev.WriteString(abbrev)
	l.desc.WriteString(desc)
}

// suffix closes a round: join and chains, stitch total, stuffing note.
func (l *line) suffix(count int, stitch domain.Stitch, opts RowOptions) {
	if opts.Joined {
		l.write(", join.", ", join.")
		if !opts.LastRow {
			l.write(
				fmt.Sprintf(" Ch %d.", stitch.ChainCount),
				fmt.Sprintf(" Chain %d.", stitch.ChainCount),
			)
		}
	} else {
		l.write(".", ".")
	}
	l.write(
		fmt.Sprintf(" (%d)", count),
		fmt.Sprintf(" %d stitches total.", count),
	)
	if opts.Stuffing {
		l.write(lightlyStuffNote, lightlyStuffNote)
	}
}

func (l *line) text() domain.Text {
	return domain.Text{Abbrev: l.abbrev.String(), Desc: l.desc.String()}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
