package pattern

import (
	"fmt"

	"github.com/aretw0/amigurumi/pkg/domain"
)

const titleFormat = "Crochet pattern for a sphere with a circumference of %d stitches in %s"

// Assembly is a generated pattern together with the numbers it was built from.
type Assembly struct {
	Pattern     domain.Pattern
	Rows        []int
	StuffingRow int
}

// GeneratePattern returns the titled crochet pattern for a sphere.
func GeneratePattern(circumference int, stitch domain.Stitch, joined bool) (*domain.Pattern, error) {
	a, err := Assemble(circumference, stitch, joined)
	if err != nil {
		return nil, err
	}
	return &a.Pattern, nil
}

// GeneratePatternBody returns the instruction lines of a sphere without title.
func GeneratePatternBody(circumference int, stitch domain.Stitch, joined bool) ([]domain.Text, error) {
	a, err := Assemble(circumference, stitch, joined)
	if err != nil {
		return nil, err
	}
	return a.Pattern.Body, nil
}

// Title returns the pattern title for a circumference and stitch.
func Title(circumference int, stitch domain.Stitch) domain.Text {
	return domain.Text{
		Abbrev: fmt.Sprintf(titleFormat, circumference, stitch.TitleName),
		Desc:   fmt.Sprintf(titleFormat, circumference, stitch.Name),
	}
}

// Assemble runs the whole algorithm: row counts, stuffing row, and one
// instruction per round plus the magic ring and the closing instruction.
func Assemble(circumference int, stitch domain.Stitch, joined bool) (*Assembly, error) {
	rows, err := CalculateRowCircumferences(circumference, stitch)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, domain.NewInvalidGeometryError(fmt.Sprintf(
			"The circumference you entered is too small to generate a pattern in %s.", stitch.Name))
	}

	stuffingRow := FindStuffingRow(rows)

	body := make([]domain.Text, 0, len(rows)+1)
	body = append(body, GenerateFirstRow(rows[0], stitch, joined))
	for i := 1; i < len(rows); i++ {
		row, err := GenerateMiddleRow(rows[i], rows[i-1], stitch, RowOptions{
			Stuffing: stuffingRow == i,
			LastRow:  i == len(rows)-1,
			Joined:   joined,
		})
		if err != nil {
			return nil, err
		}
		body = append(body, row)
	}
	body = append(body, GenerateLastRow(stuffingRow == len(rows)))

	return &Assembly{
		Pattern: domain.Pattern{
			Title: Title(circumference, stitch),
			Body:  body,
		},
		Rows:        rows,
		StuffingRow: stuffingRow,
	}, nil
}
