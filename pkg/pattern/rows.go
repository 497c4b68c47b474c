package pattern

import (
	"fmt"
	"math"

	"github.com/aretw0/amigurumi/pkg/domain"
)

const minRowStitches = 3

// MaxRounds bounds the number of rounds a single sphere may have.
const MaxRounds = 1 << 16

const (
	tooFewStitchesMessage = "The data you entered results in a first row with less than three stitches. Please check the data you entered."
	wideCustomStitchHint  = " The wider your custom stitch is, the shorter your first row is going to be."
	tooManyRoundsMessage  = "The data you entered results in a sphere with more than %d rounds. Please check the data you entered."
)

// CalculateRowCircumferences returns the number of stitches of every round of a
// sphere with the given circumference, from the top pole to the bottom pole.
//
// The number of rounds from pole to equator is circumference*ratio/4. Round i of
// 2s-1 gets sin(i*pi/2s) * circumference stitches, clamped so it is at most twice
// and at least half the previous round. A round below three stitches is an
// InvalidGeometryError, and so is a sphere of more than MaxRounds rounds.
func CalculateRowCircumferences(circumference int, stitch domain.Stitch) ([]int, error) {
	half := math.Round(0.25 * float64(circumference) * stitch.Ratio)
	if !(half > 0) {
		return []int{}, nil
	}
	// first round, checked before anything is sized from half
	if round(math.Sin(math.Pi/(2*half))*float64(circumference)) < minRowStitches {
		return nil, tooFewStitches(stitch)
	}
	if 2*half-1 > MaxRounds {
		return nil, domain.NewInvalidGeometryError(fmt.Sprintf(tooManyRoundsMessage, MaxRounds))
	}

	s := int(half)
	rows := make([]int, 0, 2*s-1)
	for i := 1; i < 2*s; i++ {
		n := round(math.Sin(float64(i)*math.Pi/float64(2*s)) * float64(circumference))
		if len(rows) > 0 {
			prev := rows[len(rows)-1]
			if n > 2*prev {
				// at most one increase in every stitch
				n = 2 * prev
			} else if 2*n < prev {
				// at most two stitches decreased together
				n = (prev + 1) / 2
			}
		}
		if n < minRowStitches {
			return nil, tooFewStitches(stitch)
		}
		rows = append(rows, n)
	}
	return rows, nil
}

func tooFewStitches(stitch domain.Stitch) error {
	msg := tooFewStitchesMessage
	if stitch.IsCustom() {
		msg += wideCustomStitchHint
	}
	return domain.NewInvalidGeometryError(msg)
}
