package pattern

import "math"

// round is the rounding rule shared by every step of the algorithm.
func round(x float64) int {
	return int(math.Round(x))
}
