package pattern

// FindStuffingRow returns the index of the round after which the sphere is
// stuffed: the round after roughly two thirds of the decreases.
//
// If that would be the second to last round or later, the last round would start
// right after a stuffing note, so len(rows) is returned instead and the stuffing
// note moves into the closing instruction.
func FindStuffingRow(rows []int) int {
	n := len(rows)
	idx := round(float64(5*n) / 6)
	if n-idx < 2 {
		idx = n
	}
	return idx
}
