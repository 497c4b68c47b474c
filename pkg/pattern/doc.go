// Package pattern computes crochet patterns for spheres.
//
// The algorithm has four steps, each exposed as a pure function:
//
//   - CalculateRowCircumferences: stitch count per round, following a sine profile
//     and never more than doubling or halving between rounds.
//   - FindStuffingRow: the round after which the sphere gets its stuffing.
//   - Generate*Row: one instruction line, abbreviated and descriptive, per round.
//   - GeneratePattern: the titled list of all instructions.
//
// Rounding uses a single rule everywhere, round half away from zero. All rounded
// quantities are positive so this agrees with round-half-up.
//
// Errors:
//
//   - *domain.InvalidGeometryError (matches domain.ErrInvalidGeometry): the sphere
//     is too small for the stitch, or a round would have fewer than three stitches.
package pattern
