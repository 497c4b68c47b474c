package request

import (
	"os"
	"strconv"
)

var (
	// DefaultMaxInputSize is the largest accepted request field, in bytes.
	// Every field is a number or a stitch key, so anything longer is noise.
	DefaultMaxInputSize = 256
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "AMIGURUMI_MAX_INPUT_SIZE"

	// DefaultMaxCircumference is the largest accepted circumference, in stitches.
	DefaultMaxCircumference = 10000
	// EnvMaxCircumference overrides DefaultMaxCircumference.
	EnvMaxCircumference = "AMIGURUMI_MAX_CIRCUMFERENCE"
)

func getMaxInputSize() int {
	return envLimit(EnvMaxInputSize, DefaultMaxInputSize)
}

func getMaxCircumference() int {
	return envLimit(EnvMaxCircumference, DefaultMaxCircumference)
}

// envLimit reads a positive integer from the environment, falling back to def
// when the variable is unset or malformed.
func envLimit(name string, def int) int {
	if val := os.Getenv(name); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return def
}
