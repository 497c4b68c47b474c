package request

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans one request field (circumference, stitch key, custom
// width or height) before it is parsed.
//
// Fields arrive from query strings, JSON bodies, MCP arguments and CLI flags, and
// the values end up in pattern titles and library file names. A field longer than
// the input limit is rejected, never truncated, since a cut-off number would parse
// into a different sphere. Invalid UTF-8 is rejected. Control characters
// (including ANSI escapes and NUL) are dropped, and surrounding whitespace is
// trimmed so " 20\n" parses as 20.
func SanitizeInput(input string) (string, error) {
	if limit := getMaxInputSize(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return strings.TrimSpace(input), nil
	}
	return strings.TrimSpace(strings.Map(dropControl, input)), nil
}

func dropControl(r rune) rune {
	if unicode.IsControl(r) {
		return -1
	}
	return r
}
