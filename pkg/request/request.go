package request

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/amigurumi/pkg/domain"
)

// ErrInvalidInput is wrapped by every validation failure of Parse.
var ErrInvalidInput = errors.New("invalid input")

// Raw is a pattern request as it arrives from the outside world.
type Raw struct {
	Circumference string `json:"circumference" mapstructure:"circumference"`
	Stitch        string `json:"stitch,omitempty" mapstructure:"stitch"`
	Width         string `json:"width,omitempty" mapstructure:"width"`
	Height        string `json:"height,omitempty" mapstructure:"height"`
	Joined        bool   `json:"joined" mapstructure:"joined"`
	Descriptive   bool   `json:"descriptive,omitempty" mapstructure:"descriptive"`
}

// Defaults returns a Raw with the values the web form starts with:
// single crochet in joined rounds, abbreviated.
func Defaults() Raw {
	return Raw{Stitch: domain.StitchSingle, Joined: true}
}

// Parse validates raw input and converts it into a domain.Request.
func Parse(raw Raw) (domain.Request, error) {
	circ, err := field("circumference", raw.Circumference)
	if err != nil {
		return domain.Request{}, err
	}
	if circ == "" {
		return domain.Request{}, invalid("circumference is required")
	}
	c, err := strconv.ParseFloat(circ, 64)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
		return domain.Request{}, invalid("circumference must be a number, got %q", circ)
	}
	if c <= 0 || c != math.Trunc(c) {
		return domain.Request{}, invalid("circumference must be a positive whole number of stitches, got %s", circ)
	}
	if limit := getMaxCircumference(); c > float64(limit) {
		return domain.Request{}, invalid("circumference %s is too large, the limit is %d stitches", circ, limit)
	}

	stitch, err := field("stitch", raw.Stitch)
	if err != nil {
		return domain.Request{}, err
	}
	stitch = strings.ToLower(stitch)
	if stitch == "" {
		stitch = domain.StitchSingle
	}

	req := domain.Request{
		Circumference: int(c),
		Stitch:        stitch,
		Joined:        raw.Joined,
		Mode:          domain.ModeAbbrev,
	}
	if raw.Descriptive {
		req.Mode = domain.ModeDesc
	}

	if stitch == domain.StitchCustom {
		if req.Width, err = dimension("width", raw.Width); err != nil {
			return domain.Request{}, err
		}
		if req.Height, err = dimension("height", raw.Height); err != nil {
			return domain.Request{}, err
		}
	}

	// Surface unknown keys and bad dimensions as input errors.
	if _, err := req.ResolveStitch(); err != nil {
		return domain.Request{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return req, nil
}

func field(name, value string) (string, error) {
	clean, err := SanitizeInput(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidInput, name, err)
	}
	return clean, nil
}

func dimension(name, value string) (float64, error) {
	clean, err := field(name, value)
	if err != nil {
		return 0, err
	}
	if clean == "" {
		return 0, invalid("custom stitch %s is required", name)
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return 0, invalid("custom stitch %s must be a positive number, got %q", name, clean)
	}
	return v, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
