package request_test

import (
	"testing"

	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  request.Raw
		want domain.Request
	}{
		{
			name: "Defaults",
			raw:  request.Raw{Circumference: "20", Joined: true},
			want: domain.Request{Circumference: 20, Stitch: "sc", Joined: true, Mode: domain.ModeAbbrev},
		},
		{
			name: "Descriptive Continuous",
			raw:  request.Raw{Circumference: " 36 ", Stitch: "HDC", Descriptive: true},
			want: domain.Request{Circumference: 36, Stitch: "hdc", Mode: domain.ModeDesc},
		},
		{
			name: "Integral Float",
			raw:  request.Raw{Circumference: "24.0", Stitch: "dc", Joined: true},
			want: domain.Request{Circumference: 24, Stitch: "dc", Joined: true, Mode: domain.ModeAbbrev},
		},
		{
			name: "Custom Stitch",
			raw:  request.Raw{Circumference: "30", Stitch: "custom", Width: "0.5", Height: "0.7"},
			want: domain.Request{Circumference: 30, Stitch: "custom", Width: 0.5, Height: 0.7, Mode: domain.ModeAbbrev},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := request.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  request.Raw
	}{
		{"Missing Circumference", request.Raw{}},
		{"Not A Number", request.Raw{Circumference: "twenty"}},
		{"Zero", request.Raw{Circumference: "0"}},
		{"Negative", request.Raw{Circumference: "-5"}},
		{"Fractional", request.Raw{Circumference: "20.5"}},
		{"Infinite", request.Raw{Circumference: "Inf"}},
		{"Over Limit", request.Raw{Circumference: "2000000000"}},
		{"Unknown Stitch", request.Raw{Circumference: "20", Stitch: "bobble"}},
		{"Custom Without Width", request.Raw{Circumference: "20", Stitch: "custom", Height: "1"}},
		{"Custom Zero Height", request.Raw{Circumference: "20", Stitch: "custom", Width: "1", Height: "0"}},
		{"Custom Garbage Width", request.Raw{Circumference: "20", Stitch: "custom", Width: "wide", Height: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := request.Parse(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, request.ErrInvalidInput)
		})
	}
}

func TestParse_UnknownStitchKeepsCause(t *testing.T) {
	_, err := request.Parse(request.Raw{Circumference: "20", Stitch: "bobble"})
	assert.ErrorIs(t, err, domain.ErrUnknownStitch)
}

func TestDefaults(t *testing.T) {
	raw := request.Defaults()
	raw.Circumference = "12"

	req, err := request.Parse(raw)
	require.NoError(t, err)
	assert.True(t, req.Joined)
	assert.Equal(t, domain.StitchSingle, req.Stitch)
	assert.Equal(t, "12-sc-joined", req.Key())
}

func TestParse_MaxCircumference(t *testing.T) {
	_, err := request.Parse(request.Raw{Circumference: "10000"})
	require.NoError(t, err)

	_, err = request.Parse(request.Raw{Circumference: "10001"})
	require.ErrorIs(t, err, request.ErrInvalidInput)
	assert.Contains(t, err.Error(), "the limit is 10000 stitches")

	t.Setenv(request.EnvMaxCircumference, "50")
	_, err = request.Parse(request.Raw{Circumference: "51"})
	assert.ErrorIs(t, err, request.ErrInvalidInput)

	t.Setenv(request.EnvMaxCircumference, "garbage")
	_, err = request.Parse(request.Raw{Circumference: "51"})
	assert.NoError(t, err)
}
