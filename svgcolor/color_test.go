package svgcolor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Color
	}{
		{"rgba(100, 0, 100)", Color{100, 0, 100, 1}},
		{"rgba(100, 0, 100, 0.5)", Color{100, 0, 100, 0.5}},
		{"rgb(100,0,100)", Color{100, 0, 100, 1}},
		{"rgb(100% 0% 50% / 25%)", Color{255, 0, 128, 0.25}},
		{"#f00", Color{255, 0, 0, 1}},
		{"#FF000080", Color{255, 0, 0, 0.5}},
		{"#00ff00", Color{0, 255, 0, 1}},
		{"hsl(120, 100%, 50%)", Color{0, 255, 0, 1}},
		{"hsla(0, 0%, 100%, 0.3)", Color{255, 255, 255, 0.3}},
		{"red", Color{255, 0, 0, 1}},
		{"  Black ", Color{0, 0, 0, 1}},
		{"transparent", Transparent},
		{"none", Transparent},
	} {
		got, err := Parse(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "rgb(1,2)", "rgb(a,b,c)", "notacolor", "rgb 1 2 3"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidColor, in)
	}
}

func TestFormat(t *testing.T) {
	c := MustParse("rgba(100, 0, 100, 0.5)")
	assert.Equal(t, "rgb(100,0,100)", c.ToRgb())
	assert.Equal(t, "rgba(100,0,100,0.5)", c.ToRgba())
	assert.Equal(t, "640064", c.ToHex())
	assert.Equal(t, "64006480", c.ToHexa())
	assert.False(t, c.IsOpaque())
	assert.True(t, c.WithAlpha(2).IsOpaque())
	assert.Equal(t, color.NRGBA{100, 0, 100, 128}, c.NRGBA())
	assert.Equal(t, c.WithAlpha(1), FromColor(color.RGBA{100, 0, 100, 255}))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
}
