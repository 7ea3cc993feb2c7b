// Package svgcolor parses CSS color strings and formats them
// the way SVG attributes and style declarations expect.
package svgcolor

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned (wrapped) for unparsable color strings.
var ErrInvalidColor = errors.New("invalid color")

// Color is a non premultiplied sRGB color, with alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Black is the default fill of shapes.
var Black = Color{A: 1}

// Transparent is returned for "transparent" and "none".
var Transparent = Color{}

// FromColor converts a standard library color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: float64(n.A) / 255}
}

// NRGBA converts to the standard library type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// WithAlpha returns a copy of c with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// ToRgb returns the "rgb(r,g,b)" form, ignoring alpha.
func (c Color) ToRgb() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// ToRgba returns the "rgba(r,g,b,a)" form.
func (c Color) ToRgba() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, FormatAlpha(c.A))
}

// ToHex returns the uppercase "RRGGBB" form, without '#'.
func (c Color) ToHex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ToHexa returns the uppercase "RRGGBBAA" form, without '#'.
func (c Color) ToHexa() string {
	return c.ToHex() + fmt.Sprintf("%02X", c.NRGBA().A)
}

// IsOpaque returns true if alpha is 1.
func (c Color) IsOpaque() bool { return c.A == 1 }

// FormatAlpha writes an alpha value like a javascript number.
func FormatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}

// MustParse is like Parse but panics on error.
// It is intended for package level defaults.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse reads a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(), rgba(), hsl(), hsla(), a named color, "transparent" or "none".
func Parse(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	case v == "none" || v == "transparent":
		return Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:], s)
	case strings.HasPrefix(v, "rgb"):
		return parseFunc(v, s, "rgb", rgbArgs)
	case strings.HasPrefix(v, "hsl"):
		return parseFunc(v, s, "hsl", hslArgs)
	}
	if c, ok := colornames.Map[v]; ok {
		return FromColor(c), nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(h, orig string) (Color, error) {
	switch len(h) {
	case 3, 4: // expand #rgb and #rgba
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	if len(h) == 6 {
		return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 1}, nil
	}
	a := float64(uint8(n)) / 255
	a = math.Round(a*100) / 100
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: a}, nil
}

// parseFunc handles the rgb/rgba/hsl/hsla notations, with
// comma or space separated arguments and an optional alpha.
func parseFunc(v, orig, prefix string, conv func(args [3]string) (Color, error)) (Color, error) {
	v = strings.TrimPrefix(v, prefix)
	v = strings.TrimPrefix(v, "a")
	if !strings.HasPrefix(v, "(") || !strings.HasSuffix(v, ")") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	v = v[1 : len(v)-1]
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(fields) != 3 && len(fields) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	c, err := conv([3]string{fields[0], fields[1], fields[2]})
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %s", ErrInvalidColor, orig, err)
	}
	c.A = 1
	if len(fields) == 4 {
		a, err := parseFraction(fields[3])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %s", ErrInvalidColor, orig, err)
		}
		c.A = clamp01(a)
	}
	return c, nil
}

// parseFraction reads "0.5" or "50%" as 0.5
func parseFraction(s string) (float64, error) {
	d := 1.
	if strings.HasSuffix(s, "%") {
		d = 100
		s = strings.TrimSuffix(s, "%")
	}
	f, err := strconv.ParseFloat(s, 64)
	return f / d, err
}

func rgbArgs(args [3]string) (Color, error) {
	var out [3]uint8
	for i, a := range args {
		var (
			f   float64
			err error
		)
		if strings.HasSuffix(a, "%") {
			f, err = strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
			f = f * 255 / 100
		} else {
			f, err = strconv.ParseFloat(a, 64)
		}
		if err != nil {
			return Color{}, err
		}
		out[i] = uint8(math.Round(math.Max(0, math.Min(255, f))))
	}
	return Color{R: out[0], G: out[1], B: out[2]}, nil
}

func hslArgs(args [3]string) (Color, error) {
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Color{}, err
	}
	s, err := parseFraction(args[1])
	if err != nil {
		return Color{}, err
	}
	l, err := parseFraction(args[2])
	if err != nil {
		return Color{}, err
	}
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	s, l = clamp01(s), clamp01(l)

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		q := l + s - l*s
		if l <= 0.5 {
			q = l * (1 + s)
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1./3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1./3)
	}
	return Color{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
	}, nil
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1./6:
		return p + (q-p)*6*t
	case t < 1./2:
		return q
	case t < 2./3:
		return p + (q-p)*(2./3-t)*6
	}
	return p
}
