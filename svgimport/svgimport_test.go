package svgimport

import (
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/okcanvas/canvas"
	"github.com/benoitkugler/okcanvas/config"
	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, svg string, mode ErrorMode) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(svg), mode)
	require.NoError(t, err)
	return doc
}

func TestRoundTrip(t *testing.T) {
	c := canvas.New(200, 100)
	c.BackgroundColor = "rgb(0,128,0)"
	c.OverlayColor = "rgba(0,0,0,0.5)"

	r := object.NewRect(30, 40)
	r.Left, r.Top = 10, 20
	r.Fill = "rgb(255,0,0)"
	circle := object.NewCircle(20)
	circle.Left, circle.Top = 100, 50
	circle.Stroke = "rgb(0,0,255)"
	circle.StrokeDashArray = []float64{2, 3}
	text := object.NewText("x")
	c.Add(r, circle, text)

	svg := c.ToSVG(canvas.SVGOptions{})
	doc := parseString(t, svg, StrictErrorMode)
	assert.Equal(t, []string{"Created with okcanvas 0.3.0"}, doc.Descriptions)

	got := doc.Canvas
	assert.Equal(t, 200., got.Width)
	assert.Equal(t, 100., got.Height)
	assert.Equal(t, geom.Identity, got.ViewportTransform)
	assert.Equal(t, "rgb(0,128,0)", got.BackgroundColor)
	assert.Equal(t, "rgba(0,0,0,0.5)", got.OverlayColor)
	require.Len(t, got.Objects(), 3)

	r2, ok := got.Objects()[0].(*object.Rect)
	require.True(t, ok)
	assert.Equal(t, 30., r2.Width)
	assert.Equal(t, 40., r2.Height)
	assert.Equal(t, "rgb(255,0,0)", r2.Fill)
	assert.Equal(t, "", r2.Stroke)
	assert.Equal(t, r.CenterPoint(), r2.CenterPoint())

	c2, ok := got.Objects()[1].(*object.Circle)
	require.True(t, ok)
	assert.Equal(t, 20., c2.Radius)
	assert.Equal(t, []float64{2, 3}, c2.StrokeDashArray)

	t2, ok := got.Objects()[2].(*object.Text)
	require.True(t, ok)
	assert.Equal(t, "x", t2.Text)
	assert.Equal(t, "Times New Roman", t2.FontFamily)
	assert.Equal(t, 40., t2.FontSize)
	assert.InDelta(t, 10.5, t2.Left, 1e-6)
	assert.InDelta(t, 23.1, t2.Top, 1e-6)

	assert.Equal(t, svg, got.ToSVG(canvas.SVGOptions{}))
}

func TestTextStyles(t *testing.T) {
	text := object.NewText("xx", object.WithStyles(object.Styles{
		0: {1: object.Style().WithFontSize(24).WithDeltaY(-14).WithFill("rgb(255,0,0)")},
	}))
	svg := "<svg>" + text.ToSVG(nil) + "</svg>"
	doc := parseString(t, svg, StrictErrorMode)
	require.Len(t, doc.Canvas.Objects(), 1)
	got := doc.Canvas.Objects()[0].(*object.Text)
	assert.Equal(t, "xx", got.Text)
	assert.Equal(t, object.Styles{
		0: {1: object.Style().WithFontSize(24).WithDeltaY(-14).WithFill("rgb(255,0,0)")},
	}, got.Styles)
	assert.Equal(t, text.ToSVG(nil), got.ToSVG(nil))
}

func TestTextLines(t *testing.T) {
	for _, s := range []string{"xxxxxx\nx y", "x\n\nx", "a\nb\nc"} {
		text := object.NewText(s, object.WithTextAlign(object.AlignJustify))
		doc := parseString(t, "<svg>"+text.ToSVG(nil)+"</svg>", StrictErrorMode)
		require.Len(t, doc.Canvas.Objects(), 1)
		got := doc.Canvas.Objects()[0].(*object.Text)
		assert.Equal(t, s, got.Text)
		assert.InDelta(t, text.Height, got.Height, 1e-9)
	}
}

func TestTextWithoutSpans(t *testing.T) {
	doc := parseString(t, `<svg><text x="10" y="50" font-size="20" fill="blue">hello</text></svg>`, StrictErrorMode)
	require.Len(t, doc.Canvas.Objects(), 1)
	got := doc.Canvas.Objects()[0].(*object.Text)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, 20., got.FontSize)
	assert.Equal(t, "rgb(0,0,255)", got.Fill)

	origin := got.LineOrigin(0)
	center := got.CenterPoint()
	assert.InDelta(t, 10, center.X+origin.X, 1e-9)
	assert.InDelta(t, 50, center.Y+origin.Y, 1e-9)
}

func TestClipPaths(t *testing.T) {
	c := canvas.New(200, 100)
	c.ClipPath = object.NewCircle(40)

	relative := object.NewRect(200, 100)
	relative.ClipPath = object.NewCircle(40)
	absolute := object.NewRect(50, 50)
	absoluteClip := object.NewRect(10, 10)
	absoluteClip.AbsolutePositioned = true
	absolute.ClipPath = absoluteClip
	c.Add(relative, absolute)

	svg := c.ToSVG(canvas.SVGOptions{})
	got := parseString(t, svg, StrictErrorMode).Canvas

	canvasClip, ok := got.ClipPath.(*object.Circle)
	require.True(t, ok)
	assert.Equal(t, 40., canvasClip.Radius)
	assert.InDelta(t, 40.5, canvasClip.Left, 1e-9)

	require.Len(t, got.Objects(), 2)
	clip1, ok := got.Objects()[0].Base().ClipPath.(*object.Circle)
	require.True(t, ok)
	assert.False(t, clip1.AbsolutePositioned)
	assert.InDelta(t, 40.5, clip1.Left, 1e-9)
	assert.InDelta(t, 40.5, clip1.Top, 1e-9)

	clip2, ok := got.Objects()[1].Base().ClipPath.(*object.Rect)
	require.True(t, ok)
	assert.True(t, clip2.AbsolutePositioned)
	assert.InDelta(t, 5.5, clip2.Left, 1e-9)

	assert.Equal(t, svg, got.ToSVG(canvas.SVGOptions{}))
}

func TestFontFaces(t *testing.T) {
	config.AddFonts(map[string]string{"Lato": "fonts/lato.ttf"})
	t.Cleanup(config.RestoreDefaults)

	c := canvas.New(100, 100)
	c.Add(object.NewText("a", object.WithFontFamily("Lato")))
	doc := parseString(t, c.ToSVG(canvas.SVGOptions{}), StrictErrorMode)
	assert.Equal(t, map[string]string{"Lato": "fonts/lato.ttf"}, doc.FontFaces)
}

const handWritten = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 200 100">
  <title>shapes</title>
  <g transform="translate(10,20)" fill="red">
    <rect id="box" x="0" y="0" width="30" height="40" rx="5" stroke="blue" stroke-width="2" style="fill-opacity: 0.5"/>
    <ellipse cx="50" cy="50" rx="20" ry="10" transform="rotate(90)"/>
    <rect width="0" height="10"/>
  </g>
  <path d="M0 0L10 10"/>
</svg>`

func TestHandWritten(t *testing.T) {
	doc := parseString(t, handWritten, WarnErrorMode)
	assert.Equal(t, []string{"shapes"}, doc.Titles)

	c := doc.Canvas
	assert.Equal(t, 100., c.Width)
	assert.Equal(t, 50., c.Height)
	assert.Equal(t, geom.Matrix{0.5, 0, 0, 0.5, 0, 0}, c.ViewportTransform)
	require.Len(t, c.Objects(), 2)

	r := c.Objects()[0].(*object.Rect)
	assert.Equal(t, "box", r.ID)
	assert.Equal(t, "rgba(255,0,0,0.5)", r.Fill)
	assert.Equal(t, "rgb(0,0,255)", r.Stroke)
	assert.Equal(t, 2., r.StrokeWidth)
	assert.Equal(t, 5., r.Rx)
	assert.Equal(t, 5., r.Ry)
	assert.InDelta(t, 25, r.Left, 1e-9)
	assert.InDelta(t, 40, r.Top, 1e-9)

	e := c.Objects()[1].(*object.Circle)
	assert.Equal(t, 20., e.Radius)
	assert.Equal(t, "rgb(255,0,0)", e.Fill)
	assert.InDelta(t, -40, e.Left, 1e-9)
	assert.InDelta(t, 70, e.Top, 1e-9)
	assert.InDelta(t, 90, e.Angle, 1e-9)
	assert.InDelta(t, 1, e.ScaleX, 1e-9)
	assert.InDelta(t, 0.5, e.ScaleY, 1e-9)

	_, err := Parse(strings.NewReader(handWritten), StrictErrorMode)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestParseTransform(t *testing.T) {
	m, err := parseTransform("translate(10, 20) scale(2)")
	require.NoError(t, err)
	assert.Equal(t, geom.Matrix{2, 0, 0, 2, 10, 20}, m)

	m, err = parseTransform("rotate(90 10 10)")
	require.NoError(t, err)
	p := m.Apply(geom.Point{X: 20, Y: 10})
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 20, p.Y, 1e-9)

	for _, invalid := range []string{"translate(1,2,3)", "unknown(1)", "matrix(1 0 0 1)", "scale(a)"} {
		_, err = parseTransform(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"not xml",
		"<html></html>",
		"<svg><g></svg>",
		`<svg><rect width="a" height="1"/></svg>`,
		`<svg><g transform="skewX()"><rect width="1" height="1"/></g></svg>`,
		`<svg><rect width="1" height="1" clip-path="url(#missing)"/></svg>`,
		`<svg viewBox="0 0 1"></svg>`,
	} {
		_, err := Parse(strings.NewReader(input), IgnoreErrorMode)
		assert.Error(t, err, input)
	}
}
