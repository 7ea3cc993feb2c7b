package object

import (
	"image/color"
	"testing"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render/raster"
	"github.com/benoitkugler/okcanvas/svgexport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultStyle = `style="stroke: none; stroke-width: 1; stroke-dasharray: none; stroke-linecap: butt; stroke-dashoffset: 0; stroke-linejoin: miter; stroke-miterlimit: 4; fill: rgb(0,0,0); fill-rule: nonzero; opacity: 1;"`

func TestGeometry(t *testing.T) {
	r := NewRect(10, 20)
	assert.Equal(t, geom.Point{X: 5.5, Y: 10.5}, r.CenterPoint())
	assert.Equal(t, geom.Point{X: 11, Y: 21}, r.TransformedDimensions())

	r.ScaleX, r.ScaleY = 2, 2
	assert.Equal(t, geom.Point{X: 22, Y: 42}, r.TransformedDimensions())
	r.StrokeUniform = true
	assert.Equal(t, geom.Point{X: 21, Y: 41}, r.TransformedDimensions())

	r = NewRect(10, 10)
	r.StrokeWidth = 0
	r.OriginX, r.OriginY = "center", "center"
	r.Left, r.Top = 50, 50
	assert.Equal(t, geom.Matrix{1, 0, 0, 1, 50, 50}, r.OwnMatrix())

	r.Angle = 90
	b := r.BoundingRect()
	assert.InDelta(t, 45, b.MinX, 1e-9)
	assert.InDelta(t, 55, b.MaxY, 1e-9)

	r.OriginX, r.OriginY = "left", "top"
	r.Left, r.Top = 0, 0
	// rotation around the top left corner
	assert.InDelta(t, -5, r.CenterPoint().X, 1e-9)
	assert.InDelta(t, 5, r.CenterPoint().Y, 1e-9)
}

func TestRectToSVG(t *testing.T) {
	r := NewRect(10, 20)
	assert.Equal(t, `<g transform="matrix(1 0 0 1 5.5 10.5)"  >
<rect `+defaultStyle+`  x="-5" y="-10" rx="0" ry="0" width="10" height="20" />
</g>
`, r.ToSVG(nil))

	r.ID = "r1"
	r.Stroke = "red"
	r.PaintFirst = "stroke"
	r.StrokeUniform = true
	svg := r.ToSVG(nil)
	assert.Contains(t, svg, `<g transform="matrix(1 0 0 1 5.5 10.5)" id="r1"  >`)
	assert.Contains(t, svg, `stroke: rgb(255,0,0); `)
	assert.Contains(t, svg, `opacity: 1;" vector-effect="non-scaling-stroke"  paint-order="stroke"  x=`)
}

func TestCircleToSVG(t *testing.T) {
	c := NewCircle(10)
	assert.Equal(t, 20., c.Width)
	assert.Contains(t, c.ToSVG(nil), "<circle "+defaultStyle+`  cx="0" cy="0" r="10" />`)

	c.EndAngle = 90
	assert.Contains(t, c.ToSVG(nil), `<path d="M 10 0 A 10 10 0 0 1 0 10" `)
	c.EndAngle = 270
	assert.Contains(t, c.ToSVG(nil), `<path d="M 10 0 A 10 10 0 1 1 0 -10" `)
}

func TestAbsoluteClipPath(t *testing.T) {
	r := NewRect(10, 10)
	clip := NewCircle(5)
	clip.AbsolutePositioned = true
	r.ClipPath = clip
	svg := r.ToSVG(nil)
	assert.Contains(t, svg, `<g clip-path="url(#CLIPPATH_0)"  >`+"\n"+`<g transform="matrix(1 0 0 1 5.5 5.5)"  >`)
	assert.Contains(t, svg, `<clipPath id="CLIPPATH_0" >`+"\n\t<circle transform=\"matrix(1 0 0 1 5.5 5.5)\" ")
	assert.Contains(t, svg, "</g>\n</g>\n")
}

func TestReviver(t *testing.T) {
	ctx := &svgexport.Context{Digits: 4, Reviver: func(s string) string { return "<!-- x -->" + s }}
	svg := NewRect(1, 1).ToSVG(ctx)
	assert.Contains(t, svg, "<!-- x --><g ")
}

func rgba(c color.Color) color.RGBA { return color.RGBAModel.Convert(c).(color.RGBA) }

func TestRenderRect(t *testing.T) {
	img, rd := raster.NewImage(20, 20)
	r := NewRect(10, 10)
	r.Fill = "red"
	r.Render(rd, geom.Identity)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(img.At(5, 5)))
	assert.Equal(t, color.RGBA{}, rgba(img.At(15, 15)))

	img, rd = raster.NewImage(20, 20)
	r.Visible = false
	r.Render(rd, geom.Identity)
	assert.Equal(t, color.RGBA{}, rgba(img.At(5, 5)))
}

func TestRenderClipPath(t *testing.T) {
	img, rd := raster.NewImage(20, 20)
	r := NewRect(20, 20)
	r.StrokeWidth = 0
	clip := NewCircle(5)
	clip.StrokeWidth = 0
	clip.Left, clip.Top = -5, -5 // relative to the center of r
	r.ClipPath = clip
	r.Render(rd, geom.Identity)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba(img.At(10, 10)))
	assert.Equal(t, color.RGBA{}, rgba(img.At(1, 1)))
}

func TestRenderText(t *testing.T) {
	img, rd := raster.NewImage(60, 60)
	text := NewText("xx", WithFill("blue"), WithTextBackgroundColor("yellow"))
	text.Underline = true
	text.Render(rd, geom.Identity)

	var blue, yellow int
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := rgba(img.At(x, y))
			if c == (color.RGBA{0, 0, 255, 255}) {
				blue++
			} else if c == (color.RGBA{255, 255, 0, 255}) {
				yellow++
			}
		}
	}
	assert.Greater(t, blue, 20)
	assert.Greater(t, yellow, 100)

	outline := text.Outline()
	require.NotEmpty(t, outline)
	bounds := outline.Bounds()
	assert.True(t, bounds.MinX >= -text.Width/2-1)
	assert.True(t, bounds.MaxY <= text.Height/2)
}
