package raster

import (
	"image/color"
	"testing"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgcolor"
	"github.com/benoitkugler/okcanvas/svgpath"
	"github.com/stretchr/testify/assert"
)

func rgba(c color.Color) color.RGBA { return color.RGBAModel.Convert(c).(color.RGBA) }

func TestFillRect(t *testing.T) {
	img, rd := NewImage(20, 20)
	var p svgpath.Path
	p.AddRect(5, 5, 15, 15)
	red := svgcolor.MustParse("red")
	render.DrawPath(rd, p, render.Style{Fill: &red, Opacity: 1, UseNonZeroWinding: true}, geom.Identity)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(img.At(10, 10)))
	assert.Equal(t, color.RGBA{}, rgba(img.At(1, 1)))
	assert.Equal(t, color.RGBA{}, rgba(img.At(18, 18)))
}

func TestStroke(t *testing.T) {
	img, rd := NewImage(20, 20)
	var p svgpath.Path
	p.AddRect(5, 5, 15, 15)
	blue := svgcolor.MustParse("blue")
	render.DrawPath(rd, p, render.Style{Stroke: &blue, Opacity: 1, LineWidth: 2, MiterLimit: 4}, geom.Identity)

	assert.Equal(t, uint8(255), rgba(img.At(5, 10)).B)
	assert.Equal(t, color.RGBA{}, rgba(img.At(10, 10))) // no fill
}

func TestClip(t *testing.T) {
	img, rd := NewImage(20, 20)
	var clip svgpath.Path
	clip.AddRect(0, 0, 10, 20)
	rd.PushClip(clip, true)

	var p svgpath.Path
	p.AddRect(0, 0, 20, 20)
	render.DrawPath(rd, p, render.DefaultStyle, geom.Identity)
	// nothing reaches the destination before the clip is popped
	assert.Equal(t, color.RGBA{}, rgba(img.At(5, 5)))
	rd.PopClip()

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba(img.At(5, 5)))
	assert.Equal(t, color.RGBA{}, rgba(img.At(15, 5)))

	// unbalanced pops are ignored
	rd.PopClip()
}

func TestNestedClip(t *testing.T) {
	img, rd := NewImage(20, 20)
	var c1, c2 svgpath.Path
	c1.AddRect(0, 0, 10, 20)
	c2.AddRect(0, 0, 20, 10)
	rd.PushClip(c1, true)
	rd.PushClip(c2, true)
	var p svgpath.Path
	p.AddRect(0, 0, 20, 20)
	render.DrawPath(rd, p, render.DefaultStyle, geom.Identity)
	rd.PopClip()
	rd.PopClip()

	assert.Equal(t, uint8(255), rgba(img.At(5, 5)).A)
	assert.Equal(t, uint8(0), rgba(img.At(15, 5)).A)
	assert.Equal(t, uint8(0), rgba(img.At(5, 15)).A)
}
