// Package raster implements a raster backend by wrapping rasterx.
package raster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgcolor"
	"github.com/benoitkugler/okcanvas/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

var _ render.Driver = (*Renderer)(nil) // assert interface conformance

// layer is one level of the clip stack: drawing happens on img,
// which is composited through mask when the clip is popped.
type layer struct {
	img  *image.RGBA
	mask *image.Alpha
}

// Renderer paints into an *image.RGBA.
type Renderer struct {
	width, height int
	dest          *image.RGBA
	layers        []layer

	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer drawing on `img`, whose
// bounds are expected to start at the origin.
func NewRenderer(img *image.RGBA) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	rd := &Renderer{width: w, height: h, dest: img}
	rd.bind(img)
	return rd
}

// NewImage allocates a transparent image of the given size
// and its renderer.
func NewImage(width, height int) (*image.RGBA, *Renderer) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return img, NewRenderer(img)
}

// bind points the scanners to the current target image
func (rd *Renderer) bind(img draw.Image) {
	scanner := rasterx.NewScannerGV(rd.width, rd.height, img, img.Bounds())
	rd.filler = rasterx.NewFiller(rd.width, rd.height, scanner)
	strokeScanner := rasterx.NewScannerGV(rd.width, rd.height, img, img.Bounds())
	rd.dasher = rasterx.NewDasher(rd.width, rd.height, strokeScanner)
}

func (rd *Renderer) target() *image.RGBA {
	if n := len(rd.layers); n != 0 {
		return rd.layers[n-1].img
	}
	return rd.dest
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (render.Filler, render.Stroker) {
	var (
		f render.Filler
		s render.Stroker
	)
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

// PushClip rasterizes `p` into an alpha mask, intersected
// with the current clip, and starts a new layer.
func (rd *Renderer) PushClip(p svgpath.Path, useNonZeroWinding bool) {
	mask := image.NewAlpha(image.Rect(0, 0, rd.width, rd.height))
	scanner := rasterx.NewScannerGV(rd.width, rd.height, mask, mask.Bounds())
	f := rasterx.NewFiller(rd.width, rd.height, scanner)
	f.SetWinding(useNonZeroWinding)
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			f.Start(fixed.Point26_6(op))
		case svgpath.LineTo:
			f.Line(fixed.Point26_6(op))
		case svgpath.QuadTo:
			f.QuadBezier(op[0], op[1])
		case svgpath.CubicTo:
			f.CubeBezier(op[0], op[1], op[2])
		case svgpath.Close:
			f.Stop(true)
		}
	}
	f.Stop(false)
	scanner.SetColor(color.Opaque)
	f.Draw()

	if n := len(rd.layers); n != 0 { // nested clips intersect
		parent := rd.layers[n-1].mask
		for i := range mask.Pix {
			mask.Pix[i] = uint8(uint16(mask.Pix[i]) * uint16(parent.Pix[i]) / 0xff)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, rd.width, rd.height))
	rd.layers = append(rd.layers, layer{img: img, mask: mask})
	rd.bind(img)
}

// PopClip composites the current layer through its mask.
func (rd *Renderer) PopClip() {
	n := len(rd.layers)
	if n == 0 {
		return
	}
	top := rd.layers[n-1]
	rd.layers = rd.layers[:n-1]
	dst := rd.target()
	draw.DrawMask(dst, dst.Bounds(), top.img, image.Point{}, top.mask, image.Point{}, draw.Over)
	rd.bind(dst)
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c svgcolor.Color, opacity float64) {
	f.Scanner.SetColor(rasterx.ApplyOpacity(c.NRGBA(), opacity))
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(c svgcolor.Color, opacity float64) {
	s.Scanner.SetColor(rasterx.ApplyOpacity(c.NRGBA(), opacity))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		render.Round: rasterx.Round,
		render.Bevel: rasterx.Bevel,
		render.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		render.ButtCap:   rasterx.ButtCap,
		render.SquareCap: rasterx.SquareCap,
		render.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options render.StrokeOptions) {
	capFn := capToFunc[options.LineCap]
	s.SetStroke(
		options.LineWidth, options.MiterLimit, capFn, capFn, rasterx.FlatGap,
		joinToJoin[options.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}
