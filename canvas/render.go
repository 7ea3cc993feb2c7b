package canvas

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/render/pdf"
	"github.com/benoitkugler/okcanvas/render/raster"
	"github.com/benoitkugler/okcanvas/svgcolor"
	"github.com/benoitkugler/okcanvas/svgpath"
)

func (c *Canvas) viewport() geom.Matrix {
	if c.ViewportTransform == (geom.Matrix{}) {
		return geom.Identity
	}
	return c.ViewportTransform
}

// fillColor covers the canvas with a plain color.
func (c *Canvas) fillColor(d render.Driver, m geom.Matrix, color string) {
	if color == "" {
		return
	}
	fill, err := svgcolor.Parse(color)
	if err != nil {
		okcanvas.Logger().Warn("canvas: invalid color", "value", color, "error", err)
		return
	}
	var p svgpath.Path
	p.AddRect(0, 0, c.Width, c.Height)
	render.DrawPath(d, p, render.Style{Fill: &fill, Opacity: 1, UseNonZeroWinding: true}, m)
}

// Render paints the canvas into d, m mapping the canvas
// coordinates to the device.
func (c *Canvas) Render(d render.Driver, m geom.Matrix) {
	c.fillColor(d, m, c.BackgroundColor)
	vpt := m.Multiply(c.viewport())
	if clip := c.ClipPath; clip != nil {
		cm := vpt
		if clip.Base().AbsolutePositioned {
			cm = m
		}
		d.PushClip(clip.Outline().Transform(cm.Multiply(clip.Base().OwnMatrix())), true)
	}
	for _, o := range c.objects {
		o.Render(d, vpt)
	}
	if c.ClipPath != nil {
		d.PopClip()
	}
	c.fillColor(d, m, c.OverlayColor)
}

// ToImage paints the canvas into a new image, whose size
// is the canvas size times multiplier.
func (c *Canvas) ToImage(multiplier float64) *image.RGBA {
	if multiplier <= 0 {
		multiplier = 1
	}
	w := int(math.Ceil(c.Width * multiplier))
	h := int(math.Ceil(c.Height * multiplier))
	img, rd := raster.NewImage(w, h)
	c.Render(rd, geom.Identity.Scale(multiplier, multiplier))
	return img
}

// WritePNG encodes the image returned by ToImage.
func (c *Canvas) WritePNG(w io.Writer, multiplier float64) error {
	return png.Encode(w, c.ToImage(multiplier))
}

// WritePDF writes a one page document of the canvas size, in points.
func (c *Canvas) WritePDF(w io.Writer) error {
	doc := pdf.NewDocument(c.Width, c.Height)
	c.Render(pdf.NewRenderer(doc), geom.Identity)
	return doc.Output(w)
}

// Bounds returns the union of the bounding rectangles of the objects,
// in scene coordinates.
func (c *Canvas) Bounds() svgpath.Rect {
	var (
		out   svgpath.Rect
		first = true
	)
	for _, o := range c.objects {
		r := o.Base().BoundingRect()
		if first {
			out, first = r, false
			continue
		}
		out = union(out, r)
	}
	return out
}

func union(a, b svgpath.Rect) svgpath.Rect {
	return svgpath.Rect{
		MinX: math.Min(a.MinX, b.MinX), MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX), MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// ContentBounds returns the union of the bounds of the object outlines,
// in scene coordinates. Unlike Bounds, strokes are ignored and rotated
// curves are not enlarged to their bounding box.
func (c *Canvas) ContentBounds() svgpath.Rect {
	var (
		out   svgpath.Rect
		first = true
	)
	for _, o := range c.objects {
		r := o.Outline().TransformedBounds(o.Base().OwnMatrix())
		if first {
			out, first = r, false
			continue
		}
		out = union(out, r)
	}
	return out
}
