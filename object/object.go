// Package object implements the scene objects: rectangles, circles
// and rich text, their geometry, their SVG markup and their rendering
// through a render.Driver.
package object

import (
	"math"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgexport"
	"github.com/benoitkugler/okcanvas/svgpath"
)

// Shape is implemented by every object of a scene.
type Shape interface {
	// Base returns the properties common to all objects.
	Base() *Object

	// Type returns the name used in serialized scenes.
	Type() string

	// ToSVG returns the markup of the object, including its transform.
	ToSVG(ctx *svgexport.Context) string

	// ToClipPathSVG returns the markup used when the object is
	// the clip path of another one.
	ToClipPathSVG(ctx *svgexport.Context) string

	// Outline returns the geometry of the object, in its own
	// coordinates (centered on the origin).
	Outline() svgpath.Path

	// Render paints the object, m being the transform of its parent.
	Render(d render.Driver, m geom.Matrix)
}

// Object stores the properties shared by every shape.
type Object struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Angle  float64 `json:"angle"` // degrees
	SkewX  float64 `json:"skewX"`
	SkewY  float64 `json:"skewY"`
	FlipX  bool    `json:"flipX"`
	FlipY  bool    `json:"flipY"`

	OriginX string `json:"originX"` // left, center or right
	OriginY string `json:"originY"` // top, center or bottom

	Fill             string    `json:"fill"`   // empty for none
	Stroke           string    `json:"stroke"` // empty for none
	StrokeWidth      float64   `json:"strokeWidth"`
	StrokeDashArray  []float64 `json:"strokeDashArray"`
	StrokeDashOffset float64   `json:"strokeDashOffset"`
	StrokeLineCap    string    `json:"strokeLineCap"`
	StrokeLineJoin   string    `json:"strokeLineJoin"`
	StrokeMiterLimit float64   `json:"strokeMiterLimit"`
	StrokeUniform    bool      `json:"strokeUniform"`
	FillRule         string    `json:"fillRule"`
	PaintFirst       string    `json:"paintFirst"` // fill or stroke

	Opacity         float64 `json:"opacity"`
	Visible         bool    `json:"visible"`
	BackgroundColor string  `json:"backgroundColor"`
	ID              string  `json:"id,omitempty"`

	// ClipPath restricts the drawing to the outline of another shape.
	// It is positioned relative to the center of the object, unless
	// AbsolutePositioned is set on the clip path itself.
	ClipPath           Shape `json:"-"`
	AbsolutePositioned bool  `json:"absolutePositioned"`

	// clipPathID is allocated when the object is exported as a clip path
	clipPathID string
}

// defaultObject returns the default values of the common properties.
func defaultObject() Object {
	return Object{
		ScaleX:           1,
		ScaleY:           1,
		OriginX:          "left",
		OriginY:          "top",
		Fill:             "rgb(0,0,0)",
		StrokeWidth:      1,
		StrokeLineCap:    "butt",
		StrokeLineJoin:   "miter",
		StrokeMiterLimit: 4,
		FillRule:         "nonzero",
		PaintFirst:       "fill",
		Opacity:          1,
		Visible:          true,
	}
}

// Base implements Shape.
func (o *Object) Base() *Object { return o }

// originOffset maps an origin name to its offset relative to the center.
func originOffset(origin string) float64 {
	switch origin {
	case "left", "top":
		return -0.5
	case "right", "bottom":
		return 0.5
	default:
		return 0
	}
}

func (o *Object) composeOptions() geom.ComposeOptions {
	return geom.ComposeOptions{
		Angle:  o.Angle,
		ScaleX: o.ScaleX, ScaleY: o.ScaleY,
		FlipX: o.FlipX, FlipY: o.FlipY,
		SkewX: o.SkewX, SkewY: o.SkewY,
	}
}

// TransformedDimensions returns the size of the object after scaling and
// skewing, including its stroke. The stroke width is not scaled when
// StrokeUniform is set.
func (o *Object) TransformedDimensions() geom.Point {
	pre, post := o.StrokeWidth, 0.
	if o.StrokeUniform {
		pre, post = 0, o.StrokeWidth
	}
	w, h := o.Width+pre, o.Height+pre
	var dims geom.Point
	if o.SkewX == 0 && o.SkewY == 0 {
		dims = geom.Point{X: w * o.ScaleX, Y: h * o.ScaleY}
	} else {
		dims = geom.SizeAfterTransform(w, h, geom.DimensionsMatrix(o.composeOptions()))
	}
	return geom.Point{X: dims.X + post, Y: dims.Y + post}
}

// CenterPoint returns the center of the object, in its parent coordinates.
func (o *Object) CenterPoint() geom.Point {
	dims := o.TransformedDimensions()
	origin := geom.Point{X: o.Left, Y: o.Top}
	c := origin.Add(geom.Point{
		X: -dims.X * originOffset(o.OriginX),
		Y: -dims.Y * originOffset(o.OriginY),
	})
	if o.Angle != 0 { // the origin is the rotation center
		r := geom.RotateMatrix(o.Angle)
		c = origin.Add(r.ApplyVector(c.Sub(origin)))
	}
	return c
}

// OwnMatrix returns the transform mapping the object coordinates,
// centered on the origin, to its parent coordinates.
func (o *Object) OwnMatrix() geom.Matrix {
	opts := o.composeOptions()
	c := o.CenterPoint()
	opts.TranslateX, opts.TranslateY = c.X, c.Y
	return geom.Compose(opts)
}

// BoundingRect returns the axis aligned bounds of the object,
// in its parent coordinates.
func (o *Object) BoundingRect() svgpath.Rect {
	m := o.OwnMatrix()
	dims := o.TransformedDimensions()
	// TransformedDimensions already accounts for scale and skew
	r := geom.Compose(geom.ComposeOptions{Angle: o.Angle, ScaleX: 1, ScaleY: 1})
	size := geom.SizeAfterTransform(dims.X, dims.Y, r)
	return svgpath.Rect{
		MinX: m[4] - size.X/2, MinY: m[5] - size.Y/2,
		MaxX: m[4] + size.X/2, MaxY: m[5] + size.Y/2,
	}
}

// style returns the painting attributes of the shape path.
func (o *Object) style() render.Style {
	s := render.Style{
		Opacity:           o.Opacity,
		UseNonZeroWinding: o.FillRule != "evenodd",
		LineWidth:         o.StrokeWidth,
		MiterLimit:        o.StrokeMiterLimit,
		LineJoin:          render.ParseJoinMode(o.StrokeLineJoin),
		LineCap:           render.ParseCapMode(o.StrokeLineCap),
		Dash:              render.DashOptions{Dash: o.StrokeDashArray, DashOffset: o.StrokeDashOffset},
		StrokeFirst:       o.PaintFirst == "stroke",
	}
	s.Fill = parsePaint(o.Fill)
	s.Stroke = parsePaint(o.Stroke)
	return s
}

// renderShape implements the common part of Render: the visibility,
// the clip path, the background and the painting of the outline.
func renderShape(s Shape, d render.Driver, parent geom.Matrix, paint func(m geom.Matrix)) {
	o := s.Base()
	if !o.Visible || o.Opacity == 0 {
		return
	}
	m := parent.Multiply(o.OwnMatrix())
	if clip := o.ClipPath; clip != nil {
		cm := m
		if clip.Base().AbsolutePositioned {
			cm = parent
		}
		outline := clip.Outline().Transform(cm.Multiply(clip.Base().OwnMatrix()))
		d.PushClip(outline, true)
		defer d.PopClip()
	}
	if bg := parsePaint(o.BackgroundColor); bg != nil {
		var p svgpath.Path
		dims := geom.Point{X: o.Width, Y: o.Height}
		p.AddRect(-dims.X/2, -dims.Y/2, dims.X/2, dims.Y/2)
		render.DrawPath(d, p, render.Style{Fill: bg, Opacity: o.Opacity, UseNonZeroWinding: true}, m)
	}
	paint(m)
}

// isZero is true for values javascript considers falsy.
func isZero(v float64) bool { return v == 0 || math.IsNaN(v) }
