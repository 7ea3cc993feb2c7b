package object

import (
	"math"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgexport"
	"github.com/benoitkugler/okcanvas/svgpath"
)

// Circle is a circle, or a circular arc when the angles
// do not cover a full turn.
type Circle struct {
	Object
	Radius           float64 `json:"radius"`
	StartAngle       float64 `json:"startAngle"` // degrees
	EndAngle         float64 `json:"endAngle"`   // degrees
	CounterClockwise bool    `json:"counterClockwise"`
}

// NewCircle returns a full circle with the default properties.
func NewCircle(radius float64) *Circle {
	c := &Circle{Object: defaultObject(), EndAngle: 360}
	c.SetRadius(radius)
	return c
}

// SetRadius updates the radius and the dimensions.
func (c *Circle) SetRadius(radius float64) {
	c.Radius = radius
	c.Width, c.Height = 2*radius, 2*radius
}

func (*Circle) Type() string { return "circle" }

// cosSin is exact for multiples of 90 degrees.
func cosSin(deg float64) (float64, float64) {
	m := geom.RotateMatrix(deg)
	return m[0], m[1]
}

func (c *Circle) sweep() float64 { return math.Mod(c.EndAngle-c.StartAngle, 360) }

func (c *Circle) markup() []string {
	angle := c.sweep()
	if angle == 0 {
		return []string{"<circle ", commonParts, `cx="0" cy="0" r="` + svgexport.Raw(c.Radius) + `" />` + "\n"}
	}
	r := c.Radius
	cs, sn := cosSin(c.StartAngle)
	ce, se := cosSin(c.EndAngle)
	largeFlag, sweepFlag := "0", "1"
	if angle > 180 {
		largeFlag = "1"
	}
	if c.CounterClockwise {
		sweepFlag = "0"
	}
	d := "M " + svgexport.Raw(cs*r) + " " + svgexport.Raw(sn*r) +
		" A " + svgexport.Raw(r) + " " + svgexport.Raw(r) + " 0 " + largeFlag + " " + sweepFlag +
		" " + svgexport.Raw(ce*r) + " " + svgexport.Raw(se*r)
	return []string{`<path d="` + d + `" `, commonParts, " />\n"}
}

// ToSVG implements Shape.
func (c *Circle) ToSVG(ctx *svgexport.Context) string {
	ctx = svgexport.OrDefault(ctx)
	return c.baseSVGMarkup(ctx, c.markup(), markupOptions{})
}

// ToClipPathSVG implements Shape.
func (c *Circle) ToClipPathSVG(ctx *svgexport.Context) string {
	ctx = svgexport.OrDefault(ctx)
	return c.baseClipPathSVGMarkup(ctx, c.markup())
}

// Outline implements Shape.
func (c *Circle) Outline() svgpath.Path {
	var p svgpath.Path
	if c.sweep() == 0 {
		p.AddEllipse(0, 0, c.Radius, c.Radius)
		return p
	}
	start, end := geom.DegToRad(c.StartAngle), geom.DegToRad(c.EndAngle)
	if c.CounterClockwise {
		for end > start {
			end -= 2 * math.Pi
		}
	} else {
		for end < start {
			end += 2 * math.Pi
		}
	}
	p.AddEllipseArc(0, 0, c.Radius, c.Radius, start, end, false)
	return p
}

// Render implements Shape.
func (c *Circle) Render(d render.Driver, m geom.Matrix) {
	renderShape(c, d, m, func(m geom.Matrix) {
		render.DrawPath(d, c.Outline(), c.style(), m)
	})
}
