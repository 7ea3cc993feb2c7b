// Package svgpath implements an abstract representation of
// vector paths, which can then be consumed by painting drivers
// or written as SVG path data.
package svgpath

import (
	"strings"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/svgexport"
	"golang.org/x/image/math/fixed"
)

// Adder is implemented by types accumulating path commands,
// such as drawing drivers.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Operation groups the different path commands
type Operation interface {
	// add itself on `a`, after applying the transform `m`
	addTo(a Adder, m geom.Matrix)
	transform(m geom.Matrix) Operation
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (op MoveTo) addTo(a Adder, m geom.Matrix) {
	a.Stop(false) // implicit close if currently in path.
	a.Start(m.ApplyFixed(fixed.Point26_6(op)))
}

func (op LineTo) addTo(a Adder, m geom.Matrix) {
	a.Line(m.ApplyFixed(fixed.Point26_6(op)))
}

func (op QuadTo) addTo(a Adder, m geom.Matrix) {
	a.QuadBezier(m.ApplyFixed(op[0]), m.ApplyFixed(op[1]))
}

func (op CubicTo) addTo(a Adder, m geom.Matrix) {
	a.CubeBezier(m.ApplyFixed(op[0]), m.ApplyFixed(op[1]), m.ApplyFixed(op[2]))
}

func (Close) addTo(a Adder, _ geom.Matrix) { a.Stop(true) }

func (op MoveTo) transform(m geom.Matrix) Operation {
	return MoveTo(m.ApplyFixed(fixed.Point26_6(op)))
}

func (op LineTo) transform(m geom.Matrix) Operation {
	return LineTo(m.ApplyFixed(fixed.Point26_6(op)))
}

func (op QuadTo) transform(m geom.Matrix) Operation {
	return QuadTo{m.ApplyFixed(op[0]), m.ApplyFixed(op[1])}
}

func (op CubicTo) transform(m geom.Matrix) Operation {
	return CubicTo{m.ApplyFixed(op[0]), m.ApplyFixed(op[1]), m.ApplyFixed(op[2])}
}

func (op Close) transform(geom.Matrix) Operation { return op }

// Path describes a sequence of basic operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// AddTo sends the path to `a`, after applying `m`.
func (p Path) AddTo(a Adder, m geom.Matrix) {
	for _, op := range p {
		op.addTo(a, m)
	}
	a.Stop(false)
}

// Transform returns a new path with the points transformed by m.
func (p Path) Transform(m geom.Matrix) Path {
	out := make(Path, len(p))
	for i, op := range p {
		out[i] = op.transform(m)
	}
	return out
}

func pt(p fixed.Point26_6, digits int) string {
	return svgexport.Num(float64(p.X)/64, digits) + " " + svgexport.Num(float64(p.Y)/64, digits)
}

// ToSVGPath returns the path data, with the given precision.
func (p Path) ToSVGPath(digits int) string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = "M " + pt(fixed.Point26_6(op), digits)
		case LineTo:
			chunks[i] = "L " + pt(fixed.Point26_6(op), digits)
		case QuadTo:
			chunks[i] = "Q " + pt(op[0], digits) + " " + pt(op[1], digits)
		case CubicTo:
			chunks[i] = "C " + pt(op[0], digits) + " " + pt(op[1], digits) + " " + pt(op[2], digits)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath(3)
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
