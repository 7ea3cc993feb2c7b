package svgpath

import (
	"math"

	"github.com/benoitkugler/okcanvas/geom"
	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an ellipse arc.
const maxDx float64 = math.Pi / 8

// kappa is the control point distance approximating a quarter circle
const kappa = 0.5522847498

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) fixed.Point26_6 {
	return geom.ToFixed(geom.Point{X: x, Y: y})
}

// AddRect adds a rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(toFixedP(minX, minY))
	p.Line(toFixedP(maxX, minY))
	p.Line(toFixedP(maxX, maxY))
	p.Line(toFixedP(minX, maxY))
	p.Stop(true)
}

// AddRoundRect adds a rectangle with rounded corners of radius
// rx in the x axis and ry in the y axis. Radii are clamped to half
// the size of the rectangle.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 && ry <= 0 {
		p.AddRect(minX, minY, maxX, maxY)
		return
	}
	if rx <= 0 {
		rx = ry
	}
	if ry <= 0 {
		ry = rx
	}
	w, h := maxX-minX, maxY-minY
	rx, ry = math.Min(rx, w/2), math.Min(ry, h/2)
	kx, ky := rx*kappa, ry*kappa

	p.Start(toFixedP(minX+rx, minY))
	p.Line(toFixedP(maxX-rx, minY))
	p.CubeBezier(toFixedP(maxX-rx+kx, minY), toFixedP(maxX, minY+ry-ky), toFixedP(maxX, minY+ry))
	p.Line(toFixedP(maxX, maxY-ry))
	p.CubeBezier(toFixedP(maxX, maxY-ry+ky), toFixedP(maxX-rx+kx, maxY), toFixedP(maxX-rx, maxY))
	p.Line(toFixedP(minX+rx, maxY))
	p.CubeBezier(toFixedP(minX+rx-kx, maxY), toFixedP(minX, maxY-ry+ky), toFixedP(minX, maxY-ry))
	p.Line(toFixedP(minX, minY+ry))
	p.CubeBezier(toFixedP(minX, minY+ry-ky), toFixedP(minX+rx-kx, minY), toFixedP(minX+rx, minY))
	p.Stop(true)
}

// AddEllipse adds a full ellipse centered at (cx, cy).
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	p.AddEllipseArc(cx, cy, rx, ry, 0, 2*math.Pi, true)
}

// AddEllipseArc adds the part of the ellipse between the angles start and end
// (in radians, clockwise in the y-down convention). If close is true the
// path is closed with a straight line.
func (p *Path) AddEllipseArc(cx, cy, rx, ry, start, end float64, close bool) {
	if rx == 0 || ry == 0 {
		return
	}
	delta := end - start
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	segs := int(math.Abs(delta)/maxDx) + 1
	dEta := delta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	lx, ly := ellipsePointAt(rx, ry, start, cx, cy)
	ldx, ldy := ellipsePrime(rx, ry, start)
	p.Start(toFixedP(lx, ly))
	for i := 1; i <= segs; i++ {
		eta := start + dEta*float64(i)
		px, py := ellipsePointAt(rx, ry, eta, cx, cy)
		dx, dy := ellipsePrime(rx, ry, eta)
		p.CubeBezier(toFixedP(lx+alpha*ldx, ly+alpha*ldy),
			toFixedP(px-alpha*dx, py-alpha*dy), toFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	p.Stop(close)
}

// ellipsePrime gives tangent vectors for parameterized ellipse; a, b, radii, eta parameter
func ellipsePrime(a, b, eta float64) (px, py float64) {
	return -a * math.Sin(eta), b * math.Cos(eta)
}

// ellipsePointAt gives points for parameterized ellipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, eta, cx, cy float64) (px, py float64) {
	return cx + a*math.Cos(eta), cy + b*math.Sin(eta)
}
