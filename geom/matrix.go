// Package geom implements the 2D affine transforms used to place objects,
// in the canvas convention: a matrix [a b c d e f] maps (x, y) to
// (a*x + c*y + e, b*x + d*y + f).
package geom

import (
	"math"
	"strings"

	"github.com/benoitkugler/okcanvas/svgexport"
	"golang.org/x/image/math/fixed"
)

// Point is a 2D point or vector.
type Point struct{ X, Y float64 }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p * s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Matrix is an affine transform [a b c d e f].
type Matrix [6]float64

// Identity is the neutral transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Multiply returns m · n, that is the transform applying n first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Invert returns the inverse transform. A singular matrix
// returns the identity.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity
	}
	r := Matrix{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det, 0, 0}
	p := r.Apply(Point{m[4], m[5]})
	r[4], r[5] = -p.X, -p.Y
	return r
}

// Translate returns m · translate(x, y).
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Multiply(Matrix{1, 0, 0, 1, x, y})
}

// Scale returns m · scale(x, y).
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Multiply(Matrix{x, 0, 0, y, 0, 0})
}

// Rotate returns m · rotate(deg), with the angle in degrees.
func (m Matrix) Rotate(deg float64) Matrix {
	return m.Multiply(RotateMatrix(deg))
}

// SkewX returns m · skewX(deg).
func (m Matrix) SkewX(deg float64) Matrix {
	return m.Multiply(Matrix{1, 0, math.Tan(DegToRad(deg)), 1, 0, 0})
}

// SkewY returns m · skewY(deg).
func (m Matrix) SkewY(deg float64) Matrix {
	return m.Multiply(Matrix{1, math.Tan(DegToRad(deg)), 0, 1, 0, 0})
}

// RotateMatrix returns the rotation by deg degrees. Multiples of 90°
// are exact.
func RotateMatrix(deg float64) Matrix {
	if deg == 0 {
		return Identity
	}
	cos, sin := cosSin(deg)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

func cosSin(deg float64) (float64, float64) {
	switch math.Mod(math.Mod(deg, 360)+360, 360) {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}
	rad := DegToRad(deg)
	return math.Cos(rad), math.Sin(rad)
}

// Apply transforms the point p.
func (m Matrix) Apply(p Point) Point {
	return Point{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// ApplyVector transforms p, ignoring the translation.
func (m Matrix) ApplyVector(p Point) Point {
	return Point{m[0]*p.X + m[2]*p.Y, m[1]*p.X + m[3]*p.Y}
}

// ApplyFixed transforms a fixed point.
func (m Matrix) ApplyFixed(p fixed.Point26_6) fixed.Point26_6 {
	q := m.Apply(Point{float64(p.X) / 64, float64(p.Y) / 64})
	return ToFixed(q)
}

// ToFixed converts to a fixed point.
func ToFixed(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(p.X * 64)), Y: fixed.Int26_6(math.Round(p.Y * 64))}
}

// IsIdentity returns true if m has no effect.
func (m Matrix) IsIdentity() bool { return m == Identity }

// Scaling returns the norms of the transformed unit vectors.
func (m Matrix) Scaling() Point {
	return Point{math.Hypot(m[0], m[1]), math.Hypot(m[2], m[3])}
}

// ToSVG writes "matrix(a b c d e f)" with the given precision.
func (m Matrix) ToSVG(digits int) string {
	chunks := make([]string, len(m))
	for i, v := range m {
		chunks[i] = svgexport.Num(v, digits)
	}
	return "matrix(" + strings.Join(chunks, " ") + ")"
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// ComposeOptions are the decomposed parts of an object transform.
type ComposeOptions struct {
	TranslateX, TranslateY float64
	Angle                  float64 // degrees
	ScaleX, ScaleY         float64
	FlipX, FlipY           bool
	SkewX, SkewY           float64 // degrees
}

// DimensionsMatrix returns the scale/flip/skew part of opts.
func DimensionsMatrix(opts ComposeOptions) Matrix {
	sx, sy := opts.ScaleX, opts.ScaleY
	if opts.FlipX {
		sx = -sx
	}
	if opts.FlipY {
		sy = -sy
	}
	m := Matrix{sx, 0, 0, sy, 0, 0}
	if opts.SkewX != 0 {
		m = m.SkewX(opts.SkewX)
	}
	if opts.SkewY != 0 {
		m = m.SkewY(opts.SkewY)
	}
	return m
}

// Compose builds translate · rotate · scale · skew.
func Compose(opts ComposeOptions) Matrix {
	m := Matrix{1, 0, 0, 1, opts.TranslateX, opts.TranslateY}
	if opts.Angle != 0 {
		m = m.Multiply(RotateMatrix(opts.Angle))
	}
	if d := DimensionsMatrix(opts); !d.IsIdentity() {
		m = m.Multiply(d)
	}
	return m
}

// SizeAfterTransform returns the size of the bounding box of
// the (w, h) rectangle centered at the origin, after applying m.
func SizeAfterTransform(w, h float64, m Matrix) Point {
	dx, dy := w/2, h/2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]Point{{-dx, -dy}, {dx, -dy}, {-dx, dy}, {dx, dy}} {
		q := m.ApplyVector(p)
		minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
		minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
	}
	return Point{maxX - minX, maxY - minY}
}

// Decompose is the inverse of Compose: it splits m into a translation,
// a rotation, a scale and a horizontal skew. A negative determinant
// gives a negative ScaleY. The vertical skew is always zero.
func Decompose(m Matrix) ComposeOptions {
	denom := m[0]*m[0] + m[1]*m[1]
	scaleX := math.Sqrt(denom)
	if scaleX == 0 {
		return ComposeOptions{TranslateX: m[4], TranslateY: m[5]}
	}
	return ComposeOptions{
		TranslateX: m[4],
		TranslateY: m[5],
		Angle:      RadToDeg(math.Atan2(m[1], m[0])),
		ScaleX:     scaleX,
		ScaleY:     (m[0]*m[3] - m[2]*m[1]) / scaleX,
		SkewX:      RadToDeg(math.Atan2(m[0]*m[2]+m[1]*m[3], denom)),
	}
}
