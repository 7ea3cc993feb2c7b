package svgpath

import (
	"math"
	"testing"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

// recorder counts the commands received
type recorder struct {
	starts, lines, quads, cubics, closes int
	last                                 fixed.Point26_6
}

func (r *recorder) Start(a fixed.Point26_6)            { r.starts++; r.last = a }
func (r *recorder) Line(b fixed.Point26_6)             { r.lines++; r.last = b }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)    { r.quads++; r.last = c }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.cubics++; r.last = d }
func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.closes++
	}
}

func TestRect(t *testing.T) {
	var p Path
	p.AddRect(-100, -50, 100, 50)
	assert.Equal(t, "M -100 -50 L 100 -50 L 100 50 L -100 50 Z", p.ToSVGPath(2))
	assert.Equal(t, Rect{-100, -50, 100, 50}, p.Bounds())

	var r recorder
	p.AddTo(&r, geom.Identity.Translate(100, 50))
	assert.Equal(t, 1, r.starts)
	assert.Equal(t, 3, r.lines)
	assert.Equal(t, 1, r.closes)
	assert.Equal(t, toFixedP(0, 100), r.last)
}

func TestRoundRect(t *testing.T) {
	var p Path
	p.AddRoundRect(0, 0, 100, 40, 10, 0)
	var r recorder
	p.AddTo(&r, geom.Identity)
	assert.Equal(t, 4, r.cubics)
	assert.Equal(t, 4, r.lines)
	b := p.Bounds()
	assert.InDelta(t, 0, b.MinX, 0.05)
	assert.InDelta(t, 100, b.MaxX, 0.05)
	assert.InDelta(t, 40, b.Height(), 0.05)

	// radii larger than the rectangle are clamped
	var q Path
	q.AddRoundRect(0, 0, 10, 10, 50, 50)
	assert.InDelta(t, 10, q.Bounds().Width(), 0.05)
}

func TestEllipse(t *testing.T) {
	var p Path
	p.AddEllipse(0, 0, 50, 20)
	b := p.Bounds()
	assert.InDelta(t, -50, b.MinX, 0.1)
	assert.InDelta(t, 50, b.MaxX, 0.1)
	assert.InDelta(t, -20, b.MinY, 0.1)
	assert.InDelta(t, 20, b.MaxY, 0.1)

	var arc Path
	arc.AddEllipseArc(0, 0, 10, 10, 0, math.Pi/2, false)
	ab := arc.Bounds()
	assert.InDelta(t, 0, ab.MinX, 0.05)
	assert.InDelta(t, 10, ab.MaxX, 0.05)
	assert.InDelta(t, 10, ab.MaxY, 0.05)

	var empty Path
	empty.AddEllipse(0, 0, 0, 10)
	assert.Empty(t, empty)
	assert.Equal(t, Rect{}, empty.Bounds())
}

func TestTransform(t *testing.T) {
	var p Path
	p.AddRect(0, 0, 10, 10)
	q := p.Transform(geom.Identity.Scale(2, 3))
	assert.Equal(t, Rect{0, 0, 20, 30}, q.Bounds())
	assert.Equal(t, Rect{0, 0, 20, 30}, p.TransformedBounds(geom.Identity.Scale(2, 3)))
	// the original is untouched
	assert.Equal(t, Rect{0, 0, 10, 10}, p.Bounds())
}
