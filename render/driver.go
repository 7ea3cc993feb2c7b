// Package render defines how the scene is painted: drivers implement the
// actual draw operations, and receive paths whose transforms have
// already been applied.
package render

import (
	"math"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/svgcolor"
	"github.com/benoitkugler/okcanvas/svgpath"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any scene knowledge.
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	svgpath.Adder

	// SetColor set the color for the current path
	SetColor(color svgcolor.Color, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

// Clipper restricts the following drawing operations to
// the inside of a path, until the matching PopClip.
type Clipper interface {
	PushClip(p svgpath.Path, useNonZeroWinding bool)
	PopClip()
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)

	Clipper
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
const (
	Round JoinMode = iota
	Bevel
	Miter
)

// ParseJoinMode maps the SVG stroke-linejoin values, defaulting to Miter.
func ParseJoinMode(s string) JoinMode {
	switch s {
	case "round":
		return Round
	case "bevel":
		return Bevel
	default:
		return Miter
	}
}

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case Miter:
		return "miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

// ParseCapMode maps the SVG stroke-linecap values, defaulting to ButtCap.
func ParseCapMode(s string) CapMode {
	switch s {
	case "round":
		return RoundCap
	case "square":
		return SquareCap
	default:
		return ButtCap
	}
}

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "<unknown CapMode>"
	}
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line
	MiterLimit fixed.Int26_6 // the miter cutoff value for miter joins
	LineJoin   JoinMode
	LineCap    CapMode
	Dash       DashOptions
}

// Style groups the painting attributes of one path.
// A nil color disables the corresponding operation.
type Style struct {
	Fill              *svgcolor.Color
	Stroke            *svgcolor.Color
	Opacity           float64 // global opacity, multiplied with the colors alpha
	UseNonZeroWinding bool
	LineWidth         float64
	MiterLimit        float64
	LineJoin          JoinMode
	LineCap           CapMode
	Dash              DashOptions
	StrokeFirst       bool // paint-order: stroke
}

// DefaultStyle fills black with the non zero rule, full opacity
// and no stroke.
var DefaultStyle = Style{
	Fill:              &svgcolor.Black,
	Opacity:           1,
	UseNonZeroWinding: true,
	LineWidth:         1,
	MiterLimit:        4,
	LineJoin:          Miter,
	LineCap:           ButtCap,
}

func toFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }

// scaledWidth returns the stroke width after applying m,
// using the geometric mean of the scaling factors.
func scaledWidth(w float64, m geom.Matrix) float64 {
	s := m.Scaling()
	if s.X == s.Y {
		return w * s.X
	}
	return w * math.Sqrt(math.Abs(s.X*s.Y))
}

// DrawPath paints the path p into the driver d, after applying m.
func DrawPath(d Driver, p svgpath.Path, s Style, m geom.Matrix) {
	willFill := s.Fill != nil && s.Fill.A > 0
	willStroke := s.Stroke != nil && s.Stroke.A > 0 && s.LineWidth > 0
	if !willFill && !willStroke {
		return
	}
	filler, stroker := d.SetupDrawers(willFill, willStroke)

	fill := func() {
		if filler == nil {
			return
		}
		filler.Clear()
		filler.SetWinding(s.UseNonZeroWinding)
		p.AddTo(filler, m)
		filler.SetColor(*s.Fill, s.Opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}
	stroke := func() {
		if stroker == nil {
			return
		}
		stroker.Clear()
		dash := s.Dash
		if len(dash.Dash) != 0 {
			scale := scaledWidth(1, m)
			scaled := make([]float64, len(dash.Dash))
			for i, v := range dash.Dash {
				scaled[i] = v * scale
			}
			dash = DashOptions{Dash: scaled, DashOffset: dash.DashOffset * scale}
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth:  toFixed(scaledWidth(s.LineWidth, m)),
			MiterLimit: toFixed(s.MiterLimit),
			LineJoin:   s.LineJoin,
			LineCap:    s.LineCap,
			Dash:       dash,
		})
		p.AddTo(stroker, m)
		stroker.SetColor(*s.Stroke, s.Opacity)
		stroker.Draw()
	}

	if s.StrokeFirst {
		stroke()
		fill()
	} else {
		fill()
		stroke()
	}
}
