// Package pdf implements a PDF backend by wrapping codeberg.org/go-pdf/fpdf.
package pdf

import (
	"codeberg.org/go-pdf/fpdf"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgcolor"
	"github.com/benoitkugler/okcanvas/svgpath"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ render.Driver  = (*Renderer)(nil)
	_ render.Filler  = (*filler)(nil)
	_ render.Stroker = (*stroker)(nil)
)

// Renderer writes to the current page of a document.
type Renderer struct {
	pdf   *fpdf.Fpdf
	clips int
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *fpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *fpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf}
}

// NewDocument returns a one page document of the given
// size in points, with no margins.
func NewDocument(width, height float64) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (render.Filler, render.Stroker) {
	var (
		f render.Filler
		s render.Stroker
	)
	if willFill {
		f = &filler{pather: pather{rd.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather{rd.pdf}}
	}
	return f, s
}

// PushClip only supports the bounding box of the path:
// arbitrary shapes are approximated by their extent.
func (rd *Renderer) PushClip(p svgpath.Path, _ bool) {
	b := p.Bounds()
	rd.pdf.ClipRect(b.MinX, b.MinY, b.Width(), b.Height(), false)
	rd.clips++
}

func (rd *Renderer) PopClip() {
	if rd.clips == 0 {
		return
	}
	rd.pdf.ClipEnd()
	rd.clips--
}

func (p pather) Clear() {}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f *filler) SetColor(color svgcolor.Color, opacity float64) {
	f.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
	f.pdf.SetAlpha(opacity*color.A, "Normal")
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetColor(color svgcolor.Color, opacity float64) {
	s.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
	s.pdf.SetAlpha(opacity*color.A, "Normal")
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}

var (
	joinStyles = [...]string{render.Round: "round", render.Bevel: "bevel", render.Miter: "miter"}
	capStyles  = [...]string{render.ButtCap: "butt", render.SquareCap: "square", render.RoundCap: "round"}
)

func (s *stroker) SetStrokeOptions(options render.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineJoinStyle(joinStyles[options.LineJoin])
	s.pdf.SetLineCapStyle(capStyles[options.LineCap])
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}
