package object

import (
	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgexport"
	"github.com/benoitkugler/okcanvas/svgpath"
)

// Rect is a rectangle, with optional rounded corners.
type Rect struct {
	Object
	Rx float64 `json:"rx"`
	Ry float64 `json:"ry"`
}

// NewRect returns a rectangle with the default properties.
func NewRect(width, height float64) *Rect {
	r := &Rect{Object: defaultObject()}
	r.Width, r.Height = width, height
	return r
}

func (*Rect) Type() string { return "rect" }

func (r *Rect) markup() []string {
	w, h := r.Width, r.Height
	return []string{
		"<rect ", commonParts,
		`x="` + svgexport.Raw(-w/2) + `" y="` + svgexport.Raw(-h/2) +
			`" rx="` + svgexport.Raw(r.Rx) + `" ry="` + svgexport.Raw(r.Ry) +
			`" width="` + svgexport.Raw(w) + `" height="` + svgexport.Raw(h) + `" />` + "\n",
	}
}

// ToSVG implements Shape.
func (r *Rect) ToSVG(ctx *svgexport.Context) string {
	ctx = svgexport.OrDefault(ctx)
	return r.baseSVGMarkup(ctx, r.markup(), markupOptions{})
}

// ToClipPathSVG implements Shape.
func (r *Rect) ToClipPathSVG(ctx *svgexport.Context) string {
	ctx = svgexport.OrDefault(ctx)
	return r.baseClipPathSVGMarkup(ctx, r.markup())
}

// Outline implements Shape.
func (r *Rect) Outline() svgpath.Path {
	var p svgpath.Path
	w, h := r.Width/2, r.Height/2
	p.AddRoundRect(-w, -h, w, h, r.Rx, r.Ry)
	return p
}

// Render implements Shape.
func (r *Rect) Render(d render.Driver, m geom.Matrix) {
	renderShape(r, d, m, func(m geom.Matrix) {
		render.DrawPath(d, r.Outline(), r.style(), m)
	})
}
