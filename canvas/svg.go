package canvas

import (
	"sort"
	"strings"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/config"
	"github.com/benoitkugler/okcanvas/object"
	"github.com/benoitkugler/okcanvas/svgexport"
)

// ViewBox is the viewBox attribute of a SVG document.
type ViewBox struct {
	X, Y, Width, Height float64
}

// SVGOptions controls the document written by ToSVG.
type SVGOptions struct {
	// SuppressPreamble omits the XML declaration and the doctype.
	SuppressPreamble bool
	// Encoding is written in the XML declaration, UTF-8 by default.
	Encoding string

	// Width and Height override the size attributes of the <svg> element,
	// which may then use units, like "10cm".
	Width, Height string
	// ViewBox overrides the viewBox computed from the canvas.
	ViewBox *ViewBox

	// Reviver, if not nil, may rewrite the markup of each object.
	Reviver func(markup string) string
}

// ToSVG returns the canvas as a standalone SVG document.
func (c *Canvas) ToSVG(opts SVGOptions) string {
	ctx := svgexport.NewContext()
	ctx.Reviver = opts.Reviver

	var b strings.Builder
	if !opts.SuppressPreamble {
		encoding := opts.Encoding
		if encoding == "" {
			encoding = "UTF-8"
		}
		b.WriteString(`<?xml version="1.0" encoding="` + encoding + `" standalone="no" ?>` + "\n")
		b.WriteString(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">` + "\n")
	}
	clipID := c.writeSVGHeader(&b, ctx, opts)

	if clipID != "" {
		b.WriteString(`<g clip-path="url(#` + clipID + `)" >` + "\n")
	}
	writeSVGColor(&b, c.BackgroundColor)
	for _, o := range c.objects {
		b.WriteString(o.ToSVG(ctx))
	}
	if clipID != "" {
		b.WriteString("</g>\n")
	}
	writeSVGColor(&b, c.OverlayColor)
	b.WriteString("</svg>")

	okcanvas.Logger().Debug("canvas: svg export", "objects", len(c.objects), "digits", ctx.Digits)
	return b.String()
}

func (c *Canvas) viewBox(ctx *svgexport.Context, opts SVGOptions) string {
	if vb := opts.ViewBox; vb != nil {
		return svgexport.Raw(vb.X) + " " + svgexport.Raw(vb.Y) + " " + svgexport.Raw(vb.Width) + " " + svgexport.Raw(vb.Height)
	}
	if vpt := c.ViewportTransform; c.SVGViewportTransformation && vpt[0] != 0 && vpt[3] != 0 {
		return ctx.Num(-vpt[4]/vpt[0]) + " " + ctx.Num(-vpt[5]/vpt[3]) + " " +
			ctx.Num(c.Width/vpt[0]) + " " + ctx.Num(c.Height/vpt[3])
	}
	return "0 0 " + svgexport.Raw(c.Width) + " " + svgexport.Raw(c.Height)
}

// writeSVGHeader writes the <svg> element and the definitions, and
// returns the id of the canvas clip path, if any.
func (c *Canvas) writeSVGHeader(b *strings.Builder, ctx *svgexport.Context, opts SVGOptions) string {
	width, height := opts.Width, opts.Height
	if width == "" {
		width = svgexport.Raw(c.Width)
	}
	if height == "" {
		height = svgexport.Raw(c.Height)
	}
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" `)
	b.WriteString(`width="` + width + `" height="` + height + `" viewBox="` + c.viewBox(ctx, opts) + `" `)
	b.WriteString(`xml:space="preserve">` + "\n")
	b.WriteString("<desc>Created with okcanvas " + okcanvas.Version + "</desc>\n")
	b.WriteString("<defs>\n")
	b.WriteString(c.fontFacesMarkup())
	var clipID string
	if c.ClipPath != nil {
		clipID = ctx.NextClipPathID()
		b.WriteString(`<clipPath id="` + clipID + `" >` + "\n" + c.ClipPath.ToClipPathSVG(ctx) + "</clipPath>\n")
	}
	b.WriteString("</defs>\n")
	return clipID
}

// writeSVGColor writes a rectangle covering the canvas.
func writeSVGColor(b *strings.Builder, color string) {
	if color == "" {
		return
	}
	b.WriteString(`<rect x="0" y="0" width="100%" height="100%" fill="` + svgexport.EscapeXML(color) + `"></rect>` + "\n")
}

// textOf returns the text of texts and text boxes.
func textOf(s object.Shape) *object.Text {
	switch s := s.(type) {
	case *object.Text:
		return s
	case *object.Textbox:
		return &s.Text
	}
	return nil
}

// fontFamilies returns the families used by the texts, sorted.
func (c *Canvas) fontFamilies() []string {
	set := map[string]bool{}
	for _, o := range c.objects {
		t := textOf(o)
		if t == nil {
			continue
		}
		set[t.FontFamily] = true
		for _, chars := range t.Styles {
			for _, st := range chars {
				if st.Has(object.PropFontFamily) {
					set[st.FontFamily] = true
				}
			}
		}
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// fontFacesMarkup writes the @font-face rules for the families
// used by the texts and registered in config.FontPaths.
func (c *Canvas) fontFacesMarkup() string {
	paths := config.Get().FontPaths
	var rules strings.Builder
	for _, family := range c.fontFamilies() {
		url, ok := paths[family]
		if !ok {
			continue
		}
		rules.WriteString("\t\t@font-face {\n\t\t\tfont-family: '" + family + "';\n\t\t\tsrc: url('" + url + "');\n\t\t}\n")
	}
	if rules.Len() == 0 {
		return ""
	}
	return "\t<style type=\"text/css\"><![CDATA[\n" + rules.String() + "]]></style>\n"
}
