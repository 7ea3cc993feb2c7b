package object

import (
	"strings"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/svgcolor"
	"github.com/benoitkugler/okcanvas/svgexport"
)

// commonParts is the placeholder replaced by the style, paint order
// and vector effect attributes (or by the transform, for clip paths).
const commonParts = "COMMON_PARTS"

// parsePaint returns nil for an empty or invalid color,
// and for none.
func parsePaint(s string) *svgcolor.Color {
	if s == "" || s == "none" {
		return nil
	}
	c, err := svgcolor.Parse(s)
	if err != nil {
		okcanvas.Logger().Warn("object: invalid paint", "value", s, "error", err)
		return nil
	}
	return &c
}

func orString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orNumber(v float64, def string) string {
	if isZero(v) {
		return def
	}
	return svgexport.Raw(v)
}

// SvgStyles returns the content of the style attribute describing
// the painting of the object.
// The shadow filter is not supported, so skipShadow has no effect.
func (o *Object) SvgStyles(skipShadow bool) string {
	dash := "none"
	if len(o.StrokeDashArray) != 0 {
		chunks := make([]string, len(o.StrokeDashArray))
		for i, v := range o.StrokeDashArray {
			chunks[i] = svgexport.Raw(v)
		}
		dash = strings.Join(chunks, " ")
	}
	visibility := ""
	if !o.Visible {
		visibility = " visibility: hidden;"
	}
	return svgexport.ColorProp("stroke", o.Stroke) +
		"stroke-width: " + orNumber(o.StrokeWidth, "0") + "; " +
		"stroke-dasharray: " + dash + "; " +
		"stroke-linecap: " + orString(o.StrokeLineCap, "butt") + "; " +
		"stroke-dashoffset: " + orNumber(o.StrokeDashOffset, "0") + "; " +
		"stroke-linejoin: " + orString(o.StrokeLineJoin, "miter") + "; " +
		"stroke-miterlimit: " + orNumber(o.StrokeMiterLimit, "4") + "; " +
		svgexport.ColorProp("fill", o.Fill) +
		"fill-rule: " + orString(o.FillRule, "nonzero") + "; " +
		"opacity: " + svgexport.Raw(o.Opacity) + ";" +
		visibility
}

// SvgTransform returns the transform attribute of the object,
// followed by a space. additional is appended to the matrix.
func (o *Object) SvgTransform(ctx *svgexport.Context, additional string) string {
	return `transform="` + o.OwnMatrix().ToSVG(ctx.Digits) + additional + `" `
}

// SvgCommons returns the id and clip-path attributes.
func (o *Object) SvgCommons() string {
	var s string
	if o.ID != "" {
		s += `id="` + svgexport.EscapeXML(o.ID) + `" `
	}
	if o.ClipPath != nil && o.ClipPath.Base().clipPathID != "" {
		s += `clip-path="url(#` + o.ClipPath.Base().clipPathID + `)" `
	}
	return s
}

func (o *Object) paintOrder() string {
	if o.PaintFirst != "" && o.PaintFirst != "fill" {
		return ` paint-order="` + o.PaintFirst + `" `
	}
	return ""
}

func (o *Object) vectorEffect() string {
	if o.StrokeUniform {
		return `vector-effect="non-scaling-stroke" `
	}
	return ""
}

type markupOptions struct {
	noStyle    bool // the style is written by the object markup
	withShadow bool // write the (empty) shadow style slot on the group
}

// baseSVGMarkup wraps the object markup in a group carrying the transform,
// the clip path definition and the common attributes.
// The commonParts placeholder of objectMarkup, if any, is replaced
// by the style attributes.
func (o *Object) baseSVGMarkup(ctx *svgexport.Context, objectMarkup []string, opts markupOptions) string {
	clipPath := o.ClipPath
	absoluteClipPath := clipPath != nil && clipPath.Base().AbsolutePositioned

	var clipPathMarkup string
	if clipPath != nil {
		clipPath.Base().clipPathID = ctx.NextClipPathID()
		clipPathMarkup = `<clipPath id="` + clipPath.Base().clipPathID + `" >` + "\n" +
			clipPath.ToClipPathSVG(ctx) + "</clipPath>\n"
	}

	var styleInfo, shadowInfo, paintOrder string
	if !opts.noStyle {
		styleInfo = `style="` + o.SvgStyles(false) + `" `
		paintOrder = o.paintOrder()
	}
	if opts.withShadow {
		shadowInfo = `style="" `
	}

	var b strings.Builder
	if absoluteClipPath {
		b.WriteString("<g " + o.SvgCommons() + " >\n")
	}
	b.WriteString("<g " + o.SvgTransform(ctx, ""))
	if !absoluteClipPath {
		b.WriteString(shadowInfo + o.SvgCommons())
	}
	b.WriteString(" >\n")

	commonPieces := styleInfo + o.vectorEffect() + paintOrder + " "
	if clipPath != nil {
		b.WriteString(clipPathMarkup)
	}
	for _, chunk := range objectMarkup {
		if chunk == commonParts {
			chunk = commonPieces
		}
		b.WriteString(chunk)
	}
	b.WriteString("</g>\n")
	if absoluteClipPath {
		b.WriteString("</g>\n")
	}
	return ctx.Revive(b.String())
}

// baseClipPathSVGMarkup writes the object markup with its transform
// in place of the commonParts placeholder.
func (o *Object) baseClipPathSVGMarkup(ctx *svgexport.Context, objectMarkup []string) string {
	commonPieces := o.SvgTransform(ctx, "") + o.SvgCommons()
	var b strings.Builder
	b.WriteString("\t")
	for _, chunk := range objectMarkup {
		if chunk == commonParts {
			chunk = commonPieces
		}
		b.WriteString(chunk)
	}
	return ctx.Revive(b.String())
}
