package svgexport

import (
	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/svgcolor"
)

// ColorProp writes a paint as a CSS declaration, followed by
// its opacity when not opaque:
//
//	fill: rgb(100,0,100); fill-opacity: 0.5;
//
// An empty value writes "<prop>: none; ".
func ColorProp(prop, value string) string {
	if value == "" {
		return prop + ": none; "
	}
	c, err := svgcolor.Parse(value)
	if err != nil {
		okcanvas.Logger().Warn("svgexport: invalid color", "property", prop, "value", value, "error", err)
		return prop + ": " + value + "; "
	}
	if value == "transparent" || value == "none" {
		return prop + ": none; "
	}
	s := prop + ": " + c.ToRgb() + "; "
	if !c.IsOpaque() {
		s += prop + "-opacity: " + svgcolor.FormatAlpha(c.A) + "; "
	}
	return s
}

// FillAttributes writes a background color as presentation attributes:
//
//	fill="rgb(100,0,100)" fill-opacity="0.5"
//
// The opacity attribute is omitted for opaque colors.
func FillAttributes(value string) string {
	c, err := svgcolor.Parse(value)
	if err != nil {
		return `fill="` + EscapeXML(value) + `"`
	}
	s := `fill="` + c.ToRgb() + `"`
	if !c.IsOpaque() {
		s += ` fill-opacity="` + svgcolor.FormatAlpha(c.A) + `"`
	}
	return s
}
