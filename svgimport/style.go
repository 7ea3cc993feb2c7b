package svgimport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/object"
	"github.com/benoitkugler/okcanvas/svgcolor"
)

// presentationProps may be given as attributes as well as in
// the style attribute.
var presentationProps = map[string]bool{
	"fill": true, "fill-opacity": true, "fill-rule": true,
	"stroke": true, "stroke-opacity": true, "stroke-width": true,
	"stroke-dasharray": true, "stroke-dashoffset": true, "stroke-linecap": true,
	"stroke-linejoin": true, "stroke-miterlimit": true,
	"opacity": true, "visibility": true, "paint-order": true, "vector-effect": true,
	"font-family": true, "font-size": true, "font-style": true, "font-weight": true,
	"text-decoration": true, "direction": true, "baseline-shift": true,
}

// properties are CSS declarations, keyed by lower case property name.
type properties map[string]string

// ownProperties returns the presentation attributes of n, overridden
// by the declarations of its style attribute.
func ownProperties(n *node) (properties, error) {
	props := properties{}
	for k, v := range n.attrs {
		if presentationProps[k] {
			props[k] = strings.TrimSpace(v)
		}
	}
	style := strings.TrimSpace(n.attrs["style"])
	if style == "" {
		return props, nil
	}
	// the parser requires the last semicolon
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil, fmt.Errorf("invalid style %q: %w", style, err)
	}
	for _, decl := range decls {
		props[strings.ToLower(decl.Property)] = strings.TrimSpace(decl.Value)
	}
	return props, nil
}

// inherit returns parent updated with own. Opacities multiply.
func (parent properties) inherit(own properties) properties {
	out := make(properties, len(parent)+len(own))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range own {
		if k == "opacity" {
			if po, ok := parent[k]; ok {
				a, errA := parseFloat(po)
				b, errB := parseFloat(v)
				if errA == nil && errB == nil {
					v = strconv.FormatFloat(a*b, 'f', -1, 64)
				}
			}
		}
		out[k] = v
	}
	return out
}

// parseFloat accepts an optional px unit.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

func parseNumbers(s string) ([]float64, error) {
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readTransformAttr(m1 geom.Matrix, k string, points []float64) (geom.Matrix, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0])
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0])
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0])
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Multiply(geom.Matrix{points[0], points[1], points[2], points[3], points[4], points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform reads a transform attribute.
func parseTransform(v string) (geom.Matrix, error) {
	m1 := geom.Identity
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		points, err := parseNumbers(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.Trim(d[0], " ,\t\n")), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// ownTransform returns the transform attribute of n, or the identity.
func ownTransform(n *node) (geom.Matrix, error) {
	v, ok := n.attr("transform")
	if !ok {
		return geom.Identity, nil
	}
	m, err := parseTransform(v)
	if err != nil {
		return m, fmt.Errorf("invalid transform %q: %w", v, err)
	}
	return m, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

// paint returns the color of a fill or stroke property, combined with
// its opacity, and true if the property is set. none gives an empty color.
func (imp *importer) paint(props properties, prop string) (string, bool, error) {
	v, ok := props[prop]
	if !ok {
		return "", false, nil
	}
	if v == "" || v == "none" || v == "transparent" {
		return "", true, nil
	}
	c, err := svgcolor.Parse(v)
	if err != nil {
		// gradients, patterns and currentColor
		return "", false, imp.unsupported(prop + ": " + v)
	}
	if op, ok := props[prop+"-opacity"]; ok {
		a, err := parseFloat(op)
		if err != nil {
			return "", false, fmt.Errorf("invalid %s-opacity %q: %w", prop, op, err)
		}
		c = c.WithAlpha(c.A * a)
	}
	if c.IsOpaque() {
		return c.ToRgb(), true, nil
	}
	return c.ToRgba(), true, nil
}

// applyObjectStyle sets the painting properties of o.
func (imp *importer) applyObjectStyle(o *object.Object, props properties) error {
	if v, ok, err := imp.paint(props, "fill"); err != nil {
		return err
	} else if ok {
		o.Fill = v
	}
	if v, ok, err := imp.paint(props, "stroke"); err != nil {
		return err
	} else if ok {
		o.Stroke = v
	}
	var err error
	for k, v := range props {
		switch k {
		case "stroke-width":
			o.StrokeWidth, err = parseFloat(v)
		case "stroke-dashoffset":
			o.StrokeDashOffset, err = parseFloat(v)
		case "stroke-miterlimit":
			o.StrokeMiterLimit, err = parseFloat(v)
		case "opacity":
			o.Opacity, err = parseFloat(v)
		case "stroke-dasharray":
			o.StrokeDashArray = nil
			if v != "none" {
				o.StrokeDashArray, err = parseNumbers(v)
			}
		case "stroke-linecap":
			o.StrokeLineCap = v
		case "stroke-linejoin":
			o.StrokeLineJoin = v
		case "fill-rule":
			o.FillRule = v
		case "visibility":
			o.Visible = v != "hidden" && v != "collapse"
		case "paint-order":
			o.PaintFirst = "fill"
			if strings.HasPrefix(v, "stroke") {
				o.PaintFirst = "stroke"
			}
		case "vector-effect":
			o.StrokeUniform = v == "non-scaling-stroke"
		}
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", k, v, err)
		}
	}
	return nil
}

// decorations parses a text-decoration value.
func decorations(v string) (underline, overline, linethrough bool) {
	for _, f := range strings.Fields(v) {
		switch f {
		case "underline":
			underline = true
		case "overline":
			overline = true
		case "line-through":
			linethrough = true
		}
	}
	return
}

// applyTextStyle sets the font properties of t.
func applyTextStyle(t *object.Text, props properties) error {
	var err error
	for k, v := range props {
		switch k {
		case "font-family":
			t.FontFamily = unquote(v)
		case "font-size":
			t.FontSize, err = parseFloat(v)
		case "font-style":
			t.FontStyle = v
		case "font-weight":
			t.FontWeight = v
		case "text-decoration":
			t.Underline, t.Overline, t.Linethrough = decorations(v)
		case "direction":
			t.Direction = v
		}
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", k, v, err)
		}
	}
	return nil
}

// charStyle returns the overrides of a tspan.
func (imp *importer) charStyle(props properties) (object.CharStyle, error) {
	st := object.Style()
	if v, ok, err := imp.paint(props, "fill"); err != nil {
		return st, err
	} else if ok {
		st = st.WithFill(v)
	}
	if v, ok, err := imp.paint(props, "stroke"); err != nil {
		return st, err
	} else if ok {
		st = st.WithStroke(v)
	}
	for k, v := range props {
		var (
			f   float64
			err error
		)
		switch k {
		case "stroke-width":
			if f, err = parseFloat(v); err == nil {
				st = st.WithStrokeWidth(f)
			}
		case "font-size":
			if f, err = parseFloat(v); err == nil {
				st = st.WithFontSize(f)
			}
		case "baseline-shift":
			if f, err = parseFloat(v); err == nil {
				st = st.WithDeltaY(-f)
			}
		case "font-family":
			st = st.WithFontFamily(unquote(v))
		case "font-style":
			st = st.WithFontStyle(v)
		case "font-weight":
			st = st.WithFontWeight(v)
		case "text-decoration":
			underline, overline, linethrough := decorations(v)
			if underline {
				st = st.WithUnderline(true)
			}
			if overline {
				st = st.WithOverline(true)
			}
			if linethrough {
				st = st.WithLinethrough(true)
			}
		}
		if err != nil {
			return st, fmt.Errorf("invalid %s %q: %w", k, v, err)
		}
	}
	return st, nil
}

// readFontFaces collects the @font-face rules of a style sheet.
func (imp *importer) readFontFaces(sheet string) error {
	stylesheet, err := parser.Parse(sheet)
	if err != nil {
		return fmt.Errorf("invalid style sheet: %w", err)
	}
	for _, rule := range stylesheet.Rules {
		if rule.Kind != css.AtRule || rule.Name != "@font-face" {
			continue
		}
		var family, src string
		for _, decl := range rule.Declarations {
			switch decl.Property {
			case "font-family":
				family = unquote(decl.Value)
			case "src":
				src = fontURL(decl.Value)
			}
		}
		if family != "" && src != "" {
			imp.doc.FontFaces[family] = src
		}
	}
	return nil
}

// fontURL extracts the first url(...) of a src descriptor.
func fontURL(src string) string {
	start := strings.Index(src, "url(")
	if start < 0 {
		return ""
	}
	src = src[start+len("url("):]
	end := strings.IndexByte(src, ')')
	if end < 0 {
		return ""
	}
	return unquote(src[:end])
}
