package svgimport

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/okcanvas/canvas"
	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/object"
)

type importer struct {
	mode ErrorMode
	doc  *Document
	ids  map[string]*node
}

// state is inherited by the children of an element.
type state struct {
	m     geom.Matrix // user space to scene coordinates
	props properties
	clip  *clipRef
}

// clipRef is a clip-path reference, waiting for the shapes it applies to.
type clipRef struct {
	node     *node       // the clipPath element
	space    geom.Matrix // user space of the referencing element
	absolute bool
}

// readCanvas reads the size and the viewBox of the root element.
func readCanvas(n *node) (*canvas.Canvas, error) {
	var viewBox []float64
	if v, ok := n.attr("viewBox"); ok {
		var err error
		viewBox, err = parseNumbers(v)
		if err != nil || len(viewBox) != 4 {
			return nil, fmt.Errorf("invalid viewBox %q: %w", v, errParamMismatch)
		}
	}
	width, errW := parseFloat(n.attrs["width"])
	height, errH := parseFloat(n.attrs["height"])
	if viewBox != nil {
		if errW != nil || width == 0 {
			width = viewBox[2]
		}
		if errH != nil || height == 0 {
			height = viewBox[3]
		}
	}
	c := canvas.New(width, height)
	if viewBox != nil && viewBox[2] != 0 && viewBox[3] != 0 {
		sx, sy := width/viewBox[2], height/viewBox[3]
		c.ViewportTransform = geom.Matrix{sx, 0, 0, sy, -viewBox[0] * sx, -viewBox[1] * sy}
	}
	return c, nil
}

func (imp *importer) readRoot(root *node) error {
	c, err := readCanvas(root)
	if err != nil {
		return err
	}
	imp.doc.Canvas = c
	props, err := ownProperties(root)
	if err != nil {
		return err
	}
	return imp.readChildren(root, state{m: geom.Identity, props: props})
}

func (imp *importer) readChildren(n *node, st state) error {
	for _, c := range n.children {
		if err := imp.readElement(c, st); err != nil {
			return err
		}
	}
	return nil
}

func (imp *importer) readElement(n *node, parent state) error {
	switch n.name {
	case "#text", "clipPath": // clip paths are read through their references
		return nil
	case "desc":
		imp.doc.Descriptions = append(imp.doc.Descriptions, textContent(n))
		return nil
	case "title":
		imp.doc.Titles = append(imp.doc.Titles, textContent(n))
		return nil
	case "style":
		return imp.readFontFaces(textContent(n))
	case "defs":
		for _, c := range n.children {
			if c.name == "style" {
				if err := imp.readFontFaces(textContent(c)); err != nil {
					return err
				}
			}
		}
		return nil
	case "g", "rect", "circle", "ellipse", "text":
	default:
		return imp.unsupported(n.name)
	}

	own, err := ownProperties(n)
	if err != nil {
		return err
	}
	m, err := ownTransform(n)
	if err != nil {
		return err
	}
	st := state{m: parent.m.Multiply(m), props: parent.props.inherit(own), clip: parent.clip}

	if n.name == "g" {
		if ref, ok := n.attr("clip-path"); ok {
			if err := imp.pushGroupClip(n, &st, ref); err != nil {
				return err
			}
		}
		return imp.readChildren(n, st)
	}

	if n.name == "rect" && isCanvasColor(n) {
		return imp.readCanvasColor(st)
	}

	shape, full, err := imp.readShape(n, st)
	if err != nil || shape == nil {
		return err
	}
	place(shape.Base(), full)
	if id, ok := n.attr("id"); ok {
		shape.Base().ID = id
	}

	clip := st.clip
	if ref, ok := n.attr("clip-path"); ok {
		target, err := imp.resolveClip(ref)
		if err != nil {
			return err
		}
		clip = &clipRef{node: target, space: st.m}
	}
	if clip != nil {
		if err := imp.attachClip(shape, full, clip); err != nil {
			return err
		}
	}
	imp.doc.Canvas.Add(shape)
	return nil
}

// place sets the position and the transform of o so that
// its own matrix is m.
func place(o *object.Object, m geom.Matrix) {
	opts := geom.Decompose(m)
	o.OriginX, o.OriginY = "center", "center"
	o.Left, o.Top = opts.TranslateX, opts.TranslateY
	o.Angle = opts.Angle
	o.ScaleX, o.ScaleY = opts.ScaleX, opts.ScaleY
	o.SkewX, o.SkewY = opts.SkewX, 0
	o.FlipX, o.FlipY = false, false
}

// isCanvasColor matches the rectangles written for the
// background and overlay colors.
func isCanvasColor(n *node) bool {
	return n.attrs["width"] == "100%" && n.attrs["height"] == "100%"
}

// readCanvasColor sets the background color, or the overlay
// color once objects have been read.
func (imp *importer) readCanvasColor(st state) error {
	color, ok, err := imp.paint(st.props, "fill")
	if err != nil || !ok {
		return err
	}
	c := imp.doc.Canvas
	if len(c.Objects()) == 0 {
		c.BackgroundColor = color
	} else {
		c.OverlayColor = color
	}
	return nil
}

// resolveClip returns the clipPath element referenced by url(#id).
func (imp *importer) resolveClip(ref string) (*node, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, "url(#") || !strings.HasSuffix(ref, ")") {
		return nil, fmt.Errorf("%w: %s", errUnknownClipPath, ref)
	}
	id := ref[len("url(#") : len(ref)-1]
	target, ok := imp.ids[id]
	if !ok || target.name != "clipPath" {
		return nil, fmt.Errorf("%w: %s", errUnknownClipPath, ref)
	}
	return target, nil
}

// pushGroupClip handles a clip-path on a group. A clip defined in the
// top level definitions and referenced by a top level group is the
// clip path of the canvas. A group with a transform and a single shape
// is an object with its clip path. Otherwise the clip path is applied
// to every shape of the group, in absolute coordinates.
func (imp *importer) pushGroupClip(g *node, st *state, ref string) error {
	target, err := imp.resolveClip(ref)
	if err != nil {
		return err
	}
	clip := &clipRef{node: target, space: st.m}
	if isTopLevel(g) && isTopLevelDefinition(target) {
		shape, full, err := imp.clipShape(clip)
		if err != nil || shape == nil {
			return err
		}
		place(shape.Base(), full)
		imp.doc.Canvas.ClipPath = shape
		return nil
	}
	_, hasTransform := g.attr("transform")
	clip.absolute = !hasTransform || countShapes(g) != 1
	st.clip = clip
	return nil
}

func isTopLevel(n *node) bool {
	return n.parent != nil && n.parent.parent == nil
}

func isTopLevelDefinition(n *node) bool {
	return n.parent != nil && n.parent.name == "defs" && isTopLevel(n.parent)
}

// countShapes returns the number of shapes drawn by the children of n.
func countShapes(n *node) int {
	var count int
	for _, c := range n.children {
		switch c.name {
		case "rect":
			if !isCanvasColor(c) {
				count++
			}
		case "circle", "ellipse", "text":
			count++
		case "g":
			count += countShapes(c)
		}
	}
	return count
}

// clipShape reads the first shape of a clipPath element, with
// its matrix in scene coordinates.
func (imp *importer) clipShape(ref *clipRef) (object.Shape, geom.Matrix, error) {
	var (
		shape object.Shape
		full  geom.Matrix
	)
	for _, c := range ref.node.children {
		switch c.name {
		case "rect", "circle", "ellipse", "text":
		case "#text":
			continue
		default:
			if err := imp.unsupported("clipPath " + c.name); err != nil {
				return nil, full, err
			}
			continue
		}
		if shape != nil {
			if err := imp.unsupported("clipPath with several shapes"); err != nil {
				return nil, full, err
			}
			break
		}
		own, err := ownProperties(c)
		if err != nil {
			return nil, full, err
		}
		m, err := ownTransform(c)
		if err != nil {
			return nil, full, err
		}
		st := state{m: ref.space.Multiply(m), props: properties{}.inherit(own)}
		shape, full, err = imp.readShape(c, st)
		if err != nil {
			return nil, full, err
		}
	}
	return shape, full, nil
}

// attachClip sets the clip path of shape, whose matrix is full.
func (imp *importer) attachClip(shape object.Shape, full geom.Matrix, ref *clipRef) error {
	clip, clipFull, err := imp.clipShape(ref)
	if err != nil || clip == nil {
		return err
	}
	if ref.absolute {
		place(clip.Base(), clipFull)
		clip.Base().AbsolutePositioned = true
	} else {
		place(clip.Base(), full.Invert().Multiply(clipFull))
	}
	shape.Base().ClipPath = clip
	return nil
}

// readShape builds the object described by n. The returned matrix
// maps the object coordinates, centered on the origin, to the scene.
// Shapes which are not drawn return nil.
func (imp *importer) readShape(n *node, st state) (object.Shape, geom.Matrix, error) {
	switch n.name {
	case "rect":
		return imp.readRect(n, st)
	case "circle", "ellipse":
		return imp.readCircle(n, st)
	case "text":
		return imp.readText(n, st)
	}
	return nil, st.m, imp.unsupported(n.name)
}

// readAttrs parses the numeric attributes of n. Missing attributes are zero.
func readAttrs(n *node, names ...string) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		v, ok := n.attr(name)
		if !ok {
			continue
		}
		f, err := parseFloat(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q in %s: %w", name, v, n.name, err)
		}
		out[name] = f
	}
	return out, nil
}

func (imp *importer) readRect(n *node, st state) (object.Shape, geom.Matrix, error) {
	a, err := readAttrs(n, "x", "y", "width", "height", "rx", "ry")
	if err != nil {
		return nil, st.m, err
	}
	x, y, w, h := a["x"], a["y"], a["width"], a["height"]
	if w == 0 || h == 0 { // not drawn, but not an error
		return nil, st.m, nil
	}
	r := object.NewRect(w, h)
	r.Rx, r.Ry = a["rx"], a["ry"]
	if _, ok := n.attr("ry"); !ok {
		r.Ry = r.Rx
	}
	if _, ok := n.attr("rx"); !ok {
		r.Rx = r.Ry
	}
	if err := imp.applyObjectStyle(&r.Object, st.props); err != nil {
		return nil, st.m, err
	}
	return r, st.m.Translate(x+w/2, y+h/2), nil
}

// readCircle reads circles and ellipses. An ellipse is a circle
// with a vertical scale.
func (imp *importer) readCircle(n *node, st state) (object.Shape, geom.Matrix, error) {
	a, err := readAttrs(n, "cx", "cy", "r", "rx", "ry")
	if err != nil {
		return nil, st.m, err
	}
	rx, ry := a["rx"], a["ry"]
	if n.name == "circle" {
		rx, ry = a["r"], a["r"]
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil, st.m, nil
	}
	c := object.NewCircle(rx)
	if err := imp.applyObjectStyle(&c.Object, st.props); err != nil {
		return nil, st.m, err
	}
	full := st.m.Translate(a["cx"], a["cy"])
	if ry != rx {
		full = full.Scale(1, ry/rx)
	}
	return c, full, nil
}

// span is a run of characters sharing a style.
type span struct {
	x, y       float64
	hasX, hasY bool
	text       string
	style      object.CharStyle
}

// firstNumber reads the first value of a coordinate list.
func firstNumber(n *node, name string) (float64, bool, error) {
	v, ok := n.attr(name)
	if !ok {
		return 0, false, nil
	}
	values, err := parseNumbers(v)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s %q in %s: %w", name, v, n.name, err)
	}
	if len(values) == 0 {
		return 0, false, nil
	}
	return values[0], true, nil
}

func (imp *importer) readSpan(n *node) (span, error) {
	var (
		sp  span
		err error
	)
	if sp.x, sp.hasX, err = firstNumber(n, "x"); err != nil {
		return sp, err
	}
	if sp.y, sp.hasY, err = firstNumber(n, "y"); err != nil {
		return sp, err
	}
	own, err := ownProperties(n)
	if err != nil {
		return sp, err
	}
	if sp.style, err = imp.charStyle(own); err != nil {
		return sp, err
	}
	dy, ok, err := firstNumber(n, "dy")
	if err != nil {
		return sp, err
	}
	if ok {
		sp.style = sp.style.WithDeltaY(dy)
	}
	sp.text = textContent(n)
	return sp, nil
}

// readSpans returns the runs of a text element. Character data
// outside tspans uses the position of the text element.
func (imp *importer) readSpans(n *node) ([]span, error) {
	base, err := imp.readSpan(&node{name: n.name, attrs: map[string]string{
		"x": n.attrs["x"], "y": n.attrs["y"],
	}})
	if err != nil {
		return nil, err
	}
	var hasTspan bool
	for _, c := range n.children {
		hasTspan = hasTspan || c.name == "tspan"
	}
	var out []span
	for _, c := range n.children {
		switch c.name {
		case "#text":
			if hasTspan && strings.TrimSpace(c.text) == "" {
				continue
			}
			sp := base
			sp.text = c.text
			if len(out) != 0 {
				sp.hasX, sp.hasY = false, false
			}
			out = append(out, sp)
		case "tspan":
			sp, err := imp.readSpan(c)
			if err != nil {
				return nil, err
			}
			if len(out) == 0 {
				if !sp.hasX {
					sp.x = base.x
				}
				if !sp.hasY {
					sp.y = base.y
				}
			}
			out = append(out, sp)
		default:
			if err := imp.unsupported(c.name); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// readText rebuilds the lines and the character styles from the tspans.
// A tspan whose baseline differs from the previous one starts a new line.
func (imp *importer) readText(n *node, st state) (object.Shape, geom.Matrix, error) {
	t := object.NewText("")
	if err := imp.applyObjectStyle(&t.Object, st.props); err != nil {
		return nil, st.m, err
	}
	if err := applyTextStyle(t, st.props); err != nil {
		return nil, st.m, err
	}
	spans, err := imp.readSpans(n)
	if err != nil || len(spans) == 0 {
		return nil, st.m, err
	}

	var (
		lines  [][]rune
		styles = object.Styles{}
		lineY  float64
	)
	nominal := t.NominalLineHeight()
	for i, sp := range spans {
		if i == 0 {
			lines = append(lines, nil)
			lineY = sp.y
		} else if sp.hasY && math.Abs(sp.y-lineY) > 1e-6 {
			breaks := 1
			if nominal > 0 {
				breaks = max(1, int(math.Round((sp.y-lineY)/nominal)))
			}
			for k := 0; k < breaks; k++ {
				lines = append(lines, nil)
			}
			lineY = sp.y
		}
		li := len(lines) - 1
		runes := []rune(sp.text)
		if !sp.style.IsEmpty() {
			if styles[li] == nil {
				styles[li] = map[int]object.CharStyle{}
			}
			for j := range runes {
				styles[li][len(lines[li])+j] = sp.style
			}
		}
		lines[li] = append(lines[li], runes...)
	}

	chunks := make([]string, len(lines))
	for i, l := range lines {
		chunks[i] = string(l)
	}
	t.Text = strings.Join(chunks, "\n")
	t.Styles = styles
	t.InitDimensions()

	origin := t.LineOrigin(0)
	return t, st.m.Translate(spans[0].x-origin.X, spans[0].y-origin.Y), nil
}
