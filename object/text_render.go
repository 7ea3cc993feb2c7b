package object

import (
	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgpath"
)

// Outline implements Shape, returning the union of the glyphs outlines.
func (t *Text) Outline() svgpath.Path {
	t.InitDimensions()
	return t.outline()
}

// Render implements Shape.
func (t *Text) Render(d render.Driver, m geom.Matrix) {
	t.InitDimensions()
	t.render(t, d, m)
}

// charOrigin returns the position of the glyph origin of a character,
// on the baseline of its line.
func (t *Text) charOrigin(lineIndex, charIndex int, lineLeft, baseline float64) geom.Point {
	box := t.layout.charBounds[lineIndex][charIndex]
	x := lineLeft + box.Left
	if t.Direction == "rtl" {
		x = lineLeft + t.Width - box.Left - box.Width
	}
	return geom.Point{X: x, Y: baseline + box.DeltaY}
}

// lineGeometry calls fn for each line with its left offset, its top
// and its baseline.
func (t *Text) lineGeometry(fn func(lineIndex int, left, top, baseline float64)) {
	top := -t.Height / 2
	for i := range t.layout.lines {
		left := -t.Width/2 + t.LineLeftOffset(i)
		h := t.HeightOfLine(i)
		fn(i, left, top, top+h*(1-fontSizeFraction)/t.LineHeight)
		top += h
	}
}

func (t *Text) glyph(r rune, style CharStyle, origin geom.Point) (svgpath.Path, bool) {
	path, _, ok := t.outliner().Outline(r, specOf(style))
	if !ok {
		okcanvas.Logger().Debug("object: missing glyph", "rune", r, "family", style.FontFamily)
		return nil, false
	}
	return path.Transform(geom.Identity.Translate(origin.X, origin.Y)), true
}

func (t *Text) outline() svgpath.Path {
	var out svgpath.Path
	t.lineGeometry(func(i int, left, _, baseline float64) {
		for j, r := range t.layout.lines[i] {
			style := t.CompleteStyleDeclaration(i, j)
			if g, ok := t.glyph(r, style, t.charOrigin(i, j, left, baseline)); ok {
				out = append(out, g...)
			}
		}
	})
	return out
}

func (t *Text) render(s Shape, d render.Driver, m geom.Matrix) {
	renderShape(s, d, m, func(m geom.Matrix) {
		t.renderTextBackground(d, m)
		t.renderChars(d, m)
		for _, p := range [...]StyleProp{PropUnderline, PropOverline, PropLinethrough} {
			t.renderTextDecoration(d, m, p)
		}
	})
}

// fillRect paints a rectangle with the given color, if valid.
func (t *Text) fillRect(d render.Driver, m geom.Matrix, color string, left, top, width, height float64) {
	c := parsePaint(color)
	if c == nil || width == 0 || height == 0 {
		return
	}
	var p svgpath.Path
	p.AddRect(left, top, left+width, top+height)
	render.DrawPath(d, p, render.Style{Fill: c, Opacity: t.Opacity, UseNonZeroWinding: true}, m)
}

func (t *Text) renderTextBackground(d render.Driver, m geom.Matrix) {
	if t.TextBackgroundColor == "" && !t.StyleHas(PropTextBackgroundColor, -1) {
		return
	}
	t.lineGeometry(func(i int, left, top, _ float64) {
		height := t.HeightOfLine(i) / t.LineHeight
		bounds := t.layout.charBounds[i]
		var (
			boxStart, boxWidth float64
			last               string
		)
		for j := range t.layout.lines[i] {
			box := bounds[j]
			color := t.CompleteStyleDeclaration(i, j).TextBackgroundColor
			if j == 0 || color != last {
				t.fillRect(d, m, last, left+boxStart, top, boxWidth, height)
				boxStart, boxWidth, last = box.Left, box.Width, color
			} else {
				boxWidth += box.KernedWidth
			}
		}
		t.fillRect(d, m, last, left+boxStart, top, boxWidth, height)
	})
}

// glyphStyle returns the painting attributes of a character.
func (t *Text) glyphStyle(style CharStyle) render.Style {
	s := t.style()
	s.Fill = parsePaint(style.Fill)
	s.Stroke = parsePaint(style.Stroke)
	s.LineWidth = style.StrokeWidth
	s.UseNonZeroWinding = true
	return s
}

// renderChars draws the glyphs, grouped by runs of characters
// sharing the same paint.
func (t *Text) renderChars(d render.Driver, m geom.Matrix) {
	var (
		run      svgpath.Path
		runStyle CharStyle
	)
	const paintProps = PropFill | PropStroke | PropStrokeWidth
	flush := func() {
		if len(run) != 0 {
			render.DrawPath(d, run, t.glyphStyle(runStyle), m)
		}
		run = nil
	}
	t.lineGeometry(func(i int, left, _, baseline float64) {
		for j, r := range t.layout.lines[i] {
			if isSpaceOrTab(r) {
				continue
			}
			style := t.CompleteStyleDeclaration(i, j)
			if !style.equalOn(runStyle, paintProps) {
				flush()
				runStyle = style
			}
			if g, ok := t.glyph(r, style, t.charOrigin(i, j, left, baseline)); ok {
				run = append(run, g...)
			}
		}
	})
	flush()
}

// renderTextDecoration draws the decoration p as rectangles, one per run
// of decorated characters sharing the same fill, size and offset.
func (t *Text) renderTextDecoration(d render.Driver, m geom.Matrix, p StyleProp) {
	if !t.baseStyle().value(p).(bool) && !t.StyleHas(p, -1) {
		return
	}
	offset := decorationOffsets[p]
	t.lineGeometry(func(i int, left, _, baseline float64) {
		line := t.layout.lines[i]
		var (
			start     geom.Point
			width     float64
			current   CharStyle
			decorated bool
		)
		draw := func() {
			if !decorated {
				return
			}
			size := current.FontSize
			thickness := size * current.TextDecorationThickness / 1000
			t.fillRect(d, m, current.Fill, start.X, baseline+offset*size+current.DeltaY, width, thickness)
		}
		const runProps = PropFill | PropFontSize | PropDeltaY | PropTextDecorationThickness
		for j := range line {
			style := t.CompleteStyleDeclaration(i, j)
			box := t.layout.charBounds[i][j]
			on := style.value(p).(bool)
			if j == 0 || on != decorated || !style.equalOn(current, runProps) {
				draw()
				start = t.charOrigin(i, j, left, baseline)
				width, current, decorated = box.Width, style, on
			} else {
				width += box.KernedWidth
				if t.Direction == "rtl" {
					start.X -= box.KernedWidth
				}
			}
		}
		draw()
	})
}
