package object

import (
	"strings"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/svgexport"
)

// spanProps are the properties which split tspans when they change.
const spanProps = allProps

// SvgStyles returns the style attribute of the text element.
func (t *Text) SvgStyles(skipShadow bool) string {
	return t.Object.SvgStyles(skipShadow) + " white-space: pre;"
}

// ToSVG implements Shape.
func (t *Text) ToSVG(ctx *svgexport.Context) string {
	t.InitDimensions()
	return t.toSVG(svgexport.OrDefault(ctx))
}

// ToClipPathSVG implements Shape. The text element carries no transform.
func (t *Text) ToClipPathSVG(ctx *svgexport.Context) string {
	t.InitDimensions()
	return t.toClipPathSVG(svgexport.OrDefault(ctx))
}

func (t *Text) toSVG(ctx *svgexport.Context) string {
	return t.baseSVGMarkup(ctx, t.svgMarkup(ctx), markupOptions{noStyle: true, withShadow: true})
}

func (t *Text) toClipPathSVG(ctx *svgexport.Context) string {
	return t.baseClipPathSVGMarkup(ctx, t.svgMarkup(ctx))
}

// svgTextDecoration returns the value of the text-decoration property.
func svgTextDecoration(overline, underline, linethrough bool) string {
	var decos []string
	if overline {
		decos = append(decos, "overline")
	}
	if underline {
		decos = append(decos, "underline")
	}
	if linethrough {
		decos = append(decos, "line-through")
	}
	return strings.Join(decos, " ")
}

func svgRect(ctx *svgexport.Context, color string, left, top, width, height float64) string {
	return "\t\t<rect " + svgexport.FillAttributes(color) +
		` x="` + ctx.Num(left) + `" y="` + ctx.Num(top) +
		`" width="` + ctx.Num(width) + `" height="` + ctx.Num(height) + `"></rect>` + "\n"
}

// svgMarkup returns the background rectangles followed by the text element.
func (t *Text) svgMarkup(ctx *svgexport.Context) []string {
	var bgRects, spans strings.Builder

	textLeft, textTop := -t.Width/2, -t.Height/2
	if t.BackgroundColor != "" {
		bgRects.WriteString(svgRect(ctx, t.BackgroundColor, textLeft, textTop, t.Width, t.Height))
	}
	top := textTop
	for i := range t.layout.lines {
		lineOffset := t.LineLeftOffset(i)
		if t.Direction == "rtl" {
			lineOffset += t.Width
		}
		if t.TextBackgroundColor != "" || t.StyleHas(PropTextBackgroundColor, i) {
			t.writeSVGLineBackground(ctx, &bgRects, i, textLeft+lineOffset, top)
		}
		t.writeSVGLineText(ctx, &spans, i, textLeft+lineOffset, top)
		top += t.HeightOfLine(i)
	}

	var b strings.Builder
	b.WriteString(bgRects.String())
	b.WriteString("\t\t<text xml:space=\"preserve\" ")
	b.WriteString(`font-family="` + strings.ReplaceAll(t.FontFamily, `"`, "'") + `" `)
	b.WriteString(`font-size="` + svgexport.Raw(t.FontSize) + `" `)
	if t.FontStyle != "" {
		b.WriteString(`font-style="` + t.FontStyle + `" `)
	}
	if t.FontWeight != "" {
		b.WriteString(`font-weight="` + t.FontWeight + `" `)
	}
	if deco := svgTextDecoration(t.Overline, t.Underline, t.Linethrough); deco != "" {
		b.WriteString(`text-decoration="` + deco + `" `)
	}
	if t.Direction == "rtl" {
		b.WriteString(`direction="rtl" `)
	}
	b.WriteString(`style="` + t.SvgStyles(true) + `"` + t.paintOrder() + " >")
	b.WriteString(spans.String())
	b.WriteString("</text>\n")
	return []string{b.String()}
}

// LineOrigin returns the position of the first tspan of a displayed line,
// relative to the center of the text: the left of its first character
// (the right for rtl texts) and its baseline.
func (t *Text) LineOrigin(lineIndex int) geom.Point {
	top := -t.Height / 2
	for i := 0; i < lineIndex; i++ {
		top += t.HeightOfLine(i)
	}
	left := -t.Width/2 + t.LineLeftOffset(lineIndex)
	if t.Direction == "rtl" {
		left += t.Width
	}
	if bounds := t.layout.charBounds[lineIndex]; len(bounds) > 1 {
		left += bounds[0].KernedWidth - bounds[0].Width
	}
	return geom.Point{
		X: left,
		Y: top + t.HeightOfLine(lineIndex)*(1-fontSizeFraction)/t.LineHeight,
	}
}

// NominalLineHeight is the height of a line using only the base font size.
func (t *Text) NominalLineHeight() float64 {
	return t.FontSize * t.LineHeight * fontSizeMult
}

// writeSVGLineBackground writes one rectangle per run of characters
// sharing the same text background color.
func (t *Text) writeSVGLineBackground(ctx *svgexport.Context, b *strings.Builder, lineIndex int, leftOffset, top float64) {
	line := t.layout.lines[lineIndex]
	bounds := t.layout.charBounds[lineIndex]
	height := t.HeightOfLine(lineIndex) / t.LineHeight

	var boxStart, boxWidth float64
	lastColor := t.CompleteStyleDeclaration(lineIndex, 0).TextBackgroundColor
	currentColor := lastColor
	for j := range line {
		box := bounds[j]
		currentColor = t.CompleteStyleDeclaration(lineIndex, j).TextBackgroundColor
		if currentColor != lastColor {
			if lastColor != "" {
				b.WriteString(svgRect(ctx, lastColor, leftOffset+boxStart, top, boxWidth, height))
			}
			boxStart, boxWidth = box.Left, box.Width
			lastColor = currentColor
		} else {
			boxWidth += box.KernedWidth
		}
	}
	if currentColor != "" && len(line) != 0 {
		b.WriteString(svgRect(ctx, lastColor, leftOffset+boxStart, top, boxWidth, height))
	}
}

// writeSVGLineText writes the tspans of a line. Consecutive characters
// are grouped while their style does not change. Character spacing and
// justification require one span per character or per word.
func (t *Text) writeSVGLineText(ctx *svgexport.Context, b *strings.Builder, lineIndex int, left, top float64) {
	line := t.layout.lines[lineIndex]
	bounds := t.layout.charBounds[lineIndex]
	justified := t.isJustify()
	top += t.HeightOfLine(lineIndex) * (1 - fontSizeFraction) / t.LineHeight

	var (
		chars                  []rune
		boxWidth               float64
		actualStyle, nextStyle *CharStyle
	)
	last := len(line) - 1
	for i, r := range line {
		timeToRender := i == last || t.CharSpacing != 0
		chars = append(chars, r)
		box := bounds[i]
		if boxWidth == 0 {
			left += box.KernedWidth - box.Width
			boxWidth += box.Width
		} else {
			boxWidth += box.KernedWidth
		}
		if justified && !timeToRender && isSpaceOrTab(r) {
			timeToRender = true
		}
		if !timeToRender {
			if actualStyle == nil {
				s := t.CompleteStyleDeclaration(lineIndex, i)
				actualStyle = &s
			}
			s := t.CompleteStyleDeclaration(lineIndex, i+1)
			nextStyle = &s
			timeToRender = !actualStyle.equalOn(*nextStyle, spanProps)
		}
		if timeToRender {
			b.WriteString(t.svgSpan(ctx, string(chars), t.StyleAt(lineIndex, i), left, top))
			chars = chars[:0]
			actualStyle = nextStyle
			if t.Direction == "rtl" {
				left -= boxWidth
			} else {
				left += boxWidth
			}
			boxWidth = 0
		}
	}
}

func (t *Text) svgSpan(ctx *svgexport.Context, text string, style CharStyle, left, top float64) string {
	useWhiteSpace := text != strings.TrimSpace(text) || strings.Contains(text, "  ")
	var styleAttr string
	if props := t.svgSpanStyles(style, useWhiteSpace); props != "" {
		styleAttr = `style="` + props + `"`
	}
	var dy string
	if !isZero(style.DeltaY) {
		dy = ` dy="` + ctx.Num(style.DeltaY) + `" `
	}
	return `<tspan x="` + ctx.Num(left) + `" y="` + ctx.Num(top) + `" ` + dy + styleAttr + ">" +
		svgexport.EscapeXML(text) + "</tspan>"
}

// svgSpanStyles writes the overrides of a character style as CSS declarations.
func (t *Text) svgSpanStyles(style CharStyle, useWhiteSpace bool) string {
	var b strings.Builder
	if style.Has(PropStroke) && style.Stroke != "" {
		b.WriteString(svgexport.ColorProp("stroke", style.Stroke))
	}
	if style.Has(PropStrokeWidth) && !isZero(style.StrokeWidth) {
		b.WriteString("stroke-width: " + svgexport.Raw(style.StrokeWidth) + "; ")
	}
	if family := style.FontFamily; style.Has(PropFontFamily) && family != "" {
		if !strings.ContainsAny(family, `'"`) {
			family = "'" + family + "'"
		}
		b.WriteString("font-family: " + family + "; ")
	}
	if style.Has(PropFontSize) && !isZero(style.FontSize) {
		b.WriteString("font-size: " + svgexport.Raw(style.FontSize) + "px; ")
	}
	if style.Has(PropFontStyle) && style.FontStyle != "" {
		b.WriteString("font-style: " + style.FontStyle + "; ")
	}
	if style.Has(PropFontWeight) && style.FontWeight != "" {
		b.WriteString("font-weight: " + style.FontWeight + "; ")
	}
	deco := svgTextDecoration(
		style.Has(PropOverline) && style.Overline,
		style.Has(PropUnderline) && style.Underline,
		style.Has(PropLinethrough) && style.Linethrough,
	)
	if deco != "" {
		b.WriteString("text-decoration: " + deco + "; ")
	}
	if style.Has(PropFill) && style.Fill != "" {
		b.WriteString(svgexport.ColorProp("fill", style.Fill))
	}
	if style.Has(PropDeltaY) && !isZero(style.DeltaY) {
		b.WriteString("baseline-shift: " + svgexport.Raw(-style.DeltaY) + "; ")
	}
	if useWhiteSpace {
		b.WriteString("white-space: pre; ")
	}
	return b.String()
}
