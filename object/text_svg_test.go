package object

import (
	"regexp"
	"strings"
	"testing"

	"github.com/benoitkugler/okcanvas/config"
	"github.com/benoitkugler/okcanvas/svgexport"
	"github.com/stretchr/testify/assert"
)

var matrixRe = regexp.MustCompile(`matrix\(.*?\)`)

// removeTranslate removes the first transform matrix.
func removeTranslate(s string) string {
	loc := matrixRe.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

func withDigits(t *testing.T, digits int) {
	config.Configure(func(c *config.Config) { c.NumFractionDigits = digits })
	t.Cleanup(config.RestoreDefaults)
}

const (
	textStyle  = `style="stroke: none; stroke-width: 1; stroke-dasharray: none; stroke-linecap: butt; stroke-dashoffset: 0; stroke-linejoin: miter; stroke-miterlimit: 4; fill: rgb(0,0,0); fill-rule: nonzero; opacity: 1; white-space: pre;"`
	textOpen   = `<g transform="" style=""  >` + "\n" + `		<text xml:space="preserve" font-family="Times New Roman" font-size="40" font-style="normal" font-weight="normal" ` + textStyle + ` >`
	textClose  = "</text>\n</g>\n"
	textSVG    = textOpen + `<tspan x="-10" y="12.57" >x</tspan>` + textClose
	justifySVG = textOpen + `<tspan x="-60" y="-13.65" >xxxxxx</tspan><tspan x="-60" y="38.78" style="white-space: pre; ">x </tspan><tspan x="40" y="38.78" >y</tspan>` + textClose
)

func TestBackgroundColorExport(t *testing.T) {
	svg := NewText("text", WithBackgroundColor("rgba(100, 0, 100)")).ToSVG(nil)
	assert.Contains(t, svg, `fill="rgb(100,0,100)"`)
	assert.NotContains(t, svg, `fill-opacity="1"`)

	svg = NewText("text", WithBackgroundColor("rgba(100, 0, 100, 0.5)")).ToSVG(nil)
	assert.Contains(t, svg, `fill-opacity="0.5"`)
}

func TestTextSvgStyles(t *testing.T) {
	styles := NewText("text", WithFill("rgba(100, 0, 100, 0.5)")).SvgStyles(false)
	assert.Contains(t, styles, "fill: rgb(100,0,100); fill-opacity: 0.5;")
	assert.NotContains(t, styles, `stroke="none"`)
	assert.True(t, strings.HasSuffix(styles, " white-space: pre;"))
}

func TestTextToSVG(t *testing.T) {
	withDigits(t, 2)
	text := NewText("x")
	assert.Equal(t, removeTranslate(textSVG), removeTranslate(text.ToSVG(nil)))

	text.Set(WithFontFamily("Arial"))
	expected := strings.Replace(textSVG, `font-family="Times New Roman"`, `font-family="Arial"`, 1)
	assert.Equal(t, removeTranslate(expected), removeTranslate(text.ToSVG(nil)))
}

func TestTextToSVGTransform(t *testing.T) {
	withDigits(t, 2)
	svg := NewText("x").ToSVG(nil)
	assert.True(t, strings.HasPrefix(svg, `<g transform="matrix(1 0 0 1 10.5 23.1)" `), svg)
}

func TestTextToSVGJustified(t *testing.T) {
	withDigits(t, 2)
	text := NewText("xxxxxx\nx y", WithTextAlign(AlignJustify))
	assert.Equal(t, removeTranslate(justifySVG), removeTranslate(text.ToSVG(nil)))
}

func TestTextToSVGMultipleSpaces(t *testing.T) {
	withDigits(t, 2)
	text := NewText("x                 y")
	expected := textOpen + `<tspan x="-105" y="12.57" style="white-space: pre; ">x                 y</tspan>` + textClose
	assert.Equal(t, removeTranslate(expected), removeTranslate(text.ToSVG(nil)))
}

func TestTextToSVGDeltaY(t *testing.T) {
	withDigits(t, 0)
	text := NewText("xx", WithStyles(Styles{
		0: {1: Style().WithDeltaY(-14).WithFontSize(24)},
	}))
	expected := textOpen + `<tspan x="-16" y="13" >x</tspan><tspan x="4" y="13"  dy="-14" style="font-size: 24px; baseline-shift: 14; ">x</tspan>` + textClose
	assert.Equal(t, removeTranslate(expected), removeTranslate(text.ToSVG(nil)))
}

func TestTextToSVGFont(t *testing.T) {
	withDigits(t, 2)
	family := Style().WithFontFamily("Times New Roman")
	text := NewText("xxxxxx\nx y", WithTextAlign(AlignJustify), WithStyles(Styles{
		0: {0: family, 1: family, 2: family, 3: family, 4: family, 5: family},
	}))
	expected := strings.Replace(justifySVG,
		`<tspan x="-60" y="-13.65" >`,
		`<tspan x="-60" y="-13.65" style="font-family: 'Times New Roman'; ">`, 1)
	assert.Equal(t, removeTranslate(expected), removeTranslate(text.ToSVG(nil)))
}

func TestTextAsClipPath(t *testing.T) {
	withDigits(t, 0)
	const expected = `<g transform="" clip-path="url(#CLIPPATH_0)"  >
<clipPath id="CLIPPATH_0" >
			<text xml:space="preserve" font-family="Times New Roman" font-size="40" font-style="normal" font-weight="normal" ` + textStyle + ` ><tspan x="-122" y="13" >text as clipPath</tspan></text>
</clipPath>
<rect style="stroke: none; stroke-width: 1; stroke-dasharray: none; stroke-linecap: butt; stroke-dashoffset: 0; stroke-linejoin: miter; stroke-miterlimit: 4; fill: rgb(0,0,0); fill-rule: nonzero; opacity: 1;"  x="-100" y="-50" rx="0" ry="0" width="200" height="100" />
</g>
`
	rect := NewRect(200, 100)
	rect.ClipPath = NewText("text as clipPath")
	assert.Equal(t, removeTranslate(expected), removeTranslate(rect.ToSVG(nil)))

	// ids restart for every export
	assert.Equal(t, removeTranslate(expected), removeTranslate(rect.ToSVG(nil)))

	ctx := svgexport.NewContext()
	rect.ToSVG(ctx)
	assert.Contains(t, rect.ToSVG(ctx), `clip-path="url(#CLIPPATH_1)"`)
}

func TestTextBackgroundColorRects(t *testing.T) {
	withDigits(t, 2)
	svg := NewText("xx", WithTextBackgroundColor("red")).ToSVG(nil)
	assert.Contains(t, svg, `<g transform="matrix(1 0 0 1 20.5 23.1)" style=""  >`+"\n"+
		`		<rect fill="rgb(255,0,0)" x="-20" y="-22.6" width="40" height="45.2"></rect>`+"\n"+
		`		<text `)

	text := NewText("xxx", WithStyles(Styles{0: {1: Style().WithTextBackgroundColor("blue")}}))
	svg = text.ToSVG(nil)
	assert.Equal(t, 1, strings.Count(svg, "<rect "))
	assert.Contains(t, svg, `<rect fill="rgb(0,0,255)" x="-10" y="-22.6" width="20" height="45.2"></rect>`)
	// a highlight change splits the tspans
	assert.Contains(t, svg, `<tspan x="-30" y="12.57" >x</tspan><tspan x="-10" y="12.57" >x</tspan><tspan x="10" y="12.57" >x</tspan>`)
}

func TestTextDecorationAttribute(t *testing.T) {
	text := NewText("x")
	text.Underline = true
	assert.Contains(t, text.ToSVG(nil), ` text-decoration="underline" style=`)

	text.Underline, text.Overline, text.Linethrough = false, true, true
	assert.Contains(t, text.ToSVG(nil), ` text-decoration="overline line-through" `)

	text = NewText("xy", WithStyles(Styles{0: {1: Style().WithUnderline(true)}}))
	assert.Contains(t, text.ToSVG(nil), `style="text-decoration: underline; ">y</tspan>`)
}

func TestTextToSVGRtl(t *testing.T) {
	withDigits(t, 2)
	svg := NewText("x", WithDirection("rtl")).ToSVG(nil)
	assert.Contains(t, svg, ` direction="rtl" style=`)
	assert.Contains(t, svg, `<tspan x="10" y="12.57" >x</tspan>`)
}

func TestTextToSVGCharSpacing(t *testing.T) {
	withDigits(t, 2)
	svg := NewText("xy", WithCharSpacing(100)).ToSVG(nil)
	assert.Contains(t, svg, `<tspan x="-22" y="12.57" >x</tspan><tspan x="2" y="12.57" >y</tspan>`)
}

func TestTextToSVGEscape(t *testing.T) {
	svg := NewText(`a<b & "c"`).ToSVG(nil)
	assert.Contains(t, svg, `a&lt;b &amp; &quot;c&quot;</tspan>`)
}

func TestTextPaintOrder(t *testing.T) {
	text := NewText("x", WithStroke("blue", 2))
	text.PaintFirst = "stroke"
	svg := text.ToSVG(nil)
	assert.Contains(t, svg, `stroke: rgb(0,0,255); stroke-width: 2;`)
	assert.Contains(t, svg, `white-space: pre;" paint-order="stroke"  >`)
}

func TestLineOrigin(t *testing.T) {
	text := NewText("xxxxxx\nx y", WithTextAlign(AlignJustify))
	o := text.LineOrigin(0)
	assert.InDelta(t, -60, o.X, 1e-9)
	assert.InDelta(t, -13.6504, o.Y, 1e-9)
	o = text.LineOrigin(1)
	assert.InDelta(t, -60, o.X, 1e-9)
	assert.InDelta(t, 38.7816, o.Y, 1e-9)

	assert.InDelta(t, 52.432, text.NominalLineHeight(), 1e-9)
}
