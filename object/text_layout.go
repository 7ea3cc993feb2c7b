package object

import (
	"math"
	"strings"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/config"
)

// CharBox is the position of a character in its line.
type CharBox struct {
	Left        float64 // relative to the start of the line
	Width       float64
	KernedWidth float64 // width including the kerning with the previous character
	Height      float64 // font size
	DeltaY      float64
}

// lineRef locates a displayed line in the text lines.
type lineRef struct{ line, offset int }

type textLayout struct {
	lines     [][]rune // displayed lines
	unwrapped [][]rune // lines of the text, split on '\n'
	styleMap  []lineRef
	wrapped   bool // lines may be the continuation of a text line

	splitByGrapheme bool

	charBounds  [][]CharBox // one more box than characters per line
	lineWidths  []float64
	lineHeights []float64

	// during wrapping, styles are read with the unwrapped indices
	wrapping        bool
	dynamicMinWidth float64
}

// splitLines splits on '\n' and '\r\n'.
func splitLines(text string) [][]rune {
	chunks := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([][]rune, len(chunks))
	for i, c := range chunks {
		out[i] = []rune(c)
	}
	return out
}

func isSpaceOrTab(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

func (t *Text) isJustify() bool { return strings.Contains(t.TextAlign, AlignJustify) }

// InitDimensions computes the layout of the text and updates
// Width and Height. It must be called after the text or its
// properties are modified directly.
func (t *Text) InitDimensions() { t.initDimensions(nil) }

func (t *Text) initDimensions(wrap *wrapOptions) {
	l := &t.layout
	*l = textLayout{unwrapped: splitLines(t.Text)}
	if wrap == nil {
		l.lines = l.unwrapped
	} else {
		l.wrapped = true
		l.splitByGrapheme = wrap.splitByGrapheme
		l.lines, l.styleMap = t.wrapLines(l.unwrapped, *wrap)
	}

	n := len(l.lines)
	l.charBounds = make([][]CharBox, n)
	l.lineWidths = make([]float64, n)
	l.lineHeights = make([]float64, n)
	for i := range l.lines {
		l.lineWidths[i] = t.measureLine(i)
		l.lineHeights[i] = t.computeHeightOfLine(i)
	}

	if wrap == nil {
		t.Width = t.CalcTextWidth()
		if t.Width == 0 {
			t.Width = config.Get().MinTextWidth
		}
	} else {
		t.Width = math.Max(wrap.width, math.Max(wrap.minWidth, l.dynamicMinWidth))
	}
	if t.isJustify() {
		t.enlargeSpaces()
	}
	t.Height = t.CalcTextHeight()
	okcanvas.Logger().Debug("object: text layout", "lines", n, "width", t.Width, "height", t.Height)
}

// TextLines returns the displayed lines.
func (t *Text) TextLines() []string {
	out := make([]string, len(t.layout.lines))
	for i, l := range t.layout.lines {
		out[i] = string(l)
	}
	return out
}

// CharBounds returns the boxes of the characters of a displayed line,
// followed by a zero width box marking the end of the line.
func (t *Text) CharBounds(lineIndex int) []CharBox { return t.layout.charBounds[lineIndex] }

// LineWidth returns the width of a displayed line, before justification.
func (t *Text) LineWidth(lineIndex int) float64 { return t.layout.lineWidths[lineIndex] }

// HeightOfLine returns the height of a displayed line: the largest
// font size of its characters, times the line height and the
// font size multiplier.
func (t *Text) HeightOfLine(lineIndex int) float64 { return t.layout.lineHeights[lineIndex] }

// CalcTextWidth returns the width of the longest line.
func (t *Text) CalcTextWidth() float64 {
	var w float64
	for _, lw := range t.layout.lineWidths {
		w = math.Max(w, lw)
	}
	return w
}

// CalcTextHeight returns the sum of the line heights,
// the last line not being expanded by the line height.
func (t *Text) CalcTextHeight() float64 {
	var h float64
	n := len(t.layout.lines)
	for i := 0; i < n; i++ {
		lh := t.HeightOfLine(i)
		if i == n-1 {
			lh /= t.LineHeight
		}
		h += lh
	}
	return h
}

func (t *Text) computeHeightOfLine(lineIndex int) float64 {
	maxHeight := t.heightOfChar(lineIndex, 0)
	for i := 1; i < len(t.layout.lines[lineIndex]); i++ {
		maxHeight = math.Max(t.heightOfChar(lineIndex, i), maxHeight)
	}
	return maxHeight * t.LineHeight * fontSizeMult
}

func (t *Text) heightOfChar(lineIndex, charIndex int) float64 {
	return t.CompleteStyleDeclaration(lineIndex, charIndex).FontSize
}

// charSpacingWidth returns the extra space added after each character.
func (t *Text) charSpacingWidth() float64 {
	if t.CharSpacing != 0 {
		return t.FontSize * t.CharSpacing / 1000
	}
	return 0
}

// measureChar returns the width of a character and its width including
// the kerning with the previous one (0 for none).
func (t *Text) measureChar(char rune, style CharStyle, prev rune, prevStyle CharStyle) (width, kernedWidth float64) {
	var prevS string
	if prev != 0 {
		prevS = string(prev)
	}
	return t.measurer().MeasureChar(string(char), prevS, specOf(style), specOf(prevStyle))
}

// graphemeBox measures the character at (lineIndex, charIndex).
// If skipLeft is false, its left position is computed from the
// previous box of the line.
func (t *Text) graphemeBox(grapheme rune, lineIndex, charIndex int, prev rune, skipLeft bool) CharBox {
	style := t.CompleteStyleDeclaration(lineIndex, charIndex)
	var prevStyle CharStyle
	if prev != 0 {
		prevStyle = t.CompleteStyleDeclaration(lineIndex, charIndex-1)
	}
	width, kernedWidth := t.measureChar(grapheme, style, prev, prevStyle)
	box := CharBox{Width: width, KernedWidth: kernedWidth, Height: style.FontSize, DeltaY: style.DeltaY}
	if cs := t.charSpacingWidth(); cs != 0 {
		box.Width += cs
		box.KernedWidth += cs
	}
	if charIndex > 0 && !skipLeft {
		previous := t.layout.charBounds[lineIndex][charIndex-1]
		box.Left = previous.Left + previous.Width + kernedWidth - width
	}
	return box
}

// measureLine fills the char bounds of the line and returns its width.
func (t *Text) measureLine(lineIndex int) float64 {
	line := t.layout.lines[lineIndex]
	bounds := make([]CharBox, len(line)+1)
	t.layout.charBounds[lineIndex] = bounds

	var (
		width float64
		prev  rune
		last  CharBox
	)
	for i, r := range line {
		last = t.graphemeBox(r, lineIndex, i, prev, false)
		bounds[i] = last
		width += last.KernedWidth
		prev = r
	}
	bounds[len(line)] = CharBox{Left: last.Left + last.Width, Height: t.FontSize}

	width -= t.charSpacingWidth()
	return math.Max(width, 0)
}

// isEndOfWrapping returns true if the displayed line is the last
// one of a text line.
func (t *Text) isEndOfWrapping(lineIndex int) bool {
	l := &t.layout
	if !l.wrapped {
		return lineIndex == len(l.lines)-1
	}
	if lineIndex+1 >= len(l.styleMap) {
		return true
	}
	return l.styleMap[lineIndex+1].line != l.styleMap[lineIndex].line
}

// LineLeftOffset returns the offset of the line from the left of the
// text box, according to the alignment and the direction.
func (t *Text) LineLeftOffset(lineIndex int) float64 {
	lineDiff := t.Width - t.LineWidth(lineIndex)
	endOfWrapping := t.isEndOfWrapping(lineIndex)
	align := t.TextAlign

	if align == AlignJustify ||
		(!endOfWrapping && (align == AlignJustifyCenter || align == AlignJustifyRight || align == AlignJustifyLeft)) {
		return 0
	}
	var leftOffset float64
	switch align {
	case AlignCenter, AlignJustifyCenter:
		leftOffset = lineDiff / 2
	case AlignRight, AlignJustifyRight:
		leftOffset = lineDiff
	}
	if t.Direction == "rtl" {
		switch align {
		case AlignRight, AlignJustify, AlignJustifyRight:
			leftOffset = 0
		case AlignLeft, AlignJustifyLeft:
			leftOffset = -lineDiff
		case AlignCenter, AlignJustifyCenter:
			leftOffset = -lineDiff / 2
		}
	}
	return leftOffset
}

// enlargeSpaces distributes the missing width of the lines over
// their spaces and tabs. Only AlignJustify justifies the last line
// of a paragraph.
func (t *Text) enlargeSpaces() {
	l := &t.layout
	for i, line := range l.lines {
		if t.TextAlign != AlignJustify && (i == len(l.lines)-1 || t.isEndOfWrapping(i)) {
			continue
		}
		lineWidth := t.LineWidth(i)
		if lineWidth >= t.Width {
			continue
		}
		var spaces int
		for _, r := range line {
			if isSpaceOrTab(r) {
				spaces++
			}
		}
		if spaces == 0 {
			continue
		}
		diffSpace := (t.Width - lineWidth) / float64(spaces)
		var accumulated float64
		bounds := l.charBounds[i]
		for j := range bounds {
			box := &bounds[j]
			if j < len(line) && isSpaceOrTab(line[j]) {
				box.Width += diffSpace
				box.KernedWidth += diffSpace
				box.Left += accumulated
				accumulated += diffSpace
			} else {
				box.Left += accumulated
			}
		}
	}
}
