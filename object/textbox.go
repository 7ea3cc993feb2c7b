package object

import (
	"math"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgexport"
	"github.com/benoitkugler/okcanvas/svgpath"
)

// Textbox is a text with a fixed width, whose lines are wrapped
// on word boundaries (or between any characters with SplitByGrapheme).
// Styles are indexed by the text lines, not by the wrapped ones.
type Textbox struct {
	Text

	// MinWidth is the minimum width of the box.
	MinWidth float64 `json:"minWidth"`
	// SplitByGrapheme allows to break lines inside words.
	SplitByGrapheme bool `json:"splitByGrapheme"`
}

type wrapOptions struct {
	width, minWidth float64
	splitByGrapheme bool
}

// NewTextbox returns a text box of the given width. The width grows
// to fit the largest word.
func NewTextbox(text string, width float64, opts ...TextOption) *Textbox {
	tb := &Textbox{Text: defaultText(), MinWidth: 20}
	tb.Text.Text = text
	tb.Width = width
	for _, opt := range opts {
		opt(&tb.Text)
	}
	tb.InitDimensions()
	return tb
}

func (*Textbox) Type() string { return "textbox" }

// InitDimensions wraps the lines, computes the layout and updates
// Width (if a word does not fit) and Height.
func (tb *Textbox) InitDimensions() {
	tb.initDimensions(&wrapOptions{width: tb.Width, minWidth: tb.MinWidth, splitByGrapheme: tb.SplitByGrapheme})
}

// Set applies opts and updates the dimensions.
func (tb *Textbox) Set(opts ...TextOption) {
	for _, opt := range opts {
		opt(&tb.Text)
	}
	tb.InitDimensions()
}

// ToSVG implements Shape.
func (tb *Textbox) ToSVG(ctx *svgexport.Context) string {
	tb.InitDimensions()
	return tb.toSVG(svgexport.OrDefault(ctx))
}

// ToClipPathSVG implements Shape.
func (tb *Textbox) ToClipPathSVG(ctx *svgexport.Context) string {
	tb.InitDimensions()
	return tb.toClipPathSVG(svgexport.OrDefault(ctx))
}

// Outline implements Shape.
func (tb *Textbox) Outline() svgpath.Path {
	tb.InitDimensions()
	return tb.outline()
}

// Render implements Shape.
func (tb *Textbox) Render(d render.Driver, m geom.Matrix) {
	tb.InitDimensions()
	tb.render(tb, d, m)
}

type wordData struct {
	word  []rune
	width float64
	sep   rune // the separator following the word, 0 for the last one
}

// measureWord returns the width of word, starting at charOffset
// in the text line.
func (t *Text) measureWord(word []rune, lineIndex, charOffset int) float64 {
	var (
		width float64
		prev  rune
	)
	for i, r := range word {
		box := t.graphemeBox(r, lineIndex, i+charOffset, prev, true)
		width += box.KernedWidth
		prev = r
	}
	return width
}

// splitWords splits the text line on spaces and tabs, or
// into graphemes.
func (t *Text) splitWords(line []rune, lineIndex int, splitByGrapheme bool) []wordData {
	if len(line) == 0 {
		return []wordData{{}}
	}
	var (
		out    []wordData
		offset int
	)
	if splitByGrapheme {
		for i := range line {
			w := line[i : i+1]
			out = append(out, wordData{word: w, width: t.measureWord(w, lineIndex, i)})
		}
		return out
	}
	start := 0
	for i := 0; i <= len(line); i++ {
		if i < len(line) && !isSpaceOrTab(line[i]) {
			continue
		}
		w := line[start:i]
		d := wordData{word: w, width: t.measureWord(w, lineIndex, offset)}
		if i < len(line) {
			d.sep = line[i]
		}
		out = append(out, d)
		offset = i + 1
		start = i + 1
	}
	return out
}

// wrapLines breaks the text lines so that they fit in the width,
// and returns the wrapped lines with their position in the text lines.
func (t *Text) wrapLines(lines [][]rune, opts wrapOptions) ([][]rune, []lineRef) {
	l := &t.layout
	l.wrapping = true
	defer func() { l.wrapping = false }()

	data := make([][]wordData, len(lines))
	var largestWordWidth float64
	for i, line := range lines {
		data[i] = t.splitWords(line, i, opts.splitByGrapheme)
		for _, w := range data[i] {
			largestWordWidth = math.Max(largestWordWidth, w.width)
		}
	}

	var (
		out  [][]rune
		refs []lineRef
	)
	for i := range lines {
		wrapped, offsets := t.wrapLine(i, opts, data[i], largestWordWidth)
		out = append(out, wrapped...)
		for _, off := range offsets {
			refs = append(refs, lineRef{line: i, offset: off})
		}
	}
	return out, refs
}

// wrapLine wraps one text line, returning the wrapped lines and their
// start offset in the text line.
func (t *Text) wrapLine(lineIndex int, opts wrapOptions, words []wordData, largestWordWidth float64) ([][]rune, []int) {
	l := &t.layout
	additionalSpace := t.charSpacingWidth()
	maxWidth := math.Max(opts.width, math.Max(largestWordWidth, l.dynamicMinWidth))

	var (
		lines     [][]rune
		offsets   []int
		line      []rune
		lineStart int
		offset    int // position of the current word in the text line
		lineWidth float64
		infix     float64
		prevSep   rune
		justStart = true
	)
	for _, w := range words {
		lineWidth += infix + w.width - additionalSpace
		if lineWidth > maxWidth && !justStart {
			lines = append(lines, line)
			offsets = append(offsets, lineStart)
			line, lineStart = nil, offset
			lineWidth = w.width
			justStart = true
		} else {
			lineWidth += additionalSpace
		}
		if !justStart && !opts.splitByGrapheme {
			line = append(line, prevSep)
		}
		line = append(line, w.word...)
		offset += len(w.word)
		infix = 0
		if !opts.splitByGrapheme {
			if w.sep != 0 {
				infix = t.measureWord([]rune{w.sep}, lineIndex, offset)
			}
			offset++ // the separator
		}
		prevSep = w.sep
		justStart = false
	}
	if len(words) != 0 {
		lines = append(lines, line)
		offsets = append(offsets, lineStart)
	}

	if largestWordWidth > l.dynamicMinWidth {
		l.dynamicMinWidth = largestWordWidth - additionalSpace
	}
	return lines, offsets
}
