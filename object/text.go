package object

import (
	"github.com/benoitkugler/okcanvas/fonts"
)

// Text alignments
const (
	AlignLeft          = "left"
	AlignCenter        = "center"
	AlignRight         = "right"
	AlignJustify       = "justify"
	AlignJustifyLeft   = "justify-left"
	AlignJustifyCenter = "justify-center"
	AlignJustifyRight  = "justify-right"
)

// ScriptStyle is the relative size and baseline shift of
// superscripts and subscripts, as fractions of the font size.
type ScriptStyle struct {
	Size     float64 `json:"size"`
	Baseline float64 `json:"baseline"`
}

// Text is a block of text, made of lines separated by '\n'.
// Each character may override the text properties through Styles.
//
// The layout is computed from the exported fields by InitDimensions,
// which is called by the export and render methods: Width and Height
// are overwritten.
type Text struct {
	Object

	Text string `json:"text"`

	FontSize                float64 `json:"fontSize"`
	FontWeight              string  `json:"fontWeight"`
	FontFamily              string  `json:"fontFamily"`
	FontStyle               string  `json:"fontStyle"`
	TextAlign               string  `json:"textAlign"`
	LineHeight              float64 `json:"lineHeight"`
	CharSpacing             float64 `json:"charSpacing"` // thousandths of em
	Underline               bool    `json:"underline"`
	Overline                bool    `json:"overline"`
	Linethrough             bool    `json:"linethrough"`
	TextBackgroundColor     string  `json:"textBackgroundColor"`
	TextDecorationThickness float64 `json:"textDecorationThickness"` // thousandths of em
	Direction               string  `json:"direction"`                // ltr or rtl
	Styles                  Styles  `json:"styles"`

	Superscript ScriptStyle `json:"superscript"`
	Subscript   ScriptStyle `json:"subscript"`

	// Measurer measures the characters. If nil, fonts.DefaultCache is used.
	Measurer *fonts.Cache `json:"-"`
	// Outliner provides the glyphs when rendering. If nil, fonts.Default is used.
	Outliner fonts.Outliner `json:"-"`

	layout textLayout
}

const (
	fontSizeMult     = 1.13  // line height, as a multiple of the font size
	fontSizeFraction = 0.222 // descent, as a fraction of the font size
)

// decoration offsets, as fractions of the font size
var decorationOffsets = map[StyleProp]float64{
	PropUnderline:   0.1,
	PropLinethrough: -0.315,
	PropOverline:    -0.88,
}

// TextOption modifies a text at creation.
type TextOption func(*Text)

func defaultText() Text {
	return Text{
		Object:                  defaultObject(),
		FontSize:                40,
		FontWeight:              "normal",
		FontFamily:              "Times New Roman",
		FontStyle:               "normal",
		TextAlign:               AlignLeft,
		LineHeight:              1.16,
		TextDecorationThickness: 66.667,
		Direction:               "ltr",
		Styles:                  Styles{},
		Superscript:             ScriptStyle{Size: 0.6, Baseline: -0.35},
		Subscript:               ScriptStyle{Size: 0.6, Baseline: 0.11},
	}
}

// NewText returns a text with the default properties, modified by opts,
// and computes its dimensions.
func NewText(text string, opts ...TextOption) *Text {
	t := defaultText()
	t.Text = text
	for _, opt := range opts {
		opt(&t)
	}
	t.InitDimensions()
	return &t
}

// Set applies opts and updates the dimensions.
func (t *Text) Set(opts ...TextOption) {
	for _, opt := range opts {
		opt(t)
	}
	t.InitDimensions()
}

func WithFontSize(size float64) TextOption { return func(t *Text) { t.FontSize = size } }

func WithFontFamily(family string) TextOption { return func(t *Text) { t.FontFamily = family } }

func WithFontWeight(weight string) TextOption { return func(t *Text) { t.FontWeight = weight } }

func WithFontStyle(style string) TextOption { return func(t *Text) { t.FontStyle = style } }

func WithTextAlign(align string) TextOption { return func(t *Text) { t.TextAlign = align } }

func WithFill(fill string) TextOption { return func(t *Text) { t.Fill = fill } }

func WithStroke(stroke string, width float64) TextOption {
	return func(t *Text) { t.Stroke, t.StrokeWidth = stroke, width }
}

func WithBackgroundColor(color string) TextOption {
	return func(t *Text) { t.BackgroundColor = color }
}

func WithTextBackgroundColor(color string) TextOption {
	return func(t *Text) { t.TextBackgroundColor = color }
}

func WithLineHeight(lineHeight float64) TextOption {
	return func(t *Text) { t.LineHeight = lineHeight }
}

func WithCharSpacing(spacing float64) TextOption {
	return func(t *Text) { t.CharSpacing = spacing }
}

func WithDirection(direction string) TextOption {
	return func(t *Text) { t.Direction = direction }
}

// WithStyles sets the character styles (the map is not copied).
func WithStyles(styles Styles) TextOption { return func(t *Text) { t.Styles = styles } }

// WithPosition sets the left and top coordinates.
func WithPosition(left, top float64) TextOption {
	return func(t *Text) { t.Left, t.Top = left, top }
}

func (*Text) Type() string { return "text" }

// baseStyle returns the text properties as a complete character style.
func (t *Text) baseStyle() CharStyle {
	return CharStyle{
		Set:                     allProps,
		Fill:                    t.Fill,
		Stroke:                  t.Stroke,
		StrokeWidth:             t.StrokeWidth,
		FontSize:                t.FontSize,
		FontFamily:              t.FontFamily,
		FontWeight:              t.FontWeight,
		FontStyle:               t.FontStyle,
		Underline:               t.Underline,
		Overline:                t.Overline,
		Linethrough:             t.Linethrough,
		DeltaY:                  0,
		TextBackgroundColor:     t.TextBackgroundColor,
		TextDecorationThickness: t.TextDecorationThickness,
	}
}

// setBase sets the text property p from the style.
func (t *Text) setBase(p StyleProp, s CharStyle) {
	switch p {
	case PropFill:
		t.Fill = s.Fill
	case PropStroke:
		t.Stroke = s.Stroke
	case PropStrokeWidth:
		t.StrokeWidth = s.StrokeWidth
	case PropFontSize:
		t.FontSize = s.FontSize
	case PropFontFamily:
		t.FontFamily = s.FontFamily
	case PropFontWeight:
		t.FontWeight = s.FontWeight
	case PropFontStyle:
		t.FontStyle = s.FontStyle
	case PropUnderline:
		t.Underline = s.Underline
	case PropOverline:
		t.Overline = s.Overline
	case PropLinethrough:
		t.Linethrough = s.Linethrough
	case PropTextBackgroundColor:
		t.TextBackgroundColor = s.TextBackgroundColor
	case PropTextDecorationThickness:
		t.TextDecorationThickness = s.TextDecorationThickness
	}
}

func specOf(s CharStyle) fonts.Spec {
	return fonts.Spec{Family: s.FontFamily, Style: s.FontStyle, Weight: s.FontWeight, Size: s.FontSize}
}

func (t *Text) measurer() *fonts.Cache {
	if t.Measurer != nil {
		return t.Measurer
	}
	return fonts.DefaultCache
}

func (t *Text) outliner() fonts.Outliner {
	if t.Outliner != nil {
		return t.Outliner
	}
	return fonts.Default
}
