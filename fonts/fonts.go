// Package fonts measures text and provides glyph outlines.
//
// Widths are obtained from a [Measurer]; the [Registry] maps font
// families to measurers (built-in metrics, sfnt faces, or shaped
// faces loaded from font files) and the [Cache] memoizes the results
// per font declaration, the way a canvas measuring context does.
package fonts

import (
	"errors"
	"strconv"
	"strings"

	"github.com/benoitkugler/okcanvas/svgpath"
)

// ErrUnknownFamily is returned when a family has no registered face.
var ErrUnknownFamily = errors.New("unknown font family")

// Spec describes the font used to draw a run of text.
type Spec struct {
	Family string
	Style  string // normal, italic or oblique
	Weight string // normal, bold or a numeric weight
	Size   float64
}

// IsBold returns true for bold and numeric weights above 500.
func (s Spec) IsBold() bool {
	switch s.Weight {
	case "bold", "bolder":
		return true
	}
	w, err := strconv.Atoi(s.Weight)
	return err == nil && w > 500
}

// IsItalic returns true for italic and oblique styles.
func (s Spec) IsItalic() bool {
	return s.Style == "italic" || s.Style == "oblique"
}

var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "ui-rounded": true, "math": true, "emoji": true,
	"fangsong": true,
}

// QuotedFamily returns the family as written in a CSS font shorthand:
// quoted, unless it is a generic family, a list, or is already quoted.
func QuotedFamily(family string) string {
	if strings.ContainsAny(family, `'",`) || genericFamilies[strings.ToLower(family)] {
		return family
	}
	return `"` + family + `"`
}

// Declaration returns the CSS font shorthand of s, with the given size:
//
//	normal bold 400px "Times New Roman"
func (s Spec) Declaration(size float64) string {
	return s.Style + " " + s.Weight + " " + strconv.FormatFloat(size, 'f', -1, 64) + "px " + QuotedFamily(s.Family)
}

// Measurer computes the advance width, in pixels, of a string
// drawn with a font.
type Measurer interface {
	Measure(s string, spec Spec) float64
}

// Outliner provides glyph outlines, with the origin on the baseline
// and the y axis pointing down.
type Outliner interface {
	// Outline returns the outline of `r` and its advance.
	// ok is false if the face has no glyph for `r`.
	Outline(r rune, spec Spec) (path svgpath.Path, advance float64, ok bool)
}

// Face is a measurer which may also provide outlines.
type Face interface {
	Measurer
	Outliner
}
