package fonts

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/benoitkugler/okcanvas/svgpath"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedFace measures text with the HarfBuzz shaper of go-text/typesetting,
// so that ligatures and GPOS kerning are taken into account.
// Outlines are read from the same font file with sfnt.
//
// ShapedFace is safe for concurrent use.
type ShapedFace struct {
	font     *font.Font // read only, safe for concurrent use
	outlines *SFNTFace

	shapers sync.Pool
}

// ParseFontFile parses a TrueType or OpenType font file.
func ParseFontFile(data []byte) (*ShapedFace, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	outlines, err := ParseSFNT(data)
	if err != nil {
		return nil, err
	}
	return &ShapedFace{
		font:     face.Font,
		outlines: outlines,
		shapers:  sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
	}, nil
}

// detectScript returns the script of the first non space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// Measure implements Measurer.
func (f *ShapedFace) Measure(s string, spec Spec) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.font), // font.Face is not safe for concurrent use
		Size:      fixed.Int26_6(spec.Size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	shaper := f.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	f.shapers.Put(shaper)
	return float64(out.Advance) / 64
}

// Outline implements Outliner.
func (f *ShapedFace) Outline(r rune, spec Spec) (svgpath.Path, float64, bool) {
	return f.outlines.Outline(r, spec)
}
