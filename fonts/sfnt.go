package fonts

import (
	"fmt"
	"sync"

	"github.com/benoitkugler/okcanvas/svgpath"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNTFace measures and outlines text with a TrueType or OpenType font,
// using its advances and its kern table.
//
// SFNTFace is safe for concurrent use.
type SFNTFace struct {
	font *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer // protected by mu
}

// ParseSFNT parses a TrueType or OpenType font file.
func ParseSFNT(data []byte) (*SFNTFace, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &SFNTFace{font: f}, nil
}

func mustParseSFNT(data []byte) *SFNTFace {
	f, err := ParseSFNT(data)
	if err != nil {
		panic(err)
	}
	return f
}

// Go fonts, used as default outlines
var (
	goRegular    = sync.OnceValue(func() *SFNTFace { return mustParseSFNT(goregular.TTF) })
	goBold       = sync.OnceValue(func() *SFNTFace { return mustParseSFNT(gobold.TTF) })
	goItalic     = sync.OnceValue(func() *SFNTFace { return mustParseSFNT(goitalic.TTF) })
	goBoldItalic = sync.OnceValue(func() *SFNTFace { return mustParseSFNT(gobolditalic.TTF) })
	goMono       = sync.OnceValue(func() *SFNTFace { return mustParseSFNT(gomono.TTF) })
)

// GoFace returns the Go font variant matching the weight and style of spec.
func GoFace(spec Spec) *SFNTFace {
	switch bold, italic := spec.IsBold(), spec.IsItalic(); {
	case bold && italic:
		return goBoldItalic()
	case bold:
		return goBold()
	case italic:
		return goItalic()
	default:
		return goRegular()
	}
}

func ppem(size float64) fixed.Int26_6 { return fixed.Int26_6(size * 64) }

// Measure implements Measurer, applying the pair kerning
// of the font.
func (f *SFNTFace) Measure(s string, spec Spec) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	size := ppem(spec.Size)
	var (
		total fixed.Int26_6
		prev  sfnt.GlyphIndex
	)
	for i, r := range []rune(s) {
		if r == '\t' {
			r = ' '
		}
		gid, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		if i > 0 {
			if kern, err := f.font.Kern(&f.buf, prev, gid, size, font.HintingNone); err == nil {
				total += kern
			}
		}
		adv, err := f.font.GlyphAdvance(&f.buf, gid, size, font.HintingNone)
		if err == nil {
			total += adv
		}
		prev = gid
	}
	return float64(total) / 64
}

// Outline implements Outliner.
func (f *SFNTFace) Outline(r rune, spec Spec) (svgpath.Path, float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gid, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || gid == 0 {
		return nil, 0, false
	}
	size := ppem(spec.Size)
	adv, err := f.font.GlyphAdvance(&f.buf, gid, size, font.HintingNone)
	if err != nil {
		return nil, 0, false
	}
	segments, err := f.font.LoadGlyph(&f.buf, gid, size, nil)
	if err != nil {
		return nil, 0, false
	}
	var path svgpath.Path
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if len(path) != 0 { // sfnt contours are implicitly closed
				path.Stop(true)
			}
			path.Start(seg.Args[0])
		case sfnt.SegmentOpLineTo:
			path.Line(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			path.QuadBezier(seg.Args[0], seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			path.CubeBezier(seg.Args[0], seg.Args[1], seg.Args[2])
		}
	}
	if len(path) != 0 {
		path.Stop(true)
	}
	return path, float64(adv) / 64, true
}
