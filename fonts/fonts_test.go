package fonts

import (
	"testing"

	"github.com/benoitkugler/okcanvas/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

var times40 = Spec{Family: "Times New Roman", Style: "normal", Weight: "normal", Size: 40}

func TestDeclaration(t *testing.T) {
	assert.Equal(t, `normal normal 400px "Times New Roman"`, times40.Declaration(400))
	s := Spec{Family: "serif", Style: "italic", Weight: "bold"}
	assert.Equal(t, "italic bold 12.5px serif", s.Declaration(12.5))
	assert.Equal(t, "'My Font', Arial", QuotedFamily("'My Font', Arial"))

	assert.True(t, Spec{Weight: "700"}.IsBold())
	assert.False(t, Spec{Weight: "400"}.IsBold())
	assert.True(t, Spec{Style: "oblique"}.IsItalic())
}

func TestMetrics(t *testing.T) {
	assert.Equal(t, 20., TimesRoman.Measure("x", times40))
	assert.InDelta(t, 244.44, TimesRoman.Measure("text as clipPath", times40), 1e-9)
	assert.Equal(t, TimesRoman.Width(' '), TimesRoman.Width('\t'))
	assert.Equal(t, 500., TimesRoman.Width('é'))
	assert.Equal(t, 24., Courier.Measure("ab", Spec{Size: 20}))
}

func TestLookupCore(t *testing.T) {
	f, ok := LookupCore("Times New Roman")
	require.True(t, ok)
	assert.Same(t, TimesFace, f)
	f, ok = LookupCore(`"Unknown", Arial`)
	require.True(t, ok)
	assert.Same(t, HelveticaFace, f)
	_, ok = LookupCore("Comic")
	assert.False(t, ok)

	bold := times40
	bold.Weight = "bold"
	assert.Equal(t, TimesBold.Measure("W", bold), TimesFace.Measure("W", bold))
}

func TestCoreOutline(t *testing.T) {
	path, adv, ok := TimesFace.Outline('x', times40)
	require.True(t, ok)
	assert.Equal(t, 20., adv)
	b := path.Bounds()
	assert.True(t, b.MaxX <= 20.5)
	assert.True(t, b.MinY < 0) // glyphs sit above the baseline

	_, adv, ok = TimesFace.Outline(' ', times40)
	assert.True(t, ok)
	assert.Equal(t, 10., adv)
}

func TestSFNTFace(t *testing.T) {
	face, err := ParseSFNT(goregular.TTF)
	require.NoError(t, err)
	w := face.Measure("xx", times40)
	assert.True(t, w > 0)
	assert.InDelta(t, 2*face.Measure("x", times40), w, 1)

	_, err = ParseSFNT([]byte("not a font"))
	assert.Error(t, err)
}

func TestShapedFace(t *testing.T) {
	face, err := ParseFontFile(goregular.TTF)
	require.NoError(t, err)
	ref := goRegular().Measure("Hello", times40)
	assert.InDelta(t, ref, face.Measure("Hello", times40), 2)
	assert.Equal(t, 0., face.Measure("", times40))

	path, _, ok := face.Outline('H', times40)
	assert.True(t, ok)
	assert.NotEmpty(t, path)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Same(t, TimesFace, r.Lookup("Times New Roman"))
	assert.Equal(t, Fallback, r.Lookup("Unknown"))

	r.Register("Custom", CourierFace)
	assert.Same(t, CourierFace, r.Lookup("'custom'"))
	assert.Equal(t, 24., r.Measure("ab", Spec{Family: "Custom", Size: 20}))
	r.Unregister("Custom")
	_, ok := r.Registered("Custom")
	assert.False(t, ok)

	assert.Error(t, r.LoadFile("Missing", "does/not/exist.ttf"))
	assert.NoError(t, r.LoadFiles(map[string]string{"Remote": "https://example.com/font.ttf"}))
}

// countingMeasurer records the strings measured
type countingMeasurer struct {
	calls []string
	kern  float64 // added for each pair of runes
}

func (c *countingMeasurer) Measure(s string, spec Spec) float64 {
	c.calls = append(c.calls, s)
	n := len([]rune(s))
	w := float64(n) * spec.Size / 2
	if n > 1 {
		w += float64(n-1) * c.kern * spec.Size / 1000
	}
	return w
}

func TestCache(t *testing.T) {
	m := &countingMeasurer{kern: -50}
	c := NewCache(m)

	w, kw := c.MeasureChar("b", "a", times40, times40)
	assert.Equal(t, 20., w)
	assert.Equal(t, 18., kw)
	assert.Equal(t, []string{"b", "a", "ab"}, m.calls)

	// cached
	c.MeasureChar("b", "a", times40, times40)
	assert.Len(t, m.calls, 3)

	// different declarations disable kerning
	big := times40
	big.Size = 24
	w, kw = c.MeasureChar("b", "a", big, times40)
	assert.Equal(t, 12., w)
	assert.Equal(t, w, kw)

	assert.Equal(t, 38., c.Measure("ab", times40))

	c.Clear("Times New Roman")
	c.Measure("b", times40)
	assert.Equal(t, "b", m.calls[len(m.calls)-1])
}

func TestCacheLimit(t *testing.T) {
	config.Configure(func(c *config.Config) { c.MaxCachedWidths = 2 })
	defer config.RestoreDefaults()

	m := &countingMeasurer{}
	c := NewCache(m)
	c.Measure("a", times40)
	c.Measure("b", times40)
	c.Measure("c", times40) // evicts
	c.Measure("a", times40)
	assert.Equal(t, []string{"a", "b", "c", "a"}, m.calls)
}
