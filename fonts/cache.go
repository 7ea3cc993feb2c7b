package fonts

import (
	"strings"
	"sync"

	"github.com/benoitkugler/okcanvas/config"
)

// Cache memoizes the widths of characters and character pairs per font
// declaration. Widths are measured once at config.CacheFontSize
// and scaled to the requested size.
//
// Cache is safe for concurrent use.
type Cache struct {
	measurer Measurer

	mu     sync.Mutex
	widths map[string]map[string]float64 // declaration -> string -> width
}

// NewCache returns an empty cache backed by m.
func NewCache(m Measurer) *Cache {
	return &Cache{measurer: m, widths: make(map[string]map[string]float64)}
}

// DefaultCache is backed by the Default registry.
var DefaultCache = NewCache(Default)

// cacheKey identifies the font used to measure, independently of the size.
func cacheKey(spec Spec) string {
	return spec.Family + "\x00" + spec.Style + "_" + spec.Weight
}

// width returns the width of s at the cache font size.
// c.mu must be held.
func (c *Cache) width(key string, s string, spec Spec, cfg config.Config) float64 {
	fc := c.widths[key]
	if fc == nil {
		fc = make(map[string]float64)
		c.widths[key] = fc
	}
	if w, ok := fc[s]; ok {
		return w
	}
	if cfg.MaxCachedWidths > 0 && len(fc) >= cfg.MaxCachedWidths {
		clear(fc)
	}
	spec.Size = cfg.CacheFontSize
	w := c.measurer.Measure(s, spec)
	fc[s] = w
	return w
}

// Measure returns the width of s drawn with spec.
func (c *Cache) Measure(s string, spec Spec) float64 {
	cfg := config.Get()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width(cacheKey(spec), s, spec, cfg) * spec.Size / cfg.CacheFontSize
}

// MeasureChar returns the width of char, and its kerned width: the width
// of the pair prev+char minus the width of prev, when prev is drawn with the
// same font as char. Otherwise the kerned width is the width.
// prevSpec is ignored when prev is empty.
func (c *Cache) MeasureChar(char, prev string, spec, prevSpec Spec) (width, kernedWidth float64) {
	cfg := config.Get()
	mult := spec.Size / cfg.CacheFontSize

	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(spec)
	width = c.width(key, char, spec, cfg)
	kernedWidth = width
	if prev != "" && spec.Declaration(spec.Size) == prevSpec.Declaration(prevSpec.Size) {
		prevWidth := c.width(key, prev, spec, cfg)
		coupleWidth := c.width(key, prev+char, spec, cfg)
		kernedWidth = coupleWidth - prevWidth
	}
	return width * mult, kernedWidth * mult
}

// Clear removes the cached widths of the given families,
// or of every family if none is given.
func (c *Cache) Clear(families ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(families) == 0 {
		clear(c.widths)
		return
	}
	for key := range c.widths {
		for _, family := range families {
			if strings.HasPrefix(key, family+"\x00") {
				delete(c.widths, key)
			}
		}
	}
}
