package fonts

import (
	"strings"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/svgpath"
)

// CoreFace measures with the metrics of a standard PDF font,
// and draws with the Go fonts, stretched to the metrics advances.
type CoreFace struct {
	Regular, Bold *Metrics
	Mono          bool // outlines from Go Mono
}

var (
	TimesFace     = &CoreFace{Regular: TimesRoman, Bold: TimesBold}
	HelveticaFace = &CoreFace{Regular: Helvetica, Bold: HelveticaBold}
	CourierFace   = &CoreFace{Regular: Courier, Bold: Courier, Mono: true}
)

// coreAliases maps lower case family names to the core faces.
var coreAliases = map[string]*CoreFace{
	"times new roman": TimesFace,
	"times":           TimesFace,
	"times-roman":     TimesFace,
	"serif":           TimesFace,
	"arial":           HelveticaFace,
	"helvetica":       HelveticaFace,
	"sans-serif":      HelveticaFace,
	"courier":         CourierFace,
	"courier new":     CourierFace,
	"monospace":       CourierFace,
}

// LookupCore returns the core face for a family name (or the first
// known name of a CSS family list), ignoring case and quotes.
func LookupCore(family string) (*CoreFace, bool) {
	for _, name := range strings.Split(family, ",") {
		name = strings.ToLower(strings.Trim(strings.TrimSpace(name), `'"`))
		if f, ok := coreAliases[name]; ok {
			return f, true
		}
	}
	return nil, false
}

func (c *CoreFace) metrics(spec Spec) *Metrics {
	if spec.IsBold() {
		return c.Bold
	}
	return c.Regular
}

func (c *CoreFace) Measure(s string, spec Spec) float64 {
	return c.metrics(spec).Measure(s, spec)
}

func (c *CoreFace) Outline(r rune, spec Spec) (svgpath.Path, float64, bool) {
	advance := c.metrics(spec).Width(r) * spec.Size / 1000
	src := GoFace(spec)
	if c.Mono {
		src = goMono()
	}
	path, goAdvance, ok := src.Outline(r, spec)
	if !ok {
		return nil, advance, false
	}
	if goAdvance > 0 && goAdvance != advance {
		path = path.Transform(geom.Identity.Scale(advance/goAdvance, 1))
	}
	return path, advance, true
}
