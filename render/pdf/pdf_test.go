package pdf

import (
	"bytes"
	"testing"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/render"
	"github.com/benoitkugler/okcanvas/svgcolor"
	"github.com/benoitkugler/okcanvas/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	doc := NewDocument(200, 100)
	rd := NewRenderer(doc)

	var clip svgpath.Path
	clip.AddRect(0, 0, 100, 100)
	rd.PushClip(clip, true)

	var p svgpath.Path
	p.AddEllipse(50, 50, 40, 30)
	red := svgcolor.MustParse("rgba(255,0,0,0.5)")
	black := svgcolor.Black
	render.DrawPath(rd, p, render.Style{
		Fill: &red, Stroke: &black, Opacity: 1, UseNonZeroWinding: false,
		LineWidth: 2, MiterLimit: 4, LineCap: render.RoundCap,
		Dash: render.DashOptions{Dash: []float64{4, 2}},
	}, geom.Identity)
	rd.PopClip()
	rd.PopClip() // ignored

	require.NoError(t, doc.Error())
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
