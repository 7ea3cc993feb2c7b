// Package canvas implements a static canvas: an ordered list of objects
// with a background, an overlay and an optional clip path, which can be
// exported as a SVG document, painted into an image or a PDF page, and
// serialized as JSON.
package canvas

import (
	"slices"

	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/object"
)

// Canvas is a scene of a fixed size.
type Canvas struct {
	Width  float64
	Height float64

	// BackgroundColor and OverlayColor fill the whole canvas,
	// respectively below and above the objects.
	BackgroundColor string
	OverlayColor    string

	// ViewportTransform maps the scene coordinates to the canvas.
	ViewportTransform geom.Matrix
	// SVGViewportTransformation exports the viewport transform
	// as the viewBox of the SVG document.
	SVGViewportTransformation bool

	// ClipPath, in canvas coordinates, restricts the drawing
	// of the objects.
	ClipPath object.Shape

	objects []object.Shape
}

// New returns an empty canvas with the identity viewport transform.
func New(width, height float64) *Canvas {
	return &Canvas{
		Width:                     width,
		Height:                    height,
		ViewportTransform:         geom.Identity,
		SVGViewportTransformation: true,
	}
}

// Add appends the objects, drawn above the current ones.
func (c *Canvas) Add(objects ...object.Shape) {
	c.objects = append(c.objects, objects...)
}

// Remove removes the given objects, compared by identity.
// It returns the number of objects removed.
func (c *Canvas) Remove(objects ...object.Shape) int {
	n := len(c.objects)
	c.objects = slices.DeleteFunc(c.objects, func(o object.Shape) bool {
		return slices.Contains(objects, o)
	})
	return n - len(c.objects)
}

// Objects returns the objects, from bottom to top.
// The slice must not be modified.
func (c *Canvas) Objects() []object.Shape { return c.objects }

// Clear removes every object.
func (c *Canvas) Clear() { c.objects = nil }
