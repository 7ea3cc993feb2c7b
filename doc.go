// Package okcanvas provides an object model for 2D canvas scenes
// (rectangles, circles and rich text), which can be exported
// to SVG markup or painted by a drawing driver.
//
// The sub-packages are organized as follows:
//   - object: the shapes, including the rich text layout engine
//   - canvas: a static canvas holding objects, with SVG, PNG and PDF output
//   - svgexport: number formatting and markup helpers shared by the exporters
//   - svgimport: reads back the SVG subset produced by the exporters
//   - render: the drawing driver interfaces, with raster and pdf backends
//   - fonts: text measurement and glyph outlines
//   - config: the global configuration (numeric precision, font paths)
//
// A typical usage is:
//
//	t := object.NewText("Hello\nworld", object.WithTextAlign(object.AlignJustify))
//	markup := t.ToSVG(svgexport.NewContext())
package okcanvas

// Version is reported in the <desc> element of exported documents.
const Version = "0.3.0"
