// Package svgimport reads SVG documents back into a canvas.
// Only a sub-set of SVG is supported, which covers the documents
// written by canvas.ToSVG: groups and transforms, rectangles, circles,
// ellipses, texts with styled tspans and clip paths.
package svgimport

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/canvas"
	"golang.org/x/net/html/charset"
)

// ErrorMode is the behavior of the parser on unsupported elements.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements and logs a warning.
	WarnErrorMode
	// StrictErrorMode fails on unsupported elements.
	StrictErrorMode
)

var (
	errInvalidSVG      = errors.New("invalid svg document")
	errParamMismatch   = errors.New("param mismatch")
	ErrUnsupported     = errors.New("unsupported svg element")
	errUnknownClipPath = errors.New("clip-path reference not found")
)

// Document is the content of a SVG document.
type Document struct {
	Canvas *canvas.Canvas

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here

	// FontFaces maps the families of the @font-face rules to their url.
	FontFaces map[string]string
}

// node is an element of the document tree. Character data is
// stored in children named "#text".
type node struct {
	name     string
	attrs    map[string]string
	children []*node
	parent   *node
	text     string
}

func (n *node) attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// readTree decodes the whole document, so that clip paths may be
// referenced before their definition.
func readTree(r io.Reader) (*node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var root, current *node
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			n := &node{name: se.Name.Local, attrs: make(map[string]string, len(se.Attr)), parent: current}
			for _, attr := range se.Attr {
				n.attrs[attr.Name.Local] = attr.Value
			}
			if current == nil {
				if root != nil {
					return nil, errInvalidSVG
				}
				root = n
			} else {
				current.children = append(current.children, n)
			}
			current = n
		case xml.EndElement:
			if current == nil {
				return nil, errInvalidSVG
			}
			current = current.parent
		case xml.CharData:
			if current != nil {
				current.children = append(current.children, &node{name: "#text", text: string(se), parent: current})
			}
		}
	}
	if root == nil || root.name != "svg" {
		return nil, errInvalidSVG
	}
	return root, nil
}

// ParseDocument reads a SVG document. mode determines if the parser
// ignores, errors out, or logs a warning when it does not handle an element.
func ParseDocument(r io.Reader, mode ErrorMode) (*Document, error) {
	root, err := readTree(r)
	if err != nil {
		return nil, fmt.Errorf("svgimport: %w", err)
	}
	imp := &importer{
		mode: mode,
		doc:  &Document{FontFaces: map[string]string{}},
		ids:  map[string]*node{},
	}
	imp.indexIDs(root)
	if err := imp.readRoot(root); err != nil {
		return nil, fmt.Errorf("svgimport: %w", err)
	}
	okcanvas.Logger().Debug("svgimport: document parsed", "objects", len(imp.doc.Canvas.Objects()))
	return imp.doc, nil
}

// Parse reads a SVG document into a canvas.
func Parse(r io.Reader, mode ErrorMode) (*canvas.Canvas, error) {
	doc, err := ParseDocument(r, mode)
	if err != nil {
		return nil, err
	}
	return doc.Canvas, nil
}

// ParseFile reads the named SVG file into a canvas.
func ParseFile(path string, mode ErrorMode) (*canvas.Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, mode)
}

// unsupported applies the error mode to an element the parser can't handle.
func (imp *importer) unsupported(name string) error {
	switch imp.mode {
	case StrictErrorMode:
		return fmt.Errorf("%w: %s", ErrUnsupported, name)
	case WarnErrorMode:
		okcanvas.Logger().Warn("svgimport: cannot process svg element", "element", name)
	}
	return nil
}

func (imp *importer) indexIDs(n *node) {
	if id, ok := n.attr("id"); ok && id != "" {
		imp.ids[id] = n
	}
	for _, c := range n.children {
		imp.indexIDs(c)
	}
}

// textContent concatenates the character data of n.
func textContent(n *node) string {
	var b strings.Builder
	for _, c := range n.children {
		if c.name == "#text" {
			b.WriteString(c.text)
		}
	}
	return b.String()
}
