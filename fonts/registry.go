package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/svgpath"
)

// goFamily draws and measures with the Go font matching the spec variant.
type goFamily struct{}

func (goFamily) Measure(s string, spec Spec) float64 { return GoFace(spec).Measure(s, spec) }

func (goFamily) Outline(r rune, spec Spec) (svgpath.Path, float64, bool) {
	return GoFace(spec).Outline(r, spec)
}

// Fallback is used for families which are neither registered
// nor one of the core fonts.
var Fallback Face = goFamily{}

// Registry maps font families to faces.
// Lookups try, in order, the registered faces, the core fonts
// and the fallback.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	faces map[string]Face // lower case family -> face
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{faces: make(map[string]Face)}
}

// Default is the registry used by text objects.
var Default = NewRegistry()

func normalizeFamily(family string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(family), `'"`))
}

// Register associates face to family, replacing any previous face.
func (r *Registry) Register(family string, face Face) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[normalizeFamily(family)] = face
}

// Unregister removes the face registered for family.
func (r *Registry) Unregister(family string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.faces, normalizeFamily(family))
}

// LoadFile parses the font file at path and registers it for family.
func (r *Registry) LoadFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading font %s: %w", family, err)
	}
	face, err := ParseFontFile(data)
	if err != nil {
		return fmt.Errorf("loading font %s: %w", family, err)
	}
	r.Register(family, face)
	okcanvas.Logger().Debug("fonts: registered", "family", family, "path", path)
	return nil
}

// LoadFiles registers every family -> local path of paths.
// Entries which are not local files (such as URLs) are skipped.
func (r *Registry) LoadFiles(paths map[string]string) error {
	for family, path := range paths {
		if strings.Contains(path, "://") {
			continue
		}
		if err := r.LoadFile(family, path); err != nil {
			return err
		}
	}
	return nil
}

// Registered returns the face registered for family, if any,
// without trying the core fonts.
func (r *Registry) Registered(family string) (Face, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.faces[normalizeFamily(family)]
	return f, ok
}

// Lookup returns the face for family, which may be a CSS list
// of families. It never returns nil.
func (r *Registry) Lookup(family string) Face {
	for _, name := range strings.Split(family, ",") {
		if f, ok := r.Registered(name); ok {
			return f
		}
	}
	if f, ok := LookupCore(family); ok {
		return f
	}
	okcanvas.Logger().Warn("fonts: unknown family, using fallback", "family", family)
	return Fallback
}

// Measure implements Measurer, dispatching on spec.Family.
func (r *Registry) Measure(s string, spec Spec) float64 {
	return r.Lookup(spec.Family).Measure(s, spec)
}

// Outline implements Outliner, dispatching on spec.Family.
func (r *Registry) Outline(c rune, spec Spec) (svgpath.Path, float64, bool) {
	return r.Lookup(spec.Family).Outline(c, spec)
}
