package canvas

import (
	"encoding/json"
	"fmt"

	"github.com/benoitkugler/okcanvas"
	"github.com/benoitkugler/okcanvas/geom"
	"github.com/benoitkugler/okcanvas/object"
)

type canvasJSON struct {
	Version           string            `json:"version"`
	Width             float64           `json:"width"`
	Height            float64           `json:"height"`
	Background        string            `json:"background,omitempty"`
	Overlay           string            `json:"overlay,omitempty"`
	ViewportTransform *geom.Matrix      `json:"viewportTransform,omitempty"`
	ClipPath          json.RawMessage   `json:"clipPath,omitempty"`
	Objects           []json.RawMessage `json:"objects"`
}

// ToJSON serializes the canvas and its objects.
func (c *Canvas) ToJSON() ([]byte, error) {
	out := canvasJSON{
		Version:    okcanvas.Version,
		Width:      c.Width,
		Height:     c.Height,
		Background: c.BackgroundColor,
		Overlay:    c.OverlayColor,
		Objects:    make([]json.RawMessage, len(c.objects)),
	}
	if vpt := c.viewport(); vpt != geom.Identity {
		out.ViewportTransform = &vpt
	}
	var err error
	if c.ClipPath != nil {
		if out.ClipPath, err = object.MarshalShape(c.ClipPath); err != nil {
			return nil, fmt.Errorf("canvas: clip path: %w", err)
		}
	}
	for i, o := range c.objects {
		if out.Objects[i], err = object.MarshalShape(o); err != nil {
			return nil, fmt.Errorf("canvas: object %d: %w", i, err)
		}
	}
	return json.Marshal(out)
}

// FromJSON reads a canvas written by ToJSON.
func FromJSON(data []byte) (*Canvas, error) {
	var in canvasJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("canvas: invalid JSON: %w", err)
	}
	c := New(in.Width, in.Height)
	c.BackgroundColor, c.OverlayColor = in.Background, in.Overlay
	if in.ViewportTransform != nil {
		c.ViewportTransform = *in.ViewportTransform
	}
	if len(in.ClipPath) != 0 {
		clip, err := object.UnmarshalShape(in.ClipPath)
		if err != nil {
			return nil, fmt.Errorf("canvas: clip path: %w", err)
		}
		c.ClipPath = clip
	}
	for i, raw := range in.Objects {
		o, err := object.UnmarshalShape(raw)
		if err != nil {
			return nil, fmt.Errorf("canvas: object %d: %w", i, err)
		}
		c.Add(o)
	}
	okcanvas.Logger().Debug("canvas: loaded", "version", in.Version, "objects", len(c.objects))
	return c, nil
}
