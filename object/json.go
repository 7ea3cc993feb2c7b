package object

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownType is returned when reading a shape with an unsupported type.
var ErrUnknownType = errors.New("unknown shape type")

// NewShape returns a shape of the given type with the default properties.
func NewShape(typ string) (Shape, error) {
	switch typ {
	case "rect":
		return NewRect(0, 0), nil
	case "circle":
		return NewCircle(0), nil
	case "text":
		t := defaultText()
		return &t, nil
	case "textbox":
		return &Textbox{Text: defaultText(), MinWidth: 20}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

// MarshalShape serializes a shape as a JSON object, with its type
// in the "type" field and its clip path, if any, in "clipPath".
func MarshalShape(s Shape) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(s.Type())
	if clip := s.Base().ClipPath; clip != nil {
		fields["clipPath"], err = MarshalShape(clip)
		if err != nil {
			return nil, fmt.Errorf("clip path: %w", err)
		}
	}
	return json.Marshal(fields)
}

// UnmarshalShape reads a shape written by MarshalShape. Missing
// properties keep their default values. The dimensions of texts
// are recomputed.
func UnmarshalShape(data []byte) (Shape, error) {
	var head struct {
		Type     string          `json:"type"`
		ClipPath json.RawMessage `json:"clipPath"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	s, err := NewShape(head.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("reading %s: %w", head.Type, err)
	}
	if len(head.ClipPath) != 0 && string(head.ClipPath) != "null" {
		clip, err := UnmarshalShape(head.ClipPath)
		if err != nil {
			return nil, fmt.Errorf("clip path: %w", err)
		}
		s.Base().ClipPath = clip
	}
	switch s := s.(type) {
	case *Circle:
		s.SetRadius(s.Radius)
	case *Text:
		s.InitDimensions()
	case *Textbox:
		s.InitDimensions()
	}
	return s, nil
}
