package object

import (
	"encoding/json"
	"fmt"
)

// StyleProp identifies one of the properties a character
// style may override.
type StyleProp uint16

const (
	PropFill StyleProp = 1 << iota
	PropStroke
	PropStrokeWidth
	PropFontSize
	PropFontFamily
	PropFontWeight
	PropFontStyle
	PropUnderline
	PropOverline
	PropLinethrough
	PropDeltaY
	PropTextBackgroundColor
	PropTextDecorationThickness

	allProps = PropTextDecorationThickness<<1 - 1
)

var propNames = [...]string{
	"fill", "stroke", "strokeWidth", "fontSize", "fontFamily", "fontWeight",
	"fontStyle", "underline", "overline", "linethrough", "deltaY",
	"textBackgroundColor", "textDecorationThickness",
}

func (p StyleProp) String() string {
	for i, name := range propNames {
		if p == 1<<i {
			return name
		}
	}
	return fmt.Sprintf("StyleProp(%d)", uint16(p))
}

// ParseStyleProp returns the property with the given name.
func ParseStyleProp(name string) (StyleProp, bool) {
	for i, n := range propNames {
		if n == name {
			return 1 << i, true
		}
	}
	return 0, false
}

// CharStyle overrides some properties of a text for one character.
// Only the properties present in Set are meaningful.
// CharStyle values are comparable.
type CharStyle struct {
	Set StyleProp

	Fill                    string
	Stroke                  string
	StrokeWidth             float64
	FontSize                float64
	FontFamily              string
	FontWeight              string
	FontStyle               string
	Underline               bool
	Overline                bool
	Linethrough             bool
	DeltaY                  float64
	TextBackgroundColor     string
	TextDecorationThickness float64
}

// Has returns true if p is overridden.
func (s CharStyle) Has(p StyleProp) bool { return s.Set&p != 0 }

// IsEmpty returns true if no property is overridden.
func (s CharStyle) IsEmpty() bool { return s.Set == 0 }

// Without returns a copy of s with the properties p removed.
func (s CharStyle) Without(p StyleProp) CharStyle { return s.pick(s.Set &^ p) }

// copyProps copies the properties p set in src into dst.
func copyProps(dst *CharStyle, src CharStyle, p StyleProp) {
	p &= src.Set
	dst.Set |= p
	if p&PropFill != 0 {
		dst.Fill = src.Fill
	}
	if p&PropStroke != 0 {
		dst.Stroke = src.Stroke
	}
	if p&PropStrokeWidth != 0 {
		dst.StrokeWidth = src.StrokeWidth
	}
	if p&PropFontSize != 0 {
		dst.FontSize = src.FontSize
	}
	if p&PropFontFamily != 0 {
		dst.FontFamily = src.FontFamily
	}
	if p&PropFontWeight != 0 {
		dst.FontWeight = src.FontWeight
	}
	if p&PropFontStyle != 0 {
		dst.FontStyle = src.FontStyle
	}
	if p&PropUnderline != 0 {
		dst.Underline = src.Underline
	}
	if p&PropOverline != 0 {
		dst.Overline = src.Overline
	}
	if p&PropLinethrough != 0 {
		dst.Linethrough = src.Linethrough
	}
	if p&PropDeltaY != 0 {
		dst.DeltaY = src.DeltaY
	}
	if p&PropTextBackgroundColor != 0 {
		dst.TextBackgroundColor = src.TextBackgroundColor
	}
	if p&PropTextDecorationThickness != 0 {
		dst.TextDecorationThickness = src.TextDecorationThickness
	}
}

// pick returns the style with only the properties p of s.
func (s CharStyle) pick(p StyleProp) CharStyle {
	var out CharStyle
	copyProps(&out, s, p)
	return out
}

// Merge returns s overridden by the properties set in o.
func (s CharStyle) Merge(o CharStyle) CharStyle {
	out := s.pick(allProps &^ o.Set)
	copyProps(&out, o, allProps)
	return out
}

// equalOn returns true if s and o have the same values for the properties p.
func (s CharStyle) equalOn(o CharStyle, p StyleProp) bool {
	return s.pick(p) == o.pick(p)
}

// Builders, to be chained:
//
//	Style().WithFontSize(24).WithDeltaY(-14)
func Style() CharStyle { return CharStyle{} }

func (s CharStyle) WithFill(v string) CharStyle {
	s.Fill, s.Set = v, s.Set|PropFill
	return s
}

func (s CharStyle) WithStroke(v string) CharStyle {
	s.Stroke, s.Set = v, s.Set|PropStroke
	return s
}

func (s CharStyle) WithStrokeWidth(v float64) CharStyle {
	s.StrokeWidth, s.Set = v, s.Set|PropStrokeWidth
	return s
}

func (s CharStyle) WithFontSize(v float64) CharStyle {
	s.FontSize, s.Set = v, s.Set|PropFontSize
	return s
}

func (s CharStyle) WithFontFamily(v string) CharStyle {
	s.FontFamily, s.Set = v, s.Set|PropFontFamily
	return s
}

func (s CharStyle) WithFontWeight(v string) CharStyle {
	s.FontWeight, s.Set = v, s.Set|PropFontWeight
	return s
}

func (s CharStyle) WithFontStyle(v string) CharStyle {
	s.FontStyle, s.Set = v, s.Set|PropFontStyle
	return s
}

func (s CharStyle) WithUnderline(v bool) CharStyle {
	s.Underline, s.Set = v, s.Set|PropUnderline
	return s
}

func (s CharStyle) WithOverline(v bool) CharStyle {
	s.Overline, s.Set = v, s.Set|PropOverline
	return s
}

func (s CharStyle) WithLinethrough(v bool) CharStyle {
	s.Linethrough, s.Set = v, s.Set|PropLinethrough
	return s
}

func (s CharStyle) WithDeltaY(v float64) CharStyle {
	s.DeltaY, s.Set = v, s.Set|PropDeltaY
	return s
}

func (s CharStyle) WithTextBackgroundColor(v string) CharStyle {
	s.TextBackgroundColor, s.Set = v, s.Set|PropTextBackgroundColor
	return s
}

func (s CharStyle) WithTextDecorationThickness(v float64) CharStyle {
	s.TextDecorationThickness, s.Set = v, s.Set|PropTextDecorationThickness
	return s
}

// MarshalJSON writes the overridden properties only.
func (s CharStyle) MarshalJSON() ([]byte, error) {
	out := make(map[string]any)
	for i, name := range propNames {
		p := StyleProp(1 << i)
		if s.Has(p) {
			out[name] = s.value(p)
		}
	}
	return json.Marshal(out)
}

func (s CharStyle) value(p StyleProp) any {
	switch p {
	case PropFill:
		return s.Fill
	case PropStroke:
		return s.Stroke
	case PropStrokeWidth:
		return s.StrokeWidth
	case PropFontSize:
		return s.FontSize
	case PropFontFamily:
		return s.FontFamily
	case PropFontWeight:
		return s.FontWeight
	case PropFontStyle:
		return s.FontStyle
	case PropUnderline:
		return s.Underline
	case PropOverline:
		return s.Overline
	case PropLinethrough:
		return s.Linethrough
	case PropDeltaY:
		return s.DeltaY
	case PropTextBackgroundColor:
		return s.TextBackgroundColor
	case PropTextDecorationThickness:
		return s.TextDecorationThickness
	}
	return nil
}

// UnmarshalJSON reads the properties present in the object.
// Unknown properties are ignored.
func (s *CharStyle) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = CharStyle{}
	for name, value := range raw {
		p, ok := ParseStyleProp(name)
		if !ok {
			continue
		}
		var err error
		switch p {
		case PropFill:
			err = json.Unmarshal(value, &s.Fill)
		case PropStroke:
			err = json.Unmarshal(value, &s.Stroke)
		case PropStrokeWidth:
			err = json.Unmarshal(value, &s.StrokeWidth)
		case PropFontSize:
			err = json.Unmarshal(value, &s.FontSize)
		case PropFontFamily:
			err = json.Unmarshal(value, &s.FontFamily)
		case PropFontWeight:
			var w any // weights may be written as numbers
			if err = json.Unmarshal(value, &w); err == nil {
				s.FontWeight = fmt.Sprint(w)
			}
		case PropFontStyle:
			err = json.Unmarshal(value, &s.FontStyle)
		case PropUnderline:
			err = json.Unmarshal(value, &s.Underline)
		case PropOverline:
			err = json.Unmarshal(value, &s.Overline)
		case PropLinethrough:
			err = json.Unmarshal(value, &s.Linethrough)
		case PropDeltaY:
			err = json.Unmarshal(value, &s.DeltaY)
		case PropTextBackgroundColor:
			err = json.Unmarshal(value, &s.TextBackgroundColor)
		case PropTextDecorationThickness:
			err = json.Unmarshal(value, &s.TextDecorationThickness)
		}
		if err != nil {
			return fmt.Errorf("style property %s: %w", name, err)
		}
		s.Set |= p
	}
	return nil
}

// Styles stores the character styles of a text, indexed
// by line then by character (grapheme) position.
type Styles map[int]map[int]CharStyle

// Clone returns a deep copy of s.
func (s Styles) Clone() Styles {
	if s == nil {
		return nil
	}
	out := make(Styles, len(s))
	for line, chars := range s {
		m := make(map[int]CharStyle, len(chars))
		for i, st := range chars {
			m[i] = st
		}
		out[line] = m
	}
	return out
}

// get returns the style at the given position, which may be empty.
func (s Styles) get(line, char int) CharStyle {
	return s[line][char]
}

// set stores st at the given position, removing empty styles.
func (s Styles) set(line, char int, st CharStyle) {
	if st.IsEmpty() {
		s.delete(line, char)
		return
	}
	chars := s[line]
	if chars == nil {
		chars = make(map[int]CharStyle)
		s[line] = chars
	}
	chars[char] = st
}

func (s Styles) delete(line, char int) {
	chars := s[line]
	if chars == nil {
		return
	}
	delete(chars, char)
	if len(chars) == 0 {
		delete(s, line)
	}
}
