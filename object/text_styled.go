package object

// styleRef maps a displayed position to the key of its style.
func (t *Text) styleRef(lineIndex, charIndex int) (int, int, bool) {
	l := &t.layout
	if l.styleMap != nil && !l.wrapping {
		if lineIndex < 0 || lineIndex >= len(l.styleMap) {
			return 0, 0, false
		}
		ref := l.styleMap[lineIndex]
		return ref.line, ref.offset + charIndex, true
	}
	return lineIndex, charIndex, true
}

// StyleAt returns the style overrides of the character at the
// given displayed position, which may be empty.
func (t *Text) StyleAt(lineIndex, charIndex int) CharStyle {
	line, char, ok := t.styleRef(lineIndex, charIndex)
	if !ok {
		return CharStyle{}
	}
	return t.Styles.get(line, char)
}

// SetStyle replaces the style overrides of the character at
// the given displayed position.
func (t *Text) SetStyle(lineIndex, charIndex int, style CharStyle) {
	line, char, ok := t.styleRef(lineIndex, charIndex)
	if !ok {
		return
	}
	if t.Styles == nil {
		t.Styles = Styles{}
	}
	t.Styles.set(line, char, style)
}

// CompleteStyleDeclaration returns the text properties overridden
// by the style of the character.
func (t *Text) CompleteStyleDeclaration(lineIndex, charIndex int) CharStyle {
	return t.baseStyle().Merge(t.StyleAt(lineIndex, charIndex))
}

// ValueOfPropertyAt returns the value of the property p for
// a character (string, float64 or bool).
func (t *Text) ValueOfPropertyAt(lineIndex, charIndex int, p StyleProp) any {
	return t.CompleteStyleDeclaration(lineIndex, charIndex).value(p)
}

// StyleHas returns true if a character overrides p, on the
// given displayed line, or on any line if lineIndex is negative.
func (t *Text) StyleHas(p StyleProp, lineIndex int) bool {
	if lineIndex < 0 {
		for _, chars := range t.Styles {
			for _, st := range chars {
				if st.Has(p) {
					return true
				}
			}
		}
		return false
	}
	line := lineIndex
	if l := &t.layout; l.styleMap != nil && !l.wrapping && lineIndex < len(l.styleMap) {
		line = l.styleMap[lineIndex].line
	}
	for _, st := range t.Styles[line] {
		if st.Has(p) {
			return true
		}
	}
	return false
}

// IsEmptyStyles returns true if no character of the displayed line has
// a style, or no character at all if lineIndex is negative.
func (t *Text) IsEmptyStyles(lineIndex int) bool {
	if lineIndex < 0 {
		return len(t.Styles) == 0
	}
	for i := range t.layout.lines[lineIndex] {
		if !t.StyleAt(lineIndex, i).IsEmpty() {
			return false
		}
	}
	return true
}

// RemoveStyle removes the property p from every character style.
func (t *Text) RemoveStyle(p StyleProp) {
	for line, chars := range t.Styles {
		for char, st := range chars {
			t.Styles.set(line, char, st.Without(p))
		}
	}
}

// CleanStyle removes the character overrides of p equal to the
// text value. When every character has the same override, it becomes
// the text value. It returns true if the text value was changed.
func (t *Text) CleanStyle(p StyleProp) bool {
	if len(t.Styles) == 0 {
		return false
	}
	base := t.baseStyle()
	var (
		stylesCount int
		value       CharStyle
		hasValue    bool
		allMatch    = true
	)
	for line, chars := range t.Styles {
		for char, st := range chars {
			stylesCount++
			if st.Has(p) {
				if !hasValue {
					value, hasValue = st.pick(p), true
				} else if !st.equalOn(value, p) {
					allMatch = false
				}
				if st.equalOn(base, p) {
					st = st.Without(p)
				}
			} else {
				allMatch = false
			}
			t.Styles.set(line, char, st)
		}
	}

	var graphemeCount int
	for _, line := range t.layout.unwrapped {
		graphemeCount += len(line)
	}
	if allMatch && hasValue && stylesCount == graphemeCount {
		t.setBase(p, value)
		t.RemoveStyle(p)
		return true
	}
	return false
}

// missingNewlineOffset is the number of characters between the end of a
// displayed line and the start of the next one.
func (t *Text) missingNewlineOffset(lineIndex int, skipWrapping bool) int {
	if t.layout.splitByGrapheme && !skipWrapping {
		if t.isEndOfWrapping(lineIndex) {
			return 1
		}
		return 0
	}
	return 1
}

// Get2DCursorLocation converts an index in the text (newlines included)
// into a line and a character position. If skipWrapping is true, the
// position refers to the text lines instead of the displayed ones.
// Indices past the end map to the end of the last line.
func (t *Text) Get2DCursorLocation(index int, skipWrapping bool) (lineIndex, charIndex int) {
	lines := t.layout.lines
	if skipWrapping {
		lines = t.layout.unwrapped
	}
	for i, line := range lines {
		if index <= len(line) {
			return i, index
		}
		index -= len(line) + t.missingNewlineOffset(i, skipWrapping)
	}
	last := len(lines) - 1
	return last, len(lines[last])
}

// SelectionStyles returns the styles of the characters between start
// (included) and end (excluded), indexed in the text.
// If complete is true, the text properties are included.
func (t *Text) SelectionStyles(start, end int, complete bool) []CharStyle {
	if end <= start {
		end = start + 1
	}
	var out []CharStyle
	for i := start; i < end; i++ {
		line, char := t.Get2DCursorLocation(i, false)
		if complete {
			out = append(out, t.CompleteStyleDeclaration(line, char))
		} else {
			out = append(out, t.StyleAt(line, char))
		}
	}
	return out
}

// SetSelectionStyles merges style into the styles of the characters
// between start (included) and end (excluded), indexed in the text.
func (t *Text) SetSelectionStyles(style CharStyle, start, end int) {
	if end <= start {
		end = start + 1
	}
	for i := start; i < end; i++ {
		line, char := t.Get2DCursorLocation(i, false)
		t.SetStyle(line, char, t.StyleAt(line, char).Merge(style))
	}
}

func (t *Text) setScript(start, end int, schema ScriptStyle) {
	if start == end {
		return
	}
	line, char := t.Get2DCursorLocation(start, true)
	t.layout.wrapping = true // the location refers to the text lines
	current := t.CompleteStyleDeclaration(line, char)
	t.layout.wrapping = false
	style := Style().
		WithFontSize(current.FontSize * schema.Size).
		WithDeltaY(current.DeltaY + current.FontSize*schema.Baseline)
	t.SetSelectionStyles(style, start, end)
}

// SetSuperscript turns the characters between start and end into superscripts.
func (t *Text) SetSuperscript(start, end int) {
	t.setScript(start, end, t.Superscript)
}

// SetSubscript turns the characters between start and end into subscripts.
func (t *Text) SetSubscript(start, end int) {
	t.setScript(start, end, t.Subscript)
}
