// Package position maps byte offsets in a text to LSP positions, whose
// characters count UTF-16 code units.
package position

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"bennypowers.dev/svls/internal/patterns"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// UTF16ToByteOffset returns the byte offset of UTF-16 column col in line.
// A column past the end clamps to len(line); a column inside a surrogate
// pair clamps to the start of its rune.
func UTF16ToByteOffset(line string, col int) int {
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		n := runeUnits(r)
		if units+n > col {
			return i
		}
		units += n
	}
	return len(line)
}

// ByteOffsetToUTF16 returns the UTF-16 column of byte offset off in line.
// An offset inside a multi-byte rune counts up to the start of that rune.
func ByteOffsetToUTF16(line string, off int) int {
	units := 0
	for i, r := range line {
		if i >= off {
			break
		}
		if _, size := utf8.DecodeRuneInString(line[i:]); i+size > off {
			break
		}
		units += runeUnits(r)
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units.
func StringLengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	// invalid UTF-8 decodes to RuneError, which is one unit
	return 1
}

// Index converts between byte offsets and positions in one text.
type Index struct {
	text  string
	lines []int
}

// NewIndex builds an index of the line starts in text.
func NewIndex(text string) *Index {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Index{text: text, lines: lines}
}

// Lines returns the number of lines.
func (x *Index) Lines() int {
	return len(x.lines)
}

func (x *Index) line(n int) string {
	end := len(x.text)
	if n+1 < len(x.lines) {
		end = x.lines[n+1] - 1
	}
	return x.text[x.lines[n]:end]
}

// Position returns the position of byte offset off, clamped to the text.
func (x *Index) Position(off int) protocol.Position {
	off = max(0, min(off, len(x.text)))
	n := sort.Search(len(x.lines), func(i int) bool { return x.lines[i] > off }) - 1
	col := ByteOffsetToUTF16(x.line(n), off-x.lines[n])
	return protocol.Position{Line: protocol.UInteger(n), Character: protocol.UInteger(col)}
}

// Offset returns the byte offset of p. A character past the end of its line
// clamps to the line end. The line after the last one is accepted at
// character 0, meaning end of text.
func (x *Index) Offset(p protocol.Position) (int, error) {
	n := int(p.Line)
	switch {
	case n < len(x.lines):
		return x.lines[n] + UTF16ToByteOffset(x.line(n), int(p.Character)), nil
	case n == len(x.lines) && p.Character == 0:
		return len(x.text), nil
	}
	return 0, fmt.Errorf("line %d out of bounds (total lines: %d)", n, len(x.lines))
}

// Range returns the LSP range covering span.
func (x *Index) Range(s patterns.Span) protocol.Range {
	return protocol.Range{Start: x.Position(s.Start), End: x.Position(s.End)}
}

// Span returns the byte span covered by r.
func (x *Index) Span(r protocol.Range) (patterns.Span, error) {
	start, err := x.Offset(r.Start)
	if err != nil {
		return patterns.Span{}, fmt.Errorf("start: %w", err)
	}
	end, err := x.Offset(r.End)
	if err != nil {
		return patterns.Span{}, fmt.Errorf("end: %w", err)
	}
	if end < start {
		return patterns.Span{}, fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	return patterns.Span{Start: start, End: end}, nil
}
