package documents

import (
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"bennypowers.dev/svls/internal/patterns"
)

var dmp = diffmatchpatch.New()

func init() {
	dmp.DiffTimeout = 100 * time.Millisecond
}

// Edit replaces the bytes in Span of the old text with Text.
type Edit struct {
	Span patterns.Span
	Text string
}

// Apply returns text with the edits applied. Edits must be sorted and must
// not overlap, all offsets referring to the original text.
func Apply(text string, edits []Edit) string {
	var b []byte
	last := 0
	for _, e := range edits {
		b = append(b, text[last:e.Span.Start]...)
		b = append(b, e.Text...)
		last = e.Span.End
	}
	return string(append(b, text[last:]...))
}

// Diff returns the edits turning before into after, with offsets into
// before. A deletion directly followed by an insertion becomes one edit.
// Text that is not valid UTF-8 is replaced whole, since the differ works on
// runes and would lose the invalid bytes.
func Diff(before, after string) []Edit {
	if before == after {
		return nil
	}
	if !utf8.ValidString(before) || !utf8.ValidString(after) {
		return []Edit{{Span: patterns.Span{Start: 0, End: len(before)}, Text: after}}
	}
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var edits []Edit
	pos := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(d.Text)
		case diffmatchpatch.DiffDelete:
			edits = append(edits, Edit{Span: patterns.Span{Start: pos, End: pos + len(d.Text)}})
			pos += len(d.Text)
		case diffmatchpatch.DiffInsert:
			if n := len(edits); n > 0 && edits[n-1].Span.End == pos {
				edits[n-1].Text += d.Text
				continue
			}
			edits = append(edits, Edit{Span: patterns.Span{Start: pos, End: pos}, Text: d.Text})
		}
	}
	return edits
}
