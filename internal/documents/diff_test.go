package documents_test

import (
	"testing"

	"bennypowers.dev/svls/internal/documents"
	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name          string
		before, after string
	}{
		{"identical", "a { color: red }", "a { color: red }"},
		{"replace word", "a { color: red }", "a { color: blue }"},
		{"insert", "margin: 1px;", "margin: 1px 2px;"},
		{"delete", "margin: 1px 2px;", "margin: 1px;"},
		{"several regions", "a: 1; b: 2; c: 3;", "a: 10; b: 2; c: 30;"},
		{"from empty", "", "x"},
		{"to empty", "x", ""},
		{"multibyte", "/* 颜色 */ color: red;", "/* 👍 */ color: blue;"},
		{"invalid utf-8 before", "\xa2", "\xa2x"},
		{"invalid utf-8 after", "color: red;", "color: \xffred;"},
		{"invalid utf-8 both", "a\xc3 b", "a\xc3 c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits := documents.Diff(tt.before, tt.after)
			assert.Equal(t, tt.after, documents.Apply(tt.before, edits))
			for i := 1; i < len(edits); i++ {
				assert.LessOrEqual(t, edits[i-1].Span.End, edits[i].Span.Start)
			}
		})
	}
}

func TestDiffIsSmall(t *testing.T) {
	before := "a { margin: 1px; padding: 2px; color: #ff0000; }"
	after := "a { margin: 1px; padding: 2px; color: #00ff00; }"
	edits := documents.Diff(before, after)
	assert.NotEmpty(t, edits)
	for _, e := range edits {
		assert.GreaterOrEqual(t, e.Span.Start, len("a { margin: 1px; padding: 2px; color: #"))
		assert.LessOrEqual(t, e.Span.End, len(before)-len("; }"))
	}
	assert.Empty(t, documents.Diff(before, before))
}
