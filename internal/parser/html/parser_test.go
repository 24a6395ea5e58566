package html_test

import (
	"os"
	"testing"

	"bennypowers.dev/svls/internal/parser/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSSRegions(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		wantTags int
		wantAttr int
	}{
		{name: "style tag", fixture: "testdata/style-tag.html", wantTags: 1},
		{name: "style attributes", fixture: "testdata/style-attribute.html", wantAttr: 2},
		{name: "multiple styles", fixture: "testdata/multiple-styles.html", wantTags: 2, wantAttr: 2},
		{name: "no CSS", fixture: "testdata/no-css.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := os.ReadFile(tt.fixture)
			require.NoError(t, err)

			parser := html.AcquireParser()
			defer html.ReleaseParser(parser)

			regions := parser.ParseCSSRegions(string(source))

			tags := 0
			attrs := 0
			for _, r := range regions {
				switch r.Type {
				case html.StyleTag:
					tags++
				case html.StyleAttribute:
					attrs++
				}
				assert.Equal(t, r.Content, r.Span().Text(string(source)), "region content matches its span")
			}

			assert.Equal(t, tt.wantTags, tags, "style tag count")
			assert.Equal(t, tt.wantAttr, attrs, "style attribute count")
		})
	}
}

func TestParseCSSRegionsSourceOrder(t *testing.T) {
	source, err := os.ReadFile("testdata/multiple-styles.html")
	require.NoError(t, err)

	parser := html.AcquireParser()
	defer html.ReleaseParser(parser)

	regions := parser.ParseCSSRegions(string(source))
	require.Len(t, regions, 4)
	for i := 1; i < len(regions); i++ {
		assert.Less(t, regions[i-1].Start, regions[i].Start)
	}
	assert.Equal(t, html.StyleTag, regions[0].Type)
	assert.Equal(t, html.StyleAttribute, regions[3].Type)
}

func TestParseCSS(t *testing.T) {
	tests := []struct {
		name      string
		fixture   string
		wantProps []string
	}{
		{
			name:      "style tag",
			fixture:   "testdata/style-tag.html",
			wantProps: []string{"--brand", "--gap", "color"},
		},
		{
			name:      "style attributes",
			fixture:   "testdata/style-attribute.html",
			wantProps: []string{"color", "padding", "transform"},
		},
		{
			name:      "no CSS",
			fixture:   "testdata/no-css.html",
			wantProps: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := os.ReadFile(tt.fixture)
			require.NoError(t, err)

			parser := html.AcquireParser()
			defer html.ReleaseParser(parser)

			result, err := parser.ParseCSS(string(source))
			require.NoError(t, err)

			var props []string
			for _, decl := range result.Declarations {
				props = append(props, decl.Property)
				assert.Equal(t, decl.Value, decl.ValueSpan.Text(string(source)),
					"value span of %s points into the HTML source", decl.Property)
			}
			assert.Equal(t, tt.wantProps, props)
		})
	}
}

func TestParseCSSVarCallOffsets(t *testing.T) {
	source := `<p style="color: var(--brand, red)">x</p>`

	parser := html.AcquireParser()
	defer html.ReleaseParser(parser)

	result, err := parser.ParseCSS(source)
	require.NoError(t, err)
	require.Len(t, result.VarCalls, 1)
	assert.Equal(t, "var(--brand, red)", result.VarCalls[0].Span.Text(source))
}
