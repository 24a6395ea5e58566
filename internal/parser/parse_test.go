package parser_test

import (
	"os"
	"testing"

	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/scanner"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCSSSupportedLanguage(t *testing.T) {
	supported := []string{
		"css",
		"html",
		"javascript",
		"javascriptreact",
		"typescript",
		"typescriptreact",
	}

	for _, lang := range supported {
		t.Run(lang, func(t *testing.T) {
			assert.True(t, parser.IsCSSSupportedLanguage(lang))
		})
	}

	unsupported := []string{
		"json",
		"yaml",
		"go",
		"python",
		"",
	}

	for _, lang := range unsupported {
		t.Run("unsupported_"+lang, func(t *testing.T) {
			assert.False(t, parser.IsCSSSupportedLanguage(lang))
		})
	}
}

func TestParseCSSFromDocument(t *testing.T) {
	tests := []struct {
		name       string
		languageID string
		content    string
		want       string
	}{
		{"css", "css", `.button { color: var(--color-primary); }`, "--color-primary"},
		{"html", "html", `<style>.button { color: var(--text-color); }</style>`, "--text-color"},
		{"typescript", "typescript", "const s = css`.a { color: var(--ts-color); }`;", "--ts-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.ParseCSSFromDocument(tt.content, tt.languageID)
			require.NoError(t, err)
			require.Len(t, result.VarCalls, 1)
			assert.Equal(t, tt.want, result.VarCalls[0].Name)
		})
	}

	result, err := parser.ParseCSSFromDocument("{}", "json")
	require.NoError(t, err)
	assert.Empty(t, result.Declarations)
}

func TestParseCSSFromDocumentTemplates(t *testing.T) {
	tests := []struct {
		name      string
		fixture   string
		wantProps []string
		wantVars  []string
	}{
		{
			name:      "css template",
			fixture:   "js/testdata/css-template.js",
			wantProps: []string{"--card-gap", "display", "color", "box-shadow"},
			wantVars:  []string{"--color-primary"},
		},
		{
			name:      "html template",
			fixture:   "js/testdata/html-template.js",
			wantProps: []string{"border", "font-weight"},
			wantVars:  []string{"--line"},
		},
		{
			name:      "template with expressions",
			fixture:   "js/testdata/template-with-expressions.js",
			wantProps: []string{"color", "transform"},
		},
		{
			name:    "no tagged templates",
			fixture: "js/testdata/no-templates.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := os.ReadFile(tt.fixture)
			require.NoError(t, err)
			source := string(data)

			result, err := parser.ParseCSSFromDocument(source, "javascript")
			require.NoError(t, err)
			require.NotNil(t, result)

			var props []string
			for _, decl := range result.Declarations {
				props = append(props, decl.Property)
				assert.Equal(t, decl.Value, decl.ValueSpan.Text(source),
					"value span of %s points into the JS source", decl.Property)
			}
			assert.Equal(t, tt.wantProps, props)

			var vars []string
			for _, call := range result.VarCalls {
				vars = append(vars, call.Name)
				assert.Equal(t, "var(", call.Span.Text(source)[:4])
			}
			assert.Equal(t, tt.wantVars, vars)
		})
	}
}

func TestCSSRegions(t *testing.T) {
	content := `<style>a { color: red; }</style><p style="margin: 0">x</p>`
	regions := parser.CSSRegions(content, "html")
	require.Len(t, regions, 2)
	for _, r := range regions {
		assert.Equal(t, r.Content, content[r.Start:r.Start+len(r.Content)])
	}
	assert.Equal(t, "margin: 0", regions[1].Content)

	assert.Nil(t, parser.CSSRegions("x", "markdown"))
	assert.Equal(t, []parser.Region{{Content: "a{}"}}, parser.CSSRegions("a{}", "css"))
}

func TestCSSRegionsHTMLTemplate(t *testing.T) {
	content := "const v = html`<b style=\"color: blue\">x</b>`;"
	regions := parser.CSSRegions(content, "javascript")
	require.Len(t, regions, 1)
	assert.Equal(t, "color: blue", regions[0].Content)
	assert.Equal(t, "color: blue", content[regions[0].Start:regions[0].Start+len("color: blue")])
}

type tokenText struct {
	Text     string
	Category scanner.Category
}

func texts(content string, tokens []scanner.Token) []tokenText {
	out := make([]tokenText, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenText{tok.Text(content), tok.Category})
	}
	return out
}

func TestScanDocument(t *testing.T) {
	tests := []struct {
		name       string
		languageID string
		content    string
		want       []tokenText
	}{
		{
			name:       "css",
			languageID: "css",
			content:    `a { color: #fff; }`,
			want:       []tokenText{{"#fff", scanner.Color}},
		},
		{
			name:       "style attribute resolves style tag property",
			languageID: "html",
			content:    `<style>:root { --brand: #ff0000; }</style><p style="color: var(--brand)">x</p>`,
			want: []tokenText{
				{"#ff0000", scanner.Color},
				{"var(--brand)", scanner.Color},
			},
		},
		{
			name:       "css template",
			languageID: "typescript",
			content:    "const s = css`.a { transform: rotate(45deg); font-weight: bold; }`;",
			want: []tokenText{
				{"rotate(45deg)", scanner.Transform},
				{"bold", scanner.Enum},
			},
		},
		{
			name:       "unsupported language",
			languageID: "markdown",
			content:    "color: red;",
			want:       []tokenText{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(tt.content, parser.ScanDocument(tt.content, tt.languageID))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScanDocument() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanDocumentMatchesScanForCSS(t *testing.T) {
	content := ":root { --c: #00f; }\n.a { box-shadow: 0 1px 2px var(--c); opacity: 0.5; }"
	assert.Equal(t, scanner.Scan(content), parser.ScanDocument(content, "css"))
}
