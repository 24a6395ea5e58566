package parser

import (
	"slices"
	"strings"

	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/parser/css"
	"bennypowers.dev/svls/internal/parser/html"
	"bennypowers.dev/svls/internal/parser/js"
	"bennypowers.dev/svls/internal/scanner"
)

// cssLanguages maps language IDs to the parser category they use.
// "css" → direct CSS, "html" → HTML parser, "js" → JS parser.
var cssLanguages = map[string]string{
	"css":             "css",
	"scss":            "css",
	"less":            "css",
	"html":            "html",
	"javascript":      "js",
	"javascriptreact": "js",
	"typescript":      "js",
	"typescriptreact": "js",
}

// IsCSSSupportedLanguage returns true if the language supports CSS extraction
func IsCSSSupportedLanguage(languageID string) bool {
	_, ok := cssLanguages[languageID]
	return ok
}

// ParseCSSFromDocument extracts CSS parse results from any supported document type.
// Dispatches to the appropriate parser based on language ID. Spans refer to
// content.
func ParseCSSFromDocument(content, languageID string) (*css.ParseResult, error) {
	switch cssLanguages[languageID] {
	case "css":
		p := css.AcquireParser()
		defer css.ReleaseParser(p)
		return p.Parse(content)

	case "html":
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return p.ParseCSS(content)

	case "js":
		return parseTemplates(content), nil

	default:
		return &css.ParseResult{}, nil
	}
}

// parseTemplates parses the css and html tagged templates of JS/TS source.
// Spans refer to the source. A segment that fails to parse is skipped.
func parseTemplates(content string) *css.ParseResult {
	jp := js.AcquireParser()
	defer js.ReleaseParser(jp)
	cp := css.AcquireParser()
	defer css.ReleaseParser(cp)
	hp := html.AcquireParser()
	defer html.ReleaseParser(hp)

	result := &css.ParseResult{}
	for _, tmpl := range jp.Templates(content) {
		for _, seg := range tmpl.Segments {
			var parsed *css.ParseResult
			var err error
			if tmpl.Tag == "html" {
				parsed, err = hp.ParseCSS(seg.Content)
			} else {
				parsed, err = cp.Parse(seg.Content)
			}
			if err != nil {
				log.Debug("Failed to parse %s template segment at byte %d: %v", tmpl.Tag, seg.Start, err)
				continue
			}
			parsed.Shift(seg.Start)
			result.Append(parsed)
		}
	}
	return result
}

// Region is a run of CSS text inside a document.
type Region struct {
	Content string
	// Start is the byte offset of Content in the document.
	Start int
}

// CSSRegions returns the CSS text of a document in source order. For CSS
// files this is the entire content. For HTML and JS files these are the
// style tags, style attributes and css tagged template segments.
func CSSRegions(content, languageID string) []Region {
	switch cssLanguages[languageID] {
	case "css":
		return []Region{{Content: content}}

	case "html":
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return htmlRegions(p, content, 0)

	case "js":
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		var regions []Region
		for _, tmpl := range p.Templates(content) {
			switch tmpl.Tag {
			case "css":
				for _, seg := range tmpl.Segments {
					regions = append(regions, Region{Content: seg.Content, Start: seg.Start})
				}
			case "html":
				hp := html.AcquireParser()
				for _, seg := range tmpl.Segments {
					regions = append(regions, htmlRegions(hp, seg.Content, seg.Start)...)
				}
				html.ReleaseParser(hp)
			}
		}
		slices.SortFunc(regions, func(a, b Region) int { return a.Start - b.Start })
		return regions

	default:
		return nil
	}
}

func htmlRegions(p *html.Parser, content string, offset int) []Region {
	found := p.ParseCSSRegions(content)
	regions := make([]Region, 0, len(found))
	for _, r := range found {
		regions = append(regions, Region{Content: r.Content, Start: offset + r.Start})
	}
	return regions
}

// Context builds the scan context from every CSS region of a document, so a
// style attribute can resolve a custom property declared in a style tag.
func Context(content, languageID string) scanner.Context {
	if cssLanguages[languageID] == "css" {
		return scanner.NewContext(content)
	}
	regions := CSSRegions(content, languageID)
	parts := make([]string, 0, len(regions))
	for _, r := range regions {
		parts = append(parts, r.Content)
	}
	return scanner.NewContext(strings.Join(parts, "\n;\n"))
}

// ScanDocument scans each CSS region of a document and returns the tokens in
// document offsets, sorted by start. Unsupported languages yield nil.
func ScanDocument(content, languageID string) []scanner.Token {
	regions := CSSRegions(content, languageID)
	if len(regions) == 0 {
		return nil
	}
	ctx := Context(content, languageID)
	var tokens []scanner.Token
	for _, r := range regions {
		for _, tok := range scanner.ScanWith(r.Content, ctx) {
			tok.Start += r.Start
			tok.End += r.Start
			tokens = append(tokens, tok)
		}
	}
	slices.SortFunc(tokens, func(a, b scanner.Token) int { return a.Start - b.Start })
	return tokens
}

// ClosePools releases the pooled tree-sitter parsers of every language.
func ClosePools() {
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
}
