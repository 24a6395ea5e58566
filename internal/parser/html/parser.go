package html

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/parser/css"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser handles parsing HTML to extract CSS regions
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value)
				(#eq? @attr_name "style"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
			attrQuery:  attrQuery,
		}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// ParseCSSRegions extracts CSS regions from HTML source, in source order.
func (p *Parser) ParseCSSRegions(source string) []CSSRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var regions []CSSRegion

	for _, q := range []struct {
		query   *sitter.Query
		capture string
		typ     RegionType
	}{
		{p.styleQuery, "css", StyleTag},
		{p.attrQuery, "attr_value", StyleAttribute},
	} {
		cursor := sitter.NewQueryCursor()
		matches := cursor.Matches(q.query, root, sourceBytes)
		for match := matches.Next(); match != nil; match = matches.Next() {
			for _, capture := range match.Captures {
				if q.query.CaptureNames()[capture.Index] != q.capture {
					continue
				}
				node := capture.Node
				regions = append(regions, CSSRegion{
					Content: string(sourceBytes[node.StartByte():node.EndByte()]),
					Start:   int(node.StartByte()),
					Type:    q.typ,
				})
			}
		}
		cursor.Close()
	}

	slices.SortFunc(regions, func(a, b CSSRegion) int { return a.Start - b.Start })
	return regions
}

// ParseCSS extracts CSS from HTML and parses it. Spans refer to the HTML
// source.
func (p *Parser) ParseCSS(source string) (*css.ParseResult, error) {
	result := &css.ParseResult{}

	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	for _, region := range p.ParseCSSRegions(source) {
		var parsed *css.ParseResult
		var err error
		switch region.Type {
		case StyleTag:
			parsed, err = cssParser.Parse(region.Content)
		case StyleAttribute:
			parsed, err = cssParser.ParseDeclarations(region.Content)
		default:
			continue
		}
		if err != nil {
			log.Debug("Failed to parse CSS region at byte %d: %v", region.Start, err)
			continue
		}
		parsed.Shift(region.Start)
		result.Append(parsed)
	}

	return result, nil
}
