// Package js finds the css and html tagged template literals of JS and TS
// sources.
package js

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// templateQueries match css`...` and css<Type>`...`. The grammar reads the
// generic form as a pair of comparisons, hence the nested binary_expression.
const templateQueries = `
	(call_expression
		function: (identifier) @tag
		arguments: (template_string) @template)
	(binary_expression
		left: (binary_expression
			left: (identifier) @tag)
		right: (template_string) @template)
`

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// Segment is the literal text of a template between ${...} substitutions.
type Segment struct {
	Content string
	// Start is the byte offset of Content in the source.
	Start int
}

// Template is a tagged template literal; Tag is "css" or "html".
type Template struct {
	Tag      string
	Segments []Segment
}

// Parser wraps a tree-sitter parser and its compiled query.
type Parser struct {
	parser *sitter.Parser
	query  *sitter.Query
}

var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}
		query, qerr := sitter.NewQuery(jsLang, templateQueries)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}
		return &Parser{parser: parser, query: query}
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

// Close releases the tree-sitter resources of p.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.query != nil {
		p.query.Close()
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

// Templates returns the css and html tagged templates of source in match
// order. Templates without literal text are left out.
func (p *Parser) Templates(source string) []Template {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var templates []Template
	names := p.query.CaptureNames()
	matches := cursor.Matches(p.query, tree.RootNode(), src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tag string
		var tmpl *sitter.Node
		for _, c := range match.Captures {
			switch names[c.Index] {
			case "tag":
				tag = string(src[c.Node.StartByte():c.Node.EndByte()])
			case "template":
				tmpl = &c.Node
			}
		}
		if tmpl == nil || (tag != "css" && tag != "html") {
			continue
		}
		if segments := fragments(tmpl, src); len(segments) > 0 {
			templates = append(templates, Template{Tag: tag, Segments: segments})
		}
	}
	return templates
}

// fragments returns the string_fragment children of a template_string.
func fragments(tmpl *sitter.Node, src []byte) []Segment {
	var segments []Segment
	for i := uint(0); i < tmpl.ChildCount(); i++ {
		child := tmpl.Child(i)
		if child.Kind() != "string_fragment" {
			continue
		}
		segments = append(segments, Segment{
			Content: string(src[child.StartByte():child.EndByte()]),
			Start:   int(child.StartByte()),
		})
	}
	return segments
}
