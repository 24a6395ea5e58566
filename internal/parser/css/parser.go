package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/svls/internal/patterns"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
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
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse parses CSS code and extracts declarations and var() calls
func (p *Parser) Parse(source string) (*ParseResult, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	result := &ParseResult{}
	walk(tree.RootNode(), src, result)
	return result, nil
}

// ParseDeclarations parses a declaration list such as a style attribute
// value. Spans refer to source.
func (p *Parser) ParseDeclarations(source string) (*ParseResult, error) {
	const prefix = "x{"
	result, err := p.Parse(prefix + source + "}")
	if err != nil {
		return nil, err
	}
	result.Shift(-len(prefix))
	return result, nil
}

func walk(node *sitter.Node, src []byte, result *ParseResult) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case "declaration":
		if d := declaration(node, src); d != nil {
			result.Declarations = append(result.Declarations, d)
		}
	case "call_expression":
		if v := varCall(node, src); v != nil {
			result.VarCalls = append(result.VarCalls, v)
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), src, result)
	}
}

func text(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}

func span(node *sitter.Node) patterns.Span {
	return patterns.Span{Start: int(node.StartByte()), End: int(node.EndByte())}
}

// declaration reads property_name ':' value... ';'?
func declaration(node *sitter.Node, src []byte) *Declaration {
	var prop *sitter.Node
	var first, last *sitter.Node
	colon := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch kind := child.Kind(); {
		case kind == "property_name":
			prop = child
		case kind == ":":
			colon = true
		case kind == ";":
		case colon:
			if first == nil {
				first = child
			}
			last = child
		}
	}
	if prop == nil {
		return nil
	}
	d := &Declaration{
		Property: text(prop, src),
		Span:     span(node),
	}
	if first != nil {
		d.ValueSpan = patterns.Span{Start: int(first.StartByte()), End: int(last.EndByte())}
		d.Value = strings.TrimSpace(d.ValueSpan.Text(string(src)))
	} else {
		end := int(node.EndByte())
		d.ValueSpan = patterns.Span{Start: end, End: end}
	}
	return d
}

// varCall reads var(--name[, fallback]).
func varCall(node *sitter.Node, src []byte) *VarCall {
	var name, args *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		switch child := node.Child(i); child.Kind() {
		case "function_name":
			name = child
		case "arguments":
			args = child
		}
	}
	if name == nil || args == nil || !strings.EqualFold(text(name, src), "var") {
		return nil
	}
	// The grammar splits fallbacks into loose value nodes, so take the
	// reference apart as text.
	ref, ok := patterns.ParseVar(text(node, src))
	if !ok {
		return nil
	}
	return &VarCall{
		Name:        ref.Name,
		Fallback:    ref.Fallback,
		HasFallback: ref.HasFallback,
		Span:        span(node),
	}
}
