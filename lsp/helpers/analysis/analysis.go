// Package analysis gathers what the request handlers need to know about one
// document: its text, tokens, scan context and position index, all taken
// from a single snapshot.
package analysis

import (
	"bennypowers.dev/svls/internal/documents"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/position"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/values"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Analysis is a snapshot of an annotated document.
type Analysis struct {
	URI        string
	LanguageID string
	Content    string
	Version    int
	Tokens     []scanner.Token

	index   *position.Index
	context *scanner.Context
}

// Analyze snapshots the document at uri. It returns nil when the document is
// not open or is not annotated.
func Analyze(server types.ServerContext, uri string) *Analysis {
	doc := server.Document(uri)
	if doc == nil {
		return nil
	}
	return Of(server, doc)
}

// Of snapshots doc, returning nil when it is not annotated.
func Of(server types.ServerContext, doc *documents.Document) *Analysis {
	if !server.IsIncluded(doc.URI(), doc.LanguageID()) {
		return nil
	}
	content, version := doc.Snapshot()
	return &Analysis{
		URI:        doc.URI(),
		LanguageID: doc.LanguageID(),
		Content:    content,
		Version:    version,
		Tokens:     server.Scan(content, doc.LanguageID()),
		index:      position.NewIndex(content),
	}
}

// Index maps between byte offsets and LSP positions in the snapshot.
func (a *Analysis) Index() *position.Index {
	return a.index
}

// Context is the scan context of the snapshot, built on first use.
func (a *Analysis) Context() scanner.Context {
	if a.context == nil {
		ctx := parser.Context(a.Content, a.LanguageID)
		a.context = &ctx
	}
	return *a.context
}

// Range returns the LSP range of tok.
func (a *Analysis) Range(tok scanner.Token) protocol.Range {
	return a.index.Range(tok.Span())
}

// Text returns the source text of tok.
func (a *Analysis) Text(tok scanner.Token) string {
	return tok.Text(a.Content)
}

// TokenAt returns the token under p. A cursor just past the end of a token
// still selects it, as editors place the cursor after what was typed.
func (a *Analysis) TokenAt(p protocol.Position) (scanner.Token, bool) {
	off, err := a.index.Offset(p)
	if err != nil {
		return scanner.Token{}, false
	}
	if tok, ok := scanner.At(a.Tokens, off); ok {
		return tok, true
	}
	if off > 0 {
		return scanner.At(a.Tokens, off-1)
	}
	return scanner.Token{}, false
}

// Value parses tok into its model.
func (a *Analysis) Value(tok scanner.Token) (values.Value, bool) {
	return values.Parse(tok, a.Content, a.Context())
}

// ReplaceCommand builds the command that replaces tok with text through the
// server's edit history.
func (a *Analysis) ReplaceCommand(title string, tok scanner.Token, text string) *protocol.Command {
	return &protocol.Command{
		Title:   title,
		Command: types.CommandReplaceToken,
		Arguments: []any{types.ReplaceTokenArgs{
			URI:     a.URI,
			Version: a.Version,
			Range:   a.Range(tok),
			Text:    text,
		}},
	}
}
