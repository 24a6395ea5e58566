package definition

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/svls/internal/documents"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/parser/css"
	"bennypowers.dev/svls/internal/position"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Definition handles the textDocument/definition request. A var(--x) call
// resolves to the last declaration of --x in the same document, or else in
// the other open documents.
func Definition(req *types.RequestContext, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	pos := params.Position

	log.Debug("Definition requested: %s at line %d, char %d", uri, pos.Line, pos.Character)

	doc := req.Server.Document(uri)
	if doc == nil || !req.Server.IsIncluded(uri, doc.LanguageID()) {
		return nil, nil
	}

	content := doc.Content()
	result, err := parser.ParseCSSFromDocument(content, doc.LanguageID())
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS: %w", err)
	}
	offset, err := position.NewIndex(content).Offset(pos)
	if err != nil {
		return nil, nil
	}
	call, ok := result.VarCallAt(offset)
	if !ok {
		return nil, nil
	}

	if loc, ok := declarationIn(uri, content, result, call.Name); ok {
		return []protocol.Location{loc}, nil
	}

	others := req.Server.AllDocuments()
	slices.SortFunc(others, func(a, b *documents.Document) int { return strings.Compare(a.URI(), b.URI()) })
	for _, other := range others {
		if other.URI() == uri || !req.Server.IsIncluded(other.URI(), other.LanguageID()) {
			continue
		}
		content := other.Content()
		result, err := parser.ParseCSSFromDocument(content, other.LanguageID())
		if err != nil {
			req.AddWarning(fmt.Errorf("failed to parse %s: %w", other.URI(), err))
			continue
		}
		if loc, ok := declarationIn(other.URI(), content, result, call.Name); ok {
			return []protocol.Location{loc}, nil
		}
	}

	log.Debug("No declaration of %s", call.Name)
	return nil, nil
}

func declarationIn(uri, content string, result *css.ParseResult, name string) (protocol.Location, bool) {
	decl, ok := result.CustomProperty(name)
	if !ok {
		return protocol.Location{}, false
	}
	return protocol.Location{
		URI:   uri,
		Range: position.NewIndex(content).Range(decl.Span),
	}, true
}
