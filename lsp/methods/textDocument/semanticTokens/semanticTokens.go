package semantictokens

import (
	"strings"

	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/position"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/lsp/helpers/analysis"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// TokenTypes is the semantic token legend. Each type is named after a value
// category, and its index is the category's value.
var TokenTypes = []string{
	scanner.Gradient.String(),
	scanner.Shadow.String(),
	scanner.Transform.String(),
	scanner.Color.String(),
	scanner.Enum.String(),
	scanner.Number.String(),
}

// Legend returns the legend advertised in the server capabilities.
func Legend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes:     TokenTypes,
		TokenModifiers: []string{},
	}
}

// SemanticTokenIntermediate represents an intermediate token before delta encoding
type SemanticTokenIntermediate struct {
	Line      int
	StartChar int
	Length    int
	TokenType int
}

// SemanticTokensFull handles the textDocument/semanticTokens/full request
func SemanticTokensFull(req *types.RequestContext, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := params.TextDocument.URI
	log.Debug("Semantic tokens requested for: %s", uri)

	a := analysis.Analyze(req.Server, uri)
	if a == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: Encode(Intermediate(a))}, nil
}

// Intermediate lists the document's tokens in position order. Positions and
// lengths are in UTF-16 code units. A token spanning lines becomes one entry
// per line, as the protocol forbids multi-line tokens by default.
func Intermediate(a *analysis.Analysis) []SemanticTokenIntermediate {
	out := make([]SemanticTokenIntermediate, 0, len(a.Tokens))
	for _, tok := range a.Tokens {
		start := a.Index().Position(tok.Start)
		line, char := int(start.Line), int(start.Character)
		for i, segment := range strings.Split(a.Text(tok), "\n") {
			if i > 0 {
				line++
				char = 0
			}
			length := position.StringLengthUTF16(strings.TrimSuffix(segment, "\r"))
			if length == 0 {
				continue
			}
			out = append(out, SemanticTokenIntermediate{
				Line:      line,
				StartChar: char,
				Length:    length,
				TokenType: int(tok.Category),
			})
		}
	}
	return out
}

// Encode converts intermediate tokens to the protocol's relative encoding.
func Encode(tokens []SemanticTokenIntermediate) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	prevLine := 0
	prevStartChar := 0

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStartChar
		}

		data = append(data,
			uint32(deltaLine),
			uint32(deltaStart),
			uint32(token.Length),
			uint32(token.TokenType),
			0,
		)

		prevLine = token.Line
		prevStartChar = token.StartChar
	}

	return data
}
