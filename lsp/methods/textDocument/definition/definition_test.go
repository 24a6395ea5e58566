package definition

import (
	"testing"

	"bennypowers.dev/svls/lsp/testutil"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func definitionAt(t *testing.T, server *testutil.MockServerContext, uri string, line, char uint32) []protocol.Location {
	t.Helper()
	req := types.NewRequestContext(server, nil)
	locations, err := Definition(req, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: char},
		},
	})
	require.NoError(t, err)
	return locations
}

func rng(startLine, startChar, endLine, endChar uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: startLine, Character: startChar},
		End:   protocol.Position{Line: endLine, Character: endChar},
	}
}

func TestDefinitionSameDocument(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.Open(t, "file:///a.css", "css", ":root {\n  --c: #f00;\n}\n.dark {\n  --c: #000;\n}\n.a { color: var(--c); }")

	locations := definitionAt(t, server, "file:///a.css", 6, 17)
	require.Len(t, locations, 1)
	assert.Equal(t, "file:///a.css", locations[0].URI)
	assert.Equal(t, rng(4, 2, 4, 12), locations[0].Range, "the last declaration wins")
}

func TestDefinitionNestedVar(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.Open(t, "file:///a.css", "css", ":root { --a: 1px; --b: 2px; }\n.x { width: var(--a, var(--b)); }")

	locations := definitionAt(t, server, "file:///a.css", 1, 24)
	require.Len(t, locations, 1)
	assert.Equal(t, rng(0, 18, 0, 27), locations[0].Range)

	locations = definitionAt(t, server, "file:///a.css", 1, 14)
	require.Len(t, locations, 1)
	assert.Equal(t, rng(0, 8, 0, 17), locations[0].Range)
}

func TestDefinitionOtherDocument(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.Open(t, "file:///tokens.css", "css", ":root { --brand: #00f; }")
	server.Open(t, "file:///page.html", "html", `<p style="color: var(--brand)">x</p>`)

	locations := definitionAt(t, server, "file:///page.html", 0, 22)
	require.Len(t, locations, 1)
	assert.Equal(t, "file:///tokens.css", locations[0].URI)
	assert.Equal(t, rng(0, 8, 0, 22), locations[0].Range)
}

func TestDefinitionNotFound(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.Open(t, "file:///a.css", "css", ".a { color: var(--missing); width: 1px; }")

	assert.Nil(t, definitionAt(t, server, "file:///a.css", 0, 18))
	assert.Nil(t, definitionAt(t, server, "file:///a.css", 0, 36))
	assert.Nil(t, definitionAt(t, server, "file:///nope.css", 0, 0))
}
