package analysis_test

import (
	"testing"

	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/values"
	"bennypowers.dev/svls/lsp/helpers/analysis"
	"bennypowers.dev/svls/lsp/testutil"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestAnalyze(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.Open(t, "file:///a.css", "css", ":root { --c: #f00; }\n.a { color: var(--c); }")

	a := analysis.Analyze(server, "file:///a.css")
	require.NotNil(t, a)
	assert.Equal(t, 1, a.Version)
	require.Len(t, a.Tokens, 2)

	tok, ok := a.TokenAt(pos(1, 14))
	require.True(t, ok)
	assert.Equal(t, "var(--c)", a.Text(tok))
	assert.Equal(t, protocol.Range{Start: pos(1, 12), End: pos(1, 20)}, a.Range(tok))

	v, ok := a.Value(tok)
	require.True(t, ok)
	c, ok := v.(values.Color)
	require.True(t, ok)
	assert.Equal(t, "#f00", c.Resolved)
}

func TestAnalyzeSkipsDocuments(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	assert.Nil(t, analysis.Analyze(server, "file:///missing.css"))

	server.Open(t, "file:///notes.md", "markdown", "color: red;")
	assert.Nil(t, analysis.Analyze(server, "file:///notes.md"))

	cfg := server.GetConfig()
	cfg.Include = []string{"src/**"}
	server.SetConfig(cfg)
	server.SetRootPath("/ws")
	server.Open(t, "file:///ws/lib/a.css", "css", "a { color: red; }")
	server.Open(t, "file:///ws/src/a.css", "css", "a { color: red; }")
	assert.Nil(t, analysis.Analyze(server, "file:///ws/lib/a.css"))
	assert.NotNil(t, analysis.Analyze(server, "file:///ws/src/a.css"))
}

func TestTokenAtEdges(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.Open(t, "file:///a.css", "css", "a { color: #f0f; }")
	a := analysis.Analyze(server, "file:///a.css")
	require.NotNil(t, a)

	for _, char := range []uint32{11, 13, 15} {
		tok, ok := a.TokenAt(pos(0, char))
		require.True(t, ok, "character %d", char)
		assert.Equal(t, scanner.Color, tok.Category)
	}
	_, ok := a.TokenAt(pos(0, 2))
	assert.False(t, ok)
	_, ok = a.TokenAt(pos(5, 0))
	assert.False(t, ok)
}

func TestReplaceCommand(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.Open(t, "file:///a.css", "css", "a { color: #f0f; }")
	a := analysis.Analyze(server, "file:///a.css")
	require.NotNil(t, a)

	cmd := a.ReplaceCommand("Use blue", a.Tokens[0], "blue")
	assert.Equal(t, "Use blue", cmd.Title)
	assert.Equal(t, types.CommandReplaceToken, cmd.Command)
	require.Len(t, cmd.Arguments, 1)
	assert.Equal(t, types.ReplaceTokenArgs{
		URI:     "file:///a.css",
		Version: 1,
		Range:   protocol.Range{Start: pos(0, 11), End: pos(0, 15)},
		Text:    "blue",
	}, cmd.Arguments[0])
}
