package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/lsp"
	"bennypowers.dev/svls/lsp/methods/textDocument"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FixtureRoot returns the path to the test fixtures directory
func FixtureRoot() string {
	return filepath.Join("..", "fixtures")
}

// LoadFixture reads a fixture file, such as "css/button.css"
func LoadFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureRoot(), filepath.FromSlash(name))
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load fixture: %s", name)
	return string(data)
}

// NewTestServer creates a server with the default configuration. It is
// closed when the test ends.
func NewTestServer(t *testing.T) *lsp.Server {
	t.Helper()
	server, err := lsp.NewServer(lsp.Options{Config: config.Default()})
	require.NoError(t, err, "Failed to create test server")
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// Request returns a request context without a client connection
func Request(server *lsp.Server) *types.RequestContext {
	return types.NewRequestContext(server, nil)
}

// OpenFixture opens a fixture file in the server as uri
func OpenFixture(t *testing.T, server *lsp.Server, uri, languageID, name string) {
	t.Helper()
	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: languageID,
			Version:    1,
			Text:       LoadFixture(t, name),
		},
	}
	require.NoError(t, textDocument.DidOpen(Request(server), params), "Failed to open fixture: %s", name)
}
