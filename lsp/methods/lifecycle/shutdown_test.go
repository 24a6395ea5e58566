package lifecycle

import (
	"testing"
	"time"

	"bennypowers.dev/svls/lsp/testutil"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestShutdown(t *testing.T) {
	t.Run("records pending edits", func(t *testing.T) {
		server := testutil.NewMockServerContext(t)
		server.DocumentManager().SetHistoryDelay(time.Hour)
		server.Open(t, "file:///a.css", "css", "a { width: 1px; }")
		require.NoError(t, server.DocumentManager().DidChange("file:///a.css", 2,
			[]protocol.TextDocumentContentChangeEvent{{Text: "a { width: 2px; }"}}))

		doc := server.Document("file:///a.css")
		assert.False(t, doc.CanUndo())

		require.NoError(t, Shutdown(types.NewRequestContext(server, nil)))
		assert.True(t, doc.CanUndo())
	})

	t.Run("can be called multiple times safely", func(t *testing.T) {
		server := testutil.NewMockServerContext(t)
		req := types.NewRequestContext(server, nil)

		assert.NoError(t, Shutdown(req))
		assert.NoError(t, Shutdown(req))
	})
}
