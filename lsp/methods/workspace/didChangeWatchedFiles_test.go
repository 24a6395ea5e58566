package workspace

import (
	"testing"

	"bennypowers.dev/svls/lsp/testutil"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDidChangeWatchedFiles(t *testing.T) {
	tests := []struct {
		name   string
		root   string
		uris   []string
		reload bool
	}{
		{"yaml config", "/workspace", []string{"file:///workspace/.config/style-values.yaml"}, true},
		{"json config", "/workspace", []string{"file:///workspace/.config/style-values.json"}, true},
		{"package.json", "/workspace", []string{"file:///workspace/src/a.css", "file:///workspace/package.json"}, true},
		{"nested package.json", "/workspace", []string{"file:///workspace/node_modules/x/package.json"}, false},
		{"unrelated file", "/workspace", []string{"file:///workspace/src/a.css"}, false},
		{"no root", "", []string{"file:///package.json"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewMockServerContext(t)
			server.SetRootPath(tt.root)
			req := types.NewRequestContext(server, nil)

			params := &protocol.DidChangeWatchedFilesParams{}
			for _, uri := range tt.uris {
				params.Changes = append(params.Changes, protocol.FileEvent{URI: uri, Type: protocol.FileChangeTypeChanged})
			}
			require.NoError(t, DidChangeWatchedFiles(req, params))
			assert.Equal(t, tt.reload, server.LoadConfigCalled)
		})
	}
}

func TestWatchPatterns(t *testing.T) {
	assert.Nil(t, WatchPatterns(""))
	assert.Equal(t, []string{
		"/workspace/.config/style-values.{yaml,yml,json}",
		"/workspace/package.json",
	}, WatchPatterns("/workspace"))
}
