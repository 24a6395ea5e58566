package lifecycle

import (
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Kept for server-initiated requests such as workspace/applyEdit
	req.Server.SetGLSPContext(req.GLSP)

	// Neither failure stops the server; defaults stay in effect.
	if err := req.Server.LoadConfig(); err != nil {
		req.AddWarning(err)
	}
	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		req.AddWarning(err)
	}

	return nil
}
