package lifecycle

import (
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/lsp/types"
)

// Shutdown handles the LSP shutdown request. Pending free-text edits are
// recorded and the parser pools released; the process exits on exit.
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	req.Server.DocumentManager().Close()
	parser.ClosePools()

	return nil
}
