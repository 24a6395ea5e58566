package lifecycle

import (
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification. "verbose" lowers the log
// level to debug; "off" and "messages" leave it as configured.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Info("Trace level set to: %s", params.Value)
	if params.Value == protocol.TraceValueVerbose {
		log.SetLevel(log.LevelDebug)
	}
	return nil
}
