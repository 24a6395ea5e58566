package workspace

import (
	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. Client settings overlay the workspace configuration; an
// invalid update is reported and the previous configuration stays.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	// Start from the workspace files so removed client settings fall back.
	base := config.Default()
	if err := req.Server.LoadConfig(); err != nil {
		req.AddWarning(err)
	} else {
		base = req.Server.GetConfig()
	}

	cfg, err := config.FromSettings(base, params.Settings)
	if err != nil {
		req.AddWarning(err)
		return nil
	}
	req.Server.SetConfig(cfg)
	log.Debug("New configuration: %+v", cfg)
	return nil
}
