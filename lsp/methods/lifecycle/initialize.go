package lifecycle

import (
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/uriutil"
	"bennypowers.dev/svls/internal/version"
	semantictokens "bennypowers.dev/svls/lsp/methods/textDocument/semanticTokens"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to the client in the initialize result.
const ServerName = "style-values-language-server"

// InitializeResult mirrors protocol.InitializeResult with untyped
// capabilities, so the map built by Capabilities is sent as is.
type InitializeResult struct {
	Capabilities any                                  `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}

	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root
	if params.RootURI != nil {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
		log.Info("Workspace root: %s", req.Server.RootPath())
	} else if params.RootPath != nil {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
		log.Info("Workspace root (from rootPath): %s", req.Server.RootPath())
	}

	v := version.Get().Version
	return InitializeResult{
		Capabilities: Capabilities(),
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &v,
		},
	}, nil
}

// Capabilities returns the server capabilities. Semantic tokens are served
// in full only.
func Capabilities() map[string]any {
	syncKind := protocol.TextDocumentSyncKindIncremental
	return map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		"hoverProvider":      true,
		"definitionProvider": true,
		"colorProvider":      true,
		"codeActionProvider": protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindRefactorRewrite},
		},
		"semanticTokensProvider": map[string]any{
			"legend": semantictokens.Legend(),
			"full":   true,
		},
		"executeCommandProvider": protocol.ExecuteCommandOptions{
			Commands: types.Commands,
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
