package lsp

import (
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/lsp/methods/workspace"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	fileWatcherID       = "style-values-config-watcher"
	registerCapability  = "client/registerCapability"
	didChangeWatchedMsg = "workspace/didChangeWatchedFiles"
)

// RegisterFileWatchers asks the client to watch the workspace configuration
// files, so edits to them reach DidChangeWatchedFiles.
func (s *Server) RegisterFileWatchers(ctx *glsp.Context) error {
	// No client connection in tests
	if ctx == nil || ctx.Call == nil {
		log.Debug("Skipping file watcher registration (no client context)")
		return nil
	}

	patterns := workspace.WatchPatterns(s.RootPath())
	if len(patterns) == 0 {
		log.Debug("No file watchers to register")
		return nil
	}
	watchers := make([]protocol.FileSystemWatcher, 0, len(patterns))
	for _, pattern := range patterns {
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: pattern})
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{{
			ID:     fileWatcherID,
			Method: didChangeWatchedMsg,
			RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
				Watchers: watchers,
			},
		}},
	}

	// client/registerCapability is a request. Calling it on the handler
	// goroutine would block reading the client's response. glsp logs
	// failed calls itself.
	go func() {
		var result any
		ctx.Call(registerCapability, params, &result)
		log.Debug("File watcher registration completed")
	}()

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
