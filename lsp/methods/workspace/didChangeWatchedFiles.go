package workspace

import (
	"path/filepath"
	"slices"

	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/uriutil"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification, reloading configuration when a workspace config file or
// package.json changes.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Debug("Watched files changed: %d files", len(params.Changes))

	root := req.Server.RootPath()
	if !slices.ContainsFunc(params.Changes, func(change protocol.FileEvent) bool {
		return IsConfigFile(root, uriutil.URIToPath(change.URI))
	}) {
		return nil
	}

	log.Info("Reloading configuration")
	if err := req.Server.LoadConfig(); err != nil {
		req.AddWarning(err)
	}
	return nil
}

// IsConfigFile reports whether path is one of the workspace configuration
// files under root.
func IsConfigFile(root, path string) bool {
	if root == "" {
		return false
	}
	path = filepath.Clean(path)
	for _, name := range append(slices.Clone(config.Files), "package.json") {
		if path == filepath.Join(root, name) {
			return true
		}
	}
	return false
}

// WatchPatterns are the glob patterns registered with the client for
// configuration files under root.
func WatchPatterns(root string) []string {
	if root == "" {
		return nil
	}
	base := filepath.ToSlash(root)
	return []string{
		base + "/.config/style-values.{yaml,yml,json}",
		base + "/package.json",
	}
}
