package types

import (
	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/documents"
	"bennypowers.dev/svls/internal/scanner"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface rather than on the server so they can
// be tested against a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Scan returns the tokens of a document's content, cached by content.
	Scan(content, languageID string) []scanner.Token

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	GetConfig() config.Config
	SetConfig(cfg config.Config)
	LoadConfig() error
	// IsIncluded reports whether a document gets annotations.
	IsIncluded(uri, languageID string) bool
	RegisterFileWatchers(ctx *glsp.Context) error

	// LSP context, for server-initiated requests such as workspace/applyEdit
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
}
