package lsp

import (
	"fmt"
	"sync"

	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/documents"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/lsp/methods/lifecycle"
	"bennypowers.dev/svls/lsp/methods/textDocument"
	codeaction "bennypowers.dev/svls/lsp/methods/textDocument/codeAction"
	"bennypowers.dev/svls/lsp/methods/textDocument/definition"
	documentcolor "bennypowers.dev/svls/lsp/methods/textDocument/documentColor"
	"bennypowers.dev/svls/lsp/methods/textDocument/hover"
	semantictokens "bennypowers.dev/svls/lsp/methods/textDocument/semanticTokens"
	"bennypowers.dev/svls/lsp/methods/workspace"
	"bennypowers.dev/svls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Options configure a Server.
type Options struct {
	// ConfigPath, when set, replaces the workspace configuration lookup.
	ConfigPath string
	// Config is the configuration in effect until the workspace loads.
	Config config.Config
}

// Server represents the Style Values Language Server
type Server struct {
	documents  *documents.Manager
	scans      *scanner.Cache
	glspServer *server.Server
	configPath string

	context  *glsp.Context
	rootURI  string        // Workspace root URI
	rootPath string        // Workspace root path (file system)
	config   config.Config // Server configuration
	configMu sync.RWMutex  // Protects config, context and the workspace root
}

// NewServer creates a new Style Values LSP server
func NewServer(opts Options) (*Server, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scans, err := scanner.NewCache(cfg.ScanCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan cache: %w", err)
	}

	s := &Server{
		documents:  documents.NewManager(),
		scans:      scans,
		configPath: opts.ConfigPath,
	}
	s.SetConfig(cfg)

	// Create the GLSP server with our handlers wrapped with middleware
	handler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		WorkspaceExecuteCommand:         method(s, "workspace/executeCommand", workspace.ExecuteCommand),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:               method(s, "textDocument/hover", hover.Hover),
		TextDocumentDefinition:          method(s, "textDocument/definition", definitionHandler),
		TextDocumentColor:               method(s, "textDocument/documentColor", documentcolor.DocumentColor),
		TextDocumentColorPresentation:   method(s, "textDocument/colorPresentation", documentcolor.ColorPresentation),
		TextDocumentCodeAction:          method(s, "textDocument/codeAction", codeActionHandler),
		TextDocumentSemanticTokensFull:  method(s, "textDocument/semanticTokens/full", semantictokens.SemanticTokensFull),
	}

	s.glspServer = server.NewServer(&handler, lifecycle.ServerName, log.GetLevel() == log.LevelDebug)

	return s, nil
}

// protocol.Handler types these results as any.

func definitionHandler(req *types.RequestContext, params *protocol.DefinitionParams) (any, error) {
	locations, err := definition.Definition(req, params)
	if err != nil || locations == nil {
		return nil, err
	}
	return locations, nil
}

func codeActionHandler(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	return codeaction.CodeAction(req, params)
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close records pending edits, stops history timers and releases the
// parser pools. It is safe to call Close multiple times.
func (s *Server) Close() error {
	s.documents.Close()
	parser.ClosePools()
	return nil
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// Scan returns the tokens of content, reusing the result of an earlier scan
// of the same text.
func (s *Server) Scan(content, languageID string) []scanner.Token {
	return s.scans.Scan(content, languageID, func(text string) []scanner.Token {
		return parser.ScanDocument(text, languageID)
	})
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// GLSPContext returns the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}
