package testutil

import (
	"testing"

	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/documents"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/uriutil"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
)

var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext implements types.ServerContext for testing.
// Documents and scanning are real; workspace hooks are configurable via
// callback functions.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      config.Config
	glspContext *glsp.Context

	// Optional callbacks for custom behavior in tests
	LoadConfigFunc       func() error
	RegisterWatchersFunc func(*glsp.Context) error

	// Tracking flags for tests that need to verify methods were called
	LoadConfigCalled       bool
	RegisterWatchersCalled bool
	ScanCalls              int
}

// NewMockServerContext creates a new mock server context with default
// behavior. The document manager is closed when the test ends.
func NewMockServerContext(t testing.TB) *MockServerContext {
	t.Helper()
	m := &MockServerContext{
		docs:   documents.NewManager(),
		config: config.Default(),
	}
	t.Cleanup(m.docs.Close)
	return m
}

// Open opens a document and fails the test on error.
func (m *MockServerContext) Open(t testing.TB, uri, languageID, content string) *documents.Document {
	t.Helper()
	require.NoError(t, m.docs.DidOpen(uri, languageID, 1, content))
	return m.docs.Get(uri)
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// Scan scans content without caching
func (m *MockServerContext) Scan(content, languageID string) []scanner.Token {
	m.ScanCalls++
	return parser.ScanDocument(content, languageID)
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() config.Config {
	return m.config
}

// SetConfig sets the server configuration
func (m *MockServerContext) SetConfig(cfg config.Config) {
	m.config = cfg
	m.docs.SetHistoryDelay(cfg.HistoryDelay.Std())
}

// LoadConfig loads configuration from the workspace
func (m *MockServerContext) LoadConfig() error {
	m.LoadConfigCalled = true
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc()
	}
	return nil
}

// IsIncluded applies the configured include globs
func (m *MockServerContext) IsIncluded(uri, languageID string) bool {
	if !parser.IsCSSSupportedLanguage(languageID) {
		return false
	}
	return m.config.Includes(m.rootPath, uriutil.URIToPath(uri))
}

// RegisterFileWatchers registers file watchers with the client
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}
