package lsp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/uriutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func newServer(t *testing.T, opts Options) *Server {
	t.Helper()
	captureLog(t, log.LevelInfo)
	if opts.Config.ScanCacheSize == 0 {
		opts.Config = config.Default()
	}
	s, err := NewServer(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewServer_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ScanCacheSize = -1
	_, err := NewServer(Options{Config: cfg})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestServer_SetConfig(t *testing.T) {
	s := newServer(t, Options{})

	cfg := config.Default()
	cfg.LogLevel = "debug"
	cfg.HistoryDelay = config.Duration(10 * time.Millisecond)
	s.SetConfig(cfg)

	assert.Equal(t, cfg, s.GetConfig())
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	// The new history delay reaches the document manager
	uri := "file:///a.css"
	require.NoError(t, s.DocumentManager().DidOpen(uri, "css", 1, "a"))
	require.NoError(t, s.DocumentManager().DidChange(uri, 2, []protocol.TextDocumentContentChangeEvent{{Text: "b"}}))
	assert.Eventually(t, s.Document(uri).CanUndo, time.Second, 5*time.Millisecond)
}

func TestServer_LoadConfig(t *testing.T) {
	t.Run("workspace file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".config", "style-values.yaml"), "include:\n  - \"src/**/*.css\"\nscanCacheSize: 8\n")
		s := newServer(t, Options{})
		s.SetRootPath(root)

		require.NoError(t, s.LoadConfig())
		assert.Equal(t, []string{"src/**/*.css"}, s.GetConfig().Include)
		assert.Equal(t, 8, s.GetConfig().ScanCacheSize)
	})

	t.Run("explicit file wins over the workspace", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".config", "style-values.yaml"), "scanCacheSize: 8\n")
		explicit := filepath.Join(t.TempDir(), "svls.json")
		writeFile(t, explicit, `{ "scanCacheSize": 3, /* comment */ }`)
		s := newServer(t, Options{ConfigPath: explicit})
		s.SetRootPath(root)

		require.NoError(t, s.LoadConfig())
		assert.Equal(t, 3, s.GetConfig().ScanCacheSize)
	})

	t.Run("invalid file keeps the configuration", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".config", "style-values.yaml"), "scanCacheSize: -4\n")
		s := newServer(t, Options{})
		s.SetRootPath(root)

		assert.ErrorIs(t, s.LoadConfig(), config.ErrInvalidConfig)
		assert.Equal(t, config.Default(), s.GetConfig())
	})

	t.Run("no workspace", func(t *testing.T) {
		s := newServer(t, Options{})
		require.NoError(t, s.LoadConfig())
		assert.Equal(t, config.Default(), s.GetConfig())
	})
}

func TestServer_IsIncluded(t *testing.T) {
	root := t.TempDir()
	s := newServer(t, Options{})
	s.SetRootPath(root)
	cfg := config.Default()
	cfg.Include = []string{"src/**/*.{css,html}"}
	s.SetConfig(cfg)

	tests := []struct {
		name       string
		path       string
		languageID string
		want       bool
	}{
		{"matching css", "src/a/b.css", "css", true},
		{"matching html", "src/index.html", "html", true},
		{"outside include", "dist/b.css", "css", false},
		{"unsupported language", "src/readme.md", "markdown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri := uriutil.PathToURI(filepath.Join(root, tt.path))
			assert.Equal(t, tt.want, s.IsIncluded(uri, tt.languageID))
		})
	}
}

func TestServer_Scan(t *testing.T) {
	s := newServer(t, Options{})
	content := "a { color: #f00; }"

	first := s.Scan(content, "css")
	require.Len(t, first, 1)
	assert.Equal(t, scanner.Color, first[0].Category)
	assert.Equal(t, 1, s.scans.Len())

	first[0].Start = 99 // callers own the slice
	second := s.Scan(content, "css")
	assert.Equal(t, 11, second[0].Start)
	assert.Equal(t, 1, s.scans.Len())
}

func TestServer_RegisterFileWatchers(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		s := newServer(t, Options{})
		assert.NoError(t, s.RegisterFileWatchers(nil))
	})

	t.Run("no workspace root", func(t *testing.T) {
		s := newServer(t, Options{})
		called := false
		ctx := &glsp.Context{Call: func(string, any, any) { called = true }}
		require.NoError(t, s.RegisterFileWatchers(ctx))
		assert.False(t, called)
	})

	t.Run("registers config watchers", func(t *testing.T) {
		s := newServer(t, Options{})
		s.SetRootPath("/workspace")

		type call struct {
			method string
			params any
		}
		calls := make(chan call, 1)
		ctx := &glsp.Context{Call: func(method string, params any, _ any) {
			calls <- call{method, params}
		}}
		require.NoError(t, s.RegisterFileWatchers(ctx))

		select {
		case c := <-calls:
			assert.Equal(t, "client/registerCapability", c.method)
			params, ok := c.params.(protocol.RegistrationParams)
			require.True(t, ok)
			require.Len(t, params.Registrations, 1)
			reg := params.Registrations[0]
			assert.Equal(t, "workspace/didChangeWatchedFiles", reg.Method)
			opts, ok := reg.RegisterOptions.(protocol.DidChangeWatchedFilesRegistrationOptions)
			require.True(t, ok)
			var globs []string
			for _, w := range opts.Watchers {
				globs = append(globs, string(w.GlobPattern))
			}
			assert.Equal(t, []string{
				"/workspace/.config/style-values.{yaml,yml,json}",
				"/workspace/package.json",
			}, globs)
		case <-time.After(time.Second):
			t.Fatal("registration request was not sent")
		}
	})
}

func TestServer_Close(t *testing.T) {
	s := newServer(t, Options{})
	cfg := config.Default()
	cfg.HistoryDelay = config.Duration(time.Hour)
	s.SetConfig(cfg)

	uri := "file:///a.css"
	require.NoError(t, s.DocumentManager().DidOpen(uri, "css", 1, "a"))
	require.NoError(t, s.DocumentManager().DidChange(uri, 2, []protocol.TextDocumentContentChangeEvent{{Text: "b"}}))
	doc := s.Document(uri)
	assert.False(t, doc.CanUndo())

	require.NoError(t, s.Close())
	assert.True(t, doc.CanUndo(), "close records pending edits")
	assert.NoError(t, s.Close())
}

func TestServer_WorkspaceRoot(t *testing.T) {
	s := newServer(t, Options{})
	s.SetRootURI("file:///workspace")
	s.SetRootPath("/workspace")
	assert.Equal(t, "file:///workspace", s.RootURI())
	assert.Equal(t, "/workspace", s.RootPath())

	ctx := &glsp.Context{}
	s.SetGLSPContext(ctx)
	assert.Same(t, ctx, s.GLSPContext())
	assert.Len(t, s.AllDocuments(), 0)
}
