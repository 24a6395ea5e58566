package workspace

import (
	"errors"
	"testing"
	"time"

	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/lsp/testutil"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDidChangeConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		settings any
		want     func(*config.Config)
		warns    bool
	}{
		{
			name: "nested settings",
			settings: map[string]any{
				config.SettingsKey: map[string]any{"historyDelay": "1s", "logLevel": "debug"},
			},
			want: func(c *config.Config) {
				c.HistoryDelay = config.Duration(time.Second)
				c.LogLevel = "debug"
			},
		},
		{
			name:     "bare settings",
			settings: map[string]any{"include": []any{"src/**/*.css"}},
			want:     func(c *config.Config) { c.Include = []string{"src/**/*.css"} },
		},
		{
			name:     "nil settings keep defaults",
			settings: nil,
			want:     func(*config.Config) {},
		},
		{
			name:     "not an object",
			settings: "invalid",
			want:     func(*config.Config) {},
			warns:    true,
		},
		{
			name: "out of range",
			settings: map[string]any{
				config.SettingsKey: map[string]any{"scanCacheSize": 0},
			},
			want:  func(*config.Config) {},
			warns: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewMockServerContext(t)
			req := types.NewRequestContext(server, nil)

			err := DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{Settings: tt.settings})
			require.NoError(t, err)

			want := config.Default()
			tt.want(&want)
			assert.Equal(t, want, server.GetConfig())
			assert.Equal(t, tt.warns, req.HasWarnings())
			assert.True(t, server.LoadConfigCalled)
		})
	}
}

func TestDidChangeConfigurationOverlaysWorkspaceConfig(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.LoadConfigFunc = func() error {
		cfg := config.Default()
		cfg.Include = []string{"styles/**"}
		server.SetConfig(cfg)
		return nil
	}
	req := types.NewRequestContext(server, nil)

	settings := map[string]any{config.SettingsKey: map[string]any{"logLevel": "warn"}}
	require.NoError(t, DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{Settings: settings}))

	cfg := server.GetConfig()
	assert.Equal(t, []string{"styles/**"}, cfg.Include)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestDidChangeConfigurationWorkspaceError(t *testing.T) {
	server := testutil.NewMockServerContext(t)
	server.LoadConfigFunc = func() error { return errors.New("broken yaml") }
	req := types.NewRequestContext(server, nil)

	settings := map[string]any{"logLevel": "error"}
	require.NoError(t, DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{Settings: settings}))

	assert.True(t, req.HasWarnings())
	assert.Equal(t, "error", server.GetConfig().LogLevel)
}
