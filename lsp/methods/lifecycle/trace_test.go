package lifecycle

import (
	"testing"

	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/lsp/testutil"
	"bennypowers.dev/svls/lsp/types"
	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestSetTrace(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	tests := []struct {
		value protocol.TraceValue
		want  log.Level
	}{
		{protocol.TraceValueOff, log.LevelWarn},
		{protocol.TraceValueMessage, log.LevelWarn},
		{"invalid", log.LevelWarn},
		{protocol.TraceValueVerbose, log.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			log.SetLevel(log.LevelWarn)
			req := types.NewRequestContext(testutil.NewMockServerContext(t), nil)

			assert.NoError(t, SetTrace(req, &protocol.SetTraceParams{Value: tt.value}))
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}
