package telemetry_test

import (
	"testing"

	"github.com/erp/accounting/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  telemetry.ProfilerConfig
		msg  string
	}{
		{
			name: "missing server",
			cfg:  telemetry.ProfilerConfig{Enabled: true, ApplicationName: "accounting"},
			msg:  "server address is required",
		},
		{
			name: "missing application",
			cfg:  telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"},
			msg:  "application name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := telemetry.NewProfiler(tt.cfg, zaptest.NewLogger(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
