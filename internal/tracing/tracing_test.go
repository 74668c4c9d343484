package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	badCA := filepath.Join(t.TempDir(), "ca.crt")
	require.NoError(t, os.WriteFile(badCA, []byte("not a certificate"), 0o600))

	tests := []struct {
		name        string
		cfg         Config
		expectError string
		enabled     bool
	}{
		{
			name: "disabled",
			cfg:  Config{},
		},
		{
			name:        "enabled without endpoint",
			cfg:         Config{Enabled: true},
			expectError: "endpoint not configured",
		},
		{
			name:    "plaintext",
			cfg:     Config{Enabled: true, Endpoint: "localhost:4317"},
			enabled: true,
		},
		{
			name:    "TLS without verification",
			cfg:     Config{Enabled: true, Endpoint: "localhost:4317", TLSInsecure: true},
			enabled: true,
		},
		{
			name:        "missing CA file",
			cfg:         Config{Enabled: true, Endpoint: "localhost:4317", TLSCAPath: "/nonexistent/ca.crt"},
			expectError: "failed to read CA certificate",
		},
		{
			name:        "CA file without certificates",
			cfg:         Config{Enabled: true, Endpoint: "localhost:4317", TLSCAPath: badCA},
			expectError: "no certificates found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.enabled, p.Enabled())
			assert.Equal(t, "tracing", p.Name())
			assert.NotNil(t, p.Tracer("test"))
			require.NoError(t, p.Start(context.Background()))
			assert.NoError(t, p.Stop(context.Background()))
		})
	}
}
