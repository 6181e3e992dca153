package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johannes-Berggren/kiki/internal/config"
)

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        string
		verbose    bool
		expect     string
	}{
		{"config only", "warn", "", false, "warn"},
		{"env wins", "warn", "info", false, "info"},
		{"env alias", "warn", "warning", false, "warning"},
		{"verbose wins", "warn", "error", true, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := resolveLogLevel(tt.configured, tt.env, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, level)
		})
	}
}

func TestResolveLogLevelRejectsUnknownEnv(t *testing.T) {
	_, err := resolveLogLevel("warn", "deubg", false)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), `"deubg"`)
}
