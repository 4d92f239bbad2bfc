// pkg/logger/logger_test.go
package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		debug       bool
	}{
		{name: "development", environment: "development", debug: true},
		{name: "local", environment: "local", debug: true},
		{name: "test", environment: "test", debug: true},
		{name: "production", environment: "production", debug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New("trial-balance", tt.environment)
			assert.Equal(t, tt.debug, log.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestBuild_InitialFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}

	log := build(config, "trial-balance", "staging")
	log.Info("dataset loaded")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "trial-balance", entry["service"])
	assert.Equal(t, "staging", entry["environment"])
	assert.Equal(t, "dataset loaded", entry["msg"])
}
