package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ParsesAllFields(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_key": "key-123",
		"database_url": "postgres://localhost/prospector",
		"port": 9090,
		"standard_target": 40,
		"deep_target": 20,
		"max_rounds": 2,
		"round_pause_ms": 500,
		"latitude": -22.9,
		"longitude": -47.06,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 40, cfg.StandardTarget)
	assert.Equal(t, 2, cfg.MaxRounds)
	assert.InDelta(t, -22.9, cfg.Latitude, 0.001)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{"port": `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero config", Config{}, false},
		{"valid values", Config{Port: 8080, StandardTarget: 50, MaxRounds: 3}, false},
		{"port too high", Config{Port: 70000}, true},
		{"negative port", Config{Port: -1}, true},
		{"negative target", Config{StandardTarget: -5}, true},
		{"negative rounds", Config{MaxRounds: -1}, true},
		{"negative pause", Config{RoundPauseMs: -100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	base := Config{Port: 9090, StandardTarget: 40}
	defaults := Config{
		APIKey:         "default-key",
		Port:           8080,
		StandardTarget: 50,
		DeepTarget:     30,
		Latitude:       -22.9,
		Longitude:      -47.06,
	}

	merged := base.MergeWithDefaults(defaults)

	// Set fields win over defaults.
	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, 40, merged.StandardTarget)
	// Unset fields take the default.
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, 30, merged.DeepTarget)
	assert.InDelta(t, -22.9, merged.Latitude, 0.001)
}

func TestMergeWithDefaults_CoordinatesMoveTogether(t *testing.T) {
	base := Config{Latitude: -10.5}
	defaults := Config{Latitude: -22.9, Longitude: -47.06}

	merged := base.MergeWithDefaults(defaults)

	// A partially set coordinate pair is kept as-is, never half-merged.
	assert.InDelta(t, -10.5, merged.Latitude, 0.001)
	assert.Zero(t, merged.Longitude)
}
