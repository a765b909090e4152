package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/clustools"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	require.NoError(t, err)

	assert.Equal(t, "scores.txt", cfg.Input)
	assert.Equal(t, "spicker", cfg.Policy)
	assert.Equal(t, "similarity", cfg.Measure)
	assert.Equal(t, 0.5908, cfg.Cutoff)
	assert.Equal(t, 100, cfg.KMedoid.MaxIterations)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, cfg, Default())
}

func TestParseMinimalConfig(t *testing.T) {
	cfg, err := parse([]byte(`
policy: strict
measure: distance
cutoff: 0.3
`))
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Policy)
	assert.Equal(t, 0.3, cfg.Cutoff)
	// Defaults survive for unspecified fields.
	assert.Equal(t, 100, cfg.KMedoid.MaxIterations)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown policy", "policy: ward\n"},
		{"unknown measure", "measure: angle\n"},
		{"negative cutoff", "cutoff: -1\n"},
		{"bad format", "output:\n  format: xml\n"},
		{"zero iterations", "kmedoid:\n  max_iterations: -3\n"},
		{"bad level", "logging:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]byte(tt.yaml))
			require.ErrorIs(t, err, clustools.ErrInvalidConfiguration)
		})
	}

	_, err := parse([]byte("policy: [unclosed"))
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: kmedoid\ncutoff: 3\nkmedoid:\n  seed: 7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	cc := cfg.Clustering()
	assert.Equal(t, clustools.PolicyKMedoid, cc.Policy)
	assert.Equal(t, clustools.MeasureSimilarity, cc.Measure)
	assert.Equal(t, 3.0, cc.Cutoff)
	assert.Equal(t, int64(7), cc.Seed)
	assert.Equal(t, 100, cc.MaxIterations)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
