package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "btrees.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[tree]
variant = bstar
degree  = 4

[generate]
records = 100
min     = 10
max     = 500

[log]
level = debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bstar", cfg.Tree.Variant)
	assert.Equal(t, 4, cfg.Tree.Degree)
	assert.Equal(t, GenerateConfig{Records: 100, Min: 10, Max: 500}, cfg.Generate)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingKeysKeepDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[tree]\ndegree = 5\n"))
	require.NoError(t, err)

	want := Default()
	want.Tree.Degree = 5
	assert.Equal(t, want, cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"malformed degree", "[tree]\ndegree = three\n", "tree.degree"},
		{"negative records", "[generate]\nrecords = -1\n", "generate.records"},
		{"min above max", "[generate]\nmin = 10\nmax = 1\n", "generate.min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}
