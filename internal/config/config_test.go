package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 6, cfg.PrintPrecision)
	assert.True(t, cfg.Foreign.AllowFileIO)
	assert.True(t, cfg.Foreign.AllowParamStore)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".jgorc.yaml")
	yaml := "printPrecision: 10\nforeign:\n  allowFileIO: false\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PrintPrecision)
	assert.False(t, cfg.Foreign.AllowFileIO)
	assert.True(t, cfg.Foreign.AllowParamStore)
}
