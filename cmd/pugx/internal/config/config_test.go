package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte("srcDir: views\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "views", cfg.SrcDir)
	assert.Equal(t, "dist", cfg.OutDir)
	require.NotNil(t, cfg.Dev)
	assert.Equal(t, 5173, cfg.Dev.Port)
	assert.Equal(t, "localhost", cfg.Dev.Host)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte("srcDir: [broken\n"), 0644)
	require.NoError(t, err)

	_, err = Load(dir)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &Config{
		SrcDir: "views",
		OutDir: "build",
		Dev:    &DevConfig{Port: 4000, Host: "0.0.0.0"},
	}
	require.NoError(t, Save(want, dir))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
