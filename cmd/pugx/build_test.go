package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pugxlabs/pugx/cmd/pugx/internal/config"
	"github.com/pugxlabs/pugx/internal/cache"
)

func TestOutputPath(t *testing.T) {
	cfg := &config.Config{SrcDir: "templates", OutDir: "dist"}

	got, err := outputPath(cfg, filepath.Join("templates", "nav", "bar.pug"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("dist", "nav", "bar.jsx"), got)
}

func TestCompileOneUsesCache(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "hello.pug")
	outPath := filepath.Join(dir, "out", "hello.jsx")
	require.NoError(t, os.WriteFile(srcPath, []byte("p hello\n"), 0644))

	c, err := cache.Open(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	cached, err := compileOne(c, srcPath, outPath)
	require.NoError(t, err)
	assert.False(t, cached, "first compile must miss the cache")

	first, err := os.ReadFile(outPath)
	require.NoError(t, err)

	cached, err = compileOne(c, srcPath, outPath)
	require.NoError(t, err)
	assert.True(t, cached, "unchanged source must hit the cache")

	second, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	// A source edit invalidates the previous key.
	require.NoError(t, os.WriteFile(srcPath, []byte("p changed\n"), 0644))
	cached, err = compileOne(c, srcPath, outPath)
	require.NoError(t, err)
	assert.False(t, cached, "edited source must miss the cache")
}
