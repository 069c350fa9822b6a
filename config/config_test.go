package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "semantic", cfg.ChunkingStrategy)
	assert.Equal(t, 512, cfg.DefaultMaxTokens)
	assert.Equal(t, 100, cfg.DefaultMinTokens)
	assert.Equal(t, 50, cfg.DefaultOverlapTokens)
	assert.Equal(t, "chromem", cfg.StoreType)
	assert.Equal(t, 1536, cfg.Dimension)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DOCCHUNK_STRATEGY", "hybrid")
	t.Setenv("DOCCHUNK_MAX_TOKENS", "256")
	t.Setenv("DOCCHUNK_OVERLAP_TOKENS", "32")
	t.Setenv("DOCCHUNK_STORE", "milvus")
	t.Setenv("DOCCHUNK_STORE_ADDRESS", "localhost:19530")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "hybrid", cfg.ChunkingStrategy)
	assert.Equal(t, 256, cfg.DefaultMaxTokens)
	assert.Equal(t, 32, cfg.DefaultOverlapTokens)
	assert.Equal(t, "milvus", cfg.StoreType)
	assert.Equal(t, "localhost:19530", cfg.StoreAddress)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.ChunkingStrategy = "fixed"
	cfg.DefaultMaxTokens = 128
	require.NoError(t, cfg.Save(path))

	t.Setenv("DOCCHUNK_CONFIG", path)
	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "fixed", loaded.ChunkingStrategy)
	assert.Equal(t, 128, loaded.DefaultMaxTokens)
}
