// Package config manages configuration for the document chunking pipeline.
// Settings merge from three sources, lowest to highest precedence:
// programmatic defaults, a JSON configuration file, and environment
// variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds the settings for every pipeline stage: chunking budget,
// embedding provider, and vector store.
type Config struct {
	// Chunking settings: strategy selection and token budget.
	ChunkingStrategy     string // "fixed", "semantic", or "hybrid"
	DefaultMaxTokens     int    // hard per-chunk token ceiling
	DefaultMinTokens     int    // below this total, a document stays one chunk
	DefaultOverlapTokens int    // tokens repeated across adjacent chunks
	TokenEncoding        string // tiktoken encoding name

	// Embedding provider settings.
	Provider string            // embedding provider name (e.g. "openai")
	Model    string            // embedding model identifier
	APIKeys  map[string]string // API keys keyed by provider

	// Vector store settings.
	StoreType    string // "chromem" or "milvus"
	StoreAddress string // directory path (chromem) or host:port (milvus)
	Collection   string // chunk collection name
	Dimension    int    // embedding vector dimension

	// Operational settings.
	Timeout    time.Duration // per-operation timeout
	MaxRetries int           // retry attempts for embedding calls
}

// LoadConfig builds the configuration from defaults, an optional JSON file,
// and environment overrides, in that order.
//
// File search order:
//  1. $DOCCHUNK_CONFIG
//  2. ~/.docchunk/config.json
//  3. ./docchunk.json
//
// Environment overrides: DOCCHUNK_STRATEGY, DOCCHUNK_MAX_TOKENS,
// DOCCHUNK_MIN_TOKENS, DOCCHUNK_OVERLAP_TOKENS, DOCCHUNK_PROVIDER,
// DOCCHUNK_MODEL, DOCCHUNK_STORE, DOCCHUNK_STORE_ADDRESS,
// DOCCHUNK_COLLECTION, OPENAI_API_KEY.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := findConfigFile(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		ChunkingStrategy:     "semantic",
		DefaultMaxTokens:     512,
		DefaultMinTokens:     100,
		DefaultOverlapTokens: 50,
		TokenEncoding:        "cl100k_base",
		Provider:             "openai",
		Model:                "text-embedding-3-small",
		APIKeys:              make(map[string]string),
		StoreType:            "chromem",
		Collection:           "chunks",
		Dimension:            1536,
		Timeout:              30 * time.Second,
		MaxRetries:           3,
	}
}

func findConfigFile() string {
	if path := os.Getenv("DOCCHUNK_CONFIG"); path != "" {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".docchunk", "config.json")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	if _, err := os.Stat("docchunk.json"); err == nil {
		return "docchunk.json"
	}
	return ""
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCCHUNK_STRATEGY"); v != "" {
		cfg.ChunkingStrategy = v
	}
	if v := os.Getenv("DOCCHUNK_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultMaxTokens = n
		}
	}
	if v := os.Getenv("DOCCHUNK_MIN_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultMinTokens = n
		}
	}
	if v := os.Getenv("DOCCHUNK_OVERLAP_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultOverlapTokens = n
		}
	}
	if v := os.Getenv("DOCCHUNK_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("DOCCHUNK_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("DOCCHUNK_STORE"); v != "" {
		cfg.StoreType = v
	}
	if v := os.Getenv("DOCCHUNK_STORE_ADDRESS"); v != "" {
		cfg.StoreAddress = v
	}
	if v := os.Getenv("DOCCHUNK_COLLECTION"); v != "" {
		cfg.Collection = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKeys["openai"] = v
	}
}

// Save writes the configuration as JSON to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
