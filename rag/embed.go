package rag

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/RidgetopAi/docchunk/rag/providers"
)

// EmbedderConfig holds the configuration for creating an Embedder.
type EmbedderConfig struct {
	Provider string
	Options  map[string]interface{}
}

// EmbedderOption configures the EmbedderConfig.
type EmbedderOption func(*EmbedderConfig)

// SetProvider selects the embedding provider by registered name.
func SetProvider(provider string) EmbedderOption {
	return func(c *EmbedderConfig) {
		c.Provider = provider
	}
}

// SetModel selects the embedding model.
func SetModel(model string) EmbedderOption {
	return func(c *EmbedderConfig) {
		c.Options["model"] = model
	}
}

// SetAPIKey sets the provider API key.
func SetAPIKey(apiKey string) EmbedderOption {
	return func(c *EmbedderConfig) {
		c.Options["api_key"] = apiKey
	}
}

// SetOption sets a provider-specific option.
func SetOption(key string, value interface{}) EmbedderOption {
	return func(c *EmbedderConfig) {
		c.Options[key] = value
	}
}

// NewEmbedder creates an Embedder from the registered provider factories.
func NewEmbedder(opts ...EmbedderOption) (providers.Embedder, error) {
	config := &EmbedderConfig{
		Options: make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.Provider == "" {
		return nil, fmt.Errorf("provider must be specified")
	}
	factory, err := providers.GetEmbedderFactory(config.Provider)
	if err != nil {
		return nil, err
	}
	return factory(config.Options)
}

// EmbeddedChunk pairs a chunk with its embedding vector, keyed by the
// chunk's ID for downstream storage.
type EmbeddedChunk struct {
	Chunk     Chunk     `json:"chunk"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingService embeds chunk batches behind a rate limiter so bulk
// re-chunking does not exhaust provider quotas. Each chunk is embedded
// independently; a failure aborts the batch and the caller may retry the
// whole document safely.
type EmbeddingService struct {
	embedder providers.Embedder
	limiter  *rate.Limiter
}

// NewEmbeddingService creates a service around the given embedder with a
// default limit of 10 requests per second.
func NewEmbeddingService(embedder providers.Embedder) *EmbeddingService {
	return &EmbeddingService{
		embedder: embedder,
		limiter:  rate.NewLimiter(rate.Limit(10), 10),
	}
}

// SetRateLimit adjusts the request rate and burst applied to provider
// calls.
func (s *EmbeddingService) SetRateLimit(perSecond float64, burst int) {
	s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// EmbedChunks embeds each chunk's content in order, respecting the rate
// limit and the context's cancellation.
func (s *EmbeddingService) EmbedChunks(ctx context.Context, chunks []Chunk) ([]EmbeddedChunk, error) {
	embedded := make([]EmbeddedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter interrupted: %w", err)
		}
		vector, err := s.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			return nil, fmt.Errorf("error embedding chunk %d of document %s: %w", chunk.ChunkIndex, chunk.ObjectID, err)
		}
		embedded = append(embedded, EmbeddedChunk{Chunk: chunk, Embedding: vector})
		GlobalLogger.Debug("embedded chunk", "document", chunk.ObjectID, "index", chunk.ChunkIndex, "dimension", len(vector))
	}
	return embedded, nil
}
