package docchunk

import (
	"context"

	"github.com/RidgetopAi/docchunk/rag"
	"github.com/RidgetopAi/docchunk/rag/providers"
)

// Embedder converts chunk text into embedding vectors.
type Embedder = providers.Embedder

// EmbedderOption configures embedder creation.
type EmbedderOption = rag.EmbedderOption

// EmbeddedChunk pairs a chunk with its embedding vector.
type EmbeddedChunk = rag.EmbeddedChunk

// NewEmbedder creates an Embedder from the registered providers.
//
// Example:
//
//	embedder, err := docchunk.NewEmbedder(
//	    docchunk.SetEmbedderProvider("openai"),
//	    docchunk.SetEmbedderAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
func NewEmbedder(opts ...EmbedderOption) (Embedder, error) {
	return rag.NewEmbedder(opts...)
}

// SetEmbedderProvider selects the embedding provider by name.
func SetEmbedderProvider(provider string) EmbedderOption {
	return rag.SetProvider(provider)
}

// SetEmbedderModel selects the embedding model.
func SetEmbedderModel(model string) EmbedderOption {
	return rag.SetModel(model)
}

// SetEmbedderAPIKey sets the provider API key.
func SetEmbedderAPIKey(apiKey string) EmbedderOption {
	return rag.SetAPIKey(apiKey)
}

// EmbeddingService embeds chunk batches behind a rate limiter.
type EmbeddingService = rag.EmbeddingService

// NewEmbeddingService creates a rate-limited embedding service around the
// given embedder.
func NewEmbeddingService(embedder Embedder) *EmbeddingService {
	return rag.NewEmbeddingService(embedder)
}

// EmbedChunks embeds the chunks with a one-off service instance.
func EmbedChunks(ctx context.Context, embedder Embedder, chunks []Chunk) ([]EmbeddedChunk, error) {
	return rag.NewEmbeddingService(embedder).EmbedChunks(ctx, chunks)
}
