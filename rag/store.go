package rag

import (
	"context"
	"fmt"
	"time"
)

// VectorStore persists embedded chunks and answers nearest-neighbor
// queries. Chunk sets are replaced wholesale per document: re-chunking
// deletes the old set and writes the new one, chunks are never patched in
// place.
type VectorStore interface {
	// Connect establishes the store connection.
	Connect(ctx context.Context) error
	// Close releases the store connection.
	Close() error
	// SaveChunks replaces the owning documents' chunk sets with the given
	// embedded chunks.
	SaveChunks(ctx context.Context, collection string, chunks []EmbeddedChunk) error
	// DeleteDocument removes every chunk belonging to the document.
	DeleteDocument(ctx context.Context, collection, documentID string) error
	// Search returns the topK chunks nearest to the query vector.
	Search(ctx context.Context, collection string, vector []float64, topK int) ([]ScoredChunk, error)
}

// ScoredChunk is one nearest-neighbor search hit.
type ScoredChunk struct {
	ChunkID      string
	DocumentID   string
	ChunkIndex   int
	Content      string
	SectionTitle string
	Score        float64
}

// StoreConfig selects and configures a VectorStore backend.
type StoreConfig struct {
	// Type is the backend name: "chromem" or "milvus".
	Type string
	// Address is the backend location: a directory path for persistent
	// chromem (empty for in-memory), a host:port for milvus.
	Address string
	// Dimension is the embedding vector dimension.
	Dimension int
	// Timeout bounds store operations where the backend supports it.
	Timeout time.Duration
}

// NewVectorStore creates the VectorStore backend named by cfg.Type.
func NewVectorStore(cfg StoreConfig) (VectorStore, error) {
	if cfg.Dimension <= 0 {
		cfg.Dimension = 1536
	}
	switch cfg.Type {
	case "chromem":
		return newChromemStore(cfg)
	case "milvus":
		return newMilvusStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported vector store type: %s", cfg.Type)
	}
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
