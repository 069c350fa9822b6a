package docchunk

import (
	"github.com/RidgetopAi/docchunk/rag"
)

// VectorStore persists embedded chunks and answers nearest-neighbor
// queries. Saving a document's chunks replaces its previous chunk set.
type VectorStore = rag.VectorStore

// StoreConfig selects and configures a VectorStore backend.
type StoreConfig = rag.StoreConfig

// ScoredChunk is one nearest-neighbor search hit.
type ScoredChunk = rag.ScoredChunk

// NewVectorStore creates the backend named by cfg.Type: "chromem" for the
// embedded store, "milvus" for a server-backed one.
func NewVectorStore(cfg StoreConfig) (VectorStore, error) {
	return rag.NewVectorStore(cfg)
}
