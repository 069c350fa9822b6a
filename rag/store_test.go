package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedChunk(docID string, index int, content string, vector []float64) EmbeddedChunk {
	result := ChunkText(content, docID, NewWordTokenCounter(), ChunkingOptions{
		Strategy: StrategySemantic, MaxTokens: 512, MinTokens: 1,
	})
	chunk := result.Chunks[0]
	chunk.ChunkIndex = index
	return EmbeddedChunk{Chunk: chunk, Embedding: vector}
}

func TestChromemStoreSaveAndSearch(t *testing.T) {
	ctx := context.Background()
	store, err := newChromemStore(StoreConfig{Type: "chromem", Dimension: 3})
	require.NoError(t, err)
	require.NoError(t, store.Connect(ctx))
	defer store.Close()

	chunks := []EmbeddedChunk{
		embeddedChunk("doc-1", 0, "alpha content here", []float64{1, 0, 0}),
		embeddedChunk("doc-1", 1, "beta content here", []float64{0, 1, 0}),
		embeddedChunk("doc-2", 0, "gamma content here", []float64{0, 0, 1}),
	}
	require.NoError(t, store.SaveChunks(ctx, "chunks", chunks))

	hits, err := store.Search(ctx, "chunks", []float64{1, 0, 0}, 2)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "doc-1", hits[0].DocumentID)
	assert.Equal(t, "alpha content here", hits[0].Content)
	assert.Equal(t, 0, hits[0].ChunkIndex)
}

func TestChromemStoreReplacesChunkSet(t *testing.T) {
	ctx := context.Background()
	store, err := newChromemStore(StoreConfig{Type: "chromem", Dimension: 3})
	require.NoError(t, err)
	require.NoError(t, store.Connect(ctx))

	first := []EmbeddedChunk{
		embeddedChunk("doc-1", 0, "old version chunk", []float64{1, 0, 0}),
		embeddedChunk("doc-1", 1, "old second chunk", []float64{0, 1, 0}),
	}
	require.NoError(t, store.SaveChunks(ctx, "chunks", first))

	// Re-chunking replaces the whole set, never patches in place.
	second := []EmbeddedChunk{
		embeddedChunk("doc-1", 0, "new version chunk", []float64{0, 0, 1}),
	}
	require.NoError(t, store.SaveChunks(ctx, "chunks", second))

	hits, err := store.Search(ctx, "chunks", []float64{0, 0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new version chunk", hits[0].Content)
}

func TestChromemStoreDeleteDocument(t *testing.T) {
	ctx := context.Background()
	store, err := newChromemStore(StoreConfig{Type: "chromem", Dimension: 3})
	require.NoError(t, err)
	require.NoError(t, store.Connect(ctx))

	chunks := []EmbeddedChunk{
		embeddedChunk("doc-1", 0, "kept chunk", []float64{1, 0, 0}),
		embeddedChunk("doc-2", 0, "dropped chunk", []float64{0, 1, 0}),
	}
	require.NoError(t, store.SaveChunks(ctx, "chunks", chunks))
	require.NoError(t, store.DeleteDocument(ctx, "chunks", "doc-2"))

	hits, err := store.Search(ctx, "chunks", []float64{0, 1, 0}, 5)
	require.NoError(t, err)
	for _, hit := range hits {
		assert.NotEqual(t, "doc-2", hit.DocumentID)
	}
}

func TestNewVectorStoreUnknownType(t *testing.T) {
	_, err := NewVectorStore(StoreConfig{Type: "postgres"})
	assert.Error(t, err)
}
