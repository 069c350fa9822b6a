package docchunk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraph(prefix string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(parts, " ")
}

func TestChunkerDefaults(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	result := chunker.Chunk(paragraph("w", 30), "doc-1")
	require.True(t, result.Success)
	// 30 tokens is below the default MinTokens, so one chunk comes back.
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, StrategySemantic, result.Chunks[0].ChunkingStrategy)
}

func TestChunkerOptions(t *testing.T) {
	chunker, err := NewChunker(
		WithStrategy(StrategyFixed),
		MaxTokens(100),
		MinTokens(10),
		OverlapTokens(20),
	)
	require.NoError(t, err)

	result := chunker.Chunk(paragraph("w", 250), "doc-1")
	require.True(t, result.Success)
	require.Len(t, result.Chunks, 3)
	assert.Equal(t, StrategyFixed, result.Chunks[0].ChunkingStrategy)
}

func TestChunkerEmptyInput(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	result := chunker.Chunk("   ", "doc-1")
	assert.False(t, result.Success)
	assert.Equal(t, ErrCodeEmptyText, result.ErrorCode)
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	// Deterministic three-dimensional vector derived from the text length.
	n := float64(len(text)%7 + 1)
	return []float64{n, 1, 1 / n}, nil
}

func (stubEmbedder) GetDimension() (int, error) { return 3, nil }

func TestPipelineChunkOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	content := "# Guide\n\n" + paragraph("a", 60) + "\n\n" + paragraph("b", 60)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	chunker, err := NewChunker(MaxTokens(70), MinTokens(10), OverlapTokens(0))
	require.NoError(t, err)
	pipeline, err := NewPipeline(WithChunker(chunker))
	require.NoError(t, err)

	chunks, err := pipeline.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Guide", chunks[0].SectionTitle)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.NotEmpty(t, chunk.ObjectID)
	}
}

func TestPipelineEmbedAndStore(t *testing.T) {
	store, err := NewVectorStore(StoreConfig{Type: "chromem", Dimension: 3})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Connect(ctx))
	defer store.Close()

	chunker, err := NewChunker(MaxTokens(50), MinTokens(10), OverlapTokens(5))
	require.NoError(t, err)
	pipeline, err := NewPipeline(
		WithChunker(chunker),
		WithEmbedder(stubEmbedder{}),
		WithStore(store, "test-chunks"),
	)
	require.NoError(t, err)

	doc := Document{ID: "doc-1", Content: paragraph("a", 40) + "\n\n" + paragraph("b", 40)}
	chunks, err := pipeline.ProcessDocument(ctx, doc)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	hits, err := pipeline.Query(ctx, "a query string", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, hits)

	require.NoError(t, pipeline.DeleteDocument(ctx, "doc-1"))
}

func TestPipelineEmptyDocument(t *testing.T) {
	pipeline, err := NewPipeline()
	require.NoError(t, err)

	_, err = pipeline.ProcessDocument(context.Background(), Document{ID: "doc-1", Content: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeEmptyText)
}
