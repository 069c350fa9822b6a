package docchunk

import (
	"context"
	"fmt"

	"github.com/RidgetopAi/docchunk/rag"
)

// Pipeline wires the full document flow: parse a file, chunk its text,
// embed the chunks, and store them for retrieval. Each stage can be
// replaced through options; only the chunker is required — parsing,
// embedding, and storage stages are skipped when unset, so the pipeline
// also serves chunk-only callers.
type Pipeline struct {
	parser     *ParserManager
	chunker    *Chunker
	embedder   Embedder
	store      VectorStore
	collection string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// NewPipeline creates a Pipeline with a default parser and chunker.
func NewPipeline(options ...PipelineOption) (*Pipeline, error) {
	chunker, err := NewChunker()
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		parser:     NewParser(),
		chunker:    chunker,
		collection: "chunks",
	}
	for _, option := range options {
		option(p)
	}
	return p, nil
}

// WithChunker replaces the default chunker.
func WithChunker(chunker *Chunker) PipelineOption {
	return func(p *Pipeline) {
		p.chunker = chunker
	}
}

// WithParser replaces the default parser manager.
func WithParser(parser *ParserManager) PipelineOption {
	return func(p *Pipeline) {
		p.parser = parser
	}
}

// WithEmbedder enables the embedding stage.
func WithEmbedder(embedder Embedder) PipelineOption {
	return func(p *Pipeline) {
		p.embedder = embedder
	}
}

// WithStore enables the storage stage. Requires an embedder.
func WithStore(store VectorStore, collection string) PipelineOption {
	return func(p *Pipeline) {
		p.store = store
		p.collection = collection
	}
}

// ProcessFile parses the file, chunks its text, and — when an embedder and
// store are configured — embeds and persists the chunks, replacing any
// previous chunk set for the document. The produced chunks are returned in
// order.
func (p *Pipeline) ProcessFile(ctx context.Context, filePath string) ([]Chunk, error) {
	doc, err := p.parser.Parse(filePath)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return p.ProcessDocument(ctx, doc)
}

// ProcessDocument chunks already-extracted text and runs the configured
// downstream stages.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc Document) ([]Chunk, error) {
	result := p.chunker.Chunk(doc.Content, doc.ID)
	if !result.Success {
		return nil, fmt.Errorf("chunking document %s: %s (%s)", doc.ID, result.Error, result.ErrorCode)
	}

	if p.embedder == nil {
		return result.Chunks, nil
	}

	embedded, err := rag.NewEmbeddingService(p.embedder).EmbedChunks(ctx, result.Chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding document %s: %w", doc.ID, err)
	}

	if p.store != nil {
		if err := p.store.SaveChunks(ctx, p.collection, embedded); err != nil {
			return nil, fmt.Errorf("storing document %s: %w", doc.ID, err)
		}
	}
	return result.Chunks, nil
}

// Query embeds the query text and returns the topK nearest stored chunks.
// Requires both an embedder and a store.
func (p *Pipeline) Query(ctx context.Context, query string, topK int) ([]ScoredChunk, error) {
	if p.embedder == nil || p.store == nil {
		return nil, fmt.Errorf("query requires an embedder and a store")
	}
	vector, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return p.store.Search(ctx, p.collection, vector, topK)
}

// DeleteDocument removes every stored chunk belonging to the document.
func (p *Pipeline) DeleteDocument(ctx context.Context, documentID string) error {
	if p.store == nil {
		return fmt.Errorf("no store configured")
	}
	return p.store.DeleteDocument(ctx, p.collection, documentID)
}
