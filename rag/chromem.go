package rag

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"
)

// ChromemStore is an embedded VectorStore backed by chromem-go, either
// in-memory or persisted to a directory. It stores precomputed embeddings
// only; no embedding calls are made from inside the store.
type ChromemStore struct {
	cfg         StoreConfig
	db          *chromem.DB
	mu          sync.Mutex
	collections map[string]*chromem.Collection
}

func newChromemStore(cfg StoreConfig) (*ChromemStore, error) {
	return &ChromemStore{
		cfg:         cfg,
		collections: make(map[string]*chromem.Collection),
	}, nil
}

// Connect opens or creates the database. A non-empty Address selects a
// persistent store at that directory.
func (c *ChromemStore) Connect(ctx context.Context) error {
	if c.cfg.Address == "" {
		c.db = chromem.NewDB()
		return nil
	}
	if err := os.MkdirAll(c.cfg.Address, 0o755); err != nil {
		return fmt.Errorf("failed to create chromem directory: %w", err)
	}
	db, err := chromem.NewPersistentDB(c.cfg.Address, false)
	if err != nil {
		return fmt.Errorf("failed to open persistent chromem store: %w", err)
	}
	c.db = db
	return nil
}

// Close is a no-op; chromem has no connection to release.
func (c *ChromemStore) Close() error {
	return nil
}

// rejectEmbedding guards against the store being asked to compute
// embeddings; every document saved here carries a precomputed vector.
func rejectEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("chromem store only accepts precomputed embeddings")
}

func (c *ChromemStore) collection(name string) (*chromem.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if col, ok := c.collections[name]; ok {
		return col, nil
	}
	col, err := c.db.GetOrCreateCollection(name, nil, rejectEmbedding)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", name, err)
	}
	c.collections[name] = col
	return col, nil
}

// SaveChunks deletes the owning documents' existing chunks and writes the
// new set.
func (c *ChromemStore) SaveChunks(ctx context.Context, collection string, chunks []EmbeddedChunk) error {
	col, err := c.collection(collection)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, ec := range chunks {
		if !seen[ec.Chunk.ObjectID] {
			seen[ec.Chunk.ObjectID] = true
			if err := col.Delete(ctx, map[string]string{"document_id": ec.Chunk.ObjectID}, nil); err != nil {
				return fmt.Errorf("failed to clear chunks for document %s: %w", ec.Chunk.ObjectID, err)
			}
		}
	}

	for _, ec := range chunks {
		doc := chromem.Document{
			ID:      ec.Chunk.ID,
			Content: ec.Chunk.Content,
			Metadata: map[string]string{
				"document_id":   ec.Chunk.ObjectID,
				"chunk_index":   strconv.Itoa(ec.Chunk.ChunkIndex),
				"section_title": ec.Chunk.SectionTitle,
				"strategy":      ec.Chunk.ChunkingStrategy,
			},
			Embedding: toFloat32(ec.Embedding),
		}
		if err := col.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("failed to store chunk %s: %w", ec.Chunk.ID, err)
		}
	}
	GlobalLogger.Debug("saved chunks", "collection", collection, "count", len(chunks))
	return nil
}

// DeleteDocument removes every chunk belonging to the document.
func (c *ChromemStore) DeleteDocument(ctx context.Context, collection, documentID string) error {
	col, err := c.collection(collection)
	if err != nil {
		return err
	}
	if err := col.Delete(ctx, map[string]string{"document_id": documentID}, nil); err != nil {
		return fmt.Errorf("failed to delete chunks for document %s: %w", documentID, err)
	}
	return nil
}

// Search returns the topK nearest chunks by cosine similarity.
func (c *ChromemStore) Search(ctx context.Context, collection string, vector []float64, topK int) ([]ScoredChunk, error) {
	col, err := c.collection(collection)
	if err != nil {
		return nil, err
	}
	if n := col.Count(); topK > n {
		topK = n
	}
	if topK <= 0 {
		return nil, nil
	}

	results, err := col.QueryEmbedding(ctx, toFloat32(vector), topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]ScoredChunk, 0, len(results))
	for _, r := range results {
		index, _ := strconv.Atoi(r.Metadata["chunk_index"])
		hits = append(hits, ScoredChunk{
			ChunkID:      r.ID,
			DocumentID:   r.Metadata["document_id"],
			ChunkIndex:   index,
			Content:      r.Content,
			SectionTitle: r.Metadata["section_title"],
			Score:        float64(r.Similarity),
		})
	}
	return hits, nil
}
