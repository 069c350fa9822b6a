package rag

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// Milvus collection field names.
const (
	milvusFieldID       = "id"
	milvusFieldDocument = "document_id"
	milvusFieldIndex    = "chunk_index"
	milvusFieldContent  = "content"
	milvusFieldSection  = "section_title"
	milvusFieldVector   = "vector"
)

// MilvusStore is a server-backed VectorStore using the Milvus SDK. The
// chunk schema mirrors the Chunk type: string primary key, owning document
// reference, chunk index, content, section title, and the embedding
// vector under an HNSW index.
type MilvusStore struct {
	cfg    StoreConfig
	client client.Client
}

func newMilvusStore(cfg StoreConfig) (*MilvusStore, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("milvus store requires an address")
	}
	return &MilvusStore{cfg: cfg}, nil
}

// Connect dials the Milvus server.
func (m *MilvusStore) Connect(ctx context.Context) error {
	c, err := client.NewClient(ctx, client.Config{Address: m.cfg.Address})
	if err != nil {
		return fmt.Errorf("failed to connect to milvus at %s: %w", m.cfg.Address, err)
	}
	m.client = c
	return nil
}

// Close releases the client connection.
func (m *MilvusStore) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}

// ensureCollection creates, indexes, and loads the chunk collection on
// first use.
func (m *MilvusStore) ensureCollection(ctx context.Context, name string) error {
	has, err := m.client.HasCollection(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", name, err)
	}
	if !has {
		schema := entity.NewSchema().WithName(name).WithDescription("token-bounded document chunks").
			WithField(entity.NewField().WithName(milvusFieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64).WithIsPrimaryKey(true)).
			WithField(entity.NewField().WithName(milvusFieldDocument).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64)).
			WithField(entity.NewField().WithName(milvusFieldIndex).WithDataType(entity.FieldTypeInt64)).
			WithField(entity.NewField().WithName(milvusFieldContent).WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535)).
			WithField(entity.NewField().WithName(milvusFieldSection).WithDataType(entity.FieldTypeVarChar).WithMaxLength(1024)).
			WithField(entity.NewField().WithName(milvusFieldVector).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(m.cfg.Dimension)))
		if err := m.client.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
		idx, err := entity.NewIndexHNSW(entity.IP, 16, 200)
		if err != nil {
			return fmt.Errorf("failed to build HNSW index definition: %w", err)
		}
		if err := m.client.CreateIndex(ctx, name, milvusFieldVector, idx, false); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}
	if err := m.client.LoadCollection(ctx, name, false); err != nil {
		return fmt.Errorf("failed to load collection %s: %w", name, err)
	}
	return nil
}

// SaveChunks deletes the owning documents' existing chunks and inserts
// the new set in one pass.
func (m *MilvusStore) SaveChunks(ctx context.Context, collection string, chunks []EmbeddedChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := m.ensureCollection(ctx, collection); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, ec := range chunks {
		if !seen[ec.Chunk.ObjectID] {
			seen[ec.Chunk.ObjectID] = true
			expr := fmt.Sprintf(`%s == "%s"`, milvusFieldDocument, ec.Chunk.ObjectID)
			if err := m.client.Delete(ctx, collection, "", expr); err != nil {
				return fmt.Errorf("failed to clear chunks for document %s: %w", ec.Chunk.ObjectID, err)
			}
		}
	}

	ids := make([]string, 0, len(chunks))
	docIDs := make([]string, 0, len(chunks))
	indexes := make([]int64, 0, len(chunks))
	contents := make([]string, 0, len(chunks))
	sections := make([]string, 0, len(chunks))
	vectors := make([][]float32, 0, len(chunks))
	for _, ec := range chunks {
		ids = append(ids, ec.Chunk.ID)
		docIDs = append(docIDs, ec.Chunk.ObjectID)
		indexes = append(indexes, int64(ec.Chunk.ChunkIndex))
		contents = append(contents, ec.Chunk.Content)
		sections = append(sections, ec.Chunk.SectionTitle)
		vectors = append(vectors, toFloat32(ec.Embedding))
	}

	_, err := m.client.Insert(ctx, collection, "",
		entity.NewColumnVarChar(milvusFieldID, ids),
		entity.NewColumnVarChar(milvusFieldDocument, docIDs),
		entity.NewColumnInt64(milvusFieldIndex, indexes),
		entity.NewColumnVarChar(milvusFieldContent, contents),
		entity.NewColumnVarChar(milvusFieldSection, sections),
		entity.NewColumnFloatVector(milvusFieldVector, m.cfg.Dimension, vectors),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunks: %w", err)
	}
	if err := m.client.Flush(ctx, collection, false); err != nil {
		return fmt.Errorf("failed to flush collection %s: %w", collection, err)
	}
	GlobalLogger.Debug("saved chunks", "collection", collection, "count", len(chunks))
	return nil
}

// DeleteDocument removes every chunk belonging to the document.
func (m *MilvusStore) DeleteDocument(ctx context.Context, collection, documentID string) error {
	expr := fmt.Sprintf(`%s == "%s"`, milvusFieldDocument, documentID)
	if err := m.client.Delete(ctx, collection, "", expr); err != nil {
		return fmt.Errorf("failed to delete chunks for document %s: %w", documentID, err)
	}
	return nil
}

// Search returns the topK nearest chunks by inner-product similarity.
func (m *MilvusStore) Search(ctx context.Context, collection string, vector []float64, topK int) ([]ScoredChunk, error) {
	if err := m.ensureCollection(ctx, collection); err != nil {
		return nil, err
	}

	sp, err := entity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, fmt.Errorf("failed to build search params: %w", err)
	}
	outputFields := []string{milvusFieldDocument, milvusFieldIndex, milvusFieldContent, milvusFieldSection}
	results, err := m.client.Search(ctx, collection, nil, "", outputFields,
		[]entity.Vector{entity.FloatVector(toFloat32(vector))},
		milvusFieldVector, entity.IP, topK, sp)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var hits []ScoredChunk
	for _, rs := range results {
		for i := 0; i < rs.ResultCount; i++ {
			hit := ScoredChunk{Score: float64(rs.Scores[i])}
			if id, err := rs.IDs.GetAsString(i); err == nil {
				hit.ChunkID = id
			}
			for _, field := range outputFields {
				col := rs.Fields.GetColumn(field)
				if col == nil {
					continue
				}
				switch field {
				case milvusFieldDocument:
					hit.DocumentID, _ = col.GetAsString(i)
				case milvusFieldIndex:
					idx, _ := col.GetAsInt64(i)
					hit.ChunkIndex = int(idx)
				case milvusFieldContent:
					hit.Content, _ = col.GetAsString(i)
				case milvusFieldSection:
					hit.SectionTitle, _ = col.GetAsString(i)
				}
			}
			hits = append(hits, hit)
		}
	}
	return hits, nil
}
