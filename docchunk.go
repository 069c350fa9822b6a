// Package docchunk splits extracted document text into token-bounded,
// overlapping chunks suitable for embedding and retrieval in a RAG
// pipeline. Three strategies are available: fixed token windows, semantic
// packing along paragraph boundaries, and a hybrid that preserves overlap
// even across forced sub-splits of oversized paragraphs.
//
// The package is a thin façade over the rag package, which holds the
// chunking engine together with the surrounding pipeline stages: document
// parsing, batched embedding, and vector storage.
package docchunk

import (
	"github.com/RidgetopAi/docchunk/rag"
)

// Chunk is a contiguous, token-bounded segment of a document, optionally
// prefixed with overlap carried from the previous chunk.
type Chunk = rag.Chunk

// ChunkMetadata carries per-chunk overlap flags and size bookkeeping.
type ChunkMetadata = rag.ChunkMetadata

// ChunkingOptions is the token budget and strategy selection for one
// chunking call.
type ChunkingOptions = rag.ChunkingOptions

// ChunkingResult is the all-or-nothing outcome of one chunking call.
type ChunkingResult = rag.ChunkingResult

// DocumentSection is a heading-delimited region used to label chunks.
type DocumentSection = rag.DocumentSection

// SemanticUnit is a paragraph-level span, the smallest piece the semantic
// strategies try to keep intact.
type SemanticUnit = rag.SemanticUnit

// TokenCounter is the injected tokenization capability: count, encode,
// and decode.
type TokenCounter = rag.TokenCounter

// Strategy names.
const (
	StrategyFixed    = rag.StrategyFixed
	StrategySemantic = rag.StrategySemantic
	StrategyHybrid   = rag.StrategyHybrid
)

// Error codes reported in ChunkingResult.ErrorCode.
const (
	ErrCodeEmptyText    = rag.ErrCodeEmptyText
	ErrCodeTokenization = rag.ErrCodeTokenization
	ErrCodeUnknown      = rag.ErrCodeUnknown
)

// Chunker runs a configured chunking strategy over document text. A
// Chunker holds no per-call state and may be shared across goroutines.
type Chunker struct {
	counter rag.TokenCounter
	opts    rag.ChunkingOptions
}

// ChunkerOption configures a Chunker.
type ChunkerOption func(*Chunker)

// NewChunker creates a Chunker. Defaults: semantic strategy, 512 max
// tokens, 100 min tokens, 50 overlap tokens, and a word-based token
// counter. Use WithTokenCounter with a TikTokenCounter for model-accurate
// budgeting.
func NewChunker(options ...ChunkerOption) (*Chunker, error) {
	c := &Chunker{
		counter: rag.NewWordTokenCounter(),
		opts: rag.ChunkingOptions{
			Strategy:      rag.StrategySemantic,
			MaxTokens:     rag.DefaultMaxTokens,
			MinTokens:     rag.DefaultMinTokens,
			OverlapTokens: rag.DefaultOverlapTokens,
		},
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// WithStrategy selects the chunking strategy: StrategyFixed,
// StrategySemantic, or StrategyHybrid.
func WithStrategy(name string) ChunkerOption {
	return func(c *Chunker) {
		c.opts.Strategy = name
	}
}

// MaxTokens sets the hard per-chunk token ceiling.
func MaxTokens(n int) ChunkerOption {
	return func(c *Chunker) {
		c.opts.MaxTokens = n
	}
}

// MinTokens sets the total token count below which a document becomes a
// single unsplit chunk.
func MinTokens(n int) ChunkerOption {
	return func(c *Chunker) {
		c.opts.MinTokens = n
	}
}

// OverlapTokens sets the number of tokens repeated at the start of each
// non-first chunk.
func OverlapTokens(n int) ChunkerOption {
	return func(c *Chunker) {
		c.opts.OverlapTokens = n
	}
}

// WithTokenCounter injects a custom token counter.
func WithTokenCounter(counter TokenCounter) ChunkerOption {
	return func(c *Chunker) {
		c.counter = counter
	}
}

// Chunk splits text into chunks owned by documentID. All failures come
// back inside the result; the method never panics or returns an error
// value.
func (c *Chunker) Chunk(text, documentID string) ChunkingResult {
	return rag.ChunkText(text, documentID, c.counter, c.opts)
}

// NewWordTokenCounter creates the whitespace-based token counter where
// each word is one token.
func NewWordTokenCounter() TokenCounter {
	return rag.NewWordTokenCounter()
}

// NewTikTokenCounter creates a token counter for the named tiktoken
// encoding, e.g. "cl100k_base".
func NewTikTokenCounter(encoding string) (TokenCounter, error) {
	return rag.NewTikTokenCounter(encoding)
}
