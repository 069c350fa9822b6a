package rag

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Strategy names accepted in ChunkingOptions.Strategy.
const (
	// StrategyFixed slides a fixed-size window over the raw token stream.
	StrategyFixed = "fixed"
	// StrategySemantic packs paragraph units, splitting oversized ones
	// into sentences.
	StrategySemantic = "semantic"
	// StrategyHybrid is Semantic plus overlap carried across the forced
	// sentence-level splits of oversized paragraphs.
	StrategyHybrid = "hybrid"
)

// Error codes surfaced in ChunkingResult.ErrorCode.
const (
	// ErrCodeEmptyText reports blank or whitespace-only input.
	ErrCodeEmptyText = "EMPTY_TEXT"
	// ErrCodeTokenization reports a failure inside the injected TokenCounter.
	ErrCodeTokenization = "TOKENIZATION_FAILED"
	// ErrCodeUnknown reports any other unexpected failure.
	ErrCodeUnknown = "UNKNOWN_ERROR"
)

// Default token budget applied when the caller leaves options zero-valued.
const (
	DefaultMaxTokens     = 512
	DefaultMinTokens     = 100
	DefaultOverlapTokens = 50
)

// ChunkingOptions is the token budget and policy selection for one chunking
// call. Zero values are replaced with defaults by Normalize.
type ChunkingOptions struct {
	// Strategy selects fixed, semantic, or hybrid packing.
	Strategy string
	// MaxTokens is the hard per-chunk token ceiling.
	MaxTokens int
	// MinTokens short-circuits documents below this total token count
	// into a single unsplit chunk.
	MinTokens int
	// OverlapTokens is the number of tokens repeated at the start of each
	// non-first chunk; zero disables overlap. Must be smaller than
	// MaxTokens; larger values are clamped.
	OverlapTokens int
}

// Normalize fills in defaults for zero-valued fields and clamps the overlap
// below the ceiling.
func (o ChunkingOptions) Normalize() ChunkingOptions {
	if o.Strategy == "" {
		o.Strategy = StrategySemantic
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.MinTokens <= 0 {
		o.MinTokens = DefaultMinTokens
	}
	if o.OverlapTokens < 0 {
		o.OverlapTokens = 0
	}
	if o.OverlapTokens >= o.MaxTokens {
		GlobalLogger.Warn("overlap window clamped below token ceiling",
			"overlapTokens", o.OverlapTokens, "maxTokens", o.MaxTokens)
		o.OverlapTokens = o.MaxTokens - 1
	}
	return o
}

// ChunkMetadata carries per-chunk bookkeeping used by retrieval and
// diagnostics.
type ChunkMetadata struct {
	// HasOverlapBefore is true when the chunk content starts with overlap
	// carried from the previous chunk.
	HasOverlapBefore bool `json:"has_overlap_before"`
	// HasOverlapAfter is true when a later chunk repeats this chunk's tail.
	HasOverlapAfter bool `json:"has_overlap_after"`
	// WordCount is the whitespace-delimited word count of Content.
	WordCount int `json:"word_count"`
	// UnitCount is the number of semantic units or sentences packed into
	// the chunk, zero for fixed-window chunks.
	UnitCount int `json:"unit_count,omitempty"`
	// OverlapTokens is the token length of the leading overlap prefix.
	OverlapTokens int `json:"overlap_tokens,omitempty"`
}

// Chunk is a contiguous, token-bounded segment of a document, optionally
// prefixed with overlap from the previous chunk. Chunks are immutable once
// produced; re-chunking a document replaces its whole chunk set.
type Chunk struct {
	// ID uniquely identifies the chunk; embeddings are attached by ID.
	ID string `json:"id"`
	// ObjectID references the owning document.
	ObjectID string `json:"object_id"`
	// ChunkIndex is the zero-based, contiguous position of the chunk
	// within one chunking result.
	ChunkIndex int `json:"chunk_index"`
	// Content is the chunk text including any leading overlap.
	Content string `json:"content"`
	// TokenCount is the token count of Content, overlap included.
	TokenCount int `json:"token_count"`
	// SectionTitle is the innermost section containing the chunk's first
	// unit, empty when the chunk precedes the first heading or the
	// document has none.
	SectionTitle string `json:"section_title,omitempty"`
	// ChunkingStrategy tags which policy produced the chunk.
	ChunkingStrategy string `json:"chunking_strategy"`
	// Metadata holds overlap flags and size bookkeeping.
	Metadata ChunkMetadata `json:"metadata"`
	// CreatedAt is the chunk creation time.
	CreatedAt time.Time `json:"created_at"`
}

// ChunkingResult is the all-or-nothing outcome of one chunking call. On
// failure Chunks is empty and Error/ErrorCode describe what went wrong;
// nothing partial is ever returned.
type ChunkingResult struct {
	Success bool    `json:"success"`
	Chunks  []Chunk `json:"chunks"`
	// TotalTokens is the token total over consumed fragments, without
	// double-counting overlap.
	TotalTokens int    `json:"total_tokens"`
	Error       string `json:"error,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
}

// Strategy is one chunking policy. Implementations are stateless: every
// call allocates its own sections, units, and result, so any number of
// documents can be chunked concurrently.
type Strategy interface {
	// Chunk splits text into token-bounded chunks owned by documentID.
	Chunk(text, documentID string, opts ChunkingOptions) ChunkingResult
	// Name returns the strategy tag recorded on produced chunks.
	Name() string
}

// NewStrategy returns the Strategy implementation for the given name,
// backed by the given token counter.
func NewStrategy(name string, counter TokenCounter) (Strategy, error) {
	switch name {
	case StrategyFixed:
		return &FixedStrategy{Counter: counter}, nil
	case StrategySemantic:
		return &SemanticStrategy{Counter: counter}, nil
	case StrategyHybrid:
		return &HybridStrategy{Counter: counter}, nil
	default:
		return nil, fmt.Errorf("unknown chunking strategy: %s", name)
	}
}

// ChunkText runs the strategy selected by opts.Strategy over the text.
// This is the primary entry point: it validates input, dispatches to the
// selected strategy, and converts every failure mode into a structured
// result — no error or panic escapes to the caller.
func ChunkText(text, documentID string, counter TokenCounter, opts ChunkingOptions) ChunkingResult {
	opts = opts.Normalize()
	strategy, err := NewStrategy(opts.Strategy, counter)
	if err != nil {
		return failedResult(ErrCodeUnknown, err.Error())
	}
	return strategy.Chunk(text, documentID, opts)
}

// runStrategy is the shared guard wrapping each strategy's packing
// function. It rejects blank input, tags tokenizer panics as
// TOKENIZATION_FAILED, and reports anything else as UNKNOWN_ERROR.
func runStrategy(name, text string, pack func() ChunkingResult) (result ChunkingResult) {
	if strings.TrimSpace(text) == "" {
		return failedResult(ErrCodeEmptyText, "document text is empty")
	}

	defer func() {
		if r := recover(); r != nil {
			if tf, ok := r.(tokenizeFailure); ok {
				GlobalLogger.Error("tokenizer failed during chunking", "strategy", name, "cause", tf.cause)
				result = failedResult(ErrCodeTokenization, fmt.Sprintf("tokenization failed: %v", tf.cause))
				return
			}
			GlobalLogger.Error("chunking failed", "strategy", name, "cause", r)
			result = failedResult(ErrCodeUnknown, fmt.Sprintf("chunking failed: %v", r))
		}
	}()

	result = pack()
	GlobalLogger.Debug("chunking complete", "strategy", name,
		"chunks", len(result.Chunks), "totalTokens", result.TotalTokens)
	return result
}

func failedResult(code, msg string) ChunkingResult {
	return ChunkingResult{
		Success:   false,
		Chunks:    []Chunk{},
		Error:     msg,
		ErrorCode: code,
	}
}

// singleChunkResult builds the short-circuit result for documents whose
// total token count is below MinTokens: one chunk covering the whole text,
// no overlap on either side.
func singleChunkResult(text, documentID, strategy string, counter TokenCounter, sections []DocumentSection, totalTokens int) ChunkingResult {
	content := strings.TrimSpace(text)
	chunk := Chunk{
		ID:               uuid.NewString(),
		ObjectID:         documentID,
		ChunkIndex:       0,
		Content:          content,
		TokenCount:       counter.Count(content),
		SectionTitle:     sectionTitleAt(sections, 0),
		ChunkingStrategy: strategy,
		Metadata: ChunkMetadata{
			WordCount: len(strings.Fields(content)),
		},
		CreatedAt: time.Now().UTC(),
	}
	return ChunkingResult{
		Success:     true,
		Chunks:      []Chunk{chunk},
		TotalTokens: totalTokens,
	}
}
