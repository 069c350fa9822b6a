package rag

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FixedStrategy slides a fixed-size window over the raw token stream,
// ignoring paragraph and section boundaries entirely. Chunk k covers the
// token range [k*step, k*step+MaxTokens) with step = MaxTokens -
// OverlapTokens, each window decoded back to text. The most mechanical
// strategy, useful when structure in the source text is unreliable.
type FixedStrategy struct {
	Counter TokenCounter
}

// Name returns the strategy tag.
func (s *FixedStrategy) Name() string { return StrategyFixed }

// Chunk splits text into fixed token windows owned by documentID.
func (s *FixedStrategy) Chunk(text, documentID string, opts ChunkingOptions) ChunkingResult {
	opts = opts.Normalize()
	return runStrategy(StrategyFixed, text, func() ChunkingResult {
		counter := guardedCounter{inner: s.Counter}
		tokens := counter.Encode(text)

		if len(tokens) < opts.MinTokens {
			return singleChunkResult(text, documentID, StrategyFixed, counter, nil, len(tokens))
		}

		step := opts.MaxTokens - opts.OverlapTokens
		if step < 1 {
			step = 1
		}

		var chunks []Chunk
		for start := 0; start < len(tokens); start += step {
			end := start + opts.MaxTokens
			if end > len(tokens) {
				end = len(tokens)
			}
			content := counter.Decode(tokens[start:end])

			overlapBefore := start > 0 && opts.OverlapTokens > 0
			overlapAfter := end < len(tokens) && opts.OverlapTokens > 0
			meta := ChunkMetadata{
				HasOverlapBefore: overlapBefore,
				HasOverlapAfter:  overlapAfter,
				WordCount:        len(strings.Fields(content)),
			}
			if overlapBefore {
				meta.OverlapTokens = opts.OverlapTokens
			}

			chunks = append(chunks, Chunk{
				ID:               uuid.NewString(),
				ObjectID:         documentID,
				ChunkIndex:       len(chunks),
				Content:          content,
				TokenCount:       end - start,
				ChunkingStrategy: StrategyFixed,
				Metadata:         meta,
				CreatedAt:        time.Now().UTC(),
			})

			if end == len(tokens) {
				break
			}
		}

		return ChunkingResult{
			Success:     true,
			Chunks:      chunks,
			TotalTokens: len(tokens),
		}
	})
}
