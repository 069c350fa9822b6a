package rag

// SemanticStrategy packs paragraph units into chunks, preferring natural
// boundaries over exact sizes. Paragraphs are appended greedily until the
// token ceiling would be crossed; a paragraph that alone exceeds the
// ceiling is split into sentences and those are packed instead. Overlap is
// carried only across ordinary chunk-flush boundaries, never synthesized
// inside a forced sentence-level split.
type SemanticStrategy struct {
	Counter TokenCounter
}

// Name returns the strategy tag.
func (s *SemanticStrategy) Name() string { return StrategySemantic }

// Chunk splits text along paragraph boundaries into chunks owned by
// documentID.
func (s *SemanticStrategy) Chunk(text, documentID string, opts ChunkingOptions) ChunkingResult {
	return chunkUnits(s.Counter, text, documentID, StrategySemantic, opts, false)
}

// chunkUnits is the unit-driven packing pipeline shared by the Semantic
// and Hybrid strategies: detect sections, split paragraphs, short-circuit
// small documents, then run the greedy assembler.
func chunkUnits(tc TokenCounter, text, documentID, strategy string, opts ChunkingOptions, overlapInSplit bool) ChunkingResult {
	opts = opts.Normalize()
	return runStrategy(strategy, text, func() ChunkingResult {
		counter := guardedCounter{inner: tc}
		sections := DetectSections(text)
		units := SplitUnits(text, counter)

		total := 0
		for _, u := range units {
			total += u.TokenCount
		}
		if total < opts.MinTokens {
			return singleChunkResult(text, documentID, strategy, counter, sections, total)
		}

		a := newAssembler(counter, opts, sections, documentID, strategy, overlapInSplit)
		for _, u := range units {
			a.addUnit(u)
		}
		chunks := a.finish()

		return ChunkingResult{
			Success:     true,
			Chunks:      chunks,
			TotalTokens: a.totalTokens,
		}
	})
}
