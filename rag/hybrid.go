package rag

// HybridStrategy packs paragraph units like SemanticStrategy but keeps the
// overlap window alive across the chunk boundaries created inside an
// oversized paragraph's sentence-level split. Sub-chunks of one large
// paragraph therefore share trailing context the same way ordinary
// adjacent chunks do, at the cost of extra per-sentence token bookkeeping.
type HybridStrategy struct {
	Counter TokenCounter
}

// Name returns the strategy tag.
func (s *HybridStrategy) Name() string { return StrategyHybrid }

// Chunk splits text along paragraph boundaries into chunks owned by
// documentID, preserving overlap through forced sub-splits.
func (s *HybridStrategy) Chunk(text, documentID string, opts ChunkingOptions) ChunkingResult {
	return chunkUnits(s.Counter, text, documentID, StrategyHybrid, opts, true)
}
