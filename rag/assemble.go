package rag

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// fragment is one packable piece of text: a paragraph unit or, when a unit
// overflows the budget, a sentence carved out of it. sep is the joiner used
// when the fragment is appended after existing chunk content.
type fragment struct {
	text      string
	tokens    int
	startChar int
	sep       string
}

const (
	unitSep     = "\n\n"
	sentenceSep = " "
)

// assembler is the greedy packer shared by the Semantic and Hybrid
// strategies. It accumulates fragments into an in-progress chunk, flushes
// when the next fragment would overflow MaxTokens, and seeds the next chunk
// with the trailing OverlapTokens tokens of the flushed content. The whole
// accumulator lives for one chunking call and is never shared.
type assembler struct {
	counter  TokenCounter
	opts     ChunkingOptions
	sections []DocumentSection
	docID    string
	strategy string
	// overlapInSplit keeps seeding overlap across the chunk boundaries
	// created inside one oversized unit's sentence-level split (Hybrid).
	overlapInSplit bool

	chunks      []Chunk
	totalTokens int

	// in-progress chunk, reset on every flush
	body        strings.Builder
	bodyTokens  int
	unitCount   int
	startChar   int
	overlapText string
	overlapTok  int
}

func newAssembler(counter TokenCounter, opts ChunkingOptions, sections []DocumentSection, docID, strategy string, overlapInSplit bool) *assembler {
	return &assembler{
		counter:        counter,
		opts:           opts,
		sections:       sections,
		docID:          docID,
		strategy:       strategy,
		overlapInSplit: overlapInSplit,
		startChar:      -1,
	}
}

func (a *assembler) hasContent() bool {
	return a.body.Len() > 0
}

// currentTokens is the running size of the in-progress chunk, leading
// overlap included.
func (a *assembler) currentTokens() int {
	return a.overlapTok + a.bodyTokens
}

// addUnit packs one paragraph unit. A unit that alone exceeds the ceiling
// cannot be packed whole: pending content is flushed and the unit is split
// into sentences, which are packed with the same greedy rule.
func (a *assembler) addUnit(u SemanticUnit) {
	f := fragment{text: u.Text, tokens: u.TokenCount, startChar: u.StartChar, sep: unitSep}
	if f.tokens > a.opts.MaxTokens {
		if a.hasContent() {
			a.flush(true)
		}
		a.addOversizedUnit(u)
		return
	}
	a.append(f, true)
}

// addOversizedUnit splits a unit larger than MaxTokens into sentences and
// packs them. Chunk boundaries created inside the split seed overlap only
// when overlapInSplit is set; a sentence that still exceeds the ceiling is
// emitted verbatim as its own chunk rather than cut mid-token.
func (a *assembler) addOversizedUnit(u SemanticUnit) {
	cursor := 0
	for _, s := range SplitSentences(u.Text) {
		rel := strings.Index(u.Text[cursor:], s)
		if rel < 0 {
			rel = 0
		}
		abs := u.StartChar + cursor + rel
		cursor += rel + len(s)

		f := fragment{text: s, tokens: a.counter.Count(s), startChar: abs, sep: sentenceSep}
		if f.tokens > a.opts.MaxTokens {
			if a.hasContent() {
				a.flush(a.overlapInSplit)
			}
			a.emitVerbatim(f)
			continue
		}
		a.append(f, a.overlapInSplit)
	}
}

// append adds a fragment to the in-progress chunk, flushing first when the
// fragment would push the chunk past MaxTokens. carryOverlap controls
// whether that flush seeds the next chunk with overlap.
func (a *assembler) append(f fragment, carryOverlap bool) {
	if a.hasContent() && a.currentTokens()+f.tokens > a.opts.MaxTokens {
		a.flush(carryOverlap)
	}
	// A seeded overlap window counts against the ceiling too: shrink it so
	// the first fragment of the new chunk still fits under MaxTokens.
	if !a.hasContent() && a.overlapTok > 0 && a.overlapTok+f.tokens > a.opts.MaxTokens {
		a.trimOverlap(a.opts.MaxTokens - f.tokens)
	}
	if a.startChar < 0 {
		a.startChar = f.startChar
	}
	if a.body.Len() > 0 {
		a.body.WriteString(f.sep)
	}
	a.body.WriteString(f.text)
	a.bodyTokens += f.tokens
	a.unitCount++
	a.totalTokens += f.tokens
}

// trimOverlap shrinks the seeded overlap window to at most budget tokens,
// dropping the oldest tokens first.
func (a *assembler) trimOverlap(budget int) {
	if budget <= 0 {
		a.dropOverlap()
		return
	}
	ids := a.counter.Encode(a.overlapText)
	if len(ids) > budget {
		ids = ids[len(ids)-budget:]
	}
	a.overlapText = a.counter.Decode(ids)
	a.overlapTok = len(ids)
}

// dropOverlap discards a seeded overlap window and retracts the previous
// chunk's HasOverlapAfter mark, since nothing carries the window forward.
func (a *assembler) dropOverlap() {
	if a.overlapTok > 0 {
		if n := len(a.chunks); n > 0 {
			a.chunks[n-1].Metadata.HasOverlapAfter = false
		}
	}
	a.overlapText = ""
	a.overlapTok = 0
}

// emitVerbatim emits a single fragment as its own chunk, unmodified and
// without any overlap prefix. Used for sentences that exceed MaxTokens on
// their own; this is the one case where a chunk may break the ceiling.
func (a *assembler) emitVerbatim(f fragment) {
	a.dropOverlap()
	a.chunks = append(a.chunks, Chunk{
		ID:               uuid.NewString(),
		ObjectID:         a.docID,
		ChunkIndex:       len(a.chunks),
		Content:          f.text,
		TokenCount:       f.tokens,
		SectionTitle:     sectionTitleAt(a.sections, f.startChar),
		ChunkingStrategy: a.strategy,
		Metadata: ChunkMetadata{
			WordCount: len(strings.Fields(f.text)),
			UnitCount: 1,
		},
		CreatedAt: time.Now().UTC(),
	})
	a.totalTokens += f.tokens
}

// flush emits the in-progress chunk. When carryOverlap is set and an
// overlap window is configured, the trailing OverlapTokens tokens of the
// chunk's pre-overlap content are decoded back to text and seed the next
// chunk; the flushed chunk is then marked HasOverlapAfter.
func (a *assembler) flush(carryOverlap bool) {
	if !a.hasContent() {
		return
	}

	body := a.body.String()
	content := body
	if a.overlapText != "" {
		content = a.overlapText + sentenceSep + body
	}

	chunk := Chunk{
		ID:               uuid.NewString(),
		ObjectID:         a.docID,
		ChunkIndex:       len(a.chunks),
		Content:          content,
		TokenCount:       a.counter.Count(content),
		SectionTitle:     sectionTitleAt(a.sections, a.startChar),
		ChunkingStrategy: a.strategy,
		Metadata: ChunkMetadata{
			HasOverlapBefore: a.overlapTok > 0,
			WordCount:        len(strings.Fields(content)),
			UnitCount:        a.unitCount,
			OverlapTokens:    a.overlapTok,
		},
		CreatedAt: time.Now().UTC(),
	}

	nextOverlapText := ""
	nextOverlapTok := 0
	if carryOverlap && a.opts.OverlapTokens > 0 {
		ids := a.counter.Encode(body)
		if len(ids) > a.opts.OverlapTokens {
			ids = ids[len(ids)-a.opts.OverlapTokens:]
		}
		nextOverlapText = a.counter.Decode(ids)
		nextOverlapTok = len(ids)
		chunk.Metadata.HasOverlapAfter = nextOverlapTok > 0
	}

	a.chunks = append(a.chunks, chunk)

	a.body.Reset()
	a.bodyTokens = 0
	a.unitCount = 0
	a.startChar = -1
	a.overlapText = nextOverlapText
	a.overlapTok = nextOverlapTok
}

// finish flushes any remaining content and returns the ordered chunks. The
// last chunk never advertises overlap after it.
func (a *assembler) finish() []Chunk {
	a.flush(false)
	if n := len(a.chunks); n > 0 {
		a.chunks[n-1].Metadata.HasOverlapAfter = false
	}
	return a.chunks
}
