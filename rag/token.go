// Package rag implements the document chunking engine: token counting,
// section detection, semantic unit splitting, and the strategies that pack
// units into token-bounded, overlapping chunks ready for embedding.
package rag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter is the tokenization capability injected into the chunking
// engine. Count must agree with len(Encode(text)), and Decode(Encode(t))
// must reproduce t up to whitespace-insensitive equivalence — the engine
// uses Encode/Decode to slice overlap windows and fixed-size token ranges
// back into text.
//
// Implementations are expected to be stateless or internally synchronized;
// the engine calls them from concurrent chunking invocations.
type TokenCounter interface {
	// Count returns the number of tokens in the given text.
	Count(text string) int
	// Encode converts text into a sequence of token identifiers.
	Encode(text string) []int
	// Decode converts a sequence of token identifiers back into text.
	Decode(tokens []int) string
}

// WordTokenCounter is a simple whitespace-based TokenCounter where each
// word is one token. Token identifiers index into an internal vocabulary
// built lazily as words are encoded, so Decode reproduces the original
// words joined by single spaces. Suitable for tests and rough budgeting;
// use TikTokenCounter for model-accurate counts.
type WordTokenCounter struct {
	mu    sync.RWMutex
	ids   map[string]int
	words []string
}

// NewWordTokenCounter creates an empty word-based token counter.
func NewWordTokenCounter() *WordTokenCounter {
	return &WordTokenCounter{ids: make(map[string]int)}
}

// Count returns the number of whitespace-separated words in the text.
func (w *WordTokenCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// Encode maps each word to a stable identifier, growing the vocabulary
// for words not seen before.
func (w *WordTokenCounter) Encode(text string) []int {
	fields := strings.Fields(text)
	tokens := make([]int, len(fields))

	w.mu.Lock()
	defer w.mu.Unlock()
	for i, f := range fields {
		id, ok := w.ids[f]
		if !ok {
			id = len(w.words)
			w.ids[f] = id
			w.words = append(w.words, f)
		}
		tokens[i] = id
	}
	return tokens
}

// Decode joins the words behind the given identifiers with single spaces.
// Unknown identifiers are skipped.
func (w *WordTokenCounter) Decode(tokens []int) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t >= 0 && t < len(w.words) {
			parts = append(parts, w.words[t])
		}
	}
	return strings.Join(parts, " ")
}

// TikTokenCounter is a TokenCounter backed by the tiktoken library,
// matching the tokenization used by OpenAI embedding and chat models.
type TikTokenCounter struct {
	tke *tiktoken.Tiktoken
}

// NewTikTokenCounter creates a TikTokenCounter for the named encoding.
// Common encodings: "cl100k_base" (GPT-4, text-embedding-3-*),
// "p50k_base" (GPT-3).
func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %q: %w", encoding, err)
	}
	return &TikTokenCounter{tke: tke}, nil
}

// Count returns the exact token count for the text under this encoding.
func (t *TikTokenCounter) Count(text string) int {
	return len(t.tke.Encode(text, nil, nil))
}

// Encode returns the token identifiers for the text.
func (t *TikTokenCounter) Encode(text string) []int {
	return t.tke.Encode(text, nil, nil)
}

// Decode converts token identifiers back into text.
func (t *TikTokenCounter) Decode(tokens []int) string {
	return t.tke.Decode(tokens)
}

// tokenizeFailure tags a panic that escaped the injected TokenCounter so
// the strategy entry points can report it as a tokenization error rather
// than an unknown one.
type tokenizeFailure struct {
	cause interface{}
}

// guardedCounter wraps a TokenCounter and converts panics from the
// underlying implementation into tagged tokenizeFailure panics.
type guardedCounter struct {
	inner TokenCounter
}

func (g guardedCounter) guard() {
	if r := recover(); r != nil {
		panic(tokenizeFailure{cause: r})
	}
}

func (g guardedCounter) Count(text string) (n int) {
	defer g.guard()
	return g.inner.Count(text)
}

func (g guardedCounter) Encode(text string) (tokens []int) {
	defer g.guard()
	return g.inner.Encode(text)
}

func (g guardedCounter) Decode(tokens []int) (text string) {
	defer g.guard()
	return g.inner.Decode(tokens)
}
