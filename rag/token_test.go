package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordTokenCounterRoundTrip(t *testing.T) {
	counter := NewWordTokenCounter()
	text := "the quick brown fox jumps over the lazy dog"

	tokens := counter.Encode(text)
	assert.Equal(t, counter.Count(text), len(tokens))
	assert.Equal(t, text, counter.Decode(tokens))

	// Repeated words map to stable identifiers.
	assert.Equal(t, tokens[0], tokens[6])
}

func TestWordTokenCounterSlicing(t *testing.T) {
	counter := NewWordTokenCounter()
	tokens := counter.Encode("alpha beta gamma delta epsilon")
	require.Len(t, tokens, 5)
	assert.Equal(t, "gamma delta epsilon", counter.Decode(tokens[2:]))
	assert.Equal(t, "alpha beta", counter.Decode(tokens[:2]))
}

func TestWordTokenCounterWhitespaceInsensitive(t *testing.T) {
	counter := NewWordTokenCounter()
	tokens := counter.Encode("spread \n out \t words")
	assert.Equal(t, "spread out words", counter.Decode(tokens))
}

func TestGuardedCounterTagsPanics(t *testing.T) {
	g := guardedCounter{inner: panicCounter{}}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(tokenizeFailure)
		assert.True(t, ok)
	}()
	g.Count("anything")
}
