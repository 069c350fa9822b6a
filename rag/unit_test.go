package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitUnitsOffsets(t *testing.T) {
	counter := NewWordTokenCounter()
	text := "first paragraph here\n\nsecond paragraph follows\n\n\n\nthird one"
	units := SplitUnits(text, counter)
	require.Len(t, units, 3)

	for i, want := range []string{"first paragraph here", "second paragraph follows", "third one"} {
		assert.Equal(t, want, units[i].Text)
		assert.Equal(t, want, text[units[i].StartChar:units[i].EndChar])
		assert.Equal(t, len(strings.Fields(want)), units[i].TokenCount)
	}

	// Ranges are disjoint and increasing.
	assert.Less(t, units[0].EndChar, units[1].StartChar+1)
	assert.Less(t, units[1].EndChar, units[2].StartChar+1)
}

func TestSplitUnitsRepeatedParagraphs(t *testing.T) {
	counter := NewWordTokenCounter()
	text := "same words\n\nsame words\n\nsame words"
	units := SplitUnits(text, counter)
	require.Len(t, units, 3)

	// The forward scan must give each repetition its own offsets.
	assert.Equal(t, 0, units[0].StartChar)
	assert.Equal(t, 12, units[1].StartChar)
	assert.Equal(t, 24, units[2].StartChar)
}

func TestSplitUnitsSkipsBlank(t *testing.T) {
	counter := NewWordTokenCounter()
	units := SplitUnits("\n\n   \n\nonly real content\n\n \t \n", counter)
	require.Len(t, units, 1)
	assert.Equal(t, "only real content", units[0].Text)
}

func TestHeadingFlag(t *testing.T) {
	counter := NewWordTokenCounter()
	text := "# Marked Heading\n\nShort Title Line\n\nThis is an ordinary sentence that ends with punctuation.\n\nlowercase start line"
	units := SplitUnits(text, counter)
	require.Len(t, units, 4)
	assert.True(t, units[0].IsHeading)
	assert.True(t, units[1].IsHeading)
	assert.False(t, units[2].IsHeading)
	assert.False(t, units[3].IsHeading)
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("First one. Second here! Third, maybe? Fourth trailing")
	require.Len(t, sentences, 4)
	assert.Equal(t, "First one.", sentences[0])
	assert.Equal(t, "Second here!", sentences[1])
	assert.Equal(t, "Third, maybe?", sentences[2])
	assert.Equal(t, "Fourth trailing", sentences[3])
}

func TestSplitSentencesNoTerminator(t *testing.T) {
	text := "a long fragment with no punctuation at all"
	sentences := SplitSentences(text)
	require.Len(t, sentences, 1)
	assert.Equal(t, text, sentences[0])
}

func TestSplitSentencesDecimalNotSplit(t *testing.T) {
	// A period not followed by whitespace stays inside the sentence.
	sentences := SplitSentences("Version 1.5 shipped today. Another sentence.")
	require.Len(t, sentences, 2)
	assert.Equal(t, "Version 1.5 shipped today.", sentences[0])
}
