package rag

import (
	"strings"
	"unicode"
)

// SemanticUnit is a paragraph-level span of text, the smallest piece the
// Semantic and Hybrid strategies try to keep intact. Units are produced in
// document order with disjoint, monotonically increasing character ranges
// that together cover every non-blank region of the source text.
type SemanticUnit struct {
	// Text is the trimmed paragraph content.
	Text string
	// TokenCount is the token count of Text under the active counter.
	TokenCount int
	// StartChar is the absolute offset of Text within the source.
	StartChar int
	// EndChar is the absolute offset just past Text within the source.
	EndChar int
	// IsHeading marks units that look like headings.
	IsHeading bool
}

// SplitUnits breaks text into paragraph units on blank-line boundaries.
// Each unit is trimmed, located in the source via a forward scan (the scan
// never rewinds past the previous unit's end, so repeated paragraphs keep
// distinct offsets), token-counted, and flagged when it looks like a
// heading. Empty units are discarded.
func SplitUnits(text string, counter TokenCounter) []SemanticUnit {
	var units []SemanticUnit

	cursor := 0
	for _, raw := range splitParagraphs(text) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		start := strings.Index(text[cursor:], trimmed)
		if start < 0 {
			// Trimming never changes the characters inside the unit, so a
			// miss here means the paragraph splitter and the source text
			// disagree; fall back to the cursor position.
			start = 0
		}
		start += cursor
		end := start + len(trimmed)
		cursor = end

		units = append(units, SemanticUnit{
			Text:       trimmed,
			TokenCount: counter.Count(trimmed),
			StartChar:  start,
			EndChar:    end,
			IsHeading:  looksLikeHeading(trimmed),
		})
	}
	return units
}

// splitParagraphs splits text on one or more blank lines. A line containing
// only whitespace counts as blank.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

// looksLikeHeading is a lightweight test for heading-shaped units: an ATX
// marker, or a single short line without terminal punctuation.
func looksLikeHeading(unit string) bool {
	if strings.Contains(unit, "\n") {
		return false
	}
	if _, _, ok := parseATXHeading(unit); ok {
		return true
	}
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" || len(trimmed) > 80 {
		return false
	}
	last := rune(trimmed[len(trimmed)-1])
	if last == '.' || last == '!' || last == '?' || last == ',' || last == ';' || last == ':' {
		return false
	}
	// Headings tend to start with an uppercase letter or a digit.
	first := []rune(trimmed)[0]
	return unicode.IsUpper(first) || unicode.IsDigit(first)
}

// SplitSentences splits a single oversized unit into sentence-like
// fragments on terminal punctuation ('.', '!', '?') followed by
// whitespace. Text without terminal punctuation comes back as a single
// fragment; callers treat such an oversized "sentence" as an unsplittable
// chunk of its own.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			atEnd := i == len(runes)-1
			followedBySpace := !atEnd && unicode.IsSpace(runes[i+1])
			if atEnd || followedBySpace {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return sentences
}
