package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSectionsATX(t *testing.T) {
	text := "preamble text\n\n# Title\n\nbody one\n\n## Subtitle\n\nbody two\n"
	sections := DetectSections(text)
	require.Len(t, sections, 2)

	assert.Equal(t, "Title", sections[0].Title)
	assert.Equal(t, 1, sections[0].Level)
	assert.Equal(t, "Subtitle", sections[1].Title)
	assert.Equal(t, 2, sections[1].Level)

	// Sections partition from the first heading to the end of text.
	assert.Equal(t, sections[1].StartChar, sections[0].EndChar)
	assert.Equal(t, len(text), sections[1].EndChar)
	assert.Less(t, sections[0].StartChar, sections[0].EndChar)
}

func TestDetectSectionsSetext(t *testing.T) {
	text := "Overview\n========\n\nsome body\n\nDetails\n-------\n\nmore body"
	sections := DetectSections(text)
	require.Len(t, sections, 2)

	assert.Equal(t, "Overview", sections[0].Title)
	assert.Equal(t, 1, sections[0].Level)
	assert.Equal(t, 0, sections[0].StartChar)
	assert.Equal(t, "Details", sections[1].Title)
	assert.Equal(t, 2, sections[1].Level)
	assert.Equal(t, len(text), sections[1].EndChar)
}

func TestDetectSectionsNone(t *testing.T) {
	sections := DetectSections("just a plain paragraph\n\nand another one")
	assert.Empty(t, sections)
}

func TestDetectSectionsIgnoresNonHeadings(t *testing.T) {
	// '#' without a following space and more than six '#' are not headings.
	text := "#nospace\n\n####### seven\n\nplain"
	assert.Empty(t, DetectSections(text))
}

func TestSetextUnderlineNotReusedAsTitle(t *testing.T) {
	// A stray second underline must not become a section titled "====".
	text := "Title\n=====\n=====\n\nbody"
	sections := DetectSections(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "Title", sections[0].Title)
	assert.Equal(t, 1, sections[0].Level)

	// Back-to-back Setext headings are still all detected.
	sections = DetectSections("First\n-----\nSecond\n------\nbody")
	require.Len(t, sections, 2)
	assert.Equal(t, "First", sections[0].Title)
	assert.Equal(t, "Second", sections[1].Title)
}

func TestSectionTitleAt(t *testing.T) {
	text := "before any heading\n\n# First\n\nmiddle\n\n# Second\n\nend"
	sections := DetectSections(text)
	require.Len(t, sections, 2)

	// Positions before the first heading have no section.
	assert.Equal(t, "", sectionTitleAt(sections, 0))
	assert.Equal(t, "First", sectionTitleAt(sections, sections[0].StartChar))
	assert.Equal(t, "First", sectionTitleAt(sections, sections[1].StartChar-1))
	assert.Equal(t, "Second", sectionTitleAt(sections, len(text)-1))
	assert.Equal(t, "", sectionTitleAt(nil, 100))
}

func TestATXTrailingMarkersStripped(t *testing.T) {
	title, level, ok := parseATXHeading("### Closing Marks ###")
	require.True(t, ok)
	assert.Equal(t, "Closing Marks", title)
	assert.Equal(t, 3, level)
}
