package rag

import (
	"strings"
)

// DocumentSection is a heading-delimited region of the source text. Sections
// label chunks with the title of the region they start in; they never bound
// chunk size. StartChar/EndChar are half-open offsets into the source text,
// contiguous from the first heading to the end of the document.
type DocumentSection struct {
	// Title is the heading text with markers stripped.
	Title string
	// Level is the heading depth (1-6 for ATX, 1-2 for Setext).
	Level int
	// StartChar is the offset of the heading line.
	StartChar int
	// EndChar is the offset where the next section starts, or len(text)
	// for the last section.
	EndChar int
}

// DetectSections scans raw text for ATX-style headings (1-6 leading '#'
// followed by a space) and Setext-style headings (a text line underlined
// with all '=' for level 1 or all '-' for level 2) and returns the
// resulting sections in document order. Each section runs from its heading
// to the start of the next one; the last section runs to the end of the
// text. Text before the first heading belongs to no section.
//
// A document without headings yields an empty slice, and chunk section
// titles stay unset downstream.
func DetectSections(text string) []DocumentSection {
	var sections []DocumentSection

	lines := strings.Split(text, "\n")
	offset := 0
	skipUnderline := false
	for i, line := range lines {
		if skipUnderline {
			// The underline belongs to the heading above it and is never a
			// title for whatever follows.
			skipUnderline = false
			offset += len(line) + 1
			continue
		}
		if title, level, ok := parseATXHeading(line); ok {
			sections = append(sections, DocumentSection{
				Title:     title,
				Level:     level,
				StartChar: offset,
			})
		} else if i+1 < len(lines) {
			if level, ok := setextUnderlineLevel(lines[i+1]); ok && strings.TrimSpace(line) != "" {
				sections = append(sections, DocumentSection{
					Title:     strings.TrimSpace(line),
					Level:     level,
					StartChar: offset,
				})
				skipUnderline = true
			}
		}
		offset += len(line) + 1 // +1 for the split newline
	}

	for i := range sections {
		if i+1 < len(sections) {
			sections[i].EndChar = sections[i+1].StartChar
		} else {
			sections[i].EndChar = len(text)
		}
	}
	return sections
}

// parseATXHeading reports whether the line is an ATX heading and returns
// its title and level.
func parseATXHeading(line string) (string, int, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level < 1 || level > 6 {
		return "", 0, false
	}
	rest := trimmed[level:]
	if !strings.HasPrefix(rest, " ") {
		return "", 0, false
	}
	title := strings.TrimSpace(strings.TrimRight(rest, "#"))
	if title == "" {
		return "", 0, false
	}
	return title, level, true
}

// setextUnderlineLevel reports whether the line is a Setext underline and
// which heading level it denotes ('=' runs are level 1, '-' runs level 2).
func setextUnderlineLevel(line string) (int, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 {
		return 0, false
	}
	marker := trimmed[0]
	if marker != '=' && marker != '-' {
		return 0, false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != marker {
			return 0, false
		}
	}
	if marker == '=' {
		return 1, true
	}
	return 2, true
}

// sectionTitleAt resolves the title of the section containing the given
// character position: the last section whose StartChar is at or before the
// position. Positions before the first heading have no section and return
// the empty string.
func sectionTitleAt(sections []DocumentSection, pos int) string {
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].StartChar <= pos {
			return sections[i].Title
		}
	}
	return ""
}
