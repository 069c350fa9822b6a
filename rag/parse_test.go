package rag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextParser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text body"), 0o644))

	pm := NewParserManager()
	doc, err := pm.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "plain text body", doc.Content)
	assert.Equal(t, "text", doc.Metadata["file_type"])
	assert.NotEmpty(t, doc.ID)
}

func TestMarkdownParser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")
	content := "# Heading\n\nbody paragraph"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pm := NewParserManager()
	doc, err := pm.Parse(path)
	require.NoError(t, err)
	// Markdown stays unrendered so section detection sees the markers.
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, "markdown", doc.Metadata["file_type"])
}

func TestUnknownFileType(t *testing.T) {
	pm := NewParserManager()
	_, err := pm.Parse("archive.zip")
	assert.Error(t, err)
}

type fakeParser struct{}

func (fakeParser) Parse(string) (Document, error) {
	return Document{ID: "fake", Content: "from fake parser"}, nil
}

func TestAddParserAndDetector(t *testing.T) {
	pm := NewParserManager()
	pm.AddParser("csv", fakeParser{})
	pm.SetFileTypeDetector(func(string) string { return "csv" })

	doc, err := pm.Parse("whatever.bin")
	require.NoError(t, err)
	assert.Equal(t, "from fake parser", doc.Content)
}
