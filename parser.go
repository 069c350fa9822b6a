package docchunk

import (
	"github.com/RidgetopAi/docchunk/rag"
)

// Document is extracted text ready for chunking.
type Document = rag.Document

// Parser extracts text from a file on disk.
type Parser = rag.Parser

// ParserManager routes files to the parser registered for their type.
// PDF, Markdown, and plain-text parsers are registered by default; use
// AddParser to extend it.
type ParserManager = rag.ParserManager

// NewParser creates a ParserManager with the default parsers registered.
func NewParser() *ParserManager {
	return rag.NewParserManager()
}
