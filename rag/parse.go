package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

// Document is extracted text ready for chunking, with a generated ID the
// chunker records on every chunk as ObjectID.
type Document struct {
	// ID identifies the document; chunks reference it as their ObjectID.
	ID string
	// Content is the extracted text.
	Content string
	// Metadata describes the source (file type, path, and similar).
	Metadata map[string]string
}

// Parser extracts text from a file on disk. Implementations are registered
// with a ParserManager per file type.
type Parser interface {
	// Parse reads the file and returns its extracted text as a Document.
	Parse(filePath string) (Document, error)
}

// ParserManager routes files to the Parser registered for their type.
// Format-specific extraction stays behind this boundary; the chunking
// engine only ever sees Document.Content.
type ParserManager struct {
	fileTypeDetector func(string) string
	parsers          map[string]Parser
}

// NewParserManager creates a manager with extension-based type detection
// and parsers for PDF, Markdown, and plain-text files registered.
func NewParserManager() *ParserManager {
	pm := &ParserManager{
		fileTypeDetector: detectFileType,
		parsers:          make(map[string]Parser),
	}
	pm.parsers["pdf"] = &PDFParser{}
	pm.parsers["text"] = &TextParser{}
	pm.parsers["markdown"] = &TextParser{fileType: "markdown"}
	return pm
}

// Parse extracts text from the file using the parser registered for its
// detected type.
func (pm *ParserManager) Parse(filePath string) (Document, error) {
	fileType := pm.fileTypeDetector(filePath)
	parser, ok := pm.parsers[fileType]
	if !ok {
		GlobalLogger.Error("no parser registered", "type", fileType, "path", filePath)
		return Document{}, fmt.Errorf("no parser available for file type: %s", fileType)
	}
	doc, err := parser.Parse(filePath)
	if err != nil {
		GlobalLogger.Error("parse failed", "path", filePath, "error", err)
		return Document{}, err
	}
	GlobalLogger.Debug("parsed document", "path", filePath, "type", fileType, "chars", len(doc.Content))
	return doc, nil
}

// SetFileTypeDetector replaces extension-based detection, for callers that
// need content sniffing or custom routing.
func (pm *ParserManager) SetFileTypeDetector(detector func(string) string) {
	pm.fileTypeDetector = detector
}

// AddParser registers a parser for a file type, replacing any existing one.
func (pm *ParserManager) AddParser(fileType string, parser Parser) {
	pm.parsers[fileType] = parser
}

func detectFileType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return "pdf"
	case ".md", ".markdown":
		return "markdown"
	case ".txt", ".text":
		return "text"
	default:
		return "unknown"
	}
}

// PDFParser extracts plain text from PDF files page by page.
type PDFParser struct{}

// Parse extracts the text content of a PDF file.
func (p *PDFParser) Parse(filePath string) (Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Document{}, fmt.Errorf("failed to stat file: %w", err)
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return Document{}, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return Document{}, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		text.WriteString(content)
		// Page breaks become paragraph boundaries for the unit splitter.
		text.WriteString("\n\n")
	}

	return Document{
		ID:      uuid.NewString(),
		Content: text.String(),
		Metadata: map[string]string{
			"file_type": "pdf",
			"file_path": filePath,
			"pages":     fmt.Sprintf("%d", reader.NumPage()),
		},
	}, nil
}

// TextParser reads plain-text and Markdown files verbatim. Markdown stays
// unrendered: the section detector reads its heading markers directly.
type TextParser struct {
	fileType string
}

// Parse reads the whole file as the document content.
func (p *TextParser) Parse(filePath string) (Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	fileType := p.fileType
	if fileType == "" {
		fileType = "text"
	}
	return Document{
		ID:      uuid.NewString(),
		Content: string(content),
		Metadata: map[string]string{
			"file_type": fileType,
			"file_path": filePath,
		},
	}, nil
}
