package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// DocumentType classifies a document by its source format.
type DocumentType string

// Recognised document types.
const (
	TypeText     DocumentType = "text"
	TypePDF      DocumentType = "pdf"
	TypeDOCX     DocumentType = "docx"
	TypeMarkdown DocumentType = "markdown"
	TypeCSV      DocumentType = "csv"
	TypeJSON     DocumentType = "json"
	TypeExcel    DocumentType = "excel"
	TypeHTML     DocumentType = "html"
	TypeXML      DocumentType = "xml"
	TypePPTX     DocumentType = "pptx"
	TypeEPUB     DocumentType = "epub"
	TypeOther    DocumentType = "other"
)

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case TypeText, TypePDF, TypeDOCX, TypeMarkdown, TypeCSV, TypeJSON,
		TypeExcel, TypeHTML, TypeXML, TypePPTX, TypeEPUB, TypeOther:
		return true
	default:
		return false
	}
}

// extensionTypes maps lowercase file extensions (without the dot) to types.
var extensionTypes = map[string]DocumentType{
	"txt":  TypeText,
	"log":  TypeText,
	"pdf":  TypePDF,
	"docx": TypeDOCX,
	"doc":  TypeDOCX,
	"md":   TypeMarkdown,
	"csv":  TypeCSV,
	"json": TypeJSON,
	"xls":  TypeExcel,
	"xlsx": TypeExcel,
	"html": TypeHTML,
	"htm":  TypeHTML,
	"xml":  TypeXML,
	"pptx": TypePPTX,
	"ppt":  TypePPTX,
	"epub": TypeEPUB,
}

// TypeForFilename maps a filename to a document type using its extension.
// Unrecognised, missing, or malformed extensions yield TypeOther; this is
// a normal outcome, never an error.
func TypeForFilename(name string) DocumentType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return TypeOther
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeOther
}

// EmbeddingStatus tracks the embedding lifecycle of a document.
type EmbeddingStatus string

// Embedding lifecycle states.
const (
	EmbeddingPending    EmbeddingStatus = "pending"
	EmbeddingProcessing EmbeddingStatus = "processing"
	EmbeddingCompleted  EmbeddingStatus = "completed"
	EmbeddingFailed     EmbeddingStatus = "failed"
)

// String returns the string representation.
func (s EmbeddingStatus) String() string {
	return string(s)
}

// Metadata holds descriptive fields derived from extraction.
// All fields are optional; extraction failures leave whatever could
// still be determined.
type Metadata struct {
	// Title is the document title found inside the file, if any.
	Title string

	// Author is the document author, when the format records one.
	Author string

	// Description is a short human-readable summary.
	Description string

	// WordCount is the whitespace-split token count of the content.
	WordCount int

	// ReadingTimeMinutes is the estimated reading time at 200 wpm.
	ReadingTimeMinutes int

	// PageCount is the page or slide count for paginated formats.
	PageCount int

	// CreatedDate is the creation date recorded in the file.
	CreatedDate *time.Time

	// ModifiedDate is the modification date recorded in the file.
	ModifiedDate *time.Time
}

// Document is the logical record of an uploaded file.
type Document struct {
	// ID is the unique identifier, assigned at creation, immutable.
	ID string

	// Title is the human-readable title (metadata title or filename).
	Title string

	// Type is the detected document type.
	Type DocumentType

	// RawSize is the uploaded file size in bytes.
	RawSize int64

	// Content is the full extracted text.
	Content string

	// Metadata holds descriptive fields derived from the content.
	Metadata Metadata

	// DatasetID optionally groups the document into a dataset.
	// May dangle if the dataset was deleted; tolerated everywhere.
	DatasetID string

	// TagIDs reference tags by id. May dangle; tolerated everywhere.
	TagIDs []string

	// EmbeddingStatus tracks the embedding lifecycle.
	EmbeddingStatus EmbeddingStatus

	// IsFavorite is a user flag, independent of the pipeline.
	IsFavorite bool

	// ExtractionDiagnostic is empty for clean extraction. When set it
	// describes how extraction degraded; Content then carries a short
	// placeholder rather than genuine document text.
	ExtractionDiagnostic string

	// CreatedAt is when the document was created.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// HasTag reports whether the document carries the given tag id.
func (d *Document) HasTag(tagID string) bool {
	for _, id := range d.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// Chunk is a contiguous text segment derived from one document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning document.
	DocumentID string

	// Content is the chunk text.
	Content string

	// Position is the 0-based order within the document.
	Position int

	// CharStart and CharEnd are offsets into the whitespace-normalised
	// source text the chunk was cut from.
	CharStart int
	CharEnd   int
}
