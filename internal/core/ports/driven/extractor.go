package driven

import (
	"context"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// Extractor converts raw file bytes into plain text plus metadata.
// Each extractor handles one document type (e.g., PDF, DOCX).
type Extractor interface {
	// Type returns the document type this extractor handles.
	Type() domain.DocumentType

	// Extract converts raw bytes into text and metadata. An error return
	// signals that this format could not be parsed; the registry converts
	// it into a diagnostic result rather than letting it propagate.
	Extract(ctx context.Context, raw *domain.RawFile) (*ExtractResult, error)
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	// Text is the extracted plain text. When Diagnostic is set, Text is
	// a short placeholder describing the failure instead.
	Text string

	// Metadata holds whatever descriptive fields extraction determined.
	Metadata domain.Metadata

	// Diagnostic is empty for clean extraction. A non-empty value marks
	// a degraded result; document creation still succeeds.
	Diagnostic string
}

// ExtractorRegistry dispatches raw files to the extractor matching their
// detected document type.
type ExtractorRegistry interface {
	// Extract runs the matching extractor. It never returns an error and
	// never panics outward: any internal failure is converted into a
	// diagnostic ExtractResult with metadata populated as completely as
	// the failure allows.
	Extract(ctx context.Context, raw *domain.RawFile) *ExtractResult

	// Register adds an extractor for its document type.
	Register(extractor Extractor)

	// SupportedTypes returns the document types with a registered extractor.
	SupportedTypes() []domain.DocumentType
}
