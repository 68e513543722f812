package plaintext

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/textenc"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeText
}

// Extract decodes raw bytes with cascading encoding fallback.
// Encoding alone never fails extraction: UTF-8 first, then detection,
// then Latin-1 which decodes any byte sequence. Detected binary content
// is never decoded; it yields a placeholder instead.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	md := domain.Metadata{Title: titleFromFilename(raw.Filename)}

	if textenc.IsBinary(raw.Content) {
		return &driven.ExtractResult{
			Text:       fmt.Sprintf("Binary content (%d bytes) declared as text; no text extracted.", len(raw.Content)),
			Metadata:   md,
			Diagnostic: "binary content in text file",
		}, nil
	}

	text, encoding := textenc.Decode(raw.Content)
	if encoding != textenc.EncodingUTF8 {
		md.Description = fmt.Sprintf("Decoded with %s fallback", encoding)
	}

	return &driven.ExtractResult{
		Text:     text,
		Metadata: md,
	}, nil
}

// titleFromFilename derives a human-readable title from the filename.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
