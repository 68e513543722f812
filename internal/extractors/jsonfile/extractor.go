package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/textenc"
)

// maxContentLength caps pretty-printed JSON so a large payload does not
// dominate the document store.
const maxContentLength = 10000

const truncationMarker = "...(truncated)..."

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles JSON documents.
type Extractor struct{}

// New creates a new JSON extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeJSON
}

// Extract pretty-prints the JSON payload. Invalid JSON is kept as raw
// text with a diagnostic rather than rejected.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent, _ := textenc.Decode(raw.Content)

	md := domain.Metadata{Title: titleFromFilename(raw.Filename)}

	var parsed any
	if err := json.Unmarshal([]byte(rawContent), &parsed); err != nil {
		return &driven.ExtractResult{
			Text:       truncate(rawContent),
			Metadata:   md,
			Diagnostic: "json parse failed, kept raw text",
		}, nil
	}

	md.Description = describe(parsed)

	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return &driven.ExtractResult{
			Text:       truncate(rawContent),
			Metadata:   md,
			Diagnostic: "json re-encode failed, kept raw text",
		}, nil
	}

	return &driven.ExtractResult{
		Text:     truncate(string(pretty)),
		Metadata: md,
	}, nil
}

// describe summarises the top-level shape of the payload.
func describe(parsed any) string {
	switch v := parsed.(type) {
	case []any:
		return fmt.Sprintf("JSON array with %d items", len(v))
	case map[string]any:
		return fmt.Sprintf("JSON object with %d keys", len(v))
	default:
		return "JSON value"
	}
}

// truncate caps content at maxContentLength with a marker.
func truncate(content string) string {
	if len(content) <= maxContentLength {
		return content
	}
	return content[:maxContentLength] + truncationMarker
}

// titleFromFilename derives a human-readable title from the filename.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
