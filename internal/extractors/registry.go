package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/csvfile"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/docx"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/epub"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/htmlpage"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/jsonfile"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/markdown"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/pdf"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/plaintext"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/pptx"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/xlsx"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/xmlfile"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches raw files to format extractors by document type.
// Extraction never fails: a missing extractor, an extractor error or a
// panic all degrade to a placeholder result with a diagnostic.
type Registry struct {
	extractors map[domain.DocumentType]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.DocumentType]driven.Extractor),
	}
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(htmlpage.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(csvfile.New())
	r.Register(jsonfile.New())
	r.Register(xmlfile.New())
	r.Register(xlsx.New())
	r.Register(pptx.New())
	r.Register(epub.New())
	return r
}

// Register adds an extractor, replacing any previous one for its type.
func (r *Registry) Register(e driven.Extractor) {
	r.extractors[e.Type()] = e
}

// SupportedTypes returns the registered document types in stable order.
func (r *Registry) SupportedTypes() []domain.DocumentType {
	types := make([]domain.DocumentType, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Extract runs the matching extractor for the file's declared type.
// Every failure mode produces a usable result: the caller always gets
// text, a title and a diagnostic describing any degradation.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawFile) *driven.ExtractResult {
	if raw == nil {
		return &driven.ExtractResult{
			Diagnostic: "no input file",
		}
	}

	docType := domain.TypeForFilename(raw.Filename)

	extractor, ok := r.extractors[docType]
	if !ok {
		return placeholderResult(raw, fmt.Sprintf("no extractor for type %s", docType))
	}

	result, err := safeExtract(ctx, extractor, raw)
	if err != nil {
		logger.Warn("extraction degraded for %s: %v", raw.Filename, err)
		return placeholderResult(raw, err.Error())
	}

	if result.Metadata.Title == "" {
		result.Metadata.Title = titleFromFilename(raw.Filename)
	}
	return result
}

// safeExtract invokes the extractor with panic recovery. A panicking
// extractor is reported as an ordinary error.
func safeExtract(ctx context.Context, e driven.Extractor, raw *domain.RawFile) (result *driven.ExtractResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("extractor panic: %v", rec)
		}
	}()

	result, err = e.Extract(ctx, raw)
	if err == nil && result == nil {
		err = fmt.Errorf("extractor returned no result")
	}
	return result, err
}

// placeholderResult stands in for content that could not be extracted.
// The raw bytes are never decoded here; unsupported formats may be
// binary.
func placeholderResult(raw *domain.RawFile, diagnostic string) *driven.ExtractResult {
	docType := domain.TypeForFilename(raw.Filename)
	return &driven.ExtractResult{
		Text: fmt.Sprintf("Unable to extract content from %s (%s, %d bytes).", raw.Filename, docType, len(raw.Content)),
		Metadata: domain.Metadata{
			Title: titleFromFilename(raw.Filename),
		},
		Diagnostic: diagnostic,
	}
}

// titleFromFilename derives a human-readable title from the filename.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
