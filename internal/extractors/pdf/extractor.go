// Package pdf extracts text and metadata from PDF documents using the
// pure Go dslipak/pdf reader.
package pdf

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypePDF
}

// Extract concatenates per-page text with page breaks and pulls author
// and date fields from the document info dictionary when present.
// Absence of info fields is not an error.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	md := domain.Metadata{Title: titleFromFilename(raw.Filename)}

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, err
	}

	applyInfo(reader, &md)
	md.PageCount = reader.NumPage()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return &driven.ExtractResult{
		Text:     builder.String(),
		Metadata: md,
	}, nil
}

// applyInfo copies fields from the PDF info dictionary into the metadata.
func applyInfo(reader *pdf.Reader, md *domain.Metadata) {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return
	}

	if title := info.Key("Title").Text(); title != "" {
		md.Title = title
	}
	md.Author = info.Key("Author").Text()
	md.CreatedDate = parseDate(info.Key("CreationDate").Text())
	md.ModifiedDate = parseDate(info.Key("ModDate").Text())
}

// parseDate parses a PDF date string such as "D:20240115093000Z".
// Returns nil when the value is missing or unparseable.
func parseDate(s string) *time.Time {
	s = strings.TrimPrefix(s, "D:")
	if len(s) > 14 {
		s = s[:14]
	}

	for _, layout := range []string{"20060102150405", "200601021504", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// titleFromFilename derives a human-readable title from the filename.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
