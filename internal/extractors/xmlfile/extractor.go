package xmlfile

import (
	"context"
	"encoding/xml"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/extractors/textenc"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles generic XML documents.
type Extractor struct{}

// New creates a new XML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeXML
}

// Extract collects character data from the XML stream. Malformed input
// degrades to a regex tag strip with a diagnostic.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent, _ := textenc.Decode(raw.Content)

	md := domain.Metadata{Title: titleFromFilename(raw.Filename)}

	text, err := collectCharData(rawContent)
	if err != nil {
		return &driven.ExtractResult{
			Text:       stripTags(rawContent),
			Metadata:   md,
			Diagnostic: "xml parse failed, stripped tags as plain text",
		}, nil
	}

	return &driven.ExtractResult{
		Text:     text,
		Metadata: md,
	}, nil
}

// collectCharData walks the token stream and joins the character data.
func collectCharData(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var parts []string
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if cd, ok := tok.(xml.CharData); ok {
			trimmed := strings.TrimSpace(string(cd))
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}
	return strings.Join(parts, "\n"), nil
}

var (
	xmlTags       = regexp.MustCompile(`<[^>]*>`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// stripTags is the fallback for input the decoder rejects.
func stripTags(content string) string {
	content = xmlTags.ReplaceAllString(content, "\n")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// titleFromFilename derives a human-readable title from the filename.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
