package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PowerPoint (.pptx) documents.
type Extractor struct{}

// New creates a new PPTX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypePPTX
}

// slideXML mirrors the text runs of a slide part. Only the pieces
// needed for text extraction are mapped.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	Texts   []string `xml:"cSld>spTree>sp>txBody>p>r>t"`
}

// coreXML maps the shared OOXML core properties part.
type coreXML struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Creator     string   `xml:"creator"`
	Description string   `xml:"description"`
	Created     string   `xml:"created"`
	Modified    string   `xml:"modified"`
}

// Extract reads every slide in spine order and joins them with
// numbered slide headers. A presentation with no readable slides is an
// error; the registry downgrades it to a placeholder.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a pptx archive: %v", domain.ErrInvalidInput, err)
	}

	slides := slideFiles(reader)
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: no slides found", domain.ErrInvalidInput)
	}

	var sections []string
	for i, f := range slides {
		text, err := slideText(f)
		if err != nil {
			continue
		}
		if text == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("Slide %d:\n%s", i+1, text))
	}

	md := domain.Metadata{
		Title:     titleFromFilename(raw.Filename),
		PageCount: len(slides),
	}
	applyCoreProperties(reader, &md)

	return &driven.ExtractResult{
		Text:     strings.Join(sections, "\n\n"),
		Metadata: md,
	}, nil
}

// slideFiles returns the slide parts in presentation order. Slide
// parts are named slide1.xml, slide2.xml and so on, so a numeric sort
// on the basename gives spine order.
func slideFiles(reader *zip.Reader) []*zip.File {
	var slides []*zip.File
	for _, f := range reader.File {
		dir, base := filepath.Split(f.Name)
		if dir == "ppt/slides/" && strings.HasPrefix(base, "slide") && strings.HasSuffix(base, ".xml") {
			slides = append(slides, f)
		}
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i].Name) < slideNumber(slides[j].Name)
	})
	return slides
}

// slideNumber parses the numeric part of a slide filename.
func slideNumber(name string) int {
	base := filepath.Base(name)
	base = strings.TrimPrefix(base, "slide")
	base = strings.TrimSuffix(base, ".xml")
	n := 0
	for _, r := range base {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// slideText extracts the joined text runs of a single slide part.
func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	var slide slideXML
	if err := xml.Unmarshal(data, &slide); err != nil {
		return "", err
	}

	var parts []string
	for _, t := range slide.Texts {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// applyCoreProperties merges docProps/core.xml into the metadata.
// Absent or unreadable properties are ignored.
func applyCoreProperties(reader *zip.Reader, md *domain.Metadata) {
	data := readZipFile(reader, "docProps/core.xml")
	if data == nil {
		return
	}

	var core coreXML
	if err := xml.Unmarshal(data, &core); err != nil {
		return
	}

	if t := strings.TrimSpace(core.Title); t != "" {
		md.Title = t
	}
	if a := strings.TrimSpace(core.Creator); a != "" {
		md.Author = a
	}
	if d := strings.TrimSpace(core.Description); d != "" {
		md.Description = d
	}
	if ts := parseW3CDate(core.Created); ts != nil {
		md.CreatedDate = ts
	}
	if ts := parseW3CDate(core.Modified); ts != nil {
		md.ModifiedDate = ts
	}
}

// readZipFile reads a named entry, returning nil when absent.
func readZipFile(reader *zip.Reader, name string) []byte {
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}

// parseW3CDate handles the timestamp formats OOXML core properties use.
func parseW3CDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts
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
