package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles EPUB documents.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeEPUB
}

// containerXML maps META-INF/container.xml, which points at the OPF
// package document.
type containerXML struct {
	XMLName   xml.Name `xml:"container"`
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

// opfXML maps the package document: Dublin Core metadata, the manifest
// of content files and the spine giving reading order.
type opfXML struct {
	XMLName  xml.Name `xml:"package"`
	Metadata struct {
		Title       string `xml:"title"`
		Creator     string `xml:"creator"`
		Description string `xml:"description"`
	} `xml:"metadata"`
	Manifest struct {
		Items []struct {
			ID   string `xml:"id,attr"`
			Href string `xml:"href,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// Extract reads the book's content files in spine order and strips the
// XHTML markup. Chapters that fail to read are skipped.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not an epub archive: %v", domain.ErrInvalidInput, err)
	}

	opfPath, err := findOPFPath(reader)
	if err != nil {
		return nil, err
	}

	opfData := readZipFile(reader, opfPath)
	if opfData == nil {
		return nil, fmt.Errorf("%w: package document %s missing", domain.ErrInvalidInput, opfPath)
	}

	var opf opfXML
	if err := xml.Unmarshal(opfData, &opf); err != nil {
		return nil, fmt.Errorf("%w: package document unreadable: %v", domain.ErrInvalidInput, err)
	}

	md := domain.Metadata{Title: titleFromFilename(raw.Filename)}
	if t := strings.TrimSpace(opf.Metadata.Title); t != "" {
		md.Title = t
	}
	md.Author = strings.TrimSpace(opf.Metadata.Creator)
	md.Description = strings.TrimSpace(opf.Metadata.Description)

	hrefs := make(map[string]string, len(opf.Manifest.Items))
	for _, item := range opf.Manifest.Items {
		hrefs[item.ID] = item.Href
	}

	base := path.Dir(opfPath)
	var chapters []string
	for _, ref := range opf.Spine.ItemRefs {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		data := readZipFile(reader, resolveHref(base, href))
		if data == nil {
			continue
		}
		text := stripMarkup(string(data))
		if text != "" {
			chapters = append(chapters, text)
		}
	}

	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: no readable chapters", domain.ErrInvalidInput)
	}

	return &driven.ExtractResult{
		Text:     strings.Join(chapters, "\n\n"),
		Metadata: md,
	}, nil
}

// findOPFPath reads the container file for the package document path.
func findOPFPath(reader *zip.Reader) (string, error) {
	data := readZipFile(reader, "META-INF/container.xml")
	if data == nil {
		return "", fmt.Errorf("%w: container.xml missing", domain.ErrInvalidInput)
	}

	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", fmt.Errorf("%w: container.xml unreadable: %v", domain.ErrInvalidInput, err)
	}
	if len(container.Rootfiles) == 0 || container.Rootfiles[0].FullPath == "" {
		return "", fmt.Errorf("%w: container.xml names no rootfile", domain.ErrInvalidInput)
	}
	return container.Rootfiles[0].FullPath, nil
}

// resolveHref joins a manifest href against the package document's
// directory. Hrefs in the archive always use forward slashes.
func resolveHref(base, href string) string {
	if base == "." || base == "" {
		return href
	}
	return path.Join(base, href)
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

var (
	headParts     = regexp.MustCompile(`(?is)<(head|script|style)[^>]*>.*?</(head|script|style)>`)
	blockBreaks   = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|blockquote|section)>|<br\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// stripMarkup converts a chapter's XHTML to readable text.
func stripMarkup(content string) string {
	content = headParts.ReplaceAllString(content, "")
	content = blockBreaks.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
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
