// Package xlsx extracts a tabular summary from XLSX workbooks by reading
// the first worksheet and its shared strings directly from the OOXML
// archive.
package xlsx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// previewRows is the number of data rows included in the text summary.
const previewRows = 5

// Extractor handles XLSX documents.
type Extractor struct{}

// New creates a new XLSX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeExcel
}

// Extract reads the first worksheet and emits column names, row and
// column counts, and a head-of-table preview as text.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	md := domain.Metadata{Title: titleFromFilename(raw.Filename)}

	shared := readSharedStrings(reader)
	rows, err := readFirstSheet(reader, shared)
	if err != nil {
		return nil, err
	}

	var headers []string
	var dataRows [][]string
	if len(rows) > 0 {
		headers = rows[0]
		dataRows = rows[1:]
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Worksheet with %d rows and %d columns.\n\n", len(dataRows), len(headers))
	fmt.Fprintf(&builder, "Column names: %s\n\n", strings.Join(headers, ", "))
	builder.WriteString("Sample data:\n")
	for i, row := range dataRows {
		if i >= previewRows {
			break
		}
		fmt.Fprintf(&builder, "%s\n", strings.Join(row, " | "))
	}

	md.Description = fmt.Sprintf("Excel file with %d rows and %d columns", len(dataRows), len(headers))

	return &driven.ExtractResult{
		Text:     builder.String(),
		Metadata: md,
	}, nil
}

// sstXML represents xl/sharedStrings.xml.
type sstXML struct {
	Items []struct {
		Text string `xml:"t"`
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

// readSharedStrings loads the shared string table, empty when absent.
func readSharedStrings(reader *zip.Reader) []string {
	content := readZipFile(reader, "xl/sharedStrings.xml")
	if content == nil {
		return nil
	}

	var sst sstXML
	if err := xml.Unmarshal(content, &sst); err != nil {
		return nil
	}

	strs := make([]string, 0, len(sst.Items))
	for _, item := range sst.Items {
		if len(item.Runs) > 0 {
			var b strings.Builder
			for _, r := range item.Runs {
				b.WriteString(r.Text)
			}
			strs = append(strs, b.String())
			continue
		}
		strs = append(strs, item.Text)
	}
	return strs
}

// sheetXML represents a worksheet's sheetData.
type sheetXML struct {
	Rows []struct {
		Cells []struct {
			Type  string `xml:"t,attr"`
			Value string `xml:"v"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

// readFirstSheet parses the lowest-numbered worksheet into string rows,
// resolving shared-string cells through the table.
func readFirstSheet(reader *zip.Reader, shared []string) ([][]string, error) {
	name := firstSheetName(reader)
	if name == "" {
		return nil, nil
	}

	content := readZipFile(reader, name)
	if content == nil {
		return nil, nil
	}

	var sheet sheetXML
	if err := xml.Unmarshal(content, &sheet); err != nil {
		return nil, domain.ErrInvalidInput
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			value := cell.Value
			if cell.Type == "s" {
				if idx, err := strconv.Atoi(value); err == nil && idx >= 0 && idx < len(shared) {
					value = shared[idx]
				}
			}
			cells = append(cells, value)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// firstSheetName finds the lexically first worksheet entry in the archive.
// Sheet files are named sheet1.xml, sheet2.xml, ... so this is the first
// worksheet in workbook order for the common case.
func firstSheetName(reader *zip.Reader) string {
	var names []string
	for _, file := range reader.File {
		if strings.HasPrefix(file.Name, "xl/worksheets/sheet") && strings.HasSuffix(file.Name, ".xml") {
			names = append(names, file.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

// readZipFile reads one file from the archive, nil when absent.
func readZipFile(reader *zip.Reader, name string) []byte {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return content
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
