package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

const documentXMLSample = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

const coreXMLSample = `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties
  xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/"
  xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:title>Quarterly Notes</dc:title>
  <dc:creator>A. Writer</dc:creator>
  <dc:description>Draft for review</dc:description>
  <dcterms:created>2024-02-01T09:00:00Z</dcterms:created>
  <dcterms:modified>2024-03-01T10:30:00Z</dcterms:modified>
</cp:coreProperties>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestType(t *testing.T) {
	assert.Equal(t, domain.TypeDOCX, New().Type())
}

func TestExtract_NilFile(t *testing.T) {
	result, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestExtract_ParagraphsAndCoreProperties(t *testing.T) {
	raw := &domain.RawFile{
		Filename: "report.docx",
		Content: buildDocx(t, map[string]string{
			"word/document.xml": documentXMLSample,
			"docProps/core.xml": coreXMLSample,
		}),
	}

	result, err := New().Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "First paragraph.\nSecond paragraph.", result.Text)
	assert.Equal(t, "Quarterly Notes", result.Metadata.Title)
	assert.Equal(t, "A. Writer", result.Metadata.Author)
	assert.Equal(t, "Draft for review", result.Metadata.Description)
	require.NotNil(t, result.Metadata.CreatedDate)
	require.NotNil(t, result.Metadata.ModifiedDate)
	assert.Equal(t, 2024, result.Metadata.CreatedDate.Year())
}

func TestExtract_MissingCoreProperties(t *testing.T) {
	raw := &domain.RawFile{
		Filename: "bare.docx",
		Content: buildDocx(t, map[string]string{
			"word/document.xml": documentXMLSample,
		}),
	}

	result, err := New().Extract(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "bare", result.Metadata.Title)
	assert.Nil(t, result.Metadata.CreatedDate)
}

func TestExtract_NotAZip(t *testing.T) {
	raw := &domain.RawFile{
		Filename: "broken.docx",
		Content:  []byte("definitely not a zip archive"),
	}

	result, err := New().Extract(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}
