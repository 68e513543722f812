package jsonfile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

func TestExtractObject(t *testing.T) {
	e := New()

	raw := &domain.RawFile{
		Filename: "config.json",
		Content:  []byte(`{"name":"demo","port":8080}`),
	}

	result, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "config", result.Metadata.Title)
	assert.Equal(t, "JSON object with 2 keys", result.Metadata.Description)
	assert.Contains(t, result.Text, "\"name\": \"demo\"")
	assert.Contains(t, result.Text, "\"port\": 8080")
	assert.Empty(t, result.Diagnostic)
}

func TestExtractArray(t *testing.T) {
	e := New()

	raw := &domain.RawFile{
		Filename: "items.json",
		Content:  []byte(`[1, 2, 3]`),
	}

	result, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "JSON array with 3 items", result.Metadata.Description)
}

func TestExtractInvalidJSON(t *testing.T) {
	e := New()

	raw := &domain.RawFile{
		Filename: "broken.json",
		Content:  []byte(`{"name": "demo"`),
	}

	result, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, `{"name": "demo"`, result.Text)
	assert.Equal(t, "json parse failed, kept raw text", result.Diagnostic)
}

func TestExtractTruncatesLargePayload(t *testing.T) {
	e := New()

	big := `["` + strings.Repeat("x", 20000) + `"]`
	raw := &domain.RawFile{
		Filename: "big.json",
		Content:  []byte(big),
	}

	result, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.Text, truncationMarker))
	assert.Len(t, result.Text, maxContentLength+len(truncationMarker))
}

func TestExtractNilFile(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
