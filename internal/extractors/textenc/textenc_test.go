package textenc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_UTF8(t *testing.T) {
	text, enc := Decode([]byte("héllo wörld"))
	assert.Equal(t, "héllo wörld", text)
	assert.Equal(t, EncodingUTF8, enc)
}

func TestDecode_Empty(t *testing.T) {
	text, enc := Decode(nil)
	assert.Equal(t, "", text)
	assert.Equal(t, EncodingUTF8, enc)
}

func TestDecode_UTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	text, enc := Decode(raw)
	assert.Equal(t, "hello", text)
	assert.Equal(t, EncodingUTF8, enc)
}

func TestDecode_UTF16LE(t *testing.T) {
	// "hi" with a little-endian BOM.
	raw := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	text, enc := Decode(raw)
	assert.Equal(t, "hi", text)
	assert.Equal(t, EncodingUTF16LE, enc)
}

func TestDecode_UTF16BE(t *testing.T) {
	// "hi" with a big-endian BOM.
	raw := []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}
	text, enc := Decode(raw)
	assert.Equal(t, "hi", text)
	assert.Equal(t, EncodingUTF16BE, enc)
}

func TestDecode_Windows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in CP1252 and control codes in Latin-1.
	raw := []byte{0x93, 'h', 'i', 0x94}
	text, enc := Decode(raw)
	assert.Equal(t, EncodingWindows1252, enc)
	assert.Equal(t, "“hi”", text)
}

func TestDecode_Latin1LastResort(t *testing.T) {
	// 0xE9 is é in Latin-1; invalid as a standalone UTF-8 byte.
	raw := []byte{'c', 'a', 'f', 0xE9}
	text, enc := Decode(raw)
	assert.Equal(t, EncodingLatin1, enc)
	assert.Equal(t, "café", text)
}

func TestDecode_NeverFails(t *testing.T) {
	// Arbitrary high bytes always decode to something.
	raw := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB}
	text, _ := Decode(raw)
	assert.NotEmpty(t, text)
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want bool
	}{
		{"empty", nil, false},
		{"plain text", []byte("hello world\n"), false},
		{"utf8 text", []byte("héllo wörld"), false},
		{"nul byte", []byte{'a', 0x00, 'b'}, true},
		{"mostly control", []byte{0x01, 0x02, 0x03, 0x04, 'a'}, true},
		{"long text", []byte(strings.Repeat("paragraph of text. ", 1000)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBinary(tt.raw))
		})
	}
}
