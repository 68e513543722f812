// Package textenc decodes raw bytes into text with cascading encoding
// fallback: UTF-8 first, BOM detection, a byte-frequency heuristic for
// single-byte encodings, and Latin-1 as the lossless last resort.
// Decoding never fails outright; every byte sequence has some decoding.
package textenc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF16LE     = "utf-16le"
	EncodingUTF16BE     = "utf-16be"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "latin-1"
)

// Decode converts raw bytes to a string, reporting the encoding used.
// UTF-8 input (including empty input) passes through unchanged. Otherwise
// a BOM is honoured, then a heuristic picks Windows-1252 when the bytes
// use its printable 0x80-0x9F range, and Latin-1 decodes whatever is left.
func Decode(raw []byte) (string, string) {
	if len(raw) == 0 {
		return "", EncodingUTF8
	}

	if bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		return string(raw[3:]), EncodingUTF8
	}
	if bytes.HasPrefix(raw, []byte{0xFF, 0xFE}) {
		if s, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), raw); err == nil {
			return s, EncodingUTF16LE
		}
	}
	if bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) {
		if s, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder(), raw); err == nil {
			return s, EncodingUTF16BE
		}
	}

	if utf8.Valid(raw) {
		return string(raw), EncodingUTF8
	}

	if looksLikeWindows1252(raw) {
		if s, err := decodeWith(charmap.Windows1252.NewDecoder(), raw); err == nil {
			return s, EncodingWindows1252
		}
	}

	// Latin-1 maps every byte to a code point, so this cannot fail.
	s, err := decodeWith(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		// Unreachable in practice; fall back to a lossy conversion.
		return string(raw), EncodingLatin1
	}
	return s, EncodingLatin1
}

type decoder interface {
	Bytes(b []byte) ([]byte, error)
}

func decodeWith(d decoder, raw []byte) (string, error) {
	out, err := d.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// looksLikeWindows1252 checks whether the high bytes fall in the range
// where Windows-1252 defines printable characters (curly quotes, dashes,
// the euro sign) that Latin-1 treats as control codes.
func looksLikeWindows1252(raw []byte) bool {
	var high, cp1252 int
	for _, b := range raw {
		if b < 0x80 {
			continue
		}
		high++
		if b <= 0x9F {
			if r := charmap.Windows1252.DecodeByte(b); r != utf8.RuneError && r > 0x9F {
				cp1252++
			}
		}
	}
	return high > 0 && cp1252*2 > high
}

// IsBinary reports whether the bytes look like binary rather than text.
// NUL bytes are a strong signal; a high ratio of non-text control bytes
// in the sniff window is the weaker one.
func IsBinary(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}

	sniff := raw
	if len(sniff) > 8000 {
		sniff = sniff[:8000]
	}

	if bytes.IndexByte(sniff, 0x00) >= 0 {
		return true
	}

	var control int
	for _, b := range sniff {
		if b < 0x09 || (b > 0x0D && b < 0x20) {
			control++
		}
	}
	return control*10 > len(sniff)
}
