// Package enricher derives reading statistics from extracted text.
package enricher

import (
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// wordsPerMinute is the reading speed the time estimate assumes.
const wordsPerMinute = 200

// Apply fills the derived metadata fields from the text. Fields set by
// the extractor are preserved; only WordCount and ReadingTimeMinutes
// are overwritten. Empty text yields zeros.
func Apply(text string, md *domain.Metadata) {
	if md == nil {
		return
	}

	words := len(strings.Fields(text))
	md.WordCount = words

	if words == 0 {
		md.ReadingTimeMinutes = 0
		return
	}
	md.ReadingTimeMinutes = (words + wordsPerMinute - 1) / wordsPerMinute
}
