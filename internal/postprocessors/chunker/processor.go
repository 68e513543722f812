// Package chunker provides a boundary-aware text chunking processor.
package chunker

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// boundaryScanLimit bounds the backward scan for a sentence or word
// boundary near a chunk's end.
const boundaryScanLimit = 100

// Processor splits document content into overlapping chunks, preferring
// sentence and word boundaries near the cut point.
// It implements the ChunkProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Process splits the document content into chunks. Runs of whitespace
// are collapsed to single spaces before splitting, so chunk offsets
// refer to the collapsed text.
func (p *Processor) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.TrimSpace(whitespaceRun.ReplaceAllString(doc.Content, " "))
	if content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	contentLen := len(content)

	estimatedChunks := (contentLen / (p.chunkSize - p.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimatedChunks)

	position := 0
	start := 0

	for start < contentLen {
		end := start + p.chunkSize
		last := false
		if end >= contentLen {
			end = contentLen
			last = true
		} else if aligned := alignToRuneStart(content, end); aligned > start {
			// A hard cut must not split a multi-byte character.
			end = aligned
		}

		// Cut at a nearby boundary. The first and final chunks keep
		// their hard edges, and a boundary that would stall the walk
		// is ignored.
		if !last && position > 0 {
			if adjusted := adjustToBoundary(content, start, end); adjusted-p.overlap > start {
				end = adjusted
			}
		}

		chunk := domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    content[start:end],
			Position:   position,
			CharStart:  start,
			CharEnd:    end,
		}

		chunks = append(chunks, chunk)
		position++

		if last {
			break
		}

		next := alignToRuneStart(content, end-p.overlap)
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks, nil
}

// alignToRuneStart moves an index back to the start of the rune it
// points into.
func alignToRuneStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// adjustToBoundary scans backwards from end for a sentence terminator,
// then for a space, within boundaryScanLimit characters. When neither
// is found the hard cut stands.
func adjustToBoundary(content string, start, end int) int {
	limit := end - boundaryScanLimit
	if limit < start+1 {
		limit = start + 1
	}

	for i := end - 1; i >= limit; i-- {
		switch content[i] {
		case '.', '!', '?':
			return i + 1
		}
	}

	for i := end - 1; i >= limit; i-- {
		if content[i] == ' ' {
			return i + 1
		}
	}

	return end
}
