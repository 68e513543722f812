package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driving"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/logger"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/postprocessors/enricher"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the upload pipeline: type detection, extraction,
// metadata enrichment, chunking, and persistence.
type IngestService struct {
	registry driven.ExtractorRegistry
	chunker  driven.ChunkProcessor
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewIngestService creates a new ingest service. The embedder may be
// nil, in which case documents stay in the pending embedding state.
func NewIngestService(
	registry driven.ExtractorRegistry,
	chunker driven.ChunkProcessor,
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
) *IngestService {
	return &IngestService{
		registry: registry,
		chunker:  chunker,
		docStore: docStore,
		embedder: embedder,
	}
}

// Ingest processes one uploaded file into a stored, chunked document.
// Extraction failures degrade to a placeholder document with a
// diagnostic; only storage failures surface as errors.
func (s *IngestService) Ingest(ctx context.Context, raw *domain.RawFile) (*domain.Document, error) {
	if raw == nil || raw.Filename == "" {
		return nil, domain.ErrInvalidInput
	}

	docType := domain.TypeForFilename(raw.Filename)
	logger.Debug("ingesting %s as %s (%d bytes)", raw.Filename, docType, len(raw.Content))

	result := s.registry.Extract(ctx, raw)
	enricher.Apply(result.Text, &result.Metadata)

	now := time.Now()
	doc := &domain.Document{
		ID:                   uuid.New().String(),
		Title:                result.Metadata.Title,
		Type:                 docType,
		RawSize:              int64(len(raw.Content)),
		Content:              result.Text,
		Metadata:             result.Metadata,
		DatasetID:            raw.DatasetID,
		TagIDs:               raw.TagIDs,
		EmbeddingStatus:      domain.EmbeddingPending,
		ExtractionDiagnostic: result.Diagnostic,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	chunks, err := s.chunker.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunking document: %w", err)
	}
	if len(chunks) > 0 {
		if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
			return nil, fmt.Errorf("saving chunks: %w", err)
		}
	}

	logger.Debug("ingested %s: %d chunks, %d words", doc.ID, len(chunks), doc.Metadata.WordCount)
	return doc, nil
}

// EmbedDocument generates and stores the embedding for a document.
// The status advances pending -> processing -> completed; any failure
// lands on failed and the document stays retrievable by substring.
func (s *IngestService) EmbedDocument(ctx context.Context, documentID string) error {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	if err := s.setEmbeddingStatus(ctx, doc, domain.EmbeddingProcessing); err != nil {
		return err
	}

	vector, err := s.embedder.Embed(ctx, embeddingInput(doc))
	if err != nil {
		logger.Warn("embedding failed for %s: %v", documentID, err)
		if statusErr := s.setEmbeddingStatus(ctx, doc, domain.EmbeddingFailed); statusErr != nil {
			return statusErr
		}
		return err
	}

	if err := s.docStore.SaveEmbedding(ctx, documentID, s.embedder.ModelName(), vector); err != nil {
		if statusErr := s.setEmbeddingStatus(ctx, doc, domain.EmbeddingFailed); statusErr != nil {
			return statusErr
		}
		return fmt.Errorf("saving embedding: %w", err)
	}

	return s.setEmbeddingStatus(ctx, doc, domain.EmbeddingCompleted)
}

// setEmbeddingStatus persists a status transition.
func (s *IngestService) setEmbeddingStatus(ctx context.Context, doc *domain.Document, status domain.EmbeddingStatus) error {
	doc.EmbeddingStatus = status
	doc.UpdatedAt = time.Now()
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("updating embedding status: %w", err)
	}
	return nil
}

// embeddingInput is the text the document-level vector represents.
// Title plus body gives short documents a usable signal.
func embeddingInput(doc *domain.Document) string {
	if doc.Title == "" {
		return doc.Content
	}
	return doc.Title + "\n" + doc.Content
}
