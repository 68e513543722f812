package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driving"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/logger"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/vector"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultRetrievalLimit bounds results when the caller gives no limit.
const DefaultRetrievalLimit = 5

// sectionDelimiter separates sections in the assembled context string.
const sectionDelimiter = "\n\n---\n\n"

// RetrievalService selects documents relevant to a query.
//
// Ranking is two-tier: when any filtered candidate has a stored
// embedding, ranking is purely semantic over the embedded subset.
// Otherwise substring matching applies, with title matches strictly
// above content matches. The two strategies never blend.
type RetrievalService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewRetrievalService creates a new retrieval service. The embedder is
// optional; without one retrieval falls back to substring matching.
func NewRetrievalService(docStore driven.DocumentStore, embedder driven.EmbeddingService) *RetrievalService {
	return &RetrievalService{
		docStore: docStore,
		embedder: embedder,
	}
}

// Select returns a ranked, limit-bounded subset of documents.
func (s *RetrievalService) Select(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("empty query, returning no results")
		return []domain.RetrievalResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}

	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	candidates := filterCandidates(docs, opts)
	if len(candidates) == 0 {
		return []domain.RetrievalResult{}, nil
	}
	logger.Debug("retrieval: %d candidates after filters", len(candidates))

	embedded := s.embeddedSubset(ctx, candidates)
	if len(embedded) > 0 && s.embedder != nil {
		results, err := s.semanticRank(ctx, query, embedded, limit)
		if err != nil {
			logger.Warn("semantic ranking failed: %v", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
		}
		return results, nil
	}

	return substringRank(query, candidates, limit), nil
}

// embeddedCandidate pairs a document with its stored vector.
type embeddedCandidate struct {
	doc    domain.Document
	vector []float32
}

// embeddedSubset returns the candidates that have a stored embedding.
func (s *RetrievalService) embeddedSubset(ctx context.Context, docs []domain.Document) []embeddedCandidate {
	var out []embeddedCandidate
	for _, doc := range docs {
		if doc.EmbeddingStatus != domain.EmbeddingCompleted {
			continue
		}
		vec, err := s.docStore.GetEmbedding(ctx, doc.ID)
		if err != nil {
			continue
		}
		out = append(out, embeddedCandidate{doc: doc, vector: vec})
	}
	return out
}

// semanticRank embeds the query once and orders the embedded subset by
// cosine similarity, descending. Ties keep candidate order.
func (s *RetrievalService) semanticRank(ctx context.Context, query string, candidates []embeddedCandidate, limit int) ([]domain.RetrievalResult, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([]domain.RetrievalResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, domain.RetrievalResult{
			Document: c.doc,
			Score:    vector.Cosine(queryVec, c.vector),
			Match:    domain.MatchSemantic,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// substringRank matches the query case-insensitively against titles
// and then content. Title matches rank strictly above content matches;
// within a tier, candidate order is preserved.
func substringRank(query string, docs []domain.Document, limit int) []domain.RetrievalResult {
	needle := strings.ToLower(query)

	var titleMatches, contentMatches []domain.RetrievalResult
	for _, doc := range docs {
		switch {
		case strings.Contains(strings.ToLower(doc.Title), needle):
			titleMatches = append(titleMatches, domain.RetrievalResult{
				Document: doc,
				Match:    domain.MatchTitle,
			})
		case strings.Contains(strings.ToLower(doc.Content), needle):
			contentMatches = append(contentMatches, domain.RetrievalResult{
				Document: doc,
				Match:    domain.MatchContent,
			})
		}
	}

	results := append(titleMatches, contentMatches...)
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []domain.RetrievalResult{}
	}
	return results
}

// filterCandidates applies dataset and tag pre-filters.
func filterCandidates(docs []domain.Document, opts domain.RetrievalOptions) []domain.Document {
	var out []domain.Document
	for _, doc := range docs {
		if opts.DatasetID != "" && doc.DatasetID != opts.DatasetID {
			continue
		}
		if !hasAllTags(doc, opts.TagIDs) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// hasAllTags reports whether the document carries every listed tag.
func hasAllTags(doc domain.Document, tags []string) bool {
	for _, tag := range tags {
		if !doc.HasTag(tag) {
			return false
		}
	}
	return true
}

// BuildContext concatenates chunks of the selected documents into a
// numbered context string, capped at maxSections chunks total.
func (s *RetrievalService) BuildContext(ctx context.Context, results []domain.RetrievalResult, maxSections int) (string, error) {
	if maxSections <= 0 {
		maxSections = DefaultRetrievalLimit
	}

	var sections []string
	for _, result := range results {
		if len(sections) >= maxSections {
			break
		}

		chunks, err := s.docStore.GetChunks(ctx, result.Document.ID)
		if err != nil {
			return "", fmt.Errorf("loading chunks for %s: %w", result.Document.ID, err)
		}

		for _, chunk := range chunks {
			if len(sections) >= maxSections {
				break
			}
			sections = append(sections,
				fmt.Sprintf("Document Section %d:\n%s", len(sections)+1, chunk.Content))
		}
	}

	return strings.Join(sections, sectionDelimiter), nil
}
