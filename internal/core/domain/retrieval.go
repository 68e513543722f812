package domain

// MatchKind identifies which ranking strategy produced a retrieval result.
type MatchKind string

// Available match kinds.
const (
	// MatchSemantic means the result was ranked by embedding similarity.
	MatchSemantic MatchKind = "semantic"

	// MatchTitle means the query appeared in the document title.
	MatchTitle MatchKind = "title"

	// MatchContent means the query appeared only in the document body.
	MatchContent MatchKind = "content"
)

// RetrievalOptions configures a retrieval query.
type RetrievalOptions struct {
	// Limit is the maximum number of documents to return (default 5).
	Limit int

	// DatasetID filters candidates to one dataset. Empty means all.
	DatasetID string

	// TagIDs filters candidates to documents carrying every listed tag.
	TagIDs []string
}

// RetrievalResult is one ranked document from the selector.
type RetrievalResult struct {
	// Document is the matched document.
	Document Document

	// Score is the cosine similarity for semantic matches and 0 for
	// substring matches, where ordering is positional.
	Score float64

	// Match records the strategy that ranked this result.
	Match MatchKind
}
