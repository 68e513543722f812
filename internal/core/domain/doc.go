// Package domain contains the core business entities for the document
// pipeline: documents, chunks, retrieval results, and pipeline settings.
// It has no dependencies on adapters or infrastructure.
package domain
