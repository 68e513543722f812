// Package sqlite provides a SQLite-based implementation of the document store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Documents, their chunks
// and their per-document embedding vectors live in a single database file.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Chunks and embeddings cascade on document deletion.
//
// # Data Location
//
// By default, the database is stored at ~/.ai-profiles/data/documents.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode. There is no cross-record transactional
// isolation: concurrent writers to the same document race and the last
// writer wins.
package sqlite
