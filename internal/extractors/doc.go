// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to pull text
// content and metadata from a specific document type.
//
// Extractors are registered with the Registry at startup. The Registry
// itself never fails: unsupported types, extractor errors and panics
// all degrade to placeholder results carrying a diagnostic.
package extractors
