// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): extractors, storage, embedding providers,
// and configuration.
package driven
