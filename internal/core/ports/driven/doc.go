// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): source adapters, embedding services,
// the vector index and catalog snapshot persistence.
package driven
