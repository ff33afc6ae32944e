// Package services contains the application core: the aggregation
// pipeline, the content catalog (record store + vector index pairing)
// and the feed retrieval engine.
package services
