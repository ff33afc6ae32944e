// Package domain contains the core business entities for promptfeed:
// content records, raw source items, filters, reports and domain errors.
// It has no dependencies on infrastructure packages.
package domain
