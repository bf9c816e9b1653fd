// Package domain contains the core business types for the Fifth Season
// emotion spectrum engine and memory-story generator: emotion categories,
// the analysis result shape, the static lexicon tables, memory fragments,
// and story generation types.
//
// Everything in this package is pure data and pure functions. The lexicon
// tables are built once at startup and are read-only afterwards, so all
// domain logic is safe for concurrent use.
package domain
