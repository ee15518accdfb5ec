// Package parsers provides format-specific tokenizers that turn decoded
// file text into a uniform column/row table. Each sub-package handles
// one file family: delimited text (CSV/TSV) or hierarchical documents
// (JSON).
//
// Parsers hold no state between calls and may be invoked concurrently
// on different inputs.
package parsers
