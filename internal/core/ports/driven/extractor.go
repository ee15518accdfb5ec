package driven

import (
	"context"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// TableExtractor turns decoded file text into the uniform column/row
// table. Each extractor handles specific file extensions (e.g. CSV,
// JSON).
type TableExtractor interface {
	// SupportedExtensions returns the lowercase file extensions this
	// extractor handles, dot included (".csv").
	SupportedExtensions() []string

	// Extract builds the table. Input errors (empty text, no columns,
	// malformed documents) come back as errors for the caller to fold
	// into a failed ParseOutcome.
	Extract(ctx context.Context, text string, opts domain.ParseOptions) (*ExtractResult, error)
}

// ExtractResult is the table plus the dialect metadata a parse outcome
// reports.
type ExtractResult struct {
	// Columns are the detected column names in position order.
	Columns []string

	// Rows are the data rows (header row excluded).
	Rows [][]string

	// DetectedDelimiter is the field delimiter for delimited formats.
	DetectedDelimiter string

	// HasHeader reports header presence when the format distinguishes
	// one; nil for formats without the concept.
	HasHeader *bool

	// HeaderAutoDetected is true when header presence was inferred
	// rather than forced by the caller.
	HeaderAutoDetected bool

	// HasQuotedFields reports RFC 4180 quoting in the input.
	HasQuotedFields bool
}
