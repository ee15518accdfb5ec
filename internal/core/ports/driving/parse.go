package driving

import (
	"context"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// ParseService turns raw file bytes into a structured parse outcome:
// decoded text, detected dialect, inferred column schema and preview rows.
type ParseService interface {
	// Parse decodes, tokenizes and analyses the given file content.
	// The filename is used for format dispatch by extension. Parse never
	// returns a Go error: failures are reported through the outcome so
	// callers always receive dialect and warning details that were
	// gathered before the failure.
	Parse(ctx context.Context, content []byte, filename string, opts domain.ParseOptions) domain.ParseOutcome
}
