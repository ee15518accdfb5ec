package hierarchical

import (
	"context"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driven"
)

// Extractor adapts the JSON record-array parser to the TableExtractor
// port.
type Extractor struct{}

// NewExtractor creates a hierarchical-format extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

var _ driven.TableExtractor = (*Extractor)(nil)

// SupportedExtensions returns the extensions handled as hierarchical
// documents.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".json"}
}

// Extract locates the record array in the document and flattens it into
// columns and rows. Hierarchical formats carry no delimiter or header
// concept, so the dialect fields stay unset.
func (e *Extractor) Extract(_ context.Context, text string, opts domain.ParseOptions) (*driven.ExtractResult, error) {
	table, err := Parse(text, opts.MaxRows)
	if err != nil {
		return nil, err
	}
	return &driven.ExtractResult{
		Columns: table.Columns,
		Rows:    table.Rows,
	}, nil
}
