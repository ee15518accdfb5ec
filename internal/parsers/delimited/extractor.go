package delimited

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driven"
)

// Extractor adapts the delimited tokenizer and dialect detection to the
// TableExtractor port.
type Extractor struct{}

// NewExtractor creates a delimited-format extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

var _ driven.TableExtractor = (*Extractor)(nil)

// SupportedExtensions returns the extensions handled as delimited text.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".csv", ".txt"}
}

// Extract tokenizes the text into rows, resolves the delimiter and
// header row, and returns the resulting table. An explicit delimiter or
// header flag in opts overrides detection.
func (e *Extractor) Extract(_ context.Context, text string, opts domain.ParseOptions) (*driven.ExtractResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("extract delimited: %w", domain.ErrEmptyFile)
	}

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = DetectDelimiter(FirstLine(text))
	}

	tok := Tokenize(text, delimiter)
	if len(tok.Rows) == 0 {
		return nil, fmt.Errorf("extract delimited: %w", domain.ErrEmptyFile)
	}

	var (
		hasHeader    bool
		autoDetected bool
		secondRow    []string
	)
	if len(tok.Rows) > 1 {
		secondRow = tok.Rows[1]
	}
	if opts.HasHeader != nil {
		hasHeader = *opts.HasHeader
	} else {
		hasHeader = DetectHeader(tok.Rows[0], secondRow)
		autoDetected = true
	}

	var columns []string
	var rows [][]string
	if hasHeader {
		columns = tok.Rows[0]
		rows = tok.Rows[1:]
	} else {
		columns = SyntheticColumns(len(tok.Rows[0]))
		rows = tok.Rows
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("extract delimited: %w", domain.ErrNoColumns)
	}
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}

	return &driven.ExtractResult{
		Columns:            columns,
		Rows:               rows,
		DetectedDelimiter:  delimiter,
		HasHeader:          &hasHeader,
		HeaderAutoDetected: autoDetected,
		HasQuotedFields:    tok.HasQuotedFields,
	}, nil
}
