package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tabula-cli/internal/inference"
	"github.com/custodia-labs/tabula-cli/internal/logger"
	"github.com/custodia-labs/tabula-cli/internal/textenc"
)

// Ensure ParseService implements the interface.
var _ driving.ParseService = (*ParseService)(nil)

// ParseService runs the full file analysis pipeline: size check, text
// decoding, format dispatch, table extraction, type inference and
// preview assembly.
type ParseService struct {
	extractors map[string]driven.TableExtractor
}

// NewParseService creates a parse service dispatching to the given
// extractors by file extension.
func NewParseService(extractors ...driven.TableExtractor) *ParseService {
	byExt := make(map[string]driven.TableExtractor)
	for _, ex := range extractors {
		for _, ext := range ex.SupportedExtensions() {
			byExt[ext] = ex
		}
	}
	return &ParseService{extractors: byExt}
}

// SupportedExtensions returns every registered file extension, dot
// included, in no particular order.
func (s *ParseService) SupportedExtensions() []string {
	exts := make([]string, 0, len(s.extractors))
	for ext := range s.extractors {
		exts = append(exts, ext)
	}
	return exts
}

// Parse decodes, tokenizes and analyses the given file content.
func (s *ParseService) Parse(ctx context.Context, content []byte, filename string, opts domain.ParseOptions) domain.ParseOutcome {
	logger.Section("File Analysis")
	logger.Debug("File: %s (%d bytes)", filename, len(content))

	if opts.MaxFileSize > 0 && len(content) > opts.MaxFileSize {
		return domain.FailedOutcome(fmt.Errorf("%w: %d bytes exceeds limit of %d",
			domain.ErrFileTooLarge, len(content), opts.MaxFileSize))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := s.extractors[ext]
	if !ok {
		return domain.FailedOutcome(fmt.Errorf("%w: %q", domain.ErrUnsupportedType, ext))
	}

	decoded, err := textenc.Decode(content, opts.Encoding)
	if err != nil {
		return domain.FailedOutcome(err)
	}
	logger.Debug("Encoding: %s (BOM: %t)", decoded.Encoding, decoded.HasBOM)

	outcome := domain.ParseOutcome{
		DetectedEncoding: decoded.Encoding,
		HasBOM:           decoded.HasBOM,
	}

	res, err := extractor.Extract(ctx, decoded.Text, opts)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.DetectedDelimiter = res.DetectedDelimiter
	outcome.HasHeader = res.HasHeader
	outcome.HasQuotedFields = res.HasQuotedFields
	outcome.RowCount = len(res.Rows)
	logger.Debug("Table: %d columns, %d rows", len(res.Columns), len(res.Rows))

	outcome.Fields = inference.InferColumns(res.Columns, res.Rows,
		inference.Options{SampleSize: opts.SampleSize})
	outcome.PreviewRows = buildPreview(res.Columns, res.Rows, opts.MaxPreviewRows)
	outcome.Warnings = collectWarnings(outcome.Fields, res, opts)
	outcome.Success = true

	logger.Info("Analysed %s: %d fields, %d rows, %d warnings",
		filename, len(outcome.Fields), outcome.RowCount, len(outcome.Warnings))
	return outcome
}

// buildPreview returns the header row followed by at most maxRows data
// rows.
func buildPreview(columns []string, rows [][]string, maxRows int) [][]string {
	preview := [][]string{columns}
	for i, row := range rows {
		if maxRows > 0 && i >= maxRows {
			break
		}
		preview = append(preview, row)
	}
	return preview
}

func collectWarnings(fields []domain.DetectedField, res *driven.ExtractResult, opts domain.ParseOptions) []string {
	var warnings []string
	if res.HeaderAutoDetected && res.HasHeader != nil {
		if *res.HasHeader {
			warnings = append(warnings, "header row detected automatically; verify column names")
		} else {
			warnings = append(warnings, "no header row detected; generated column names")
		}
	}
	for _, f := range fields {
		if f.SampleValue == "" {
			warnings = append(warnings, fmt.Sprintf("column %q has no sample values", f.Name))
			continue
		}
		if f.Confidence < 0.5 {
			warnings = append(warnings, fmt.Sprintf("column %q: low confidence (%.0f%%) for type %s",
				f.Name, f.Confidence*100, f.DataType))
		}
	}
	if opts.SampleSize > 0 && len(res.Rows) > opts.SampleSize {
		warnings = append(warnings, fmt.Sprintf("types inferred from the first %d values per column (%d rows total)",
			opts.SampleSize, len(res.Rows)))
	}
	return warnings
}
