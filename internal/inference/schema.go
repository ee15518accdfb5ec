// Package inference assigns a data type and confidence score to each
// column by inspecting a bounded sample of cell values.
//
// Numeric-like types (boolean, currency, number) commit only when every
// sampled value matches; dates commit on a single match because date
// layouts vary more within a clean column. The asymmetry reflects
// observed false-positive risk.
package inference

import (
	"regexp"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// Options bounds the per-column value sample.
type Options struct {
	// SampleSize caps how many non-empty values are inspected per column.
	SampleSize int
}

// DefaultOptions returns the standard sample bound.
func DefaultOptions() Options {
	return Options{SampleSize: domain.DefaultSampleSize}
}

var (
	booleanPattern = regexp.MustCompile(`^(?i:true|false|yes|no|y|n|1|0)$`)

	// Currency requires an explicit leading symbol; otherwise every bare
	// integer would commit as currency before number is ever tried.
	currencyPattern = regexp.MustCompile(`^[$€£¥]\s?-?\d+(,\d{3})*(\.\d+)?$`)

	numberPattern = regexp.MustCompile(`^-?\d+(,\d{3})*(\.\d+)?$`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),               // YYYY-MM-DD
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),           // MM/DD/YYYY
		regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`),           // MM-DD-YYYY
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`),           // M/D/YY
	}
)

// InferColumns builds one DetectedField per column from the data rows.
// Column i samples cell i of each row. Fields keep column order.
func InferColumns(columns []string, rows [][]string, opts Options) []domain.DetectedField {
	fields := make([]domain.DetectedField, len(columns))
	for i, name := range columns {
		values := sampleColumn(rows, i, opts.SampleSize)
		dataType, confidence := InferType(values)
		sample := ""
		if len(values) > 0 {
			sample = values[0]
		}
		fields[i] = domain.DetectedField{
			Name:        name,
			DataType:    dataType,
			SampleValue: sample,
			Confidence:  confidence,
		}
	}
	return fields
}

// sampleColumn gathers up to limit non-empty values from column idx.
func sampleColumn(rows [][]string, idx, limit int) []string {
	var values []string
	for _, row := range rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		values = append(values, row[idx])
		if limit > 0 && len(values) >= limit {
			break
		}
	}
	return values
}

// InferType decides the data type for a sample of non-empty values and
// returns it with a confidence score in [0,1]. An empty sample yields
// text with zero confidence.
func InferType(values []string) (domain.DataType, float64) {
	if len(values) == 0 {
		return domain.DataTypeText, 0
	}

	// Strict types: every sampled value must match before committing.
	for _, t := range []domain.DataType{domain.DataTypeBoolean, domain.DataTypeCurrency, domain.DataTypeNumber} {
		if allMatch(values, t) {
			return t, Confidence(values, t)
		}
	}

	// Dates commit on any single match.
	for _, v := range values {
		if Matches(v, domain.DataTypeDate) {
			return domain.DataTypeDate, Confidence(values, domain.DataTypeDate)
		}
	}

	// Every value is valid text.
	return domain.DataTypeText, 1.0
}

// Matches reports whether a single value satisfies the validation rule
// for the given data type. Every value is valid text.
func Matches(value string, dataType domain.DataType) bool {
	switch dataType {
	case domain.DataTypeBoolean:
		return booleanPattern.MatchString(value)
	case domain.DataTypeCurrency:
		return currencyPattern.MatchString(value)
	case domain.DataTypeNumber:
		return numberPattern.MatchString(value)
	case domain.DataTypeDate:
		for _, p := range datePatterns {
			if p.MatchString(value) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Confidence is the fraction of values matching the type's validation
// rule. Text is always 1.0; an empty sample is 0.
func Confidence(values []string, dataType domain.DataType) float64 {
	if len(values) == 0 {
		return 0
	}
	if dataType == domain.DataTypeText {
		return 1.0
	}
	matched := 0
	for _, v := range values {
		if Matches(v, dataType) {
			matched++
		}
	}
	return float64(matched) / float64(len(values))
}

func allMatch(values []string, dataType domain.DataType) bool {
	for _, v := range values {
		if !Matches(v, dataType) {
			return false
		}
	}
	return true
}
