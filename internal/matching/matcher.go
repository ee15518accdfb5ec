// Package matching scores stored import templates against the columns
// detected in a file and proposes the best match above a confidence
// floor.
package matching

import (
	"math"
	"strings"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// Options configures the matching algorithm.
type Options struct {
	// MinConfidence is the score floor below which no suggestion is
	// returned.
	MinConfidence float64
}

// DefaultOptions returns the default confidence floor.
func DefaultOptions() Options {
	return Options{MinConfidence: 0.70}
}

// SuggestTemplate scores every candidate template against the detected
// column names and returns the best match at or above the floor, or nil
// when nothing qualifies. Templates without expected source fields are
// skipped; the first-seen template wins exact score ties.
func SuggestTemplate(detectedColumns []string, templates []domain.ImportTemplate, opts Options) *domain.TemplateSuggestion {
	bestScore := -1.0
	bestID := ""

	for _, tpl := range templates {
		expected := tpl.SourceFieldNames()
		if len(expected) == 0 {
			continue // cannot be scored
		}
		score := ScoreTemplate(detectedColumns, expected)
		if score > bestScore {
			bestScore = score
			bestID = tpl.ID
		}
	}

	if bestID == "" || bestScore < opts.MinConfidence {
		return nil
	}
	return &domain.TemplateSuggestion{
		TemplateID: bestID,
		Confidence: int(math.Round(bestScore * 100)),
	}
}

// ScoreTemplate is the fraction of expected source fields that match
// any detected column.
func ScoreTemplate(detectedColumns, expectedFields []string) float64 {
	if len(expectedFields) == 0 {
		return 0
	}
	matched := 0
	for _, expected := range expectedFields {
		for _, detected := range detectedColumns {
			if fieldsMatch(expected, detected) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(expectedFields))
}

// fieldsMatch compares normalized field names: exact equality or either
// name containing the other.
func fieldsMatch(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

// normalizeName lowercases and trims a field name for comparison.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
