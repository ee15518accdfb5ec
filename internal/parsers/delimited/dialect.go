package delimited

import (
	"fmt"
	"regexp"
	"strings"
)

// Candidate delimiters, in tie-break priority order.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// headerSignalThreshold is how many of the five header signals must hold
// for the first row to be judged a header. Empirically tuned, not
// derived from a formal model.
const headerSignalThreshold = 3

// headerKeywords are column names that strongly suggest a header row.
// Matched case-insensitively as substrings.
var headerKeywords = []string{
	"name", "email", "phone", "date", "amount", "id", "address",
	"city", "state", "zip", "country", "transaction", "description",
	"category", "account", "balance", "currency", "type", "status",
}

var (
	bareIntegerPattern = regexp.MustCompile(`^-?\d+$`)
	bareDecimalPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// DetectDelimiter picks the candidate delimiter occurring most often in
// the first row. Quoted sections are ignored. Any exact tie for the top
// count resolves to the comma, even when the comma is not among the
// tied candidates.
func DetectDelimiter(firstLine string) string {
	best := ','
	bestCount := 0
	tied := false
	for _, delim := range candidateDelimiters {
		count := countOutsideQuotes(firstLine, delim)
		switch {
		case count > bestCount:
			best = delim
			bestCount = count
			tied = false
		case count == bestCount && count > 0:
			tied = true
		}
	}
	if tied {
		return ","
	}
	return string(best)
}

// countOutsideQuotes counts delimiter occurrences outside quoted
// sections.
func countOutsideQuotes(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			count++
		}
	}
	return count
}

// HeaderSignals evaluates the five independent header heuristics for
// row1 compared against row2. Each signal is individually unreliable;
// robustness comes from counting them.
func HeaderSignals(row1, row2 []string) [5]bool {
	return [5]bool{
		signalHeaderKeywords(row1),
		signalTextLikeness(row1, row2),
		signalCellCount(row1, row2),
		signalShortNonInteger(row1),
		signalNamelike(row1),
	}
}

// DetectHeader reports whether row1 looks like a header row: at least
// three of the five signals must hold.
func DetectHeader(row1, row2 []string) bool {
	count := 0
	for _, s := range HeaderSignals(row1, row2) {
		if s {
			count++
		}
	}
	return count >= headerSignalThreshold
}

// signalHeaderKeywords: row1 contains at least one cell matching a
// curated header keyword.
func signalHeaderKeywords(row1 []string) bool {
	for _, cell := range row1 {
		lower := strings.ToLower(cell)
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// signalTextLikeness: row1's fraction of non-empty cells that are not
// purely numeric exceeds row2's.
func signalTextLikeness(row1, row2 []string) bool {
	return textRatio(row1) > textRatio(row2)
}

func textRatio(row []string) float64 {
	nonEmpty := 0
	textual := 0
	for _, cell := range row {
		if cell == "" {
			continue
		}
		nonEmpty++
		if !bareDecimalPattern.MatchString(cell) {
			textual++
		}
	}
	if nonEmpty == 0 {
		return 0
	}
	return float64(textual) / float64(nonEmpty)
}

// signalCellCount: row1 has at least as many non-empty cells as row2.
func signalCellCount(row1, row2 []string) bool {
	return countNonEmpty(row1) >= countNonEmpty(row2)
}

func countNonEmpty(row []string) int {
	n := 0
	for _, cell := range row {
		if cell != "" {
			n++
		}
	}
	return n
}

// signalShortNonInteger: every cell in row1 is at most 30 characters and
// not a bare integer.
func signalShortNonInteger(row1 []string) bool {
	for _, cell := range row1 {
		if len(cell) > 30 || bareIntegerPattern.MatchString(cell) {
			return false
		}
	}
	return len(row1) > 0
}

// signalNamelike: every cell in row1 is non-empty, at most 50
// characters, not a bare integer or decimal, and does not look like an
// email address or URL.
func signalNamelike(row1 []string) bool {
	for _, cell := range row1 {
		if cell == "" || len(cell) > 50 {
			return false
		}
		if bareDecimalPattern.MatchString(cell) {
			return false
		}
		if looksLikeEmail(cell) || looksLikeURL(cell) {
			return false
		}
	}
	return len(row1) > 0
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at:], ".")
}

func looksLikeURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "://") ||
		strings.HasPrefix(lower, "www.")
}

// SyntheticColumns generates Column_1..Column_n names for files without
// a header row.
func SyntheticColumns(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Column_%d", i+1)
	}
	return names
}
