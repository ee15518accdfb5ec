// Package delimited tokenizes delimiter-separated text into logical rows
// and cells with RFC 4180 quoting semantics, and infers the file's
// dialect (delimiter and header presence) from row content alone.
package delimited

import "strings"

// TokenizeResult holds the logical rows of a delimited file.
type TokenizeResult struct {
	// Rows are the logical rows, each an ordered slice of trimmed cells.
	Rows [][]string

	// HasQuotedFields reports whether any cell used RFC 4180 quoting.
	HasQuotedFields bool
}

// Tokenize splits decoded text into logical rows and cells. A quote
// character toggles in-quote state; inside quotes a delimiter is literal
// and line breaks belong to the cell value. A doubled quote inside
// quotes is one literal quote. A trailing row without a terminating
// newline is still emitted. Rows that are entirely empty are dropped.
func Tokenize(text, delimiter string) TokenizeResult {
	text = normalizeLineEndings(text)
	if text == "" {
		return TokenizeResult{}
	}

	delim := ','
	if delimiter != "" {
		delim = []rune(delimiter)[0]
	}

	var (
		rows      [][]string
		row       []string
		cell      strings.Builder
		inQuotes  bool
		sawQuotes bool
	)

	runes := []rune(text)
	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		endCell()
		for _, c := range row {
			if c != "" {
				rows = append(rows, row)
				break
			}
		}
		row = nil
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			sawQuotes = true
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Doubled quote: one literal quote, state unchanged.
				cell.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delim && !inQuotes:
			endCell()
		case ch == '\n' && !inQuotes:
			endRow()
		default:
			cell.WriteRune(ch)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return TokenizeResult{Rows: rows, HasQuotedFields: sawQuotes}
}

// normalizeLineEndings rewrites \r\n and bare \r to \n so row splitting
// only ever reasons about \n.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// FirstLine returns the first physical line of the text, used as the
// delimiter detection sample.
func FirstLine(text string) string {
	text = normalizeLineEndings(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
