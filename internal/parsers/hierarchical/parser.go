// Package hierarchical turns tree-shaped documents (JSON) into the
// uniform column/row table. A document that is itself a record array is
// used directly; otherwise the most plausible nested record array is
// located by keyword and size ranking. Nested values are flattened to a
// short textual preview, which is a display and inference convenience,
// not a lossless transform.
package hierarchical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// keySampleSize bounds how many record elements contribute keys to the
// column union.
const keySampleSize = 50

// Preview truncation limits for flattened nested values.
const (
	previewArrayElems  = 3
	previewObjectPairs = 2
	truncationMarker   = "…"
)

// recordKeywords mark array property names that likely hold the record
// set.
var recordKeywords = []string{
	"list", "data", "items", "records", "transactions", "entries", "results",
}

// Table is the uniform column/row model extracted from a document.
type Table struct {
	// Columns are the property keys in first-seen order.
	Columns []string

	// Rows hold one flattened cell per column per record.
	Rows [][]string

	// SourcePath is the dotted path of the chosen record array, empty
	// when the document root was used.
	SourcePath string
}

// Parse extracts a table from decoded JSON text. maxRows bounds the
// number of records converted; zero means no bound.
func Parse(text string, maxRows int) (*Table, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.ErrEmptyFile
	}

	var root json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	switch kindOf(root) {
	case '[':
		elems, err := arrayElements(root)
		if err != nil {
			return nil, err
		}
		if len(elems) == 0 || kindOf(elems[0]) != '{' {
			return nil, fmt.Errorf("%w: document array holds no records", domain.ErrNoColumns)
		}
		return buildTable(elems, "", maxRows)
	case '{':
		if candidate := findRecordArray(root, ""); candidate != nil {
			return buildTable(candidate.elems, candidate.path, maxRows)
		}
		// A bare object with no qualifying nested array is one row.
		return buildTable([]json.RawMessage{root}, "", maxRows)
	default:
		return nil, fmt.Errorf("%w: document is a bare scalar", domain.ErrNoColumns)
	}
}

// candidateArray is a nested array whose first element is an object.
type candidateArray struct {
	path  string
	elems []json.RawMessage
}

// findRecordArray walks object properties recursively and returns the
// top-ranked candidate record array: paths containing a data-like
// keyword rank above those without, then element count descending.
// Document order breaks remaining ties.
func findRecordArray(obj json.RawMessage, prefix string) *candidateArray {
	candidates := collectCandidates(obj, prefix)
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ki, kj := hasRecordKeyword(candidates[i].path), hasRecordKeyword(candidates[j].path)
		if ki != kj {
			return ki
		}
		return len(candidates[i].elems) > len(candidates[j].elems)
	})
	return &candidates[0]
}

func collectCandidates(obj json.RawMessage, prefix string) []candidateArray {
	keys, values, err := objectEntries(obj)
	if err != nil {
		return nil
	}
	var found []candidateArray
	for _, key := range keys {
		value := values[key]
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch kindOf(value) {
		case '[':
			elems, err := arrayElements(value)
			if err != nil || len(elems) == 0 {
				continue
			}
			// Arrays of scalars are not candidate record sets.
			if kindOf(elems[0]) == '{' {
				found = append(found, candidateArray{path: path, elems: elems})
			}
		case '{':
			found = append(found, collectCandidates(value, path)...)
		}
	}
	return found
}

// hasRecordKeyword reports whether the final path segment contains a
// data-like keyword.
func hasRecordKeyword(path string) bool {
	segment := path
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		segment = path[idx+1:]
	}
	segment = strings.ToLower(segment)
	for _, kw := range recordKeywords {
		if strings.Contains(segment, kw) {
			return true
		}
	}
	return false
}

// buildTable unions property keys across a bounded element sample into
// columns and flattens each record into a row of cells.
func buildTable(records []json.RawMessage, path string, maxRows int) (*Table, error) {
	sample := len(records)
	if sample > keySampleSize {
		sample = keySampleSize
	}

	var columns []string
	seen := make(map[string]bool)
	for _, record := range records[:sample] {
		keys, _, err := objectEntries(record)
		if err != nil {
			continue
		}
		for _, key := range keys {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: records carry no properties", domain.ErrNoColumns)
	}

	limit := len(records)
	if maxRows > 0 && limit > maxRows {
		limit = maxRows
	}
	rows := make([][]string, 0, limit)
	for _, record := range records[:limit] {
		_, values, err := objectEntries(record)
		if err != nil {
			continue
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			if raw, ok := values[col]; ok {
				row[i] = flatten(raw)
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows, SourcePath: path}, nil
}

// flatten renders a JSON value as a short display string. Nested arrays
// show the first few elements, nested objects the first two pairs, both
// with a truncation marker.
func flatten(raw json.RawMessage) string {
	switch kindOf(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case '[':
		elems, err := arrayElements(raw)
		if err != nil {
			return string(raw)
		}
		parts := make([]string, 0, previewArrayElems+1)
		for i, elem := range elems {
			if i == previewArrayElems {
				parts = append(parts, truncationMarker)
				break
			}
			parts = append(parts, flatten(elem))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case '{':
		keys, values, err := objectEntries(raw)
		if err != nil {
			return string(raw)
		}
		parts := make([]string, 0, previewObjectPairs+1)
		for i, key := range keys {
			if i == previewObjectPairs {
				parts = append(parts, truncationMarker)
				break
			}
			parts = append(parts, key+": "+flatten(values[key]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case 'n':
		return ""
	default:
		// Numbers and booleans keep their literal text.
		return string(bytes.TrimSpace(raw))
	}
}

// kindOf returns the first non-space byte of a JSON value, identifying
// its kind.
func kindOf(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}

// arrayElements splits a JSON array into its raw elements.
func arrayElements(raw json.RawMessage) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return elems, nil
}

// objectEntries returns an object's keys in document order plus a map of
// raw values. encoding/json maps lose key order, so the keys are pulled
// from the token stream.
func objectEntries(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	if kindOf(raw) != '{' {
		return nil, nil, fmt.Errorf("%w: expected object", domain.ErrMalformedDocument)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("%w: non-string object key", domain.ErrMalformedDocument)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = value
	}
	return keys, values, nil
}
