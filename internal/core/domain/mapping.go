package domain

import (
	"sort"
	"strings"
)

// CombinationDelimiter selects the string placed between combined field
// values.
type CombinationDelimiter string

// Available combination delimiters.
const (
	// DelimiterSpace joins values with a single space.
	DelimiterSpace CombinationDelimiter = "space"

	// DelimiterComma joins values with ", ".
	DelimiterComma CombinationDelimiter = "comma"

	// DelimiterSemicolon joins values with "; ".
	DelimiterSemicolon CombinationDelimiter = "semicolon"

	// DelimiterCustom joins values with a user-supplied string.
	DelimiterCustom CombinationDelimiter = "custom"
)

// IsValid returns true if the delimiter is recognised.
func (d CombinationDelimiter) IsValid() bool {
	switch d {
	case DelimiterSpace, DelimiterComma, DelimiterSemicolon, DelimiterCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d CombinationDelimiter) String() string {
	return string(d)
}

// Symbol returns the join string for this delimiter. For DelimiterCustom
// the custom string is returned as-is.
func (d CombinationDelimiter) Symbol(custom string) string {
	switch d {
	case DelimiterSpace:
		return " "
	case DelimiterComma:
		return ", "
	case DelimiterSemicolon:
		return "; "
	case DelimiterCustom:
		return custom
	default:
		return " "
	}
}

// SourceField is one member of a field combination. Order values are
// dense and 1-based within the owning combination.
type SourceField struct {
	ID        string `json:"id"`
	FieldName string `json:"fieldName"`
	Order     int    `json:"order"`
}

// FieldCombination merges several source columns into one logical target
// field. SourceFields sorted by Order define concatenation order.
type FieldCombination struct {
	ID              string               `json:"id"`
	TargetField     string               `json:"targetField"`
	Delimiter       CombinationDelimiter `json:"delimiter"`
	CustomDelimiter string               `json:"customDelimiter,omitempty"`
	SourceFields    []SourceField        `json:"sourceFields"`
}

// OrderedFields returns the members sorted by Order. The receiver is not
// modified.
func (c FieldCombination) OrderedFields() []SourceField {
	fields := make([]SourceField, len(c.SourceFields))
	copy(fields, c.SourceFields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}

// Validate checks the combination against the save rules and returns the
// first failing rule as an error, or nil when the combination may be
// persisted.
func (c FieldCombination) Validate() error {
	if strings.TrimSpace(c.TargetField) == "" {
		return &ValidationError{Field: "targetField", Rule: "target field must not be empty"}
	}
	if len(c.SourceFields) < 2 {
		return &ValidationError{Field: "sourceFields", Rule: "at least 2 source fields are required"}
	}
	if c.Delimiter == DelimiterCustom && c.CustomDelimiter == "" {
		return &ValidationError{Field: "customDelimiter", Rule: "custom delimiter must not be empty"}
	}
	return nil
}

// Preview joins the member field names in concatenation order using the
// resolved delimiter symbol. Field names stand in for sample values.
func (c FieldCombination) Preview() string {
	fields := c.OrderedFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.FieldName
	}
	return strings.Join(names, c.Delimiter.Symbol(c.CustomDelimiter))
}

// Combine joins concrete cell values keyed by source field name, in
// concatenation order. Missing values join as empty strings.
func (c FieldCombination) Combine(values map[string]string) string {
	fields := c.OrderedFields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = values[f.FieldName]
	}
	return strings.Join(parts, c.Delimiter.Symbol(c.CustomDelimiter))
}

// ValidationError names the field and rule that blocked a save.
type ValidationError struct {
	Field string
	Rule  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Rule
}

// ImportFieldMapping maps a single source column to a target field. A
// source column is either independently mapped or a member of exactly
// one combination, never both.
type ImportFieldMapping struct {
	SourceField string   `json:"sourceField"`
	TargetField string   `json:"targetField"`
	DataType    DataType `json:"dataType,omitempty"`
	Required    bool     `json:"required"`
	Validation  string   `json:"validation,omitempty"`
}
