package domain

import "time"

// ImportTemplate is a persisted mapping from a file's source columns to
// target output fields, optionally including field combinations.
type ImportTemplate struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	AccountID     string               `json:"accountId,omitempty"`
	FieldMappings []ImportFieldMapping `json:"fieldMappings"`
	Combinations  []FieldCombination   `json:"combinations,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// SourceFieldNames returns every source column name the template expects:
// independently mapped columns plus combination members, in declaration
// order, without duplicates.
func (t ImportTemplate) SourceFieldNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, m := range t.FieldMappings {
		add(m.SourceField)
	}
	for _, c := range t.Combinations {
		for _, f := range c.OrderedFields() {
			add(f.FieldName)
		}
	}
	return names
}

// TemplateUpdate carries a partial template update. Nil fields are left
// unchanged.
type TemplateUpdate struct {
	Name          *string
	AccountID     *string
	FieldMappings []ImportFieldMapping
	Combinations  []FieldCombination
}

// TemplateSuggestion names the best-matching template for a file along
// with an integer confidence percentage. Ephemeral, never persisted.
type TemplateSuggestion struct {
	TemplateID string `json:"templateId"`
	Confidence int    `json:"confidence"`
}

// ConstructedRecord is one output row produced by the downstream
// pipeline from parsed cells and a resolved template.
type ConstructedRecord struct {
	TemplateID string            `json:"templateId"`
	AccountID  string            `json:"accountId,omitempty"`
	Values     map[string]string `json:"values"`
}

// RowError reports a row-level failure from the downstream pipeline.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// DuplicateCandidate flags a constructed record that may duplicate an
// existing one.
type DuplicateCandidate struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// BuildResult is the downstream pipeline's output: constructed records
// plus row-level errors and duplicate candidates.
type BuildResult struct {
	Records    []ConstructedRecord  `json:"records"`
	Errors     []RowError           `json:"errors,omitempty"`
	Duplicates []DuplicateCandidate `json:"duplicates,omitempty"`
}
