package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

func templateWithFields(id string, fields ...string) domain.ImportTemplate {
	tpl := domain.ImportTemplate{ID: id}
	for _, f := range fields {
		tpl.FieldMappings = append(tpl.FieldMappings, domain.ImportFieldMapping{
			SourceField: f,
			TargetField: f,
		})
	}
	return tpl
}

func TestSuggestTemplate_FullMatch(t *testing.T) {
	// The end-to-end example: all three expected fields present.
	tpl := templateWithFields("tpl-1", "first_name", "last_name", "email")
	detected := []string{"first_name", "last_name", "email", "phone"}

	suggestion := SuggestTemplate(detected, []domain.ImportTemplate{tpl}, DefaultOptions())
	require.NotNil(t, suggestion)

	assert.Equal(t, "tpl-1", suggestion.TemplateID)
	assert.Equal(t, 100, suggestion.Confidence)
}

func TestSuggestTemplate_NoOverlap(t *testing.T) {
	tpl := templateWithFields("tpl-1", "first_name", "last_name", "email")

	suggestion := SuggestTemplate([]string{"fname", "lname"}, []domain.ImportTemplate{tpl}, DefaultOptions())
	assert.Nil(t, suggestion)
}

func TestSuggestTemplate_BelowFloor(t *testing.T) {
	tpl := templateWithFields("tpl-1", "date", "amount", "payee")

	// 1 of 3 matches: 33% < 70%.
	suggestion := SuggestTemplate([]string{"date"}, []domain.ImportTemplate{tpl}, DefaultOptions())
	assert.Nil(t, suggestion)
}

func TestSuggestTemplate_PicksHighestScore(t *testing.T) {
	a := templateWithFields("tpl-a", "date", "amount", "memo")
	b := templateWithFields("tpl-b", "date", "amount")

	suggestion := SuggestTemplate([]string{"date", "amount"},
		[]domain.ImportTemplate{a, b}, DefaultOptions())
	require.NotNil(t, suggestion)
	assert.Equal(t, "tpl-b", suggestion.TemplateID)
}

func TestSuggestTemplate_FirstSeenWinsTies(t *testing.T) {
	a := templateWithFields("tpl-a", "date", "amount")
	b := templateWithFields("tpl-b", "date", "amount")

	suggestion := SuggestTemplate([]string{"date", "amount"},
		[]domain.ImportTemplate{a, b}, DefaultOptions())
	require.NotNil(t, suggestion)
	assert.Equal(t, "tpl-a", suggestion.TemplateID)
}

func TestSuggestTemplate_SkipsEmptyTemplates(t *testing.T) {
	empty := domain.ImportTemplate{ID: "tpl-empty"}

	suggestion := SuggestTemplate([]string{"date"}, []domain.ImportTemplate{empty}, DefaultOptions())
	assert.Nil(t, suggestion)
}

func TestSuggestTemplate_CombinationMembersCount(t *testing.T) {
	tpl := domain.ImportTemplate{
		ID: "tpl-combo",
		Combinations: []domain.FieldCombination{{
			ID:          "c1",
			TargetField: "payee",
			Delimiter:   domain.DelimiterSpace,
			SourceFields: []domain.SourceField{
				{ID: "s1", FieldName: "first_name", Order: 1},
				{ID: "s2", FieldName: "last_name", Order: 2},
			},
		}},
	}

	suggestion := SuggestTemplate([]string{"first_name", "last_name"},
		[]domain.ImportTemplate{tpl}, DefaultOptions())
	require.NotNil(t, suggestion)
	assert.Equal(t, 100, suggestion.Confidence)
}

func TestSuggestTemplate_RoundsPercentage(t *testing.T) {
	tpl := templateWithFields("tpl-1", "a", "b", "c")

	suggestion := SuggestTemplate([]string{"a", "b"},
		[]domain.ImportTemplate{tpl}, Options{MinConfidence: 0.5})
	require.NotNil(t, suggestion)
	assert.Equal(t, 67, suggestion.Confidence)
}

func TestScoreTemplate_MonotonicInOverlap(t *testing.T) {
	expected := []string{"date", "amount", "payee"}
	detected := []string{"date"}

	before := ScoreTemplate(detected, expected)
	after := ScoreTemplate(append(detected, "amount"), expected)

	assert.GreaterOrEqual(t, after, before)
}

func TestFieldsMatch(t *testing.T) {
	assert.True(t, fieldsMatch("Date", " date "))
	assert.True(t, fieldsMatch("transaction_date", "date")) // substring either way
	assert.True(t, fieldsMatch("date", "transaction_date"))
	assert.False(t, fieldsMatch("payee", "amount"))
	assert.False(t, fieldsMatch("", "amount"))
}
