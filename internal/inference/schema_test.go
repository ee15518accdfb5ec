package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

func TestInferType_Boolean(t *testing.T) {
	dataType, confidence := InferType([]string{"true", "FALSE", "yes", "n", "1"})

	assert.Equal(t, domain.DataTypeBoolean, dataType)
	assert.Equal(t, 1.0, confidence)
}

func TestInferType_Currency(t *testing.T) {
	dataType, confidence := InferType([]string{"$1,250.00", "€13.37", "$-5.00"})

	assert.Equal(t, domain.DataTypeCurrency, dataType)
	assert.Equal(t, 1.0, confidence)
}

func TestInferType_Number(t *testing.T) {
	dataType, confidence := InferType([]string{"42", "-7", "1,250.50"})

	assert.Equal(t, domain.DataTypeNumber, dataType)
	assert.Equal(t, 1.0, confidence)
}

func TestInferType_BareIntegersAreNumberNotCurrency(t *testing.T) {
	// Currency needs an explicit symbol, so plain ids stay numeric.
	dataType, _ := InferType([]string{"2", "3", "4"})
	assert.Equal(t, domain.DataTypeNumber, dataType)
}

func TestInferType_DateAnyMatch(t *testing.T) {
	// A single matching sample is sufficient evidence for date.
	dataType, confidence := InferType([]string{"2024-01-05", "last tuesday", "n/a"})

	assert.Equal(t, domain.DataTypeDate, dataType)
	assert.InDelta(t, 1.0/3.0, confidence, 1e-9)
}

func TestInferType_DateLayouts(t *testing.T) {
	for _, v := range []string{"2024-01-05", "01/05/2024", "01-05-2024", "1/5/24"} {
		dataType, _ := InferType([]string{v})
		assert.Equal(t, domain.DataTypeDate, dataType, "value %q", v)
	}
}

func TestInferType_MixedFallsBackToText(t *testing.T) {
	dataType, confidence := InferType([]string{"true", "42", "hello"})

	assert.Equal(t, domain.DataTypeText, dataType)
	assert.Equal(t, 1.0, confidence)
}

func TestInferType_EmptySample(t *testing.T) {
	dataType, confidence := InferType(nil)

	assert.Equal(t, domain.DataTypeText, dataType)
	assert.Equal(t, 0.0, confidence)
}

func TestInferType_StrictTypesRequireAllValues(t *testing.T) {
	// One non-boolean value blocks the boolean commit entirely.
	dataType, _ := InferType([]string{"true", "false", "maybe"})
	assert.NotEqual(t, domain.DataTypeBoolean, dataType)
}

func TestConfidence_PartialNumericMatch(t *testing.T) {
	values := []string{"1", "2", "3", "x", "y"}
	assert.InDelta(t, 0.6, Confidence(values, domain.DataTypeNumber), 1e-9)
}

func TestConfidence_AlwaysInUnitInterval(t *testing.T) {
	samples := [][]string{
		nil,
		{"1"},
		{"a", "b", "c"},
		{"$1.00", "nope", "2024-01-01", "true"},
	}
	types := []domain.DataType{
		domain.DataTypeBoolean, domain.DataTypeCurrency,
		domain.DataTypeNumber, domain.DataTypeDate, domain.DataTypeText,
	}
	for _, values := range samples {
		for _, dt := range types {
			c := Confidence(values, dt)
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 1.0)
		}
	}
}

func TestConfidence_TextAlwaysFull(t *testing.T) {
	assert.Equal(t, 1.0, Confidence([]string{"anything", "1", "%&/"}, domain.DataTypeText))
}

func TestInferColumns(t *testing.T) {
	columns := []string{"id", "Name"}
	rows := [][]string{
		{"1", "John"},
		{"2", "Jane"},
	}

	fields := InferColumns(columns, rows, DefaultOptions())
	require.Len(t, fields, 2)

	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, domain.DataTypeNumber, fields[0].DataType)
	assert.Equal(t, 1.0, fields[0].Confidence)
	assert.Equal(t, "1", fields[0].SampleValue)

	assert.Equal(t, "Name", fields[1].Name)
	assert.Equal(t, domain.DataTypeText, fields[1].DataType)
	assert.Equal(t, 1.0, fields[1].Confidence)
}

func TestInferColumns_EmptyColumn(t *testing.T) {
	fields := InferColumns([]string{"a", "empty"}, [][]string{{"1", ""}, {"2", ""}}, DefaultOptions())
	require.Len(t, fields, 2)

	assert.Equal(t, domain.DataTypeText, fields[1].DataType)
	assert.Equal(t, 0.0, fields[1].Confidence)
	assert.Empty(t, fields[1].SampleValue)
}

func TestInferColumns_RespectsSampleSize(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"1"}
	}
	// The 11th row onward is never consulted.
	rows[15] = []string{"not a number"}

	fields := InferColumns([]string{"n"}, rows, Options{SampleSize: 10})
	assert.Equal(t, domain.DataTypeNumber, fields[0].DataType)
}

func TestInferColumns_RaggedRows(t *testing.T) {
	rows := [][]string{{"1", "x"}, {"2"}}
	fields := InferColumns([]string{"a", "b"}, rows, DefaultOptions())

	require.Len(t, fields, 2)
	assert.Equal(t, "x", fields[1].SampleValue)
}
