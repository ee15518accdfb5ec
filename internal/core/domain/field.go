package domain

const unknownDescription = "Unknown"

// DataType classifies the values observed in a single column.
type DataType string

// Available data types, from most to least specific.
const (
	// DataTypeBoolean covers true/false style flags.
	DataTypeBoolean DataType = "boolean"

	// DataTypeCurrency covers monetary amounts with an explicit symbol.
	DataTypeCurrency DataType = "currency"

	// DataTypeNumber covers plain integers and decimals.
	DataTypeNumber DataType = "number"

	// DataTypeDate covers common literal date layouts.
	DataTypeDate DataType = "date"

	// DataTypeText is the fallback; every value is valid text.
	DataTypeText DataType = "text"
)

// IsValid returns true if the data type is recognised.
func (t DataType) IsValid() bool {
	switch t {
	case DataTypeBoolean, DataTypeCurrency, DataTypeNumber, DataTypeDate, DataTypeText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DataType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t DataType) Description() string {
	switch t {
	case DataTypeBoolean:
		return "Boolean (true/false)"
	case DataTypeCurrency:
		return "Currency (symbol + amount)"
	case DataTypeNumber:
		return "Number (integer or decimal)"
	case DataTypeDate:
		return "Date"
	case DataTypeText:
		return "Text"
	default:
		return unknownDescription
	}
}

// DetectedField describes one discovered column: its name, the inferred
// data type, one sample value, and the fraction of sampled values that
// match the inferred type. Produced fresh on every parse and never
// mutated afterwards.
type DetectedField struct {
	Name        string   `json:"name"`
	DataType    DataType `json:"dataType"`
	SampleValue string   `json:"sampleValue"`
	Confidence  float64  `json:"confidence"`
}
