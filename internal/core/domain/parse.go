package domain

// Default parse limits. These are starting values for ParseOptions, not
// ambient state; every parse carries its own copy so concurrent parses
// stay independent.
const (
	// DefaultMaxRows caps how many data rows are tokenized and sampled.
	DefaultMaxRows = 1000

	// DefaultMaxPreviewRows caps preview data rows (the header row is
	// carried in addition, so previews hold at most 51 rows).
	DefaultMaxPreviewRows = 50

	// DefaultSampleSize caps how many non-empty values per column feed
	// type inference.
	DefaultSampleSize = 10

	// DefaultMaxFileSize is the upload size ceiling checked before any
	// decoding starts.
	DefaultMaxFileSize = 10 << 20 // 10 MiB
)

// ParseOptions configures a single parse request. The zero value is not
// usable; start from DefaultParseOptions and override fields.
type ParseOptions struct {
	// MaxRows limits how many data rows are read.
	MaxRows int

	// MaxPreviewRows limits preview data rows (header excluded).
	MaxPreviewRows int

	// SampleSize limits per-column values fed to type inference.
	SampleSize int

	// MaxFileSize is the byte ceiling enforced before parsing.
	MaxFileSize int

	// Delimiter forces the field delimiter when non-empty, skipping
	// detection.
	Delimiter string

	// Encoding is the preferred text encoding name. A byte-order mark in
	// the file always wins.
	Encoding string

	// HasHeader forces header presence when non-nil, skipping detection.
	HasHeader *bool
}

// DefaultParseOptions returns the standard parse limits.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		MaxRows:        DefaultMaxRows,
		MaxPreviewRows: DefaultMaxPreviewRows,
		SampleSize:     DefaultSampleSize,
		MaxFileSize:    DefaultMaxFileSize,
	}
}

// ParseOutcome is the sole result of a parse request. It is immutable
// once returned: either Success is true with a non-empty Fields slice,
// or Success is false with Error set and Fields empty.
type ParseOutcome struct {
	Success           bool            `json:"success"`
	Fields            []DetectedField `json:"fields"`
	RowCount          int             `json:"rowCount"`
	PreviewRows       [][]string      `json:"previewRows"`
	Error             string          `json:"error,omitempty"`
	Warnings          []string        `json:"warnings,omitempty"`
	DetectedEncoding  string          `json:"detectedEncoding"`
	DetectedDelimiter string          `json:"detectedDelimiter"`
	HasHeader         *bool           `json:"hasHeader,omitempty"`
	HasQuotedFields   bool            `json:"hasQuotedFields"`
	HasBOM            bool            `json:"hasBOM"`
}

// FailedOutcome builds the canonical failure value for a parse error.
func FailedOutcome(err error) ParseOutcome {
	return ParseOutcome{Success: false, Error: err.Error()}
}

// ColumnNames returns the detected field names in column order.
func (o ParseOutcome) ColumnNames() []string {
	names := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		names[i] = f.Name
	}
	return names
}
