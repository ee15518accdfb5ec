// Package domain defines the core business entities for Tabula.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ParseOutcome: The complete result of analysing one file
//   - DetectedField: A column with its inferred data type and confidence
//   - ImportTemplate: A persisted source-to-target column mapping
//   - FieldCombination: Several source columns merged into one target field
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
