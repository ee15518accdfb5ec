package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Parse Errors.

	// ErrEmptyFile indicates the uploaded file contains no data.
	ErrEmptyFile = errors.New("file is empty")

	// ErrNoColumns indicates no columns could be discovered in the file.
	ErrNoColumns = errors.New("no columns found")

	// ErrUnsupportedType indicates a file extension with no registered parser.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates the file exceeds the maximum upload size.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrDecode indicates the raw bytes could not be decoded as text.
	// Malformed sequences are surfaced, never silently substituted.
	ErrDecode = errors.New("could not decode file contents")

	// ErrMalformedDocument indicates a hierarchical document that could
	// not be parsed at all (e.g. invalid JSON).
	ErrMalformedDocument = errors.New("malformed document")

	// Template Errors.

	// ErrTemplateInUse indicates a template cannot be deleted because an
	// account still references it.
	ErrTemplateInUse = errors.New("template is in use")
)
