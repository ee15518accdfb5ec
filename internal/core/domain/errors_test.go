package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrEmptyFile", ErrEmptyFile},
		{"ErrNoColumns", ErrNoColumns},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrFileTooLarge", ErrFileTooLarge},
		{"ErrDecode", ErrDecode},
		{"ErrMalformedDocument", ErrMalformedDocument},
		{"ErrTemplateInUse", ErrTemplateInUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrNotImplemented,
		ErrEmptyFile,
		ErrNoColumns,
		ErrUnsupportedType,
		ErrFileTooLarge,
		ErrDecode,
		ErrMalformedDocument,
		ErrTemplateInUse,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"%v should not match %v", err1, err2)
			}
		}
	}
}

// TestErrors_Wrapping tests sentinel matching through fmt.Errorf wrapping
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("parse data.csv: %w", ErrEmptyFile)
	assert.True(t, errors.Is(wrapped, ErrEmptyFile))
	assert.False(t, errors.Is(wrapped, ErrNoColumns))

	doubly := fmt.Errorf("inspect: %w", wrapped)
	assert.True(t, errors.Is(doubly, ErrEmptyFile))
}
