package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeStructural,
				Message: "only one root element is allowed",
				Err:     nil,
			},
			expected: "structural: only one root element is allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	result := appErr.Unwrap()
	assert.Equal(t, wrappedErr, result)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name: "same type",
			appError: &AppError{
				Type:    ErrorTypeStructural,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeStructural,
				Message: "different message",
				Err:     errors.New("some error"),
			},
			expected: true,
		},
		{
			name: "different type",
			appError: &AppError{
				Type:    ErrorTypeStructural,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeConfiguration,
				Message: "test message",
				Err:     nil,
			},
			expected: false,
		},
		{
			name: "not an AppError",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Is(tt.target)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_SentinelUnwrapping(t *testing.T) {
	err := NewStructuralError("attribute charlie after content", ErrAttributeAfterContent)
	assert.True(t, errors.Is(err, ErrAttributeAfterContent))
	assert.False(t, errors.Is(err, ErrSecondRoot))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrorTypeStructural, appErr.Type)
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "structural error",
			err:      NewStructuralError("only one root element is allowed", nil),
			expected: "Structural error: only one root element is allowed",
		},
		{
			name:     "configuration error",
			err:      NewConfigurationError("unknown option badOption", nil),
			expected: "Configuration error: unknown option badOption",
		},
		{
			name:     "sink error",
			err:      NewSinkError("failed to flush JSON stream", nil),
			expected: "JSON output error: failed to flush JSON stream",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide valid XML data.",
		},
		{
			name:     "standard error - invalid XML",
			err:      ErrInvalidXML,
			expected: "Error: The input contains invalid XML. Please check your XML syntax.",
		},
		{
			name:     "standard error - namespace repair",
			err:      ErrNamespaceRepair,
			expected: "Error: Namespace repair is not supported. Remove the repairNamespaces option.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserFriendlyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
