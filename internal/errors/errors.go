package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput            = errors.New("input is empty or contains only whitespace")
	ErrInvalidXML            = errors.New("invalid XML format")
	ErrFileNotFound          = errors.New("file not found")
	ErrFileEmpty             = errors.New("file is empty")
	ErrNoInput               = errors.New("no input provided: please specify a file with -i or pipe XML data to stdin")
	ErrInvalidFilePath       = errors.New("invalid file path")
	ErrDocumentNotStarted    = errors.New("document has not been started")
	ErrDocumentEnded         = errors.New("document has already been ended")
	ErrDocumentIncomplete    = errors.New("document ended with open elements")
	ErrEmptyDocument         = errors.New("document has no content")
	ErrNoOpenElement         = errors.New("no element is open")
	ErrSecondRoot            = errors.New("only one root element is allowed")
	ErrAttributeAfterContent = errors.New("attributes and namespaces must precede element content")
	ErrTextOutsideElement    = errors.New("character data is not allowed outside of elements")
	ErrUnsupportedPI         = errors.New("processing instruction cannot be represented")
	ErrArrayNotStarted       = errors.New("no array has been started")
	ErrArrayAlreadyStarted   = errors.New("an array has already been started")
	ErrArrayNameMismatch     = errors.New("element name does not match the open array")
	ErrUnknownOption         = errors.New("unknown option")
	ErrNamespaceRepair       = errors.New("namespace repair is not supported")
	ErrInvalidKeyStyle       = errors.New("invalid key style")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput         ErrorType = "input"
	ErrorTypeStructural    ErrorType = "structural"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeSink          ErrorType = "sink"
	ErrorTypeOutput        ErrorType = "output"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewStructuralError creates a new error for event sequences that have
// no JSON representation
func NewStructuralError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStructural,
		Message: message,
		Err:     err,
	}
}

// NewConfigurationError creates a new error related to option handling
func NewConfigurationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Err:     err,
	}
}

// NewSinkError creates a new error related to the downstream JSON writer
func NewSinkError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSink,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeStructural:
			return fmt.Sprintf("Structural error: %s", appErr.Message)
		case ErrorTypeConfiguration:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeSink:
			return fmt.Sprintf("JSON output error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid XML data."
	}
	if errors.Is(err, ErrInvalidXML) {
		return "Error: The input contains invalid XML. Please check your XML syntax."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid XML content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe XML data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrNamespaceRepair) {
		return "Error: Namespace repair is not supported. Remove the repairNamespaces option."
	}
	if errors.Is(err, ErrUnknownOption) {
		return "Error: Unknown option name. Check the configuration for typos."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
