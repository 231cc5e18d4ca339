package models

import "fmt"

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes surfaced by the stores. The view layer maps these to
// transient notifications; none of them is fatal.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDuplicateUser      = "DUPLICATE_USER"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid email or password",
	}
}

func NewDuplicateUserError(field string) *AppError {
	return &AppError{
		Code:    CodeDuplicateUser,
		Message: fmt.Sprintf("A user with this %s already exists", field),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal error",
		Err:     err,
	}
}
