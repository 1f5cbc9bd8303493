package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

const (
	CodeConfig        = "CONFIG_ERROR"
	CodeInputContract = "INPUT_CONTRACT"
	CodeStorage       = "STORAGE_ERROR"
)

// Common application errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInputContract = errors.New("analysis result violates input contract")
	ErrStorage       = errors.New("storage error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInputContractError reports a raw analysis result that cannot be processed.
// The returned error matches ErrInputContract with errors.Is.
func NewInputContractError(message string, cause error) *AppError {
	if cause == nil {
		return NewAppError(CodeInputContract, message, ErrInputContract)
	}
	return NewAppError(CodeInputContract, message, fmt.Errorf("%w: %w", ErrInputContract, cause))
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
