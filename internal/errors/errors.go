package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeWorkbookError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes. Structural failures abort the run before anything is
// written; per-cell data issues never become errors and surface only in
// the mapping report.
const (
	CodeSheetMissing     = "SHEET_MISSING"
	CodeInputDateInvalid = "INPUT_DATE_INVALID"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeWorkbookError    = "WORKBOOK_ERROR"
	CodePersistError     = "PERSIST_ERROR"
)

// Common error constructors
func SheetMissing(name string) *AppError {
	return New(CodeSheetMissing, fmt.Sprintf("required sheet %q not found and no fallback sheet available", name))
}

func InputDateInvalid(value string) *AppError {
	return New(CodeInputDateInvalid, fmt.Sprintf("purchase date %q matches no accepted format (want 2006-01-02 or 02/01/2006)", value))
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func WorkbookError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeWorkbookError,
		Message: message,
		Cause:   cause,
	}
}

func PersistError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodePersistError,
		Message: message,
		Cause:   cause,
	}
}
