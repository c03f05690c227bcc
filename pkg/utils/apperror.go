package utils

import "fmt"

type ErrorCode string

// Error categories, each mapped to a distinct HTTP status by the handlers
// so clients can branch on the response code.
const (
	CodeValidation   ErrorCode = "validation"    // 400
	CodeUnauthorized ErrorCode = "unauthorized"  // 401
	CodeForbidden    ErrorCode = "forbidden"     // 403
	CodeNotFound     ErrorCode = "not_found"     // 404
	CodeConflict     ErrorCode = "conflict"      // 409
	CodeGone         ErrorCode = "gone"          // 410
	CodeRateLimited  ErrorCode = "rate_limited"  // 429
	CodeInternal     ErrorCode = "internal"      // 500
)

// AppError carries a category plus a message safe to show to the client.
// The wrapped cause stays server-side.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ErrValidation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func ErrUnauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func ErrForbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func ErrConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func ErrGone(message string) *AppError {
	return &AppError{Code: CodeGone, Message: message}
}

func ErrRateLimited(message string) *AppError {
	return &AppError{Code: CodeRateLimited, Message: message}
}

func ErrInternal(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}
