package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an error for the Discord boundary to render
type Code string

const (
	// CodeUnknown indicates an uncategorized error
	CodeUnknown Code = "unknown"

	// CodeNotFound indicates a quest, submission, review or player is absent
	// or already resolved
	CodeNotFound Code = "not_found"

	// CodeUnauthorized indicates a non-host action or an identity mismatch on
	// a personal button
	CodeUnauthorized Code = "unauthorized"

	// CodeInvalidInput indicates a bad rank letter, non-positive XP, malformed
	// duration/capacity pair or oversized submission field
	CodeInvalidInput Code = "invalid_input"

	// CodeAlreadyDone indicates the action already happened: class already
	// chosen, quest already accepted, nothing to reset
	CodeAlreadyDone Code = "already_done"

	// CodeExpired indicates the quest's deadline has passed
	CodeExpired Code = "expired"

	// CodeCapacityReached indicates the quest's participant cap is full
	CodeCapacityReached Code = "capacity_reached"

	// CodeNotificationFailed indicates a best-effort outbound message failed
	// after state already committed
	CodeNotificationFailed Code = "notification_failed"

	// CodeInternal indicates a store or system failure
	CodeInternal Code = "internal"
)

// Error is an application error carrying a code and an optional cause
type Error struct {
	// Code is the error category
	Code Code

	// Message is the user-facing message
	Message string

	// Cause is the wrapped error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with a code and message, preserving the cause chain
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

// InvalidInput creates an invalid input error
func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message)
}

// InvalidInputf creates a formatted invalid input error
func InvalidInputf(format string, args ...any) *Error {
	return Newf(CodeInvalidInput, format, args...)
}

// AlreadyDone creates an already done error
func AlreadyDone(message string) *Error {
	return New(CodeAlreadyDone, message)
}

// Expired creates an expired error
func Expired(message string) *Error {
	return New(CodeExpired, message)
}

// CapacityReached creates a capacity reached error
func CapacityReached(message string) *Error {
	return New(CodeCapacityReached, message)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Is checks whether the error carries the given code
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks whether the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsUnauthorized checks whether the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return Is(err, CodeUnauthorized)
}

// IsInvalidInput checks whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, CodeInvalidInput)
}

// IsAlreadyDone checks whether the error is an already done error
func IsAlreadyDone(err error) bool {
	return Is(err, CodeAlreadyDone)
}

// GetCode returns the error's code, or CodeUnknown for foreign errors
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// UserMessage returns the message to show the acting user. Foreign errors get
// a generic line so store internals never leak into Discord replies.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
