// Package apperror defines the error kinds surfaced by the board use cases.
package apperror

import (
	"errors"
	"fmt"
)

// Kind is a stable code consumed by the HTTP response envelope.
type Kind string

const (
	KindUserNotFound       Kind = "NOT_EXISTED_USER"
	KindCategoryNotFound   Kind = "NOT_EXISTED_CATEGORY"
	KindPostNotFound       Kind = "NOT_EXISTED_POST"
	KindCommentNotFound    Kind = "NOT_EXISTED_COMMENT"
	KindNoPermission       Kind = "NO_PERMISSION"
	KindStorage            Kind = "STORAGE_ERROR"
	KindValidation         Kind = "VALIDATION_FAILED"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindDuplicateUser      Kind = "DUPLICATE_USER"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
)

var defaultMessages = map[Kind]string{
	KindUserNotFound:       "This user does not exist.",
	KindCategoryNotFound:   "This category does not exist.",
	KindPostNotFound:       "This post does not exist.",
	KindCommentNotFound:    "This comment does not exist.",
	KindNoPermission:       "Do not have permission.",
	KindStorage:            "Storage error.",
	KindValidation:         "Validation failed.",
	KindUnauthorized:       "Authorization failed.",
	KindDuplicateUser:      "Duplicate user id.",
	KindInvalidCredentials: "Sign in failed.",
}

// Error is the single error type returned by the use cases.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the package level sentinels
// work with errors.Is regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, msg string) *Error {
	if msg == "" {
		msg = defaultMessages[kind]
	}
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: defaultMessages[kind], Err: err}
}

// Storage wraps a gateway failure. Errors that already carry a kind pass through.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return Wrap(KindStorage, err)
}

var (
	ErrUserNotFound       = New(KindUserNotFound, "")
	ErrCategoryNotFound   = New(KindCategoryNotFound, "")
	ErrPostNotFound       = New(KindPostNotFound, "")
	ErrCommentNotFound    = New(KindCommentNotFound, "")
	ErrNoPermission       = New(KindNoPermission, "")
	ErrDuplicateUser      = New(KindDuplicateUser, "")
	ErrInvalidCredentials = New(KindInvalidCredentials, "")
)

func Validation(msg string) *Error { return New(KindValidation, msg) }

// KindOf reports the kind carried by err; unknown errors count as storage faults.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

// MessageOf returns the client facing message of err. Causes are never exposed.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return defaultMessages[KindStorage]
}
