package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// Repositories return it when a uniqueness constraint rejects a write.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a business-rule violation. The specific rule is carried by one
// of the conflict sentinels below, all of which wrap ErrConflict.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected failure that must not leak details to the caller.
var ErrInternal = errors.New("internal error")

// ErrOutOfStock is returned by the inventory counter when no copy is left to lend.
var ErrOutOfStock = errors.New("no available copies")

// ErrIntegrityViolation is returned when a stored invariant would be broken,
// e.g. available copies exceeding total copies. It always indicates a bookkeeping bug.
var ErrIntegrityViolation = errors.New("data integrity violation")

// ErrTransient marks storage failures that are safe to retry for read-only work.
var ErrTransient = errors.New("transient storage failure")

// Lending conflicts.
var (
	ErrAlreadyBorrowed = newConflict("you already borrowed this book and have not returned it")
	ErrNotAvailable    = newConflict("book is not available")
	ErrAlreadyReturned = newConflict("book already returned")
	ErrMustReturnFirst = newConflict("you must borrow and return the book before adding it to your reading list")
	ErrAlreadyInList   = newConflict("book already in reading list")
)

type conflict struct {
	msg string
}

func newConflict(msg string) *conflict {
	return &conflict{msg: msg}
}

func (c *conflict) Error() string {
	return ErrConflict.Error() + ": " + c.msg
}

func (c *conflict) Unwrap() error {
	return ErrConflict
}

var conflictReasons = []struct {
	err    *conflict
	reason string
}{
	{ErrAlreadyBorrowed, "already_borrowed"},
	{ErrNotAvailable, "not_available"},
	{ErrAlreadyReturned, "already_returned"},
	{ErrMustReturnFirst, "must_return_first"},
	{ErrAlreadyInList, "already_in_list"},
}

// ConflictReason returns the stable reason code for a lending conflict, or an empty
// string when err is not one of them.
func ConflictReason(err error) string {
	for _, cr := range conflictReasons {
		if errors.Is(err, cr.err) {
			return cr.reason
		}
	}
	return ""
}

// UserMessage returns the caller-facing message carried by err: the message of the
// outermost AppError, or the description of a lending conflict. It returns an empty
// string when err carries neither.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	for _, cr := range conflictReasons {
		if errors.Is(err, cr.err) {
			return cr.err.msg
		}
	}
	return ""
}

// NewValidationError wraps a user-facing message with ErrValidation.
func NewValidationError(message string) error {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewNotFoundError wraps a user-facing message with ErrNotFound.
func NewNotFoundError(message string) error {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
