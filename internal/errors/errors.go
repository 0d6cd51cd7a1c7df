// Package errors defines the typed failure taxonomy for the watcher. Every
// failure a run can encounter is classified so the orchestrator can contain
// it at the right boundary instead of relying on blanket catch-and-continue.
package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	// ErrTypeExtraction covers network and parse failures while retrieving
	// the careers page. Non-fatal to the process; the run is logged as failed.
	ErrTypeExtraction ErrorType = "EXTRACTION"
	// ErrTypeValidation marks a malformed candidate (empty title). Filtered
	// input, not a run failure.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeStoreConflict marks a job id uniqueness collision or transient
	// lock contention. Never aborts the remaining batch.
	ErrTypeStoreConflict ErrorType = "STORE_CONFLICT"
	// ErrTypeNotification marks a delivery transport failure. Persistence has
	// already succeeded by the time notification runs.
	ErrTypeNotification ErrorType = "NOTIFICATION"
	// ErrTypeLogWrite marks a scrape_log insert failure. Logged only; never
	// rolls back the postings persisted in the same run.
	ErrTypeLogWrite ErrorType = "LOG_WRITE"
	// ErrTypeInternal is the catch-all for everything else.
	ErrTypeInternal ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Extraction(message string, err error) *DomainError {
	return New(ErrTypeExtraction, message, err)
}

func Validation(message string, err error) *DomainError {
	return New(ErrTypeValidation, message, err)
}

func StoreConflict(message string, err error) *DomainError {
	return New(ErrTypeStoreConflict, message, err)
}

func Notification(message string, err error) *DomainError {
	return New(ErrTypeNotification, message, err)
}

func LogWrite(message string, err error) *DomainError {
	return New(ErrTypeLogWrite, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

// Kind extracts the ErrorType from err, unwrapping as needed. Returns
// ErrTypeInternal for anything outside the taxonomy.
func Kind(err error) ErrorType {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Type
	}
	return ErrTypeInternal
}

// IsType reports whether err carries the given ErrorType.
func IsType(err error, t ErrorType) bool {
	var de *DomainError
	return stderrors.As(err, &de) && de.Type == t
}
