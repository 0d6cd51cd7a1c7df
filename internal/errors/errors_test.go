package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/errors"
)

func TestDomainError_Message(t *testing.T) {
	err := errors.StoreConflict("job_id taken", stderrors.New("duplicate key"))
	want := "STORE_CONFLICT: job_id taken: duplicate key"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := errors.Extraction("timeout", nil)
	if bare.Error() != "EXTRACTION: timeout" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "EXTRACTION: timeout")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := stderrors.New("broken pipe")
	err := errors.Notification("send failed", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want errors.ErrorType
	}{
		{errors.Extraction("x", nil), errors.ErrTypeExtraction},
		{errors.Validation("x", nil), errors.ErrTypeValidation},
		{errors.StoreConflict("x", nil), errors.ErrTypeStoreConflict},
		{errors.Notification("x", nil), errors.ErrTypeNotification},
		{errors.LogWrite("x", nil), errors.ErrTypeLogWrite},
		{stderrors.New("plain"), errors.ErrTypeInternal},
		{fmt.Errorf("wrapped: %w", errors.Extraction("x", nil)), errors.ErrTypeExtraction},
	}
	for _, c := range cases {
		if got := errors.Kind(c.err); got != c.want {
			t.Errorf("Kind(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("run failed: %w", errors.StoreConflict("contention", nil))
	if !errors.IsType(err, errors.ErrTypeStoreConflict) {
		t.Error("IsType should see through fmt.Errorf wrapping")
	}
	if errors.IsType(err, errors.ErrTypeExtraction) {
		t.Error("IsType must not match a different type")
	}
	if errors.IsType(stderrors.New("plain"), errors.ErrTypeInternal) {
		t.Error("a plain error carries no ErrorType at all")
	}
}

func TestStackCaptured(t *testing.T) {
	err := errors.Internal("boom", nil)
	if len(err.StackTrace()) == 0 {
		t.Error("expected a captured stack trace")
	}
}
