package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestTaxonomyUnwraps(t *testing.T) {
	verr := &ValidationError{Field: "company_name", Reason: "is required"}
	if !errors.Is(verr, ErrInvalidArgument) {
		t.Fatalf("ValidationError should match ErrInvalidArgument")
	}
	if got, want := verr.Error(), "validation failed: company_name is required"; got != want {
		t.Fatalf("ValidationError.Error: want=%q got=%q", want, got)
	}

	wrapped := fmt.Errorf("summarize: %w", &FetchError{URL: "https://acme.test", Timeout: true, Err: context.DeadlineExceeded})
	var ferr *FetchError
	if !errors.As(wrapped, &ferr) || !ferr.Timeout {
		t.Fatalf("expected timed out FetchError, got %v", wrapped)
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Fatalf("FetchError should unwrap to its cause")
	}

	gerr := &GenerationError{Op: "ideas", Status: 503, Err: errors.New("unavailable")}
	if gerr.HTTPStatusCode() != 503 {
		t.Fatalf("GenerationError status: want=503 got=%d", gerr.HTTPStatusCode())
	}

	perr := &PersistenceError{Op: "save", Err: errors.New("disk full")}
	if got, want := perr.Error(), "persistence save: disk full"; got != want {
		t.Fatalf("PersistenceError.Error: want=%q got=%q", want, got)
	}
}
