package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("submit: %w", &pkgerrors.ValidationError{Field: "website_url", Reason: "is required"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
		},
		{
			name:       "persistence",
			err:        &pkgerrors.PersistenceError{Op: "save", Err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "persistence_failed",
		},
		{
			name:       "generation",
			err:        &pkgerrors.GenerationError{Op: "script", Err: errors.New("boom")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_failed",
		},
		{
			name:       "passthrough",
			err:        New(http.StatusConflict, "conflict", nil),
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromError(tc.err)
			if got.Status != tc.wantStatus || got.Code != tc.wantCode {
				t.Fatalf("FromError: want=%d/%s got=%d/%s", tc.wantStatus, tc.wantCode, got.Status, got.Code)
			}
		})
	}

	if FromError(nil) != nil {
		t.Fatalf("FromError(nil): expected nil")
	}
}
