package webfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

func TestExtractText(t *testing.T) {
	page := []byte(`<html><head><title>ignored</title><style>p{}</style></head><body>
		<nav><a href="/">Home</a></nav>
		<h1>  Acme   Rockets </h1>
		<div>loose text is skipped</div>
		<p>We build <b>reusable</b>
		   rockets.</p>
		<ul><li>Fast</li><li><p>Cheap</p></li></ul>
		<h4>not extracted</h4>
		<script>var p = "<p>no</p>";</script>
	</body></html>`)

	got := ExtractText(page)
	want := "Acme Rockets We build reusable rockets. Fast Cheap"
	if got != want {
		t.Fatalf("ExtractText: want=%q got=%q", want, got)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if got := ExtractText([]byte(`<html><body><div>nothing here</div></body></html>`)); got != "" {
		t.Fatalf("ExtractText: expected empty, got %q", got)
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	if got := Truncate("héllo", 2); got != "hé" {
		t.Fatalf("Truncate: want=%q got=%q", "hé", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("Truncate: want=%q got=%q", "abc", got)
	}
}

func TestHTTPFetcherSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<p>hi</p>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(logger.Nop(), Config{})
	status, body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if status != http.StatusOK || string(body) != "<p>hi</p>" {
		t.Fatalf("Fetch: unexpected status=%d body=%q", status, body)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("User-Agent: want=%q got=%q", DefaultUserAgent, gotUA)
	}
}

func TestHTTPFetcherNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(logger.Nop(), Config{})
	status, _, err := f.Fetch(context.Background(), srv.URL)
	var ferr *pkgerrors.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if status != http.StatusInternalServerError || ferr.Status != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d/%d", status, ferr.Status)
	}
}

func TestHTTPFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := NewHTTPFetcher(logger.Nop(), Config{Timeout: 30 * time.Millisecond})
	_, _, err := f.Fetch(context.Background(), srv.URL)
	var ferr *pkgerrors.FetchError
	if !errors.As(err, &ferr) || !ferr.Timeout {
		t.Fatalf("expected timed out FetchError, got %v", err)
	}
}
