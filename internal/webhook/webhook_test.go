package webhook

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendSuccess(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	err := Send(srv.URL, []byte(`{"status":"ok"}`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != `{"status":"ok"}` {
		t.Errorf("body = %q, want %q", gotBody, `{"status":"ok"}`)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type = %q, want %q", gotContentType, "application/json")
	}
}

func TestSendCustomHeaders(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret123")

	var gotAuth string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(200)
	}))
	defer srv.Close()

	headers := map[string]string{
		"Authorization": "Bearer $TEST_WEBHOOK_TOKEN",
		"Content-Type":  "text/plain",
	}
	err := Send(srv.URL, []byte("hi"), headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret123")
	}
	if gotContentType != "text/plain" {
		t.Errorf("Content-Type = %q, want %q", gotContentType, "text/plain")
	}
}

func TestSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		io.WriteString(w, "internal server error")
	}))
	defer srv.Close()

	err := Send(srv.URL, []byte("{}"), nil)
	if err == nil {
		t.Fatal("expected error for 500 status")
	}
	if !strings.Contains(err.Error(), "internal server error") {
		t.Errorf("error should contain body snippet: %v", err)
	}
}

func TestSendBadURL(t *testing.T) {
	if err := Send("://bad", nil, nil); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}

func TestReadSnippet(t *testing.T) {
	if got := readSnippet(strings.NewReader("")); got != "(empty body)" {
		t.Errorf("readSnippet(empty) = %q", got)
	}
	long := strings.Repeat("x", 300)
	if got := readSnippet(strings.NewReader(long)); len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("readSnippet(long) = %d chars", len(got))
	}
}
