package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolveURL_BaseURLAndQuery(t *testing.T) {
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	}))
	t.Cleanup(srv.Close)

	c, err := New(
		WithBaseURL(srv.URL),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/v1/test?x=1",
		WithQueryParam("y", "2"),
		WithHeader("Accept", "application/json"),
	)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	b, _ := io.ReadAll(resp.Body)
	got := string(b)
	if !strings.HasPrefix(got, "/v1/test?") || !strings.Contains(got, "x=1") || !strings.Contains(got, "y=2") {
		t.Fatalf("unexpected path/query: %q", got)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected Accept header, got %q", gotAccept)
	}
}

func TestResolveURL_BaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL + "/data/2.5"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/weather")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	_ = resp.Body.Close()

	if gotPath != "/data/2.5/weather" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
}

func TestDoStatus_SingleAttempt(t *testing.T) {
	var n int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&n, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("nope"))
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	_, err = c.DoStatus(req)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsHTTPStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected status 500 error, got %v", err)
	}
	if got := atomic.LoadInt32(&n); got != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", got)
	}
}

func TestDoStatus_ErrorBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	t.Cleanup(srv.Close)

	c, err := New(
		WithBaseURL(srv.URL),
		WithMaxErrorBodyBytes(10),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := c.DoStatus(req)
	if err == nil {
		t.Fatalf("expected error")
	}
	he, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *httpx.Error, got %T", err)
	}
	if len(he.RawBody) != 10 {
		t.Fatalf("expected RawBody len=10, got %d", len(he.RawBody))
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if len(b) != 10 {
		t.Fatalf("expected resp.Body len=10, got %d", len(b))
	}
}

func TestDoStatus_RetryAfterParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	_, err = c.DoStatus(req)
	he, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *httpx.Error, got %v", err)
	}
	if he.RetryAfter != 7*time.Second {
		t.Fatalf("expected RetryAfter=7s, got %v", he.RetryAfter)
	}
}

func TestRequestTimeoutOption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	c, err := New(
		WithBaseURL(srv.URL),
		WithTimeout(2*time.Second),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/",
		WithRequestTimeout(50*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	_, err = c.DoStatus(req)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestHooksObserveExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var before, after int32
	c.WithHooks(
		[]BeforeHook{func(req *http.Request) error {
			atomic.AddInt32(&before, 1)
			return nil
		}},
		[]AfterHook{func(req *http.Request, resp *http.Response, err error, dur time.Duration) {
			atomic.AddInt32(&after, 1)
		}},
	)

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	_ = resp.Body.Close()

	if before != 1 || after != 1 {
		t.Fatalf("expected hooks to run once, got before=%d after=%d", before, after)
	}
}
