package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/rohan-flutterint/graphviz/pkg/buildinfo"
	"github.com/rohan-flutterint/graphviz/pkg/cache"
	"github.com/rohan-flutterint/graphviz/pkg/observability"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(pipeline.NewRunner(c, nil, logger), WithLogger(logger))
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServer_Version(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/version", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info buildinfo.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Name != buildinfo.Name {
		t.Errorf("name = %q, want %q", info.Name, buildinfo.Name)
	}
}

func TestServer_Convert(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		want        []string
	}{
		{
			name:   "dot default",
			target: "/v1/convert",
			body:   `digraph G { a -> b }`,
			want:   []string{`<graph id="G"`, `<edge from="a" to="b" isdirected="true" id="a--b"`},
		},
		{
			name:        "json by content type",
			target:      "/v1/convert",
			contentType: "application/json",
			body:        `{"name":"J","directed":true,"nodes":[{"id":"x"}]}`,
			want:        []string{`<graph id="J"`, `<node id="x"`},
		},
		{
			name:   "latin1 indented",
			target: "/v1/convert?encoding=latin1&indent=true",
			body:   `graph U { "é" -- b }`,
			want:   []string{`encoding="ISO-8859-1"`, `edgemode="undirected"`, "\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := do(t, s, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
				t.Errorf("Content-Type = %q", ct)
			}
			for _, w := range tt.want {
				if !strings.Contains(rec.Body.String(), w) {
					t.Errorf("body missing %q\n%s", w, rec.Body.String())
				}
			}
		})
	}
}

func TestServer_ConvertCached(t *testing.T) {
	s := newTestServer(t)
	body := `digraph { a -> b }`

	var got []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(body))
		rec := do(t, s, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		got = append(got, rec.Header().Get("X-Cache"))
	}
	if got[0] != "MISS" || got[1] != "HIT" {
		t.Errorf("X-Cache = %v, want [MISS HIT]", got)
	}
}

func TestServer_Stats(t *testing.T) {
	counters := observability.NewCounters()
	observability.SetAll(counters)
	t.Cleanup(observability.Reset)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(c, nil, logger), WithLogger(logger), WithCounters(counters))

	for i := 0; i < 2; i++ {
		do(t, s, httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(`digraph { a -> b }`)))
	}
	do(t, s, httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(`digraph {`)))

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var snap observability.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Conversions != 1 || snap.CacheHits != 1 || snap.CacheMisses != 2 {
		t.Errorf("conversions/hits/misses = %d/%d/%d, want 1/1/2", snap.Conversions, snap.CacheHits, snap.CacheMisses)
	}
	if snap.LoadErrors != 1 || snap.ClientErrors != 1 {
		t.Errorf("load errors = %d, client errors = %d, want 1 and 1", snap.LoadErrors, snap.ClientErrors)
	}
	if snap.Requests != 4 {
		t.Errorf("requests = %d, want 4", snap.Requests)
	}
}

func TestServer_StatsDisabled(t *testing.T) {
	rec := do(t, newTestServer(t), httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServer_ConvertErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"bad format", "/v1/convert?format=yaml", "x", http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad encoding", "/v1/convert?encoding=koi8", "digraph {}", http.StatusBadRequest, "INVALID_ENCODING"},
		{"bad flag", "/v1/convert?indent=maybe", "digraph {}", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad dot", "/v1/convert", "digraph {", http.StatusUnprocessableEntity, "INVALID_DOT"},
		{"bad json", "/v1/convert?format=json", "[", http.StatusUnprocessableEntity, "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			rec := do(t, s, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
			if resp.RequestID == "" {
				t.Error("missing request id")
			}
		})
	}
}

func TestServer_ConvertBodyErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   io.Reader
		status int
		code   string
	}{
		{"broken body", iotest.ErrReader(stderrors.New("connection reset")), http.StatusBadRequest, "INVALID_INPUT"},
		{"oversized body", bytes.NewReader(make([]byte, pipeline.MaxInputSize+1)), http.StatusRequestEntityTooLarge, "INPUT_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/convert", tt.body))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/v1/convert", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated id is not a uuid: %v", err)
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	if got := do(t, s, req).Header().Get(RequestIDHeader); got != id {
		t.Errorf("id = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	if got := do(t, s, req).Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid client id should be replaced")
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want string
	}{
		{"application/json", "json"},
		{"application/graph+json; charset=utf-8", "json"},
		{"text/vnd.graphviz", "dot"},
		{"text/plain", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatFromContentType(tt.ct); got != tt.want {
			t.Errorf("formatFromContentType(%q) = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestListenAndServe_Shutdown(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
