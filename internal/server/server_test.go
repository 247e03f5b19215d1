package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"webbridge/internal/infrastructure/config"
)

// newTestServer assembles a full server whose bridge runs a shell stub as its
// worker. Built once per test binary: New registers metrics on the
// process-global prometheus registry.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	python := writeStub(t, dir, "fake-python", "if [ \"$1\" = \"-c\" ]; then exit 0; fi\nexec sh \"$@\"\n")
	worker := writeStub(t, dir, "worker.py", "cat > /dev/null\necho '{\"success\":true,\"data\":\"# Stub Page\"}'\n")

	cfg := config.Default()
	cfg.Worker.ScriptPath = worker
	cfg.Worker.PythonBin = python
	cfg.Worker.UVBin = filepath.Join(dir, "uv-not-installed")
	cfg.Worker.ProbeTimeout = time.Second
	cfg.Worker.DefaultTimeout = 5 * time.Second

	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func TestServerSurface(t *testing.T) {
	srv := newTestServer(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		return w
	}

	t.Run("root reports identity", func(t *testing.T) {
		w := do(http.MethodGet, "/", "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET / = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"webbridge"`) {
			t.Errorf("body %s should name the service", w.Body.String())
		}
	})

	t.Run("health reports bridge state", func(t *testing.T) {
		w := do(http.MethodGet, "/health", "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET /health = %d, want 200", w.Code)
		}
		body := w.Body.String()
		for _, want := range []string{`"healthy"`, `"runtime"`, `"script"`} {
			if !strings.Contains(body, want) {
				t.Errorf("health body missing %s: %s", want, body)
			}
		}
	})

	t.Run("services lists web tools", func(t *testing.T) {
		w := do(http.MethodGet, "/services", "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET /services = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"web.fetch"`) {
			t.Errorf("services body should list web.fetch: %s", w.Body.String())
		}
	})

	t.Run("execute runs a tool end to end", func(t *testing.T) {
		w := do(http.MethodPost, "/services/execute",
			`{"tool_id":"web.fetch","params":{"url":"https://example.com"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("POST /services/execute = %d, want 200: %s", w.Code, w.Body.String())
		}
		body := w.Body.String()
		if !strings.Contains(body, `"success":true`) {
			t.Errorf("expected a successful result: %s", body)
		}
		if !strings.Contains(body, "# Stub Page") {
			t.Errorf("expected the worker's page in the output: %s", body)
		}
	})

	t.Run("execute validates tool IDs", func(t *testing.T) {
		w := do(http.MethodPost, "/services/execute", `{"tool_id":"web fetch","params":{}}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("malformed tool_id = %d, want 400", w.Code)
		}
	})

	t.Run("execute rejects unknown services", func(t *testing.T) {
		w := do(http.MethodPost, "/services/execute", `{"tool_id":"ghost.tool","params":{}}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("unknown service = %d, want 500", w.Code)
		}
	})

	t.Run("discover finds the web service", func(t *testing.T) {
		w := do(http.MethodPost, "/services/discover", `{"message":"fetch a web page"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("POST /services/discover = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"id":"web"`) {
			t.Errorf("discover should surface the web service: %s", w.Body.String())
		}
	})

	t.Run("prometheus metrics are exposed", func(t *testing.T) {
		w := do(http.MethodGet, "/metrics", "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET /metrics = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), "webbridge_") {
			t.Error("prometheus output should carry webbridge metrics")
		}
	})

	t.Run("metrics snapshot is served as json", func(t *testing.T) {
		w := do(http.MethodGet, "/metrics/json", "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET /metrics/json = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), "total_requests") {
			t.Errorf("snapshot body missing totals: %s", w.Body.String())
		}
	})

	t.Run("responses carry trace headers", func(t *testing.T) {
		w := do(http.MethodGet, "/", "")
		if got := w.Header().Get("X-Trace-ID"); !strings.HasPrefix(got, "trc_") {
			t.Errorf("X-Trace-ID = %q, want a trc_ prefixed ULID", got)
		}
	})

	t.Run("cors is permissive", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
			t.Error("expected CORS headers on cross-origin requests")
		}
	})
}
