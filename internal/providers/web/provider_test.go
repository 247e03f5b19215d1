package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"webbridge/internal/bridge"
	"webbridge/internal/logging"
	"webbridge/internal/searx"
)

// newTestProvider builds a provider whose bridge runs the given shell body as
// its worker. The returned dir holds the stubs, for bodies that capture state.
func newTestProvider(t *testing.T, workerBody string) (*Provider, string) {
	t.Helper()

	dir := t.TempDir()
	python := writeStub(t, dir, "fake-python", "if [ \"$1\" = \"-c\" ]; then exit 0; fi\nexec sh \"$@\"\n")
	worker := writeStub(t, dir, "worker.py", workerBody)

	b, err := bridge.New(bridge.Config{
		Script:         worker,
		Python:         python,
		UV:             filepath.Join(dir, "uv-not-installed"),
		ProbeTimeout:   time.Second,
		DefaultTimeout: 5 * time.Second,
		MaxTimeout:     10 * time.Second,
	}, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("New bridge: %v", err)
	}
	return NewProvider(b, nil, logging.NewNop()), dir
}

func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

// reply builds a worker body that drains stdin and answers with one JSON line.
func reply(line string) string {
	return "cat > /dev/null\necho '" + line + "'\n"
}

// capture builds a worker body that records the request beside the script
// before answering.
func capture(line string) string {
	return "req=$(cat)\nprintf '%s' \"$req\" > \"$(dirname \"$0\")/req.json\"\necho '" + line + "'\n"
}

type capturedRequest struct {
	Action string                 `json:"action"`
	Params map[string]interface{} `json:"params"`
}

func readCaptured(t *testing.T, dir string) capturedRequest {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, "req.json"))
	if err != nil {
		t.Fatalf("read captured request: %v", err)
	}
	var req capturedRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("decode captured request: %v", err)
	}
	return req
}

func runTool(t *testing.T, p *Provider, toolID string, params map[string]interface{}) string {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	if err != nil {
		t.Fatalf("Execute %s: %v", toolID, err)
	}
	if !result.Success {
		t.Fatalf("Execute %s failed: %s", toolID, *result.Error)
	}
	return result.Output()
}

func TestDefinition(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true}`))
	def := p.Definition()

	if def.ID != "web" {
		t.Errorf("Expected service ID web, got %s", def.ID)
	}
	if len(def.Tools) != 8 {
		t.Fatalf("Expected 8 tools, got %d", len(def.Tools))
	}

	want := []string{
		"web.fetch", "web.search", "web.extract", "web.screenshot",
		"web.crawl", "web.map", "web.version", "web.debug",
	}
	for i, id := range want {
		if def.Tools[i].ID != id {
			t.Errorf("Tool %d: expected %s, got %s", i, id, def.Tools[i].ID)
		}
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true}`))

	result, err := p.Execute(context.Background(), "web.nope", nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Success {
		t.Fatal("Expected failure for unknown tool")
	}
	if !strings.Contains(*result.Error, "unknown tool") {
		t.Errorf("Expected unknown tool error, got: %s", *result.Error)
	}
}

func TestFetchReturnsContent(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":"# Example"}`))

	out := runTool(t, p, "web.fetch", map[string]interface{}{"url": "https://example.com"})
	if out != "# Example" {
		t.Errorf("Expected markdown content, got %q", out)
	}
}

func TestFetchSendsDefaults(t *testing.T) {
	p, dir := newTestProvider(t, capture(`{"success":true,"data":"ok"}`))

	runTool(t, p, "web.fetch", map[string]interface{}{"url": "https://example.com"})

	req := readCaptured(t, dir)
	if req.Action != "fetch" {
		t.Errorf("Expected action fetch, got %s", req.Action)
	}
	if req.Params["url"] != "https://example.com" {
		t.Errorf("Unexpected url: %v", req.Params["url"])
	}
	if req.Params["format"] != "markdown" {
		t.Errorf("Expected default format markdown, got %v", req.Params["format"])
	}
	if req.Params["timeout"] != float64(30) {
		t.Errorf("Expected default timeout 30, got %v", req.Params["timeout"])
	}
	if _, present := req.Params["wait_for"]; present {
		t.Error("wait_for should be omitted when not given")
	}
}

func TestFetchBridgedFailure(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":false,"error":"net::ERR_NAME_NOT_RESOLVED"}`))

	out := runTool(t, p, "web.fetch", map[string]interface{}{"url": "https://bad.invalid"})
	want := "Error fetching https://bad.invalid: net::ERR_NAME_NOT_RESOLVED"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestFetchRequiresURL(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true}`))

	result, err := p.Execute(context.Background(), "web.fetch", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Success {
		t.Fatal("Expected failure without url")
	}
	if *result.Error != "url parameter required" {
		t.Errorf("Unexpected error: %s", *result.Error)
	}
}

func TestSearchFormatsResults(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":[`+
		`{"title":"First","url":"https://a.example","snippet":"snippet A"},`+
		`{"title":"Second","url":"https://b.example","snippet":"snippet B"}]}`))

	out := runTool(t, p, "web.search", map[string]interface{}{"query": "example"})
	want := "1. First\n   https://a.example\n   snippet A\n\n" +
		"2. Second\n   https://b.example\n   snippet B"
	if out != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, out)
	}
}

func TestSearchEmptyResults(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":[]}`))

	out := runTool(t, p, "web.search", map[string]interface{}{"query": "zzz-no-hits"})
	if out != `No results found for "zzz-no-hits"` {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestSearchSendsDefaults(t *testing.T) {
	p, dir := newTestProvider(t, capture(`{"success":true,"data":[]}`))

	runTool(t, p, "web.search", map[string]interface{}{"query": "go"})

	req := readCaptured(t, dir)
	if req.Action != "search" {
		t.Errorf("Expected action search, got %s", req.Action)
	}
	if req.Params["limit"] != float64(10) {
		t.Errorf("Expected default limit 10, got %v", req.Params["limit"])
	}
}

func TestSearchBridgedFailure(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":false,"error":"All search backends failed. Configure SEARXNG_URL or ensure ddgs is available."}`))

	out := runTool(t, p, "web.search", map[string]interface{}{"query": "go"})
	if !strings.HasPrefix(out, `Error searching for "go": All search backends failed`) {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestExtractRendersJSON(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":[{"title":"Hi","author":"Ann"}]}`))

	out := runTool(t, p, "web.extract", map[string]interface{}{
		"url":    "https://example.com",
		"schema": map[string]interface{}{"title": "h1", "author": ".byline"},
	})
	if !strings.Contains(out, `"title": "Hi"`) || !strings.Contains(out, `"author": "Ann"`) {
		t.Errorf("Expected indented JSON fields, got: %s", out)
	}
}

func TestExtractBridgedFailure(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":false,"error":"selector not found"}`))

	out := runTool(t, p, "web.extract", map[string]interface{}{
		"url":    "https://example.com",
		"schema": map[string]interface{}{"title": "h1"},
	})
	want := "Error extracting from https://example.com: selector not found"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestExtractRequiresSchema(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true}`))

	result, err := p.Execute(context.Background(), "web.extract", map[string]interface{}{
		"url": "https://example.com",
	}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Success {
		t.Fatal("Expected failure without schema")
	}
	if *result.Error != "schema parameter required" {
		t.Errorf("Unexpected error: %s", *result.Error)
	}
}

func TestScreenshotPassthrough(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":"data:image/png;base64,AAAA"}`))

	out := runTool(t, p, "web.screenshot", map[string]interface{}{"url": "https://example.com"})
	if out != "data:image/png;base64,AAAA" {
		t.Errorf("Expected data URL passthrough, got %q", out)
	}
}

func TestScreenshotWrapsBareBase64(t *testing.T) {
	pngMagic := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	payload := base64.StdEncoding.EncodeToString(pngMagic)
	p, _ := newTestProvider(t, reply(fmt.Sprintf(`{"success":true,"data":"%s"}`, payload)))

	out := runTool(t, p, "web.screenshot", map[string]interface{}{"url": "https://example.com"})
	if !strings.HasPrefix(out, "data:image/png;base64,") {
		t.Errorf("Expected synthesized PNG data URL, got %q", out)
	}
	if !strings.HasSuffix(out, payload) {
		t.Errorf("Expected original payload preserved, got %q", out)
	}
}

func TestScreenshotSendsViewportDefaults(t *testing.T) {
	p, dir := newTestProvider(t, capture(`{"success":true,"data":"data:image/png;base64,AAAA"}`))

	runTool(t, p, "web.screenshot", map[string]interface{}{"url": "https://example.com"})

	req := readCaptured(t, dir)
	if req.Params["width"] != float64(1280) || req.Params["height"] != float64(720) {
		t.Errorf("Expected 1280x720 defaults, got %vx%v", req.Params["width"], req.Params["height"])
	}
}

func TestScreenshotBridgedFailure(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":false,"error":"No screenshot captured"}`))

	out := runTool(t, p, "web.screenshot", map[string]interface{}{"url": "https://example.com"})
	want := "Error taking screenshot of https://example.com: No screenshot captured"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestCrawlRendersSections(t *testing.T) {
	long := strings.Repeat("x", 6000)
	line, err := json.Marshal(map[string]interface{}{
		"success": true,
		"data": []map[string]interface{}{
			{"url": "https://site.example/a", "markdown": long},
			{"url": "https://site.example/b", "markdown": "hello"},
		},
	})
	if err != nil {
		t.Fatalf("marshal worker reply: %v", err)
	}
	p, _ := newTestProvider(t, reply(string(line)))

	out := runTool(t, p, "web.crawl", map[string]interface{}{"url": "https://site.example"})

	if !strings.Contains(out, "## https://site.example/a") || !strings.Contains(out, "## https://site.example/b") {
		t.Error("Expected per-page section headers")
	}
	if !strings.Contains(out, "\n\n---\n\n") {
		t.Error("Expected section divider")
	}
	if !strings.Contains(out, strings.Repeat("x", 5000)+"... [truncated]") {
		t.Error("Expected long page capped with truncation marker")
	}
	if strings.Contains(out, strings.Repeat("x", 5001)) {
		t.Error("Page content exceeded the cap")
	}
}

func TestCrawlSendsDefaults(t *testing.T) {
	p, dir := newTestProvider(t, capture(`{"success":true,"data":[]}`))

	runTool(t, p, "web.crawl", map[string]interface{}{"url": "https://site.example"})

	req := readCaptured(t, dir)
	if req.Params["max_pages"] != float64(10) || req.Params["max_depth"] != float64(2) {
		t.Errorf("Expected 10 pages / depth 2 defaults, got %v / %v",
			req.Params["max_pages"], req.Params["max_depth"])
	}
	if req.Params["strategy"] != "bfs" {
		t.Errorf("Expected default strategy bfs, got %v", req.Params["strategy"])
	}
}

func TestCrawlEmpty(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":[]}`))

	out := runTool(t, p, "web.crawl", map[string]interface{}{"url": "https://site.example"})
	if out != "No pages crawled from https://site.example" {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestCrawlRejectsInvalidPattern(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":[]}`))

	result, err := p.Execute(context.Background(), "web.crawl", map[string]interface{}{
		"url":         "https://site.example",
		"url_pattern": "[",
	}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Success {
		t.Fatal("Expected failure for malformed pattern")
	}
	if !strings.Contains(*result.Error, "invalid url_pattern") {
		t.Errorf("Unexpected error: %s", *result.Error)
	}
}

func TestCrawlBridgedFailure(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":false,"error":"browser crashed"}`))

	out := runTool(t, p, "web.crawl", map[string]interface{}{"url": "https://site.example"})
	if out != "Error crawling https://site.example: browser crashed" {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestMapRendersLinks(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":[`+
		`{"url":"https://site.example/docs","title":"Docs"},`+
		`{"url":"https://site.example/blog","title":""}]}`))

	out := runTool(t, p, "web.map", map[string]interface{}{"url": "https://site.example"})
	want := "1. [Docs](https://site.example/docs)\n" +
		"2. [https://site.example/blog](https://site.example/blog)"
	if out != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, out)
	}
}

func TestMapEmpty(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":[]}`))

	out := runTool(t, p, "web.map", map[string]interface{}{"url": "https://site.example"})
	if out != "No URLs found on https://site.example" {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestMapSendsDefaults(t *testing.T) {
	p, dir := newTestProvider(t, capture(`{"success":true,"data":[]}`))

	runTool(t, p, "web.map", map[string]interface{}{"url": "https://site.example", "search": "docs"})

	req := readCaptured(t, dir)
	if req.Params["limit"] != float64(100) {
		t.Errorf("Expected default limit 100, got %v", req.Params["limit"])
	}
	if req.Params["search"] != "docs" {
		t.Errorf("Expected search filter passed through, got %v", req.Params["search"])
	}
}

func TestVersionAnsweredLocally(t *testing.T) {
	// Worker always fails; version must not care.
	p, _ := newTestProvider(t, "cat > /dev/null\nexit 1\n")

	out := runTool(t, p, "web.version", nil)
	if !strings.Contains(out, `"name": "webbridge"`) {
		t.Errorf("Expected service name in version output, got: %s", out)
	}
	if !strings.Contains(out, `"version"`) || !strings.Contains(out, `"timestamp"`) {
		t.Errorf("Expected version and timestamp fields, got: %s", out)
	}
}

func TestDebugReport(t *testing.T) {
	p, _ := newTestProvider(t, reply(`{"success":true,"data":{"crawl4ai_version":"0.6.0"}}`))

	runTool(t, p, "web.fetch", map[string]interface{}{"url": "https://example.com"})
	out := runTool(t, p, "web.debug", nil)

	if !strings.Contains(out, `"crawl4ai_version": "0.6.0"`) {
		t.Errorf("Expected worker details, got: %s", out)
	}
	if !strings.Contains(out, `"runtime"`) || !strings.Contains(out, `"script"`) {
		t.Errorf("Expected runtime and script fields, got: %s", out)
	}
	if !strings.Contains(out, `"total": 2`) {
		t.Errorf("Expected two recorded invocations, got: %s", out)
	}
}

func TestDebugSurvivesWorkerFailure(t *testing.T) {
	p, _ := newTestProvider(t, "cat > /dev/null\nexit 7\n")

	out := runTool(t, p, "web.debug", nil)
	if !strings.Contains(out, `"worker_error"`) {
		t.Errorf("Expected worker_error in report, got: %s", out)
	}
}

func TestDebugIncludesSearxStatus(t *testing.T) {
	dir := t.TempDir()
	python := writeStub(t, dir, "fake-python", "if [ \"$1\" = \"-c\" ]; then exit 0; fi\nexec sh \"$@\"\n")
	worker := writeStub(t, dir, "worker.py", reply(`{"success":true,"data":{}}`))

	b, err := bridge.New(bridge.Config{
		Script:         worker,
		Python:         python,
		UV:             filepath.Join(dir, "uv-not-installed"),
		ProbeTimeout:   time.Second,
		DefaultTimeout: 5 * time.Second,
		MaxTimeout:     10 * time.Second,
	}, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("New bridge: %v", err)
	}
	p := NewProvider(b, searx.NewChecker("", time.Second, logging.NewNop()), logging.NewNop())

	out := runTool(t, p, "web.debug", nil)
	if !strings.Contains(out, `"configured": false`) {
		t.Errorf("Expected unconfigured searx status, got: %s", out)
	}
}
