// Package web exposes the web access operations backed by the bridge worker.
//
// This package is organized by operation:
//   - fetch: single-page retrieval (markdown, html, raw)
//   - search: web search with numbered result formatting
//   - extract: CSS-selector extraction returning indented JSON
//   - screenshot: page capture normalized to a data URL
//   - crawl: multi-page traversal with per-page content caps
//   - sitemap: link discovery as a markdown list
//   - diag: local version info and bridge diagnostics
//
// All operations share one shape: a tool invocation either fails fast on a
// malformed argument, or produces a textual result. Worker-side failures are
// folded into that text ("Error fetching <url>: ...") so the host never has
// to correlate a failed result with a separate error channel.
package web
