// Package main is the entry point for the webbridge server.
//
// The server exposes web-access operations (fetch, search, extract,
// screenshot, crawl, map) over REST and WebSocket, delegating each one to an
// ephemeral Python worker process.
//
// Architecture:
//
//	Client (REST/WS) → Go Service → Python Worker (crawl4ai)
//	                             → SearXNG (optional search backend)
//
// The server provides:
//   - REST API for tool discovery and execution
//   - WebSocket streaming with worker progress lines
//   - Prometheus metrics
//   - Rate limiting and CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Default configuration
//	./server
//
//	# Override bind address
//	./server -host 127.0.0.1 -port 9000
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
