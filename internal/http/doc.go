// Package http provides HTTP handlers and routing for the webbridge REST API.
//
// This package implements all HTTP endpoints using the Gin framework.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//   - Metrics: /metrics/json (Prometheus exposition is wired in the server)
//
// Features:
//   - JSON request/response handling
//   - Proper HTTP status codes
//   - Request validation
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, bridge, checker, metrics)
//	router.GET("/health", handlers.Health)
//	router.POST("/services/execute", handlers.ExecuteService)
package http
