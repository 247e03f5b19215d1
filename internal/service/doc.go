// Package service provides the registry that exposes providers to the host.
//
// The registry maintains a catalog of service providers and handles
// discovery, tool lookup, and tool execution.
//
// Components:
//   - Registry: central service catalog
//   - Provider: interface service implementations satisfy
//
// Features:
//   - Thread-safe registration
//   - Category-based listing
//   - Intent-based discovery with relevance scoring
//   - Tool execution with context passing
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(webProvider)
//	result, err := registry.Execute(ctx, "web.fetch", params, nil)
package service
