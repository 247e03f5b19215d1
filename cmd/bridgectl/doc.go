// Package main implements bridgectl, the operator CLI for the webbridge
// service. It talks to a running server over the HTTP API and provides
// subcommands for listing tools (ops), executing them (exec), diagnosing a
// deployment (doctor), and checking versions (version).
//
// The server address comes from --server or the WEBBRIDGE_ADDR environment
// variable, defaulting to http://localhost:8000.
//
// Usage:
//
//	bridgectl ops
//	bridgectl exec fetch --param url=https://example.com
//	bridgectl doctor
//	bridgectl version
package main
