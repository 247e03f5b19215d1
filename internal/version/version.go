// Package version carries build identity for the webbridge service.
package version

// Name is the service name reported by the version and debug operations.
const Name = "webbridge"

var (
	// Version holds the service version.
	// This value is typically set at build time using -ldflags.
	Version = "0.3.0"
)
