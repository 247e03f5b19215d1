/*
Package tracing provides request tracing for debugging production issues.

# Overview

This package implements lightweight tracing for the HTTP surface. It follows
OpenTelemetry concepts but with a minimal implementation: spans become
structured log events rather than exports to a collector.

# Usage

	// Create tracer
	tracer := tracing.New("webbridge", logger)

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("key", "value")

# Trace Format

Traces use standard HTTP headers for propagation:
  - X-Trace-ID: Unique identifier for entire request flow
  - X-Span-ID: Identifier for current operation

Both are prefixed ULIDs (trc_*, spn_*), so trace logs sort by time.

# Performance

The tracing system is designed for minimal overhead:
  - Buffered span collection (1000 spans)
  - Async span processing
  - Structured logging integration
*/
package tracing
