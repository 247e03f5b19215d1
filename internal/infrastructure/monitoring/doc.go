/*
Package monitoring provides Prometheus metrics for the bridge service.

# Overview

Tracks HTTP traffic, worker invocations (by action, outcome, and failure
kind), runtime selection, and WebSocket connections.

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time a worker invocation
	timer := monitoring.NewTimer(metrics, "fetch")
	// ... invoke worker ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
