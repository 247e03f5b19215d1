/*
Package resilience provides a circuit breaker for the search backend probe.

# Overview

Implements the circuit breaker pattern so that an unreachable SearXNG
instance stops being probed on every health check and gets time to recover.

# Usage

	// Create a circuit breaker
	breaker := resilience.New("searx", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	// Execute request through breaker
	err := breaker.Do(func() error {
		return client.Ping()
	})

# States

- Closed: Normal operation, requests pass through
- Open: Backend unavailable, requests fail immediately
- Half-Open: Testing if backend recovered, limited requests allowed

The breaker transitions between states based on success/failure rates:

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
*/
package resilience
