// Package searx probes the optional aggregated search backend.
//
// The worker, not the bridge, decides whether searches go through SearXNG;
// this package only answers "is the configured backend reachable" for
// health and debug surfaces, without ever touching search semantics.
package searx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"webbridge/internal/infrastructure/resilience"
	"webbridge/internal/logging"
)

// Status reports the search backend's availability at check time.
type Status struct {
	Configured bool                 `json:"configured"`
	URL        string               `json:"url,omitempty"`
	Reachable  bool                 `json:"reachable"`
	Detail     string               `json:"detail,omitempty"`
	CheckedAt  time.Time            `json:"checked_at,omitempty"`
	Breaker    *resilience.Snapshot `json:"breaker,omitempty"`
}

// Checker probes a SearXNG instance over HTTP. A circuit breaker keeps an
// unreachable instance from being re-probed on every health check.
type Checker struct {
	url     string
	client  *resty.Client
	breaker *resilience.Breaker
	logger  *logging.Logger
}

// NewChecker creates a checker for searxURL. An empty URL produces a
// checker that reports "not configured" without network traffic.
func NewChecker(searxURL string, timeout time.Duration, logger *logging.Logger) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil // Disable logging

	restyClient := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "webbridge-searx-check/1.0")
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	breaker := resilience.New("searx", resilience.Settings{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Checker{
		url:     strings.TrimSuffix(searxURL, "/"),
		client:  restyClient,
		breaker: breaker,
		logger:  logger.Component("searx"),
	}
}

// URL returns the configured backend URL, empty when unconfigured.
func (c *Checker) URL() string { return c.url }

// Check probes the backend once. Any HTTP response below 500 counts as
// reachable; only connection failures and server errors do not.
func (c *Checker) Check(ctx context.Context) Status {
	if c.url == "" {
		return Status{Configured: false, Detail: "SEARXNG_URL not configured"}
	}

	st := Status{
		Configured: true,
		URL:        c.url,
		CheckedAt:  time.Now(),
	}

	err := c.breaker.Do(func() error {
		resp, err := c.client.R().SetContext(ctx).Get(c.url + "/")
		if err != nil {
			return err
		}
		if resp.StatusCode() >= 500 {
			return fmt.Errorf("searx returned status %d", resp.StatusCode())
		}
		return nil
	})

	if err != nil {
		st.Reachable = false
		st.Detail = err.Error()
		c.logger.Warn("search backend unreachable", zap.String("url", c.url), zap.Error(err))
	} else {
		st.Reachable = true
	}

	snap := c.breaker.Snapshot()
	st.Breaker = &snap
	return st
}
