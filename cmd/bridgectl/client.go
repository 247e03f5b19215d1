package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"webbridge/internal/shared/types"
	"webbridge/internal/version"
)

// client is a thin wrapper over the webbridge HTTP API.
type client struct {
	http *resty.Client
}

// newClient builds a client for addr. A bare host:port gets an http scheme.
// The client timeout covers the longest legitimate execution (a crawl behind
// a cold uv sandbox); quick status calls bound themselves via context.
func newClient(addr string) *client {
	base := strings.TrimRight(addr, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &client{
		http: resty.New().
			SetBaseURL(base).
			SetTimeout(15 * time.Minute).
			SetHeader("User-Agent", "bridgectl/"+version.Version),
	}
}

// apiError is the {"error": "..."} body non-2xx responses carry.
type apiError struct {
	Error string `json:"error"`
}

// serviceInfo is the identity payload of GET /.
type serviceInfo struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// servicesPayload is the body of GET /services.
type servicesPayload struct {
	Services []types.Service `json:"services"`
}

func (c *client) root(ctx context.Context) (*serviceInfo, error) {
	var out serviceInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, errorFrom(resp)
	}
	return &out, nil
}

func (c *client) health(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, errorFrom(resp)
	}
	return out, nil
}

func (c *client) services(ctx context.Context) ([]types.Service, error) {
	var out servicesPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/services")
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, errorFrom(resp)
	}
	return out.Services, nil
}

func (c *client) execute(ctx context.Context, toolID string, params map[string]any) (*types.Result, error) {
	var out types.Result
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"tool_id": toolID, "params": params}).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/services/execute")
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, errorFrom(resp)
	}
	return &out, nil
}

// errorFrom turns a non-2xx response into an error carrying the server's message.
func errorFrom(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Error != "" {
		return fmt.Errorf("server returned %s: %s", resp.Status(), apiErr.Error)
	}
	return fmt.Errorf("server returned %s", resp.Status())
}
