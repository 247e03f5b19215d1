package web

import (
	"context"
	"fmt"
	"time"

	"webbridge/internal/bridge"
	"webbridge/internal/shared/types"
)

// fetch retrieves one page through the worker and returns its content
func (p *Provider) fetch(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return failure("url parameter required")
	}

	format, _ := params["format"].(string)
	if format == "" {
		format = "markdown"
	}

	timeout, _ := params["timeout"].(float64)
	if timeout <= 0 {
		timeout = 30
	}

	bridgeParams := map[string]interface{}{
		"url":     url,
		"format":  format,
		"timeout": int(timeout),
	}
	if waitFor, ok := params["wait_for"].(string); ok && waitFor != "" {
		bridgeParams["wait_for"] = waitFor
	}
	if jsCode, ok := params["js_code"].(string); ok && jsCode != "" {
		bridgeParams["js_code"] = jsCode
	}

	req := bridge.NewRequest(bridge.ActionFetch, bridgeParams)
	req.Timeout = time.Duration(timeout) * time.Second

	resp, err := p.bridge.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Failure() {
		return output(fmt.Sprintf("Error fetching %s: %s", url, resp.Error))
	}
	return output(stringData(resp.Data))
}
