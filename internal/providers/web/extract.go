package web

import (
	"context"
	"fmt"

	"webbridge/internal/bridge"
	"webbridge/internal/shared/types"
)

// extract pulls structured fields out of a page via CSS selectors
func (p *Provider) extract(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return failure("url parameter required")
	}

	schema, ok := params["schema"].(map[string]interface{})
	if !ok || len(schema) == 0 {
		return failure("schema parameter required")
	}

	req := bridge.NewRequest(bridge.ActionExtract, map[string]interface{}{
		"url":    url,
		"schema": schema,
	})

	resp, err := p.bridge.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Failure() {
		return output(fmt.Sprintf("Error extracting from %s: %s", url, resp.Error))
	}
	return output(jsonText(resp.Data))
}
