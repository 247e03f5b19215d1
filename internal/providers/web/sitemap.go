package web

import (
	"context"
	"fmt"
	"strings"

	"webbridge/internal/bridge"
	"webbridge/internal/shared/types"
)

// mapLinks lists URLs discoverable from a page
func (p *Provider) mapLinks(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return failure("url parameter required")
	}

	limit, _ := params["limit"].(float64)
	if limit <= 0 {
		limit = 100
	}

	bridgeParams := map[string]interface{}{
		"url":   url,
		"limit": int(limit),
	}
	if search, ok := params["search"].(string); ok && search != "" {
		bridgeParams["search"] = search
	}

	req := bridge.NewRequest(bridge.ActionMap, bridgeParams)

	resp, err := p.bridge.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Failure() {
		return output(fmt.Sprintf("Error mapping %s: %s", url, resp.Error))
	}
	return output(renderLinkList(url, resp.Data))
}

// renderLinkList renders discovered URLs as a numbered markdown link list.
func renderLinkList(url string, data interface{}) string {
	items, _ := data.([]interface{})
	if len(items) == 0 {
		return fmt.Sprintf("No URLs found on %s", url)
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		row, _ := item.(map[string]interface{})
		linkURL, _ := row["url"].(string)
		title, _ := row["title"].(string)
		if title == "" {
			title = linkURL
		}
		lines = append(lines, fmt.Sprintf("%d. [%s](%s)", i+1, title, linkURL))
	}
	return strings.Join(lines, "\n")
}
