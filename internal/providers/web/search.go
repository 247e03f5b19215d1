package web

import (
	"context"
	"fmt"
	"strings"

	"webbridge/internal/bridge"
	"webbridge/internal/shared/types"
)

// search queries the worker's search backends and formats the results
func (p *Provider) search(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return failure("query parameter required")
	}

	limit, _ := params["limit"].(float64)
	if limit <= 0 {
		limit = 10
	}

	req := bridge.NewRequest(bridge.ActionSearch, map[string]interface{}{
		"query": query,
		"limit": int(limit),
	})

	resp, err := p.bridge.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Failure() {
		return output(fmt.Sprintf("Error searching for \"%s\": %s", query, resp.Error))
	}
	return output(renderSearchResults(query, resp.Data))
}

// renderSearchResults formats the worker's result list as numbered entries.
func renderSearchResults(query string, data interface{}) string {
	items, _ := data.([]interface{})
	if len(items) == 0 {
		return fmt.Sprintf("No results found for \"%s\"", query)
	}

	entries := make([]string, 0, len(items))
	for i, item := range items {
		row, _ := item.(map[string]interface{})
		title, _ := row["title"].(string)
		url, _ := row["url"].(string)
		snippet, _ := row["snippet"].(string)
		entries = append(entries, fmt.Sprintf("%d. %s\n   %s\n   %s", i+1, title, url, snippet))
	}
	return strings.Join(entries, "\n\n")
}
