package web

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"webbridge/internal/bridge"
	"webbridge/internal/shared/types"
)

const (
	// crawlPageCap bounds each page's contribution to the combined output.
	crawlPageCap  = 5000
	crawlDivider  = "\n\n---\n\n"
	truncationTag = "... [truncated]"
)

// crawl walks linked pages from a starting URL and concatenates their content
func (p *Provider) crawl(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return failure("url parameter required")
	}

	maxPages, _ := params["max_pages"].(float64)
	if maxPages <= 0 {
		maxPages = 10
	}
	maxDepth, _ := params["max_depth"].(float64)
	if maxDepth <= 0 {
		maxDepth = 2
	}
	strategy, _ := params["strategy"].(string)
	if strategy == "" {
		strategy = "bfs"
	}

	bridgeParams := map[string]interface{}{
		"url":       url,
		"max_pages": int(maxPages),
		"max_depth": int(maxDepth),
		"strategy":  strategy,
	}
	if pattern, ok := params["url_pattern"].(string); ok && pattern != "" {
		if !doublestar.ValidatePattern(pattern) {
			return failure(fmt.Sprintf("invalid url_pattern: %s", pattern))
		}
		bridgeParams["url_pattern"] = pattern
	}

	req := bridge.NewRequest(bridge.ActionCrawl, bridgeParams)

	resp, err := p.bridge.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Failure() {
		return output(fmt.Sprintf("Error crawling %s: %s", url, resp.Error))
	}
	return output(renderCrawl(url, resp.Data))
}

// renderCrawl joins per-page sections, capping each page's content so one
// large page cannot drown the rest of the crawl.
func renderCrawl(url string, data interface{}) string {
	pages, _ := data.([]interface{})
	if len(pages) == 0 {
		return fmt.Sprintf("No pages crawled from %s", url)
	}

	sections := make([]string, 0, len(pages))
	for _, page := range pages {
		row, _ := page.(map[string]interface{})
		pageURL, _ := row["url"].(string)
		content, _ := row["markdown"].(string)
		sections = append(sections, fmt.Sprintf("## %s\n\n%s", pageURL, capPage(content)))
	}
	return strings.Join(sections, crawlDivider)
}

// capPage truncates page content at the cap without splitting a UTF-8
// sequence mid-rune.
func capPage(s string) string {
	if len(s) <= crawlPageCap {
		return s
	}
	cut := crawlPageCap
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationTag
}
