package web

import "webbridge/internal/shared/types"

// getTools returns the list of available web tools
func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "web.fetch",
			Name:        "Fetch Page",
			Description: "Fetch a web page and return its content",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Required: true, Description: "Page URL"},
				{Name: "format", Type: "string", Required: false, Default: "markdown", Description: "Output format: markdown, html, or raw"},
				{Name: "wait_for", Type: "string", Required: false, Description: "CSS selector to wait for before capture"},
				{Name: "js_code", Type: "string", Required: false, Description: "JavaScript to run in the page before capture"},
				{Name: "timeout", Type: "number", Required: false, Default: 30, Description: "Budget in seconds"},
			},
			Returns: "string",
		},
		{
			ID:          "web.search",
			Name:        "Search Web",
			Description: "Search the web and return formatted results",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Required: true, Description: "Search query"},
				{Name: "limit", Type: "number", Required: false, Default: 10, Description: "Maximum results"},
			},
			Returns: "string",
		},
		{
			ID:          "web.extract",
			Name:        "Extract Data",
			Description: "Extract structured data from a page using CSS selectors",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Required: true, Description: "Page URL"},
				{Name: "schema", Type: "object", Required: true, Description: "Field name to CSS selector mapping"},
			},
			Returns: "string",
		},
		{
			ID:          "web.screenshot",
			Name:        "Screenshot Page",
			Description: "Capture a page screenshot as a data URL",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Required: true, Description: "Page URL"},
				{Name: "width", Type: "number", Required: false, Default: 1280, Description: "Viewport width in pixels"},
				{Name: "height", Type: "number", Required: false, Default: 720, Description: "Viewport height in pixels"},
			},
			Returns: "string",
		},
		{
			ID:          "web.crawl",
			Name:        "Crawl Site",
			Description: "Crawl linked pages from a starting URL and return their content",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Required: true, Description: "Starting URL"},
				{Name: "max_pages", Type: "number", Required: false, Default: 10, Description: "Page budget"},
				{Name: "max_depth", Type: "number", Required: false, Default: 2, Description: "Link depth limit"},
				{Name: "strategy", Type: "string", Required: false, Default: "bfs", Description: "Traversal order: bfs or dfs"},
				{Name: "url_pattern", Type: "string", Required: false, Description: "Glob pattern restricting visited URLs"},
			},
			Returns: "string",
		},
		{
			ID:          "web.map",
			Name:        "Map Links",
			Description: "List URLs discoverable from a page",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Required: true, Description: "Page URL"},
				{Name: "search", Type: "string", Required: false, Description: "Substring filter over discovered URLs"},
				{Name: "limit", Type: "number", Required: false, Default: 100, Description: "Maximum URLs"},
			},
			Returns: "string",
		},
		{
			ID:          "web.version",
			Name:        "Service Version",
			Description: "Report the service name, version, and current time",
			Parameters:  []types.Parameter{},
			Returns:     "string",
		},
		{
			ID:          "web.debug",
			Name:        "Bridge Diagnostics",
			Description: "Inspect the worker environment and recent invocations",
			Parameters:  []types.Parameter{},
			Returns:     "string",
		},
	}
}
