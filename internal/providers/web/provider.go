package web

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"

	"webbridge/internal/bridge"
	"webbridge/internal/logging"
	"webbridge/internal/searx"
	"webbridge/internal/shared/types"
)

// Provider implements web access operations backed by the bridge worker
type Provider struct {
	bridge *bridge.Bridge
	searx  *searx.Checker
	logger *logging.Logger
}

// NewProvider creates a new web provider
func NewProvider(b *bridge.Bridge, checker *searx.Checker, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{
		bridge: b,
		searx:  checker,
		logger: logger.Component("web"),
	}
}

// Definition returns the web service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "web",
		Name:         "Web Access",
		Description:  "Fetch, search, extract, screenshot, crawl, and map web content",
		Category:     types.CategoryWeb,
		Capabilities: []string{"fetch", "search", "extract", "screenshot", "crawl", "map"},
		Tools:        p.getTools(),
	}
}

// Execute runs a web tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "web.fetch":
		return p.fetch(ctx, params)
	case "web.search":
		return p.search(ctx, params)
	case "web.extract":
		return p.extract(ctx, params)
	case "web.screenshot":
		return p.screenshot(ctx, params)
	case "web.crawl":
		return p.crawl(ctx, params)
	case "web.map":
		return p.mapLinks(ctx, params)
	case "web.version":
		return p.version(ctx, params)
	case "web.debug":
		return p.debug(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// output wraps an operation's textual answer in the standard result shape.
// Bridged failures travel this path too: the host always receives a result,
// with the failure context folded into the text.
func output(text string) (*types.Result, error) {
	return success(map[string]interface{}{"output": text})
}

// stringData coerces a worker payload into text. Content operations return
// strings; anything else is rendered as JSON so the payload survives.
func stringData(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		text, err := sonic.MarshalString(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return text
	}
}

// jsonText renders a payload as indented JSON for human-facing output.
func jsonText(v interface{}) string {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(text)
}
