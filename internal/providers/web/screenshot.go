package web

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"webbridge/internal/bridge"
	"webbridge/internal/shared/types"
)

// screenshot captures a rendered page as a data URL
func (p *Provider) screenshot(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return failure("url parameter required")
	}

	width, _ := params["width"].(float64)
	if width <= 0 {
		width = 1280
	}
	height, _ := params["height"].(float64)
	if height <= 0 {
		height = 720
	}

	req := bridge.NewRequest(bridge.ActionScreenshot, map[string]interface{}{
		"url":    url,
		"width":  int(width),
		"height": int(height),
	})

	resp, err := p.bridge.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Failure() {
		return output(fmt.Sprintf("Error taking screenshot of %s: %s", url, resp.Error))
	}
	return output(dataURL(stringData(resp.Data)))
}

// dataURL normalizes a screenshot payload to a data URL. Current workers
// return one already; bare base64 is wrapped with a sniffed media type.
func dataURL(payload string) string {
	if payload == "" || strings.HasPrefix(payload, "data:") {
		return payload
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return payload
	}
	return fmt.Sprintf("data:%s;base64,%s", mimetype.Detect(raw).String(), payload)
}
