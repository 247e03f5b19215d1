package web

import (
	"context"
	"time"

	"webbridge/internal/bridge"
	"webbridge/internal/shared/types"
	"webbridge/internal/version"
)

// version reports build identity. Answered locally: the worker has no part
// in it, and the operation must work even when Python is absent.
func (p *Provider) version(_ context.Context, _ map[string]interface{}) (*types.Result, error) {
	return output(jsonText(map[string]interface{}{
		"name":      version.Name,
		"version":   version.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}

// debug gathers worker environment details plus host-side diagnostics. The
// worker probe doubles as a liveness check: its failure mode is part of the
// report, never a failed operation.
func (p *Provider) debug(ctx context.Context, _ map[string]interface{}) (*types.Result, error) {
	report := map[string]interface{}{
		"service": map[string]interface{}{
			"name":    version.Name,
			"version": version.Version,
		},
		"script":  p.bridge.Script(),
		"runtime": p.bridge.ResolveRuntime(ctx).String(),
	}

	resp, err := p.bridge.Invoke(ctx, bridge.NewRequest(bridge.ActionDebug, nil))
	switch {
	case err != nil:
		report["worker_error"] = err.Error()
	case resp.Failure():
		report["worker_error"] = resp.Error
	default:
		report["worker"] = resp.Data
	}

	if p.searx != nil {
		report["searx"] = p.searx.Check(ctx)
	}

	diag := p.bridge.Diagnostics()
	report["invocations"] = map[string]interface{}{
		"total":  diag.Total(),
		"recent": diag.History(),
	}

	return output(jsonText(report))
}
