package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"webbridge/internal/infrastructure/monitoring"
	"webbridge/internal/logging"
	"webbridge/internal/shared/id"
)

// Config holds everything a Bridge needs to host worker invocations.
type Config struct {
	// Script is the on-disk path of the worker script.
	Script string
	// Python is the pre-installed interpreter probed for direct runs.
	Python string
	// UV is the sandboxed-dependency launcher used as fallback.
	UV string
	// SandboxDeps is the dependency set the sandboxed launcher declares.
	// The first entry doubles as the probe import.
	SandboxDeps []string
	// ProbeTimeout bounds the direct-runtime import probe.
	ProbeTimeout time.Duration
	// DefaultTimeout is the per-invocation wall-clock budget when the
	// operation layer does not request one.
	DefaultTimeout time.Duration
	// MaxTimeout caps operation-requested budgets.
	MaxTimeout time.Duration
	// TimeoutGrace is added on top of a requested budget so the worker's own
	// internal timeout can fire and report first.
	TimeoutGrace time.Duration
	// SearxURL, when set, is exported to the worker environment so its
	// search action can prefer the aggregated backend.
	SearxURL string
}

func (c *Config) withDefaults() {
	if c.Python == "" {
		c.Python = "python3"
	}
	if c.UV == "" {
		c.UV = "uv"
	}
	if len(c.SandboxDeps) == 0 {
		c.SandboxDeps = []string{"crawl4ai", "ddgs", "httpx"}
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = 5 * time.Second
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = 180 * time.Second
	}
	if c.MaxTimeout <= 0 {
		c.MaxTimeout = 600 * time.Second
	}
	if c.TimeoutGrace < 0 {
		c.TimeoutGrace = 0
	}
}

// Bridge turns one Request into exactly one worker invocation: resolve a
// runtime, spawn the worker, frame the request over stdin, recover the
// tagged result from stdout, classify failure. Invocations share no state,
// so any number may run concurrently.
type Bridge struct {
	cfg       Config
	resolver  *Resolver
	transport *Transport
	diag      *Diagnostics
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// New creates a Bridge. metrics may be nil (nothing is recorded then).
func New(cfg Config, logger *logging.Logger, metrics *monitoring.Metrics) (*Bridge, error) {
	if cfg.Script == "" {
		return nil, errors.New("bridge: worker script path is required")
	}
	cfg.withDefaults()

	if logger == nil {
		logger = logging.NewNop()
	}

	return &Bridge{
		cfg:       cfg,
		resolver:  NewResolver(cfg.Python, cfg.UV, cfg.SandboxDeps, cfg.ProbeTimeout, logger),
		transport: NewTransport(logger),
		diag:      NewDiagnostics(),
		metrics:   metrics,
		logger:    logger.Component("bridge"),
	}, nil
}

// Script returns the worker script path in use.
func (b *Bridge) Script() string { return b.cfg.Script }

// Diagnostics returns the invocation audit recorder.
func (b *Bridge) Diagnostics() *Diagnostics { return b.diag }

// ResolveRuntime reports which runtime the resolver would pick right now.
// Used by diagnostics; the result is not cached for later invocations.
func (b *Bridge) ResolveRuntime(ctx context.Context) Runtime {
	return b.resolver.Resolve(ctx, b.cfg.Script)
}

// Invoke runs one request through a fresh worker process and returns its
// tagged response.
//
// The returned error is non-nil only for misuse (action outside the closed
// set, unencodable params) or caller cancellation. Every worker-side problem,
// from launch failure to garbage output, comes back as a failure Response so
// the operation surface always has a message to render.
func (b *Bridge) Invoke(ctx context.Context, req Request) (*Response, error) {
	if !req.Action.Valid() {
		return nil, fmt.Errorf("invalid bridge action %q", req.Action)
	}

	payload, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode bridge request: %w", err)
	}

	invID := id.NewInvocationID()
	log := b.logger.WithInvocation(invID.String())
	started := time.Now()

	timeout := b.timeoutFor(req)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rt := b.resolver.Resolve(ctx, b.cfg.Script)
	if b.metrics != nil {
		b.metrics.RecordRuntimeSelection(string(rt.Kind))
	}

	log.Info("invoking worker",
		zap.String("action", req.Action.String()),
		zap.String("runtime", string(rt.Kind)),
		zap.Duration("timeout", timeout))

	res, runErr := b.transport.Run(ctx, rt, payload, RunOptions{
		ExtraEnv: b.workerEnv(),
		Progress: progressFrom(ctx),
	})

	var (
		resp     *Response
		exitCode int
		duration time.Duration
	)

	switch {
	case runErr != nil:
		var spawnErr *SpawnError
		if !errors.As(runErr, &spawnErr) {
			// Caller abandoned the invocation; the worker is already killed.
			return nil, runErr
		}
		resp = Failure(KindSpawn, spawnErr.Error())
		exitCode = -1
		duration = time.Since(started)
	case res.TimedOut:
		resp = Failure(KindTimeout, fmt.Sprintf("worker timed out after %s", timeout))
		exitCode, duration = res.ExitCode, res.Duration
	case res.ExitCode != 0:
		msg := strings.TrimSpace(string(res.Stderr))
		if msg == "" {
			msg = fmt.Sprintf("worker exited with code %d", res.ExitCode)
		}
		resp = Failure(KindExit, msg)
		exitCode, duration = res.ExitCode, res.Duration
	default:
		resp = Recover(res.Stdout)
		exitCode, duration = res.ExitCode, res.Duration
	}

	outcome := "success"
	if !resp.Success {
		outcome = string(resp.Kind)
	}

	if b.metrics != nil {
		b.metrics.RecordInvocation(req.Action.String(), outcome, duration)
		if !resp.Success {
			b.metrics.RecordInvocationFailure(req.Action.String(), string(resp.Kind))
		}
	}

	b.diag.Record(InvocationRecord{
		ID:        invID.String(),
		Action:    req.Action,
		Runtime:   rt.Kind,
		Outcome:   outcome,
		Message:   resp.Error,
		ExitCode:  exitCode,
		Duration:  duration,
		StartedAt: started,
	})

	if resp.Success {
		log.Info("worker invocation succeeded", zap.Duration("duration", duration))
	} else {
		log.Warn("worker invocation failed",
			zap.String("kind", string(resp.Kind)),
			zap.String("error", resp.Error),
			zap.Int("exit_code", exitCode),
			zap.Duration("duration", duration))
	}

	return resp, nil
}

// timeoutFor computes the wall-clock budget for one request.
func (b *Bridge) timeoutFor(req Request) time.Duration {
	if req.Timeout <= 0 {
		return b.cfg.DefaultTimeout
	}
	t := req.Timeout
	if t > b.cfg.MaxTimeout {
		t = b.cfg.MaxTimeout
	}
	return t + b.cfg.TimeoutGrace
}

// workerEnv builds the extra environment passed to every worker.
func (b *Bridge) workerEnv() []string {
	if b.cfg.SearxURL == "" {
		return nil
	}
	return []string{"SEARXNG_URL=" + b.cfg.SearxURL}
}
