package bridge

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"webbridge/internal/logging"
)

// RuntimeKind names the two ways a worker can be hosted.
type RuntimeKind string

const (
	// RuntimeDirect runs the worker under a pre-installed interpreter that
	// already has the worker's dependencies.
	RuntimeDirect RuntimeKind = "direct"
	// RuntimeSandboxed runs the worker under a launcher that fetches the
	// declared dependency set on demand.
	RuntimeSandboxed RuntimeKind = "sandboxed"
)

// Runtime is a resolved executable plus argument list that hosts one worker
// invocation.
type Runtime struct {
	Kind    RuntimeKind
	Command string
	Args    []string
}

// String renders the full command line for logs and diagnostics.
func (r Runtime) String() string {
	out := r.Command
	for _, a := range r.Args {
		out += " " + a
	}
	return out
}

// Resolver picks the runtime for each invocation by probing whether the
// pre-installed interpreter can import the worker's core dependency.
//
// The probe runs on every call. Re-probing is cheap next to spawning a
// browser-backed worker, and it means the policy self-heals when the
// environment changes mid-session (dependency installed, interpreter
// upgraded) without a restart.
type Resolver struct {
	python       string
	uv           string
	deps         []string
	probeTimeout time.Duration
	logger       *logging.Logger
}

// NewResolver creates a resolver. deps lists the packages the sandboxed
// launcher declares; the first entry is the core dependency the probe
// attempts to import.
func NewResolver(python, uv string, deps []string, probeTimeout time.Duration, logger *logging.Logger) *Resolver {
	if python == "" {
		python = "python3"
	}
	if uv == "" {
		uv = "uv"
	}
	if len(deps) == 0 {
		deps = []string{"crawl4ai", "ddgs", "httpx"}
	}
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		python:       python,
		uv:           uv,
		deps:         deps,
		probeTimeout: probeTimeout,
		logger:       logger.Component("resolver"),
	}
}

// Resolve selects the runtime hosting scriptPath for one invocation.
//
// Resolve never fails: any probe error (interpreter missing, dependency
// missing, permission denied) degrades to the sandboxed launcher. If that
// launcher is also absent, the failure surfaces at spawn time, not here.
func (r *Resolver) Resolve(ctx context.Context, scriptPath string) Runtime {
	if r.probeDirect(ctx) {
		r.logger.Debug("selected direct runtime", zap.String("python", r.python))
		return Runtime{
			Kind:    RuntimeDirect,
			Command: r.python,
			Args:    []string{scriptPath},
		}
	}

	args := []string{"run"}
	for _, dep := range r.deps {
		args = append(args, "--with", dep)
	}
	args = append(args, "python", scriptPath)

	r.logger.Debug("selected sandboxed runtime",
		zap.String("uv", r.uv),
		zap.Strings("deps", r.deps))

	return Runtime{
		Kind:    RuntimeSandboxed,
		Command: r.uv,
		Args:    args,
	}
}

// probeDirect checks whether the pre-installed interpreter can import the
// worker's core dependency. Output is suppressed; only the exit code matters.
func (r *Resolver) probeDirect(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()

	check := fmt.Sprintf("import %s", r.deps[0])
	cmd := exec.CommandContext(ctx, r.python, "-c", check)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	err := cmd.Run()
	if err != nil {
		r.logger.Debug("direct runtime probe failed", zap.Error(err))
	}
	return err == nil
}
