package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"webbridge/internal/logging"
)

// SpawnError reports that the runtime executable could not be launched at
// all (missing binary, permission denied). It is the only error the
// transport returns for a defective environment as opposed to a defective
// worker run.
type SpawnError struct {
	Runtime Runtime
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to launch worker runtime %q: %v", e.Runtime.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// RunOptions carries per-invocation transport settings.
type RunOptions struct {
	// ExtraEnv entries are appended to the inherited environment.
	ExtraEnv []string
	// Progress, when non-nil, receives each output line as it arrives.
	Progress ProgressFunc
}

// RunResult is the raw outcome of one worker process: both streams fully
// drained and the exit status observed.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Transport spawns one single-use worker process per request: write the
// payload to stdin, close it, drain stdout and stderr, wait for exit.
// Nothing is pooled or reused and no process outlives its call.
type Transport struct {
	logger *logging.Logger

	// waitDelay bounds how long Wait blocks on output pipes after the
	// process is killed, so a grandchild holding the pipes open cannot
	// hang the invocation.
	waitDelay time.Duration
}

// NewTransport creates a transport.
func NewTransport(logger *logging.Logger) *Transport {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Transport{
		logger:    logger.Component("transport"),
		waitDelay: 5 * time.Second,
	}
}

// Run executes one worker under the given runtime. The payload is written
// to stdin exactly once, then stdin is closed; output is read to completion
// before the result is returned.
//
// A non-nil error is returned only for spawn failures and context
// cancellation. Everything the worker does after launching, including
// crashing, is reported through RunResult.
func (t *Transport) Run(ctx context.Context, rt Runtime, payload []byte, opts RunOptions) (*RunResult, error) {
	cmd := exec.CommandContext(ctx, rt.Command, rt.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.WaitDelay = t.waitDelay

	if len(opts.ExtraEnv) > 0 {
		cmd.Env = append(os.Environ(), opts.ExtraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = teeLines(&stdout, "stdout", opts.Progress)
	cmd.Stderr = teeLines(&stderr, "stderr", opts.Progress)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Runtime: rt, Err: err}
	}

	waitErr := cmd.Wait()
	duration := time.Since(start)

	// The caller abandoning the invocation is not a worker outcome.
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}

	result := &RunResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
		Duration: duration,
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			// Pipe trouble rather than a worker exit status. Treat it like a
			// crashed run so it classifies as an exit failure downstream.
			t.logger.Warn("worker wait error", zap.Error(waitErr))
			if result.ExitCode == 0 {
				result.ExitCode = -1
			}
		}
	}

	t.logger.Debug("worker process finished",
		zap.String("runtime", string(rt.Kind)),
		zap.Int("exit_code", result.ExitCode),
		zap.Bool("timed_out", result.TimedOut),
		zap.Duration("duration", duration),
		zap.Int("stdout_bytes", len(result.Stdout)),
		zap.Int("stderr_bytes", len(result.Stderr)))

	return result, nil
}

// teeLines wires a stream into buf and, when fn is set, also feeds complete
// lines to fn as they arrive.
func teeLines(buf *bytes.Buffer, stream string, fn ProgressFunc) io.Writer {
	if fn == nil {
		return buf
	}
	return io.MultiWriter(buf, &lineWriter{stream: stream, fn: fn})
}
