package bridge

import (
	"bytes"
	"context"
	"strings"
)

// ProgressFunc receives worker output lines as they arrive. stream is
// "stdout" or "stderr". The final stdout line is delivered here too; callers
// that relay progress should treat it as just another line, since the
// authoritative result always comes from the completed invocation.
type ProgressFunc func(stream, line string)

type progressKey struct{}

// WithProgress returns a context that streams worker output lines to fn for
// any invocation issued under it.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// progressFrom extracts the observer installed by WithProgress, if any.
func progressFrom(ctx context.Context) ProgressFunc {
	fn, _ := ctx.Value(progressKey{}).(ProgressFunc)
	return fn
}

// lineWriter splits a byte stream into lines and hands complete ones to fn.
// A trailing unterminated fragment stays buffered; the worker contract ends
// every meaningful line with a newline.
type lineWriter struct {
	stream string
	fn     ProgressFunc
	buf    bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		raw := w.buf.Bytes()
		i := bytes.IndexByte(raw, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(w.buf.Next(i+1)), "\r\n")
		if strings.TrimSpace(line) != "" {
			w.fn(w.stream, line)
		}
	}
	return len(p), nil
}
