package bridge

import (
	"strings"

	"github.com/bytedance/sonic"
)

// rawPrefixLimit bounds how much raw worker output a synthesized parse
// failure message may carry. Workers can emit megabytes of noise; the
// message only needs enough to diagnose.
const rawPrefixLimit = 512

// envelope is the tagged shape the worker must emit as its final stdout
// line. Success is a pointer so an object missing the tag is distinguishable
// from an explicit false.
type envelope struct {
	Success *bool       `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

// Recover converts raw worker stdout into a Response.
//
// The worker may log freely to stdout during execution as long as its final
// non-empty line is the tagged JSON result. Anything else synthesizes a
// parse failure carrying a bounded prefix of the raw output; a parse error
// never propagates to the caller.
func Recover(stdout []byte) *Response {
	line := lastNonEmptyLine(stdout)
	if line == "" {
		return Failure(KindParse, "worker produced no output")
	}

	var env envelope
	if err := sonic.UnmarshalString(line, &env); err != nil {
		return parseFailure(stdout)
	}
	if env.Success == nil {
		return parseFailure(stdout)
	}

	if !*env.Success {
		message := env.Error
		if message == "" {
			message = "worker reported an unspecified error"
		}
		return Failure(KindWorker, message)
	}

	return Succeeded(env.Data)
}

// parseFailure synthesizes the failure for stdout whose final line is not a
// tagged JSON result.
func parseFailure(stdout []byte) *Response {
	prefix := strings.TrimSpace(string(stdout))
	if len(prefix) > rawPrefixLimit {
		prefix = prefix[:rawPrefixLimit] + "..."
	}
	return Failure(KindParse, "failed to parse worker output as tagged JSON: "+prefix)
}

// lastNonEmptyLine returns the final non-blank line of out.
func lastNonEmptyLine(out []byte) string {
	lines := strings.Split(string(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
