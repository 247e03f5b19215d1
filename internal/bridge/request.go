package bridge

import "time"

// Request is the single JSON document written to a worker's stdin.
//
// A Request is built fresh per invocation and never reused: the worker that
// receives it is gone by the time the response surfaces.
type Request struct {
	Action Action                 `json:"action"`
	Params map[string]interface{} `json:"params"`

	// Timeout is the wall-clock budget requested by the operation layer,
	// typically derived from a caller-supplied timeout parameter. Zero means
	// the bridge default applies. Not part of the wire format: the worker
	// enforces its own per-request timeouts internally.
	Timeout time.Duration `json:"-"`
}

// NewRequest builds a request for the given action. A nil params map is
// normalized to an empty one so the worker always sees an object.
func NewRequest(action Action, params map[string]interface{}) Request {
	if params == nil {
		params = map[string]interface{}{}
	}
	return Request{Action: action, Params: params}
}

// FailureKind classifies where in the pipeline an invocation failed. All
// kinds collapse to the same failure shape at the API boundary; the
// distinction feeds diagnostics and metrics.
type FailureKind string

const (
	// KindNone marks a successful invocation.
	KindNone FailureKind = ""
	// KindSpawn means the runtime executable could not be launched.
	KindSpawn FailureKind = "spawn"
	// KindExit means the worker ran but exited non-zero.
	KindExit FailureKind = "exit"
	// KindTimeout means the worker outlived its wall-clock budget and was killed.
	KindTimeout FailureKind = "timeout"
	// KindParse means the worker exited zero but its final output line was not
	// a tagged JSON result.
	KindParse FailureKind = "parse"
	// KindWorker means the worker itself reported a failure in valid tagged JSON.
	KindWorker FailureKind = "worker"
)

// Response is the tagged result of one invocation. Exactly one of Data or
// Error is meaningful, selected by Success.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`

	// Kind records the failure classification. Internal only.
	Kind FailureKind `json:"-"`
}

// Failure reports whether the response carries the error arm.
func (r *Response) Failure() bool {
	return r != nil && !r.Success
}

// Failure builds a failure response of the given kind.
func Failure(kind FailureKind, message string) *Response {
	return &Response{Success: false, Error: message, Kind: kind}
}

// Succeeded builds a success response carrying data.
func Succeeded(data interface{}) *Response {
	return &Response{Success: true, Data: data}
}
