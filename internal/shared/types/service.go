package types

// Category represents service categories
type Category string

const (
	CategoryWeb    Category = "web"
	CategorySystem Category = "system"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents one invokable operation
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// Context carries per-invocation metadata through the operation surface.
type Context struct {
	InvocationID string  `json:"invocation_id,omitempty"`
	CallerID     *string `json:"caller_id,omitempty"`
}

// Result represents a service execution result
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *string        `json:"error,omitempty"`
}

// Output reads the textual answer operations produce for the host.
// Returns the empty string when the result carries none.
func (r *Result) Output() string {
	if r == nil || r.Data == nil {
		return ""
	}
	s, _ := r.Data["output"].(string)
	return s
}
