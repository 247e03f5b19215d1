package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID   string         `json:"tool_id" binding:"required"`
	Params   map[string]any `json:"params"`
	CallerID *string        `json:"caller_id,omitempty"`
}

// DiscoverRequest asks the registry for services matching an intent
type DiscoverRequest struct {
	Message string `json:"message" binding:"required"`
	Limit   int    `json:"limit,omitempty"`
}

// WSMessage represents a WebSocket message from the host
type WSMessage struct {
	Type   string         `json:"type"`
	ToolID string         `json:"tool_id,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}
