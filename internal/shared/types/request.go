package types

// ExecuteRequest is a tool execution request from the UI layer.
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// WSMessage is a WebSocket client message.
type WSMessage struct {
	Type       string `json:"type"`
	IntervalMS int    `json:"interval_ms,omitempty"`
}
