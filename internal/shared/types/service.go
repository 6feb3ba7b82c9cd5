package types

// Category groups services for listing.
type Category string

const (
	CategorySystem Category = "system"
)

// Parameter describes one tool argument.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool is a single named operation a service exposes.
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Service is provider metadata surfaced to the UI.
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Result is the outcome of one tool execution. Code carries a stable
// machine-readable failure kind so callers can tell "library absent"
// from "call failed" from "bad input".
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
}

// Failure codes used in Result.Code.
const (
	CodeLibraryNotFound  = "library_not_found"
	CodeLoadFailed       = "load_failed"
	CodeSymbolNotFound   = "symbol_not_found"
	CodeNotLoaded        = "not_loaded"
	CodeInvalidArgument  = "invalid_argument"
	CodeNativeCallFailed = "native_call_failed"
	CodeUnknownTool      = "unknown_tool"
	CodeInternal         = "internal"
)
