// Package system exposes the native bridge operations as registry tools.
package system

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/systemapi/bridge/internal/infrastructure/monitoring"
	"github.com/systemapi/bridge/internal/native"
	"github.com/systemapi/bridge/internal/shared/types"
)

// Provider translates tool executions into bridge calls. It is stateless
// across requests; the bridge serializes the actual foreign calls.
type Provider struct {
	bridge  *native.Bridge
	metrics *monitoring.Metrics
}

// NewProvider creates a system provider over the given bridge.
func NewProvider(bridge *native.Bridge) *Provider {
	return &Provider{bridge: bridge}
}

// WithMetrics attaches a metrics collector for per-operation telemetry.
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Definition returns service metadata.
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Service",
		Description: "Host system information backed by the native systemapi library",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"hostname",
			"memory",
			"process",
			"factorial",
			"platform",
		},
		Tools: []types.Tool{
			{
				ID:          "system.hostname",
				Name:        "Host Name",
				Description: "Get the machine hostname",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.memory",
				Name:        "Total Memory",
				Description: "Get total physical memory in bytes",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.pid",
				Name:        "Process ID",
				Description: "Get the current process id",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.factorial",
				Name:        "Factorial",
				Description: "Compute n! for 0 <= n <= 20",
				Parameters: []types.Parameter{
					{Name: "n", Type: "number", Description: "Input value, 0 to 20", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "system.platform",
				Name:        "Platform",
				Description: "Get the host operating system and architecture",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a system tool. Operational failures come back as
// structured results with a stable code, never as transport errors.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "system.hostname":
		return p.hostname()
	case "system.memory":
		return p.memory()
	case "system.pid":
		return p.pid()
	case "system.factorial":
		return p.factorial(params)
	case "system.platform":
		return p.platform()
	default:
		return failure(types.CodeUnknownTool, fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func (p *Provider) hostname() (*types.Result, error) {
	timer := monitoring.NewTimer(p.metrics, "hostname")
	name, err := p.bridge.HostName()
	if err != nil {
		timer.Stop("error")
		return failureErr(err), nil
	}
	timer.Stop("ok")
	return success(map[string]interface{}{"hostname": name}), nil
}

func (p *Provider) memory() (*types.Result, error) {
	timer := monitoring.NewTimer(p.metrics, "memory")
	total, err := p.bridge.TotalMemory()
	if err != nil {
		timer.Stop("error")
		return failureErr(err), nil
	}
	timer.Stop("ok")

	// Zero is ambiguous in the native contract; flag it so the UI can
	// render "unavailable" instead of "0 bytes".
	return success(map[string]interface{}{
		"total_bytes": total,
		"available":   total != 0,
	}), nil
}

func (p *Provider) pid() (*types.Result, error) {
	timer := monitoring.NewTimer(p.metrics, "pid")
	pid, err := p.bridge.ProcessID()
	if err != nil {
		timer.Stop("error")
		return failureErr(err), nil
	}
	timer.Stop("ok")
	return success(map[string]interface{}{"pid": pid}), nil
}

func (p *Provider) factorial(params map[string]interface{}) (*types.Result, error) {
	raw, ok := params["n"].(float64)
	if !ok {
		return failure(types.CodeInvalidArgument, "n required"), nil
	}
	if raw != math.Trunc(raw) || raw < math.MinInt32 || raw > math.MaxInt32 {
		return failure(types.CodeInvalidArgument, "n must be an integer between 0 and 20"), nil
	}

	timer := monitoring.NewTimer(p.metrics, "factorial")
	result, err := p.bridge.Factorial(int32(raw))
	if err != nil {
		timer.Stop("error")
		return failureErr(err), nil
	}
	timer.Stop("ok")
	return success(map[string]interface{}{
		"n":      int32(raw),
		"result": result,
	}), nil
}

// platform is answered on the trusted side; it needs no native call and
// works even when the library is absent.
func (p *Provider) platform() (*types.Result, error) {
	return success(map[string]interface{}{
		"platform": runtime.GOOS,
		"arch":     runtime.GOARCH,
	}), nil
}

// errCode maps the native error taxonomy to stable result codes.
func errCode(err error) string {
	switch {
	case errors.Is(err, native.ErrNotLoaded):
		return types.CodeNotLoaded
	case errors.Is(err, native.ErrLibraryNotFound):
		return types.CodeLibraryNotFound
	}

	var (
		argErr  *native.ArgumentError
		symErr  *native.SymbolError
		loadErr *native.LoadError
		callErr *native.CallError
	)
	switch {
	case errors.As(err, &argErr):
		return types.CodeInvalidArgument
	case errors.As(err, &symErr):
		return types.CodeSymbolNotFound
	case errors.As(err, &loadErr):
		return types.CodeLoadFailed
	case errors.As(err, &callErr):
		return types.CodeNativeCallFailed
	}
	return types.CodeInternal
}

func success(data map[string]interface{}) *types.Result {
	return &types.Result{Success: true, Data: data}
}

func failure(code, message string) *types.Result {
	return &types.Result{Success: false, Error: &message, Code: code}
}

func failureErr(err error) *types.Result {
	msg := err.Error()
	return &types.Result{Success: false, Error: &msg, Code: errCode(err)}
}
