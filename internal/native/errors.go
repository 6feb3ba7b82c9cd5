package native

import (
	"errors"
	"fmt"
)

var (
	// ErrLibraryNotFound indicates no candidate path exists on disk.
	ErrLibraryNotFound = errors.New("native library not found in any candidate path")

	// ErrNotLoaded indicates a dispatch was attempted with no usable handle.
	ErrNotLoaded = errors.New("native library not loaded")
)

// LoadError indicates the library file exists but could not be loaded
// (bad format, architecture mismatch, missing transitive dependency).
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SymbolError indicates the loaded library lacks an expected export.
type SymbolError struct {
	Name string
	Err  error
}

func (e *SymbolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("symbol %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("symbol %s not found", e.Name)
}

func (e *SymbolError) Unwrap() error { return e.Err }

// ArgumentError indicates caller input failed validation on the trusted
// side of the boundary. The native entry point is never invoked.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Reason)
}

// CallError indicates the native entry point itself reported failure.
type CallError struct {
	Op string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("native call %s reported failure", e.Op)
}
