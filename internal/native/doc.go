// Package native owns the FFI boundary to the systemapi shared library.
//
// The library is optional at runtime: it may be missing entirely, present
// but unloadable, or loaded but lacking an expected export. Every one of
// those outcomes degrades to a typed error instead of a crash.
//
// Components:
//   - Locator: resolves the library path across deployment layouts
//   - Manager: owns the process-wide handle behind a single mutex
//   - Bind: resolves named exports into typed Go functions
//   - Bridge: dispatches the fixed set of systemapi operations
//
// Concurrency model: the Manager's mutex is the only gate. Load, unload
// and every foreign call hold it, so at most one call crosses the FFI
// boundary at a time and a handle can never be unloaded mid-call. The
// library is not assumed to be thread-safe.
//
// Symbols are re-resolved inside every dispatch rather than cached, tying
// each bound function's validity to the handle access that produced it.
package native
