// Package monitoring exposes Prometheus metrics for the HTTP surface and
// the native bridge: request counts and latencies, per-operation foreign
// call counts and durations, and the library load state.
package monitoring
