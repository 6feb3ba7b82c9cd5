// Package types holds the shared data structures exchanged between the
// service registry, providers, and the HTTP/WebSocket surfaces.
package types
