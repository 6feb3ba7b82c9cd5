// Package server wires configuration, logging, metrics, the native
// bridge, and the HTTP/WebSocket surfaces into a runnable service.
package server
