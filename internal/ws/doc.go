// Package ws streams periodic system snapshots to the UI shell over a
// WebSocket connection.
package ws
