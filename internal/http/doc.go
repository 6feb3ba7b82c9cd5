// Package http contains the gin handlers for the UI-facing REST surface:
// service listing and execution, health, and native library lifecycle
// management.
package http
