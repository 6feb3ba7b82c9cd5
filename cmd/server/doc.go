// Command server runs the systemapi bridge: it loads the native library
// when present and serves the system-info API to the UI shell.
package main
