// Package daemon runs the long-lived feedscope service: it enforces
// single-instance execution with a lock file and serves the HTTP API over
// the loaded catalog.
package daemon
