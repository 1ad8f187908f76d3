// Package logging assembles the structured slog loggers used across Feedscope.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes small attr helpers so packages log with a consistent shape. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
