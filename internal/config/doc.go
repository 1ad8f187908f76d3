// Package config loads, normalizes, and validates Feedscope configuration.
//
// Configuration lives in a TOML file (~/.config/feedscope/config.toml by
// default, or feedscope.toml in the working directory). Load applies repo
// defaults first, then file values, then path expansion and validation, so
// callers always receive a usable Config or an error explaining why not.
package config
