// Package cmd implements the command-line interface for the ralekv
// replicated key-value store. It provides a hierarchical command structure
// with operations for running the server and interacting with it as a
// client.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for protocol operations (get, put, list, status, ...)
//   - serve: Commands for starting and configuring the ralekv server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See ralekv -help for a list of all commands.
package cmd
