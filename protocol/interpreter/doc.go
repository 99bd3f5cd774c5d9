// Package interpreter implements the command-protocol interpreter that sits
// between the transport layer and the cluster/store capabilities.
//
// A request is a single string in one of two grammars:
//
//   - structured: a JSON object {"command": "GET"|"PUT", "key": ..., "value": ...}
//   - plain text: "<COMMAND> <args...>", whitespace-delimited, with the
//     command name case-insensitive
//
// Structured parsing is attempted first; any shape mismatch falls through
// silently to the plain-text grammar. Responses are rendered into a bounded
// ResponseBuffer and follow the "OK:"/"ERROR:" prefix convention, except for
// LIST (JSON payload) and STATUS (fixed-format line).
//
// The interpreter is stateless and reentrant. It performs no I/O of its own
// and delegates all blocking work to the injected store and cluster
// capabilities.
package interpreter
