// Package protocol contains the text command protocol of ralekv.
//
// The protocol is line-oriented: a client sends one request line, the
// server answers with one response line. Requests are accepted in a JSON
// grammar and a plain-text grammar, responses use the "OK:"/"ERROR:" prefix
// convention (LIST and STATUS carry their own formats).
//
// The subpackages split the concern the usual way:
//
//   - common:      shared configuration and logging setup
//   - interpreter: request parsing, validation and command execution
//   - transport:   pluggable transports (tcp, unix, http)
//   - server:      assembles store, cluster, interpreter and transport
//   - client:      typed client API
package protocol
