// Package transport defines the pluggable transport layer that carries
// protocol request and response lines between clients and servers.
//
// A transport exchanges newline-delimited text: one request line in, one
// response line out, responses in request order per connection. The package
// itself only holds the interfaces; the medium-specific implementations live
// in the subpackages:
//
//   - base: shared server/client plumbing over net.Conn (framing, pooling,
//     retries), parameterized by small connector interfaces
//   - tcp:  TCP sockets with socket-level tuning
//   - unix: unix domain sockets
//   - http: request/response over HTTP POST
//
// All transports are interchangeable behind ITextServerTransport and
// ITextClientTransport.
package transport
