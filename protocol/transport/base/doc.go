// Package base implements the shared plumbing of the stream-based text
// transports (tcp, unix). The medium-specific parts are injected through
// the IServerConnector and IClientConnector interfaces; everything else
// (line framing, connection pooling, round-robin endpoint selection,
// retries with exponential backoff, server metrics) lives here.
//
// The text protocol carries no request identifiers. The server therefore
// handles requests on a connection sequentially, and the client serializes
// request/response exchanges per pooled connection. Throughput scales with
// the number of connections, not with pipelining on a single one.
package base
