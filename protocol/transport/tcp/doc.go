// Package tcp provides the TCP implementation of the text transport layer.
//
// Both sides apply the socket tuning options from the configuration
// (TCP_NODELAY, kernel buffer sizes, keep-alive, linger) when a connection
// is established.
package tcp
