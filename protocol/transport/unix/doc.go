// Package unix provides the Unix domain socket implementation of the text
// transport layer. The server removes a stale socket file before binding.
package unix
