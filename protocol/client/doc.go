// Package client provides a typed client for the text protocol. It speaks
// the plain-text grammar over any ITextClientTransport and converts
// "ERROR:"-prefixed responses into Go errors.
package client
