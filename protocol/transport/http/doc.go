// Package http provides the HTTP implementation of the text transport
// layer. One protocol request maps to one POST request: the request line is
// the POST body, the response line is the response body. Unlike the stream
// transports there is no connection state to manage, request ordering is
// the concern of the HTTP layer.
package http
