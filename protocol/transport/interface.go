package transport

import (
	"github.com/ralekv/ralekv/protocol/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is called by a server transport for every received
// request line. It returns the response line to send back. The transport
// guarantees that responses are written in request order per connection.
type ServerHandleFunc func(request string) (response string)

// ITextServerTransport is the interface for the protocol server transport
// layer. It must accept a common.ServerConfig as a parameter.
type ITextServerTransport interface {
	// RegisterHandler registers the handler invoked for every request line.
	// Must be called before Listen.
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and serves incoming requests. It
	// blocks until the listener fails.
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// ITextClientTransport is the interface for the protocol client transport
type ITextClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request line to the server and returns the response line
	Send(request string) (response string, err error)
	// Close closes the transport connection
	Close() error
}
