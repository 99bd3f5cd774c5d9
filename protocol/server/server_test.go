package server

import (
	"testing"

	"github.com/ralekv/ralekv/protocol/common"
	"github.com/ralekv/ralekv/protocol/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingTransport records the registered handler so tests can drive
// requests through the server without a socket.
type capturingTransport struct {
	handler transport.ServerHandleFunc
}

func (c *capturingTransport) RegisterHandler(h transport.ServerHandleFunc) { c.handler = h }
func (c *capturingTransport) Listen(common.ServerConfig) error             { return nil }

func testConfig() common.ServerConfig {
	return common.ServerConfig{
		Mode:     common.ServerModeSingle,
		LogLevel: "error",
	}
}

func TestHandlerServesInterpreterOverTransport(t *testing.T) {
	tr := &capturingTransport{}
	s := NewServer(testConfig(), tr)
	require.NoError(t, s.init())
	require.NotNil(t, tr.handler)

	assert.Equal(t, "OK: v1", tr.handler("PUT k1 v1"))
	assert.Equal(t, "OK: v1", tr.handler("GET k1"))
}

// TestCommandErrorsCounted pins down what the error counter measures:
// requests the interpreter rejected, independent of whether the response
// made it onto the wire.
func TestCommandErrorsCounted(t *testing.T) {
	tr := &capturingTransport{}
	s := NewServer(testConfig(), tr)
	require.NoError(t, s.init())

	before := commandErrors.Get()

	assert.Equal(t, "OK: v1", tr.handler("PUT k1 v1"))
	assert.Equal(t, before, commandErrors.Get(), "successful requests must not be counted")

	assert.Equal(t, "ERROR: key not found", tr.handler("GET missing"))
	assert.Equal(t, before+1, commandErrors.Get())

	assert.Equal(t, "ERROR: Unknown command 'FOO'", tr.handler("FOO"))
	assert.Equal(t, before+2, commandErrors.Get())
}
