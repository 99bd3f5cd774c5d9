package base

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/ralekv/ralekv/protocol/common"
	"github.com/ralekv/ralekv/protocol/transport"
)

var Logger = logger.GetLogger("transport/text")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies transport-specific settings to an accepted
	// connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector IServerConnector
	handler   transport.ServerHandleFunc
	config    common.ServerConfig
	listener  net.Listener

	// per-transport metrics, created lazily in Listen. The transport only
	// sees opaque response strings, so it counts what it can observe at this
	// layer: requests served and responses that failed to reach the socket.
	// Command-level errors are counted by the handler side, which knows the
	// interpreter status.
	requestsTotal   *metrics.Counter
	writeErrors     *metrics.Counter
	requestDuration *metrics.Summary
	openConnections *metrics.Counter
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport over the given
// connector. Requests on one connection are handled sequentially so that
// responses leave the socket in request order; concurrency comes from
// serving many connections at once.
func NewBaseServerTransport(connector IServerConnector) transport.ITextServerTransport {
	return &serverTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.ITextServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	name := t.connector.GetName()
	t.requestsTotal = metrics.GetOrCreateCounter(fmt.Sprintf(`ralekv_requests_total{transport=%q}`, name))
	t.writeErrors = metrics.GetOrCreateCounter(fmt.Sprintf(`ralekv_response_write_errors_total{transport=%q}`, name))
	t.requestDuration = metrics.GetOrCreateSummary(fmt.Sprintf(`ralekv_request_duration_seconds{transport=%q}`, name))
	t.openConnections = metrics.GetOrCreateCounter(fmt.Sprintf(`ralekv_open_connections{transport=%q}`, name))

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}
	t.listener = listener

	Logger.Infof("Starting %s server on %s", name, config.Endpoint)

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			Logger.Warningf("Failed to upgrade connection: %v", err)
			conn.Close()
			continue
		}

		// Handle the connection in a goroutine
		go t.handleConnection(conn)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection serves one connection until the client disconnects or an
// I/O error occurs. Requests are processed strictly in order: the text
// protocol carries no request identifiers, so the sequence of response lines
// is the only way a client can match responses to requests.
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()

	t.openConnections.Inc()
	defer t.openConnections.Dec()

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	for {
		if timeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("Failed to set read deadline: %v", err)
				return
			}
		}

		request, err := readLine(reader, maxRequestLineBytes)
		if err == io.EOF {
			Logger.Debugf("Connection closed by client")
			return
		}
		if err != nil {
			Logger.Errorf("Error reading request: %v", err)
			return
		}

		start := time.Now()
		response := t.handler(request)
		t.requestsTotal.Inc()
		t.requestDuration.UpdateDuration(start)

		if timeout > 0 {
			if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("Failed to set write deadline: %v", err)
				return
			}
		}

		if err := writeLine(writer, response); err != nil {
			t.writeErrors.Inc()
			Logger.Errorf("Failed to write response: %v", err)
			return
		}
		if err := writer.Flush(); err != nil {
			t.writeErrors.Inc()
			Logger.Errorf("Failed to flush response: %v", err)
			return
		}
	}
}
