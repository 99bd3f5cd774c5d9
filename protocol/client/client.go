package client

import (
	"fmt"
	"strings"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/ralekv/ralekv/protocol/common"
	"github.com/ralekv/ralekv/protocol/transport"
)

var Logger = logger.GetLogger("client")

// Client is a typed view on the text protocol. It renders commands in the
// plain-text grammar, sends them over the injected transport, and splits
// responses at the "OK:"/"ERROR:" prefix. LIST and STATUS responses are
// returned verbatim since they carry their own formats.
type Client struct {
	config    common.ClientConfig
	transport transport.ITextClientTransport
}

// New creates a client over the given transport and connects it.
func New(config common.ClientConfig, tp transport.ITextClientTransport) (*Client, error) {
	if err := tp.Connect(config); err != nil {
		return nil, err
	}

	return &Client{
		config:    config,
		transport: tp,
	}, nil
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Raw Request
// --------------------------------------------------------------------------

// Do sends a raw request line and returns the raw response line. Transport
// failures are returned as errors; protocol-level errors are part of the
// response text.
func (c *Client) Do(request string) (string, error) {
	return c.transport.Send(request)
}

// invoke sends a request and splits the response at the protocol prefix.
// A response starting with "OK: " yields its payload, a response starting
// with "ERROR: " yields an error with the server's reason.
func (c *Client) invoke(request string) (string, error) {
	resp, err := c.transport.Send(request)
	if err != nil {
		return "", err
	}

	if payload, ok := strings.CutPrefix(resp, "OK: "); ok {
		return payload, nil
	}
	if reason, ok := strings.CutPrefix(resp, "ERROR: "); ok {
		return "", fmt.Errorf("%s", reason)
	}
	return "", fmt.Errorf("malformed response: %q", resp)
}

// --------------------------------------------------------------------------
// Typed Commands
// --------------------------------------------------------------------------

// Get returns the value stored under key.
func (c *Client) Get(key string) (string, error) {
	return c.invoke(fmt.Sprintf("GET %s", key))
}

// Put stores value under key and returns the stored value as echoed by the
// server.
func (c *Client) Put(key, value string) (string, error) {
	return c.invoke(fmt.Sprintf("PUT %s %s", key, value))
}

// List returns the cluster node list as the raw JSON document sent by the
// server.
func (c *Client) List() (string, error) {
	resp, err := c.transport.Send("LIST")
	if err != nil {
		return "", err
	}
	if reason, ok := strings.CutPrefix(resp, "ERROR: "); ok {
		return "", fmt.Errorf("%s", reason)
	}
	return resp, nil
}

// Status returns the raw status line of the serving node.
func (c *Client) Status() (string, error) {
	resp, err := c.transport.Send("STATUS")
	if err != nil {
		return "", err
	}
	if reason, ok := strings.CutPrefix(resp, "ERROR: "); ok {
		return "", fmt.Errorf("%s", reason)
	}
	return resp, nil
}

// Stop sends the advisory stop command. The server acknowledges it but does
// not shut down on its own.
func (c *Client) Stop() (string, error) {
	return c.invoke("STOP")
}

// AddNode requests adding a node to the cluster. The current server API
// rejects this with a fixed error.
func (c *Client) AddNode(nodeID uint64, name, ip string, ralePort, dstorePort int) (string, error) {
	return c.invoke(fmt.Sprintf("ADD %d %s %s %d %d", nodeID, name, ip, ralePort, dstorePort))
}

// RemoveNode requests removing a node from the cluster. The current server
// API rejects this with a fixed error.
func (c *Client) RemoveNode(nodeID uint64) (string, error) {
	return c.invoke(fmt.Sprintf("REMOVE %d", nodeID))
}
