package interpreter

import (
	"encoding/json"
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/ralekv/ralekv/lib/cluster"
	"github.com/ralekv/ralekv/lib/store"
)

var log = logger.GetLogger("interpreter")

// Interpreter parses protocol requests and routes them to the backing store
// and cluster capabilities. It holds no mutable state: every call operates
// solely on its input string and the caller-owned response buffer, so a
// single Interpreter can be shared by any number of concurrent connections
// as long as the injected capabilities are themselves safe for concurrent
// use.
type Interpreter struct {
	store   store.IStore
	cluster cluster.ICluster
}

// New creates an interpreter over the given store and cluster capabilities.
func New(st store.IStore, cl cluster.ICluster) *Interpreter {
	return &Interpreter{
		store:   st,
		cluster: cl,
	}
}

// Interpret parses a single request and writes the response into buf.
// Requests are accepted in two grammars: a JSON object with a "command"
// field (tried first) and a whitespace-delimited plain-text form. A request
// that fails structured parsing falls through silently to the plain-text
// grammar. Every code path terminates with a response and a status; the
// interpreter never panics the process on malformed input.
func (i *Interpreter) Interpret(request string, buf *ResponseBuffer) Status {
	// Validate size limits before any parsing or external call
	if request == "" {
		buf.WriteString("ERROR: Empty command")
		return StatusError
	}
	if len(request) > MaxRequestLength {
		buf.WriteString("ERROR: Request too long")
		return StatusError
	}

	// Try the structured grammar first, then fall through to plain text
	if cmd, ok := parseStructured(request); ok {
		return i.dispatch(cmd, buf)
	}

	cmd, err := parsePlain(request)
	if err != nil {
		buf.WriteString("ERROR: " + err.Error())
		return StatusError
	}
	return i.dispatch(cmd, buf)
}

// dispatch routes a parsed command to its handler.
func (i *Interpreter) dispatch(cmd Command, buf *ResponseBuffer) Status {
	switch cmd.Type {
	case CommandTGet:
		return i.handleGet(cmd, buf)
	case CommandTPut:
		return i.handlePut(cmd, buf)
	case CommandTList:
		return i.handleList(buf)
	case CommandTStatus:
		return i.handleStatus(buf)
	case CommandTStop:
		return i.handleStop(buf)
	case CommandTAdd:
		return i.handleAdd(cmd, buf)
	case CommandTRemove:
		return i.handleRemove(cmd, buf)
	default:
		buf.WriteString(unknownCommandError(cmd.Raw))
		return StatusError
	}
}

// --------------------------------------------------------------------------
// Command Handlers
// --------------------------------------------------------------------------

// handleGet looks up a key in the store. Size and shape validation happens
// before the store is called.
func (i *Interpreter) handleGet(cmd Command, buf *ResponseBuffer) Status {
	if len(cmd.Key) > MaxKeyLength {
		buf.WriteString("ERROR: Key too long")
		return StatusError
	}
	if !validKey(cmd.Key) {
		buf.WriteString("ERROR: Invalid key")
		return StatusError
	}

	value, err := i.store.Get(cmd.Key)
	if err != nil {
		buf.WriteString("ERROR: " + err.Error())
		return StatusError
	}

	buf.WriteString("OK: " + value)
	return StatusSuccess
}

// handlePut submits a synthetic PUT mutation to the store. Size and shape
// validation happens before the store is called; a nil error from Submit
// means the mutation was applied.
//
// The mutation is encoded in the textual mutation grammar, which splits the
// key off by whitespace and takes the value as rest-of-line. A key with
// whitespace in it (only reachable through the structured grammar) or a
// value with a line terminator would not survive that encoding, so both are
// rejected here instead of being stored under a different key than the
// client asked for.
func (i *Interpreter) handlePut(cmd Command, buf *ResponseBuffer) Status {
	if len(cmd.Key) > MaxKeyLength {
		buf.WriteString("ERROR: Key too long")
		return StatusError
	}
	if !validKey(cmd.Key) {
		buf.WriteString("ERROR: Invalid key")
		return StatusError
	}
	if len(cmd.Value) > MaxValueLength {
		buf.WriteString("ERROR: Value too long")
		return StatusError
	}
	if !validValue(cmd.Value) {
		buf.WriteString("ERROR: Invalid value")
		return StatusError
	}

	if err := i.store.Submit(fmt.Sprintf("PUT %s %s", cmd.Key, cmd.Value)); err != nil {
		buf.WriteString("ERROR: " + err.Error())
		return StatusError
	}

	buf.WriteString("OK: " + cmd.Value)
	return StatusSuccess
}

// nodeEntry is one element of the LIST response.
type nodeEntry struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	IP         string `json:"ip"`
	RalePort   int    `json:"rale_port"`
	DStorePort int    `json:"dstore_port"`
	Role       string `json:"role"`
}

// handleList renders the cluster view as a JSON object with a "nodes"
// array.
//
// The cluster capability only exposes aggregate information (role, self id,
// node count), so the handler enumerates synthetic entries for node indexes
// 0..count-1: identity and address fields are placeholders, and only the
// entry matching the local node carries the real role. Closing brackets are
// only appended while space remains, so a response cut short by the buffer
// limit is detectably truncated instead of corrupted.
func (i *Interpreter) handleList(buf *ResponseBuffer) Status {
	role := i.cluster.CurrentRole()
	selfID := i.cluster.SelfID()
	count := i.cluster.NodeCount()

	if !buf.TryWriteString(`{"nodes": [`) {
		return StatusSuccess
	}

	for idx := uint64(0); idx < count; idx++ {
		entry := nodeEntry{
			ID:         idx,
			Name:       fmt.Sprintf("node%d", idx),
			IP:         "unknown",
			RalePort:   0,
			DStorePort: 0,
			Role:       "unknown",
		}
		if idx == selfID {
			entry.Role = role.String()
		}

		data, err := json.Marshal(entry)
		if err != nil {
			// Not reachable with the fixed entry shape above
			log.Errorf("failed to marshal node entry %d: %v", idx, err)
			continue
		}

		chunk := string(data)
		if idx > 0 {
			chunk = ", " + chunk
		}
		if !buf.TryWriteString(chunk) {
			return StatusSuccess
		}
	}

	buf.TryWriteString("]}")
	return StatusSuccess
}

// handleStatus emits a fixed-format status line. It always reports success.
func (i *Interpreter) handleStatus(buf *ResponseBuffer) Status {
	buf.WriteString(fmt.Sprintf(
		"STATUS: node_id=%d, role=%s, cluster_size=%d",
		i.cluster.SelfID(),
		i.cluster.CurrentRole(),
		i.cluster.NodeCount(),
	))
	return StatusSuccess
}

// handleStop acknowledges a stop request without acting on it. Shutdown is
// the responsibility of the hosting process; the interpreter must never
// terminate the process as a side effect of parsing a request.
func (i *Interpreter) handleStop(buf *ResponseBuffer) Status {
	log.Infof("stop command received, shutdown is delegated to the host process")
	buf.WriteString("OK: stop command received")
	return StatusSuccess
}

// handleAdd validates and logs a node-add request. The cluster-membership
// mutation capability is not available to this layer, so the handler
// returns a fixed, distinguishable error. Grammar and validation are in
// place so that wiring a real mutation capability later requires no
// protocol change.
func (i *Interpreter) handleAdd(cmd Command, buf *ResponseBuffer) Status {
	log.Infof("add node request: id=%d name=%s ip=%s rale_port=%d dstore_port=%d",
		cmd.NodeID, cmd.NodeName, cmd.NodeIP, cmd.RalePort, cmd.DStorePort)
	buf.WriteString("ERROR: ADD command not implemented in current API")
	return StatusError
}

// handleRemove validates and logs a node-remove request. Same contract as
// handleAdd.
func (i *Interpreter) handleRemove(cmd Command, buf *ResponseBuffer) Status {
	log.Infof("remove node request: id=%d", cmd.NodeID)
	buf.WriteString("ERROR: REMOVE command not implemented in current API")
	return StatusError
}
