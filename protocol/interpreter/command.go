package interpreter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// --------------------------------------------------------------------------
// Protocol Limits
// --------------------------------------------------------------------------

const (
	// MaxRequestLength is the maximum accepted length of a raw request.
	MaxRequestLength = 1024
	// MaxKeyLength is the maximum accepted length of a key.
	MaxKeyLength = 256
	// MaxValueLength is the maximum accepted length of a value.
	MaxValueLength = 1024
)

// --------------------------------------------------------------------------
// Parsed Command
// --------------------------------------------------------------------------

// CommandType identifies the handler a parsed command dispatches to.
type CommandType uint8

const (
	CommandTUnknown CommandType = iota // Unrecognized command token.
	CommandTGet                        // Read a value by key.
	CommandTPut                        // Write a key-value pair.
	CommandTList                       // List cluster nodes.
	CommandTStatus                     // Report node status.
	CommandTStop                       // Acknowledge a stop request.
	CommandTAdd                        // Add a cluster node (not implemented).
	CommandTRemove                     // Remove a cluster node (not implemented).
)

func (ct CommandType) String() string {
	switch ct {
	case CommandTGet:
		return "GET"
	case CommandTPut:
		return "PUT"
	case CommandTList:
		return "LIST"
	case CommandTStatus:
		return "STATUS"
	case CommandTStop:
		return "STOP"
	case CommandTAdd:
		return "ADD"
	case CommandTRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// Command is the tagged result of parsing a request. Which fields are set
// depends on the Type.
type Command struct {
	Type CommandType

	// GET, PUT
	Key   string
	Value string

	// ADD, REMOVE
	NodeID     uint64
	NodeName   string
	NodeIP     string
	RalePort   int
	DStorePort int

	// CommandTUnknown: the first token as received
	Raw string
}

// --------------------------------------------------------------------------
// Structured (JSON) Grammar
// --------------------------------------------------------------------------

// structuredRequest mirrors the accepted JSON request shape. Pointer fields
// distinguish absent fields from empty strings; a field of the wrong JSON
// type fails unmarshalling, which makes the request fall through to the
// plain-text grammar.
type structuredRequest struct {
	Command *string `json:"command"`
	Key     *string `json:"key"`
	Value   *string `json:"value"`
}

// parseStructured attempts to parse a request as a JSON object with a
// "command" field. Only GET and PUT are reachable through this grammar and
// the command name is case-sensitive here. Any shape mismatch returns
// ok=false so the interpreter can fall through to plain-text parsing; a
// structured parse failure is deliberately not a distinct user-visible
// error.
func parseStructured(request string) (Command, bool) {
	trimmed := strings.TrimSpace(request)
	if !strings.HasPrefix(trimmed, "{") {
		return Command{}, false
	}

	var req structuredRequest
	if err := json.Unmarshal([]byte(trimmed), &req); err != nil {
		return Command{}, false
	}
	if req.Command == nil {
		return Command{}, false
	}

	switch *req.Command {
	case "GET":
		if req.Key == nil {
			return Command{}, false
		}
		return Command{Type: CommandTGet, Key: *req.Key}, true
	case "PUT":
		if req.Key == nil || req.Value == nil {
			return Command{}, false
		}
		return Command{Type: CommandTPut, Key: *req.Key, Value: *req.Value}, true
	default:
		return Command{}, false
	}
}

// --------------------------------------------------------------------------
// Plain-Text Grammar
// --------------------------------------------------------------------------

// parsePlain parses the whitespace-delimited plain-text grammar. The first
// token selects the command (case-insensitive); the returned error carries
// the exact reason reported to the client (missing arguments, empty
// command). An unrecognized command is not an error at this stage, it is
// returned as CommandTUnknown with the offending token in Raw.
func parsePlain(request string) (Command, error) {
	token, rest := splitToken(request)
	if token == "" {
		return Command{}, errors.New("Empty command")
	}

	switch strings.ToUpper(token) {
	case "GET":
		key, _ := splitToken(rest)
		if key == "" {
			return Command{}, errors.New("GET requires a key")
		}
		return Command{Type: CommandTGet, Key: key}, nil

	case "PUT":
		// The value is everything after the key, leading spaces and tabs
		// trimmed.
		key, value := splitToken(rest)
		if key == "" || value == "" {
			return Command{}, errors.New("PUT requires a key and a value")
		}
		return Command{Type: CommandTPut, Key: key, Value: value}, nil

	case "LIST":
		return Command{Type: CommandTList}, nil

	case "STATUS":
		return Command{Type: CommandTStatus}, nil

	case "STOP":
		return Command{Type: CommandTStop}, nil

	case "ADD":
		fields := strings.Fields(rest)
		if len(fields) < 5 {
			return Command{}, errors.New("ADD requires node_id, name, ip, rale_port, dstore_port")
		}
		return Command{
			Type:       CommandTAdd,
			NodeID:     lenientUint(fields[0]),
			NodeName:   fields[1],
			NodeIP:     fields[2],
			RalePort:   lenientInt(fields[3]),
			DStorePort: lenientInt(fields[4]),
		}, nil

	case "REMOVE":
		fields := strings.Fields(rest)
		if len(fields) < 1 {
			return Command{}, errors.New("REMOVE requires a node_id")
		}
		return Command{Type: CommandTRemove, NodeID: lenientUint(fields[0])}, nil

	default:
		return Command{Type: CommandTUnknown, Raw: token}, nil
	}
}

// splitToken splits off the first whitespace-delimited token and returns it
// together with the remainder of the line, leading spaces and tabs trimmed.
func splitToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", ""
	}
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, ""
	}
	return s[:end], strings.TrimLeft(s[end:], " \t")
}

// lenientUint converts s to an unsigned integer. The wire protocol treats
// unparseable numeric arguments as zero instead of rejecting the command.
func lenientUint(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// lenientInt converts s to an integer, returning zero for unparseable input
// (same contract as lenientUint).
func lenientInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// unknownCommandError renders the response text for an unrecognized command
// token.
func unknownCommandError(token string) string {
	return fmt.Sprintf("ERROR: Unknown command '%s'", token)
}

// validKey reports whether key can round-trip through the textual mutation
// grammar and the line framing. The plain-text grammar can only produce
// such keys by construction; the structured grammar accepts arbitrary
// strings, so the handlers validate before any store call. Empty keys and
// keys containing whitespace or control characters are rejected.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// validValue reports whether value survives the line framing. Spaces and
// tabs are fine (the mutation grammar treats the value as rest-of-line),
// line terminators are not.
func validValue(value string) bool {
	return !strings.ContainsAny(value, "\r\n")
}
