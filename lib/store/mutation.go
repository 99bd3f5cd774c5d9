package store

import (
	"strings"
)

// --------------------------------------------------------------------------
// Mutation Command Grammar
// --------------------------------------------------------------------------

// MutationOp defines the write operations a store accepts via Submit.
type MutationOp uint8

const (
	OpPut    MutationOp = iota // Insert or update an entry.
	OpDelete                   // Delete an entry.
)

func (op MutationOp) String() string {
	switch op {
	case OpPut:
		return "PUT"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Mutation is a parsed write command.
type Mutation struct {
	Op    MutationOp
	Key   string
	Value string
}

// ParseMutation parses the textual mutation grammar shared by all store
// implementations:
//
//	PUT <key> <value...>   value spans the rest of the line, leading
//	                       spaces and tabs trimmed
//	DELETE <key>
//
// The verb is case-insensitive. An empty command, an unknown verb or a
// missing key is reported as a RetCInvalidOperation error.
func ParseMutation(command string) (Mutation, error) {
	verb, rest := splitToken(command)
	if verb == "" {
		return Mutation{}, NewError(RetCInvalidOperation, "empty mutation command")
	}

	switch strings.ToUpper(verb) {
	case "PUT":
		key, value := splitToken(rest)
		if key == "" {
			return Mutation{}, NewError(RetCInvalidOperation, "PUT mutation requires a key")
		}
		return Mutation{Op: OpPut, Key: key, Value: value}, nil
	case "DELETE":
		key, _ := splitToken(rest)
		if key == "" {
			return Mutation{}, NewError(RetCInvalidOperation, "DELETE mutation requires a key")
		}
		return Mutation{Op: OpDelete, Key: key}, nil
	default:
		return Mutation{}, NewErrorf(RetCInvalidOperation, "unknown mutation verb %q", verb)
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
