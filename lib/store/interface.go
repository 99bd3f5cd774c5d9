package store

import (
	"fmt"

	"github.com/ralekv/ralekv/lib/db"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the capability interface the command interpreter consumes.
// A store holds replicated (or, for the local variant, node-local) key-value
// state. Read operations return the requested data along with an error
// (nil on success), write operations return only an error.
type IStore interface {
	// Get returns the value for a key. A missing key is reported as an
	// error, not as an empty value.
	Get(key string) (value string, err error)
	// Submit parses and applies a textual mutation command
	// (see ParseMutation for the accepted grammar). A nil return value
	// means the mutation was applied.
	Submit(command string) error
}

// DBFactory is re-exported so store implementations and their callers only
// need to import this package.
type DBFactory = db.Factory

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface. The message is returned verbatim
// since it is surfaced to protocol clients unchanged.
func (e *Error) Error() string {
	return e.Msg
}

// NewError creates a new store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// NewErrorf creates a new store error with a formatted message.
func NewErrorf(code RetCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidOperation                // 2: Malformed or unsupported mutation command.
	RetCKeyNotFound                     // 3: Lookup for a key that does not exist.
)
