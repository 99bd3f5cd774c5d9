package internal

import (
	"encoding/binary"
	"fmt"
)

// CommandType defines the possible write operations for the state machine.
type CommandType uint8

const (
	CommandTPut    CommandType = iota // Insert or update an entry.
	CommandTDelete                    // Delete an entry.
)

func (ct CommandType) String() string {
	switch ct {
	case CommandTPut:
		return "Put"
	case CommandTDelete:
		return "Delete"
	default:
		return fmt.Sprintf("Unknown(%d)", ct)
	}
}

// Command represents a command to be executed by the state machine
// (a single entry in the raft log).
type Command struct {
	Type  CommandType
	Key   string
	Value []byte
}

// SizeBytes returns the exact number of bytes needed to serialize this command
func (command *Command) SizeBytes() int {
	return 1 + 4 + len(command.Key) + len(command.Value) // Type + KeyLen + Key + Value
}

// Serialize serializes a command into a byte array with the format:
// 1 byte for operation type,
// 4 bytes for key length (big endian),
// N bytes for key data,
// N bytes for value data (optional)
func (command *Command) Serialize() []byte {
	result := make([]byte, command.SizeBytes())

	// Set operation type
	result[0] = byte(command.Type)

	// Set key length (4 bytes, big endian)
	binary.BigEndian.PutUint32(result[1:5], uint32(len(command.Key)))

	// Copy key bytes
	copy(result[5:5+len(command.Key)], command.Key)

	// Copy value if present
	if command.Value != nil {
		copy(result[5+len(command.Key):], command.Value)
	}

	return result
}

// Deserialize extracts all Command fields from a byte array.
func (command *Command) Deserialize(data []byte) error {
	// Minimum size: 1 (Type) + 4 (KeyLen) = 5 bytes
	if len(data) < 5 {
		return fmt.Errorf("data too short for command")
	}

	// Extract operation type
	command.Type = CommandType(data[0])

	// Extract key length
	keyLen := binary.BigEndian.Uint32(data[1:5])

	// Validate key length
	if len(data) < 5+int(keyLen) {
		return fmt.Errorf("data too short for key of length %d", keyLen)
	}

	// Extract key
	command.Key = string(data[5 : 5+keyLen])

	// Extract value if present
	if len(data) > 5+int(keyLen) {
		valueLen := len(data) - (5 + int(keyLen))
		// Reuse existing buffer if possible to reduce allocations
		if command.Value == nil || cap(command.Value) < valueLen {
			command.Value = make([]byte, valueLen)
		} else {
			command.Value = command.Value[:valueLen]
		}
		copy(command.Value, data[5+int(keyLen):])
	} else {
		command.Value = nil
	}

	return nil
}
