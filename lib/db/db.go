package db

import (
	"io"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// KVDB is the engine interface the stores are built on. Implementations must
// be safe for concurrent use: the local store calls into the engine from
// multiple connections, and the replicated state machine may serve lookups
// concurrently with updates.
type KVDB interface {
	// Set inserts or updates a key-value pair.
	Set(key string, value []byte)
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found.
	Get(key string) (value []byte, loaded bool)
	// Delete removes a key-value pair.
	Delete(key string)
	// Len returns the number of entries currently stored.
	Len() int
	// Save writes a snapshot of the full database to the writer.
	Save(w io.Writer) error
	// Load replaces the database contents with a snapshot previously
	// written by Save.
	Load(r io.Reader) error
	// Close releases any resources held by the engine.
	Close() error
}

// Factory is a function type that creates a new db used by a store.
// This is used to abstract the creation of the db from the store implementation.
type Factory func() KVDB
