// Package db defines the key-value engine interface used by the stores in
// lib/store. Engines are injected via a Factory so that the local store and
// the replicated state machine can share the same implementation without
// depending on a concrete engine.
package db
