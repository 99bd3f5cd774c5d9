// Package memdb provides the default in-memory KVDB engine. It is backed by
// a lock-free concurrent map (xsync.MapOf) and supports gob-encoded fuzzy
// snapshots for raft snapshotting.
package memdb
