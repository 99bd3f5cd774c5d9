// Package internal contains the wire types exchanged between the distributed
// store and its raft state machine: the binary log-entry codec for write
// commands and the query structures for linearizable reads.
package internal
