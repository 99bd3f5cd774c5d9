// Package server assembles a runnable protocol server: it builds the store
// and cluster capabilities selected by the configuration (node-local or
// raft-replicated), wires them to the command interpreter, and serves the
// interpreter over a pluggable transport. An optional HTTP endpoint exposes
// process metrics in Prometheus format.
package server
