// Package store defines the key-value store capability consumed by the
// protocol layer, together with the textual mutation grammar shared by all
// implementations.
//
// Two implementations exist:
//
//   - lstore: a node-local store backed directly by a db.KVDB engine. It
//     offers no replication and is intended for single-node deployments and
//     tests.
//
//   - dstore: a distributed store that replicates mutations through raft
//     consensus (Dragonboat) for linearizability across nodes.
package store
