// Package dstore implements the store.IStore interface on top of Dragonboat
// raft consensus. Mutations are replicated through the raft log (SyncPropose),
// reads are linearizable (SyncRead). The package also contains the raft state
// machine that applies replicated commands to a db.KVDB engine.
package dstore
