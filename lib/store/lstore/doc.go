// Package lstore implements the store.IStore interface on top of a local
// db.KVDB engine, without any replication.
package lstore
