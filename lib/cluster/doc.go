// Package cluster defines the consensus-cluster capability consumed by the
// protocol layer: the local node's role, its identifier and the cluster
// size.
//
// Two implementations exist:
//
//   - lcluster: a single-node cluster that always reports itself as leader.
//
//   - dcluster: a Dragonboat-backed cluster that derives the role from the
//     raft leader information of a running NodeHost.
package cluster
