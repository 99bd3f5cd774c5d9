// Package dcluster implements the cluster.ICluster interface on top of a
// running Dragonboat NodeHost, deriving the local node's role from the raft
// leader information.
package dcluster
