// Package lcluster implements the cluster.ICluster interface for single-node
// deployments without consensus.
package lcluster
