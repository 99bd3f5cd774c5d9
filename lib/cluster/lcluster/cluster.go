package lcluster

import (
	"github.com/ralekv/ralekv/lib/cluster"
)

type clusterImpl struct {
	selfID uint64
}

// NewLocalCluster creates a cluster capability for single-node deployments.
// The local node is always the leader of its one-node cluster.
func NewLocalCluster(selfID uint64) cluster.ICluster {
	return &clusterImpl{selfID: selfID}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cluster/interface.go)
// --------------------------------------------------------------------------

func (c *clusterImpl) CurrentRole() cluster.Role {
	return cluster.RoleLeader
}

func (c *clusterImpl) SelfID() uint64 {
	return c.selfID
}

func (c *clusterImpl) NodeCount() uint64 {
	return 1
}
