package dcluster

import (
	"github.com/lni/dragonboat/v4"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/ralekv/ralekv/lib/cluster"
)

var log = logger.GetLogger("cluster")

// clusterImpl derives the cluster view from a running Dragonboat NodeHost.
type clusterImpl struct {
	nh        *dragonboat.NodeHost
	shardID   uint64
	replicaID uint64
	size      uint64
}

// NewRaftCluster creates a cluster capability backed by a Dragonboat
// NodeHost. The cluster size is taken from the initial member configuration;
// membership changes are not reflected (the underlying API exposes no
// mutation capability to this layer).
func NewRaftCluster(nh *dragonboat.NodeHost, shardID, replicaID uint64, members map[uint64]string) cluster.ICluster {
	return &clusterImpl{
		nh:        nh,
		shardID:   shardID,
		replicaID: replicaID,
		size:      uint64(len(members)),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cluster/interface.go)
// --------------------------------------------------------------------------

// CurrentRole maps the raft leader information onto the protocol role
// enumeration: leader if this replica holds leadership, follower if another
// replica does, candidate while no leader is known, unknown if the query
// itself fails.
func (c *clusterImpl) CurrentRole() cluster.Role {
	leaderID, _, valid, err := c.nh.GetLeaderID(c.shardID)
	if err != nil {
		log.Warningf("failed to query leader for shard %d: %v", c.shardID, err)
		return cluster.RoleUnknown
	}
	if !valid {
		return cluster.RoleCandidate
	}
	if leaderID == c.replicaID {
		return cluster.RoleLeader
	}
	return cluster.RoleFollower
}

func (c *clusterImpl) SelfID() uint64 {
	return c.replicaID
}

func (c *clusterImpl) NodeCount() uint64 {
	return c.size
}
