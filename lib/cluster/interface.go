package cluster

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ICluster is the capability interface the protocol layer consumes to
// observe the consensus cluster. It deliberately exposes only aggregate
// information: the current node's role, its identifier and the configured
// cluster size. Per-node identity and address data is not available through
// this interface (see the LIST handler documentation in
// protocol/interpreter).
type ICluster interface {
	// CurrentRole returns the consensus role of the local node.
	CurrentRole() Role
	// SelfID returns the identifier of the local node.
	SelfID() uint64
	// NodeCount returns the number of nodes in the cluster.
	NodeCount() uint64
}

// --------------------------------------------------------------------------
// Role Definition
// --------------------------------------------------------------------------

// Role is the consensus state of a node.
type Role uint8

const (
	RoleFollower  Role = iota // The node follows a known leader.
	RoleCandidate             // No leader is known (election in progress).
	RoleLeader                // The node is the current leader.
	RoleUnknown               // The role could not be determined.
)

// String returns the protocol representation of a Role. Any value outside
// the defined constants maps to "unknown".
func (r Role) String() string {
	switch r {
	case RoleFollower:
		return "follower"
	case RoleCandidate:
		return "candidate"
	case RoleLeader:
		return "leader"
	default:
		return "unknown"
	}
}
