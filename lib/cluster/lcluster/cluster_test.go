package lcluster

import (
	"testing"

	"github.com/ralekv/ralekv/lib/cluster"
)

func TestLocalCluster(t *testing.T) {
	c := NewLocalCluster(7)

	if got := c.CurrentRole(); got != cluster.RoleLeader {
		t.Errorf("CurrentRole() = %v, want RoleLeader", got)
	}
	if got := c.SelfID(); got != 7 {
		t.Errorf("SelfID() = %d, want 7", got)
	}
	if got := c.NodeCount(); got != 1 {
		t.Errorf("NodeCount() = %d, want 1", got)
	}
}
