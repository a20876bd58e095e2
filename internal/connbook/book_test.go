package connbook

import (
	"testing"

	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/stretchr/testify/assert"
)

func addr(node, p string) process.Address {
	return process.NewAddress(process.Name(node), process.PortName(p))
}

func conn(up, uport, down, dport string) process.Connection {
	return process.Connection{Upstream: addr(up, uport), Downstream: addr(down, dport)}
}

func TestSnapshotClearsList(t *testing.T) {
	b := New()
	b.AppendClusterPending(conn("c", "x", "p", "in"), UpstreamIsCluster)

	snap := b.SnapshotClusterPending()
	assert.Len(t, snap, 1)
	assert.Empty(t, b.ClusterPending)
}

func TestRemoveAllPurgesEveryList(t *testing.T) {
	b := New()
	c1 := conn("a", "out", "b", "in")
	c2 := conn("b", "out", "d", "in")

	b.AppendPlanned(c1)
	b.AppendResolved(c1)
	b.AppendDataDependent(c1)
	b.AppendFlowUntyped(c1)
	b.AppendFlowPinned(c1, PushUpstream)
	b.AppendClusterPending(c1, UpstreamIsCluster)

	b.AppendPlanned(c2)

	b.RemoveAll("a")

	assert.Empty(t, b.Resolved)
	assert.Empty(t, b.DataDependent)
	assert.Empty(t, b.FlowUntyped)
	assert.Empty(t, b.FlowPinned)
	assert.Empty(t, b.ClusterPending)
	assert.Equal(t, []process.Connection{c2}, b.Planned)
}

func TestRemoveExactOnlyTargetsThatConnection(t *testing.T) {
	b := New()
	c1 := conn("a", "out", "b", "in")
	c2 := conn("a", "out", "c", "in")
	b.AppendPlanned(c1)
	b.AppendPlanned(c2)
	b.AppendResolved(c1)

	b.RemoveExact(c1)

	assert.Equal(t, []process.Connection{c2}, b.Planned)
	assert.Empty(t, b.Resolved)
}

func TestIsFullyResolved(t *testing.T) {
	b := New()
	assert.True(t, b.IsFullyResolved())

	b.AppendDataDependent(conn("a", "out", "b", "in"))
	assert.False(t, b.IsFullyResolved())
}
