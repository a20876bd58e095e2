package flatten

import (
	"errors"
	"testing"

	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(node, p string) process.Address {
	return process.NewAddress(process.Name(node), process.PortName(p))
}

type stubCluster struct {
	name    process.Name
	inputs  []process.Connection
	outputs []process.Connection
}

func (c stubCluster) Name() process.Name                     { return c.name }
func (c stubCluster) Processes() []process.Process            { return nil }
func (c stubCluster) InternalConnections() []process.Connection { return nil }
func (c stubCluster) InputMappings() []process.Connection     { return c.inputs }
func (c stubCluster) OutputMappings() []process.Connection    { return c.outputs }

func TestRunNothingPending(t *testing.T) {
	reg := registry.New()
	book := connbook.New()
	var captured []process.Connection
	err := Run(reg, book, func(c process.Connection) error {
		captured = append(captured, c)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, captured)
}

func TestExpandDownstreamFanOut(t *testing.T) {
	// Scenario S2: cluster c with input mapping c.x -> child1.in and c.x -> child2.in.
	reg := registry.New()
	cluster := stubCluster{
		name: "c",
		inputs: []process.Connection{
			{Upstream: addr("c", "x"), Downstream: addr("child1", "in")},
			{Upstream: addr("c", "x"), Downstream: addr("child2", "in")},
		},
	}
	require.NoError(t, reg.AddCluster(cluster, ""))

	book := connbook.New()
	book.AppendClusterPending(process.Connection{Upstream: addr("a", "out"), Downstream: addr("c", "x")}, connbook.DownstreamIsCluster)

	var captured []process.Connection
	err := Run(reg, book, func(c process.Connection) error {
		captured = append(captured, c)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []process.Connection{
		{Upstream: addr("a", "out"), Downstream: addr("child1", "in")},
		{Upstream: addr("a", "out"), Downstream: addr("child2", "in")},
	}, captured)
}

func TestExpandUpstreamSingleMatch(t *testing.T) {
	reg := registry.New()
	cluster := stubCluster{
		name: "c",
		outputs: []process.Connection{
			{Upstream: addr("child", "out"), Downstream: addr("c", "y")},
		},
	}
	require.NoError(t, reg.AddCluster(cluster, ""))

	book := connbook.New()
	book.AppendClusterPending(process.Connection{Upstream: addr("c", "y"), Downstream: addr("b", "in")}, connbook.UpstreamIsCluster)

	var captured []process.Connection
	err := Run(reg, book, func(c process.Connection) error {
		captured = append(captured, c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []process.Connection{
		{Upstream: addr("child", "out"), Downstream: addr("b", "in")},
	}, captured)
}

func TestExpandUpstreamNoMatchIsNoSuchPort(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.AddCluster(stubCluster{name: "c"}, ""))

	book := connbook.New()
	book.AppendClusterPending(process.Connection{Upstream: addr("c", "y"), Downstream: addr("b", "in")}, connbook.UpstreamIsCluster)

	err := Run(reg, book, func(process.Connection) error { return nil })
	assert.True(t, errors.Is(err, pipelineerr.ErrNoSuchPort))
}

func TestExpandUpstreamFanOutIsInternalFault(t *testing.T) {
	reg := registry.New()
	cluster := stubCluster{
		name: "c",
		outputs: []process.Connection{
			{Upstream: addr("child1", "out"), Downstream: addr("c", "y")},
			{Upstream: addr("child2", "out"), Downstream: addr("c", "y")},
		},
	}
	require.NoError(t, reg.AddCluster(cluster, ""))

	book := connbook.New()
	book.AppendClusterPending(process.Connection{Upstream: addr("c", "y"), Downstream: addr("b", "in")}, connbook.UpstreamIsCluster)

	err := Run(reg, book, func(process.Connection) error { return nil })
	assert.True(t, errors.Is(err, pipelineerr.ErrInternal))
}

func TestRunRecursesThroughNestedClusterExpansion(t *testing.T) {
	// c1's input maps to c2's external port, which itself maps to a real
	// process input. connect() re-enters dispatch, which must re-queue the
	// nested cluster-pending entry for a further Run sweep.
	reg := registry.New()
	c2 := stubCluster{
		name: "c2",
		inputs: []process.Connection{
			{Upstream: addr("c2", "x"), Downstream: addr("real", "in")},
		},
	}
	c1 := stubCluster{
		name: "c1",
		inputs: []process.Connection{
			{Upstream: addr("c1", "x"), Downstream: addr("c2", "x")},
		},
	}
	require.NoError(t, reg.AddCluster(c1, ""))
	require.NoError(t, reg.AddCluster(c2, ""))

	book := connbook.New()
	book.AppendClusterPending(process.Connection{Upstream: addr("a", "out"), Downstream: addr("c1", "x")}, connbook.DownstreamIsCluster)

	// connect callback re-enters cluster-pending routing itself, mimicking
	// what pipeline.Builder.connect's dispatch does.
	connect := func(c process.Connection) error {
		if reg.IsCluster(c.Downstream.Node) {
			book.AppendClusterPending(c, connbook.DownstreamIsCluster)
			return nil
		}
		book.AppendResolved(c)
		return nil
	}

	err := Run(reg, book, connect)
	require.NoError(t, err)
	assert.Equal(t, []process.Connection{
		{Upstream: addr("a", "out"), Downstream: addr("real", "in")},
	}, book.Resolved)
	assert.Empty(t, book.ClusterPending)
}
