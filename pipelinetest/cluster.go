package pipelinetest

import "github.com/pipelinegrid/pipelinegrid/pipeline"

// FakeCluster is a minimal pipeline.Cluster: a fixed set of children,
// internal connections, and input/output mappings supplied at construction.
type FakeCluster struct {
	name       pipeline.Name
	processes  []pipeline.Process
	internal   []pipeline.Connection
	inputMaps  []pipeline.Connection
	outputMaps []pipeline.Connection
}

// NewFakeCluster builds a fake cluster. inputMappings and outputMappings
// are Connections whose addresses on the cluster side name the cluster
// itself (name), per pipeline.Cluster's contract.
func NewFakeCluster(name pipeline.Name, processes []pipeline.Process, internal, inputMappings, outputMappings []pipeline.Connection) *FakeCluster {
	return &FakeCluster{
		name:       name,
		processes:  processes,
		internal:   internal,
		inputMaps:  inputMappings,
		outputMaps: outputMappings,
	}
}

func (c *FakeCluster) Name() pipeline.Name                       { return c.name }
func (c *FakeCluster) Processes() []pipeline.Process              { return c.processes }
func (c *FakeCluster) InternalConnections() []pipeline.Connection { return c.internal }
func (c *FakeCluster) InputMappings() []pipeline.Connection       { return c.inputMaps }
func (c *FakeCluster) OutputMappings() []pipeline.Connection      { return c.outputMaps }
