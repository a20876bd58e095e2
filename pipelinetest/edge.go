package pipelinetest

import (
	"github.com/google/uuid"
	"github.com/pipelinegrid/pipelinegrid/pipeline"
)

// FakeEdge is a minimal pipeline.Edge. It carries a generated identity so
// tests can distinguish materialized edges from each other; the builder
// never inspects this identity itself, it is purely a test-side handle.
type FakeEdge struct {
	ID         uuid.UUID
	Dependency bool
	Config     pipeline.SubBlock

	Upstream   pipeline.Process
	Downstream pipeline.Process
}

func (e *FakeEdge) SetUpstreamProcess(p pipeline.Process)   { e.Upstream = p }
func (e *FakeEdge) SetDownstreamProcess(p pipeline.Process) { e.Downstream = p }

// FakeEdgeFactory builds FakeEdge values, recording every edge it
// produces for test assertions.
type FakeEdgeFactory struct {
	Produced []*FakeEdge
	FailWith error
}

// NewEdge implements pipeline.EdgeFactory.
func (f *FakeEdgeFactory) NewEdge(dependency bool, cfg pipeline.SubBlock) (pipeline.Edge, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	e := &FakeEdge{ID: uuid.New(), Dependency: dependency, Config: cfg}
	f.Produced = append(f.Produced, e)
	return e, nil
}
