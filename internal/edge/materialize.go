// Package edge implements the edge materializer: setup pass 6, which
// builds one Edge per resolved connection from a three-layer configuration
// sub-block merge and binds it to both endpoint processes (spec.md
// section 4.5).
package edge

import (
	"fmt"

	"github.com/pipelinegrid/pipelinegrid/internal/config"
	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
)

// dependencyKey is the literal attribute the materializer sets on every
// merged sub-block, per spec.md section 4.5 step 5.
const dependencyKey = "dependency"

// Materialize builds one Edge per connection in book.Resolved, in stable
// index order, merging each connection's configuration layers through
// lookup and binding the result to its upstream and downstream processes.
// It returns the materialized edges indexed the same way as book.Resolved.
func Materialize(reg *registry.Registry, book *connbook.Book, lookup config.SubBlockLookup, factory process.EdgeFactory) ([]process.Edge, error) {
	edges := make([]process.Edge, 0, len(book.Resolved))

	for _, c := range book.Resolved {
		e, err := materializeOne(reg, c, lookup, factory)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func materializeOne(reg *registry.Registry, c process.Connection, lookup config.SubBlockLookup, factory process.EdgeFactory) (process.Edge, error) {
	upProc, ok := reg.Process(c.Upstream.Node)
	if !ok {
		return nil, pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	downProc, ok := reg.Process(c.Downstream.Node)
	if !ok {
		return nil, pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	downInfo, ok := downProc.InputPortInfo(c.Downstream.Port)
	if !ok {
		return nil, pipelineerr.NewPortError(c.Downstream, pipelineerr.ErrNoSuchPort)
	}

	merged := mergeLayers(lookup, c, downInfo.Type)
	dependency := !downInfo.Flags.Has(port.InputNoDep)
	merged = config.WithBool(merged, dependencyKey, dependency)

	e, err := factory.NewEdge(dependency, merged)
	if err != nil {
		return nil, fmt.Errorf("materializing edge %s -> %s: %w", c.Upstream, c.Downstream, err)
	}

	if err := upProc.ConnectOutputPort(c.Upstream.Port, e); err != nil {
		return nil, pipelineerr.NewPortError(c.Upstream, err)
	}
	if err := downProc.ConnectInputPort(c.Downstream.Port, e); err != nil {
		return nil, pipelineerr.NewPortError(c.Downstream, err)
	}
	e.SetUpstreamProcess(upProc)
	e.SetDownstreamProcess(downProc)

	return e, nil
}

// mergeLayers folds the four sub-block layers of spec.md section 4.5 steps
// 1-4 in order: base, by-downstream-type, by-upstream-address,
// by-downstream-address.
func mergeLayers(lookup config.SubBlockLookup, c process.Connection, downstreamType string) process.SubBlock {
	layers := make([]process.SubBlock, 0, 4)

	if v, ok := lookup.SubBlock(config.BaseKey); ok {
		layers = append(layers, v)
	}
	if v, ok := lookup.SubBlock(config.ByTypeKey(downstreamType)); ok {
		layers = append(layers, v)
	}
	if v, ok := lookup.SubBlock(config.ByConnKey(c.Upstream)); ok {
		layers = append(layers, v)
	}
	if v, ok := lookup.SubBlock(config.ByConnKey(c.Downstream)); ok {
		layers = append(layers, v)
	}

	return config.Merge(layers...)
}
