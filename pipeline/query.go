package pipeline

import "github.com/pipelinegrid/pipelinegrid/internal/process"

// UpstreamForProcess returns the distinct processes with a resolved
// connection into name, in first-seen order. Gated by requireSetup like
// Edges and ResolvedConnections: valid mid-setup, PipelineNotSetup before
// the first SetupPipeline call, PipelineNotReady after a failed one.
func (b *Builder) UpstreamForProcess(name process.Name) ([]process.Process, error) {
	if err := b.requireSetup(); err != nil {
		return nil, err
	}
	seen := make(map[process.Name]bool)
	var procs []process.Process
	for _, c := range b.book.Resolved {
		if c.Downstream.Node != name || seen[c.Upstream.Node] {
			continue
		}
		seen[c.Upstream.Node] = true
		if p, ok := b.reg.Process(c.Upstream.Node); ok {
			procs = append(procs, p)
		}
	}
	return procs, nil
}

// DownstreamForProcess returns the distinct processes with a resolved
// connection out of name, in first-seen order.
func (b *Builder) DownstreamForProcess(name process.Name) ([]process.Process, error) {
	if err := b.requireSetup(); err != nil {
		return nil, err
	}
	seen := make(map[process.Name]bool)
	var procs []process.Process
	for _, c := range b.book.Resolved {
		if c.Upstream.Node != name || seen[c.Downstream.Node] {
			continue
		}
		seen[c.Downstream.Node] = true
		if p, ok := b.reg.Process(c.Downstream.Node); ok {
			procs = append(procs, p)
		}
	}
	return procs, nil
}

// EdgeForConnection returns the materialized edge for the exact resolved
// connection up -> down. ok is false if no such resolved connection exists.
func (b *Builder) EdgeForConnection(up, down process.Address) (edge process.Edge, ok bool, err error) {
	if err := b.requireSetup(); err != nil {
		return nil, false, err
	}
	for i, c := range b.book.Resolved {
		if c.Upstream == up && c.Downstream == down {
			if i < len(b.edges) {
				return b.edges[i], true, nil
			}
			return nil, false, nil
		}
	}
	return nil, false, nil
}

// InputEdgeForPort returns the resolved input edge bound to name's port. A
// required input port has exactly one by the time setup succeeds
// (spec.md section 4.6); an unrequired, unconnected one reports ok == false.
func (b *Builder) InputEdgeForPort(name process.Name, port process.PortName) (edge process.Edge, ok bool, err error) {
	if err := b.requireSetup(); err != nil {
		return nil, false, err
	}
	for i, c := range b.book.Resolved {
		if c.Downstream.Node == name && c.Downstream.Port == port && i < len(b.edges) {
			return b.edges[i], true, nil
		}
	}
	return nil, false, nil
}

// OutputEdgesForPort returns every resolved output edge bound to name's
// port, in resolved-connection order.
func (b *Builder) OutputEdgesForPort(name process.Name, port process.PortName) ([]process.Edge, error) {
	if err := b.requireSetup(); err != nil {
		return nil, err
	}
	var edges []process.Edge
	for i, c := range b.book.Resolved {
		if c.Upstream.Node == name && c.Upstream.Port == port && i < len(b.edges) {
			edges = append(edges, b.edges[i])
		}
	}
	return edges, nil
}
