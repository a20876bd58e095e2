// Package structural implements the structural checker: required-port
// coverage, full undirected connectivity, and acyclicity of the resolved
// connection graph (spec.md section 4.6).
package structural

import (
	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
)

// CheckRequiredPorts fails with MissingConnection citing the specific port if
// any required input port lacks a resolved inbound edge, or any required
// output port lacks at least one resolved outbound edge.
func CheckRequiredPorts(reg *registry.Registry, book *connbook.Book) error {
	connectedIn := make(map[port.Address]bool)
	connectedOut := make(map[port.Address]bool)
	for _, c := range book.Resolved {
		connectedOut[c.Upstream] = true
		connectedIn[c.Downstream] = true
	}

	for _, p := range reg.Processes() {
		for _, pn := range p.InputPorts() {
			info, ok := p.InputPortInfo(pn)
			if !ok || !info.Flags.Has(port.Required) {
				continue
			}
			addr := port.NewAddress(p.Name(), pn)
			if !connectedIn[addr] {
				return pipelineerr.NewPortError(addr, pipelineerr.ErrMissingConnection)
			}
		}
		for _, pn := range p.OutputPorts() {
			info, ok := p.OutputPortInfo(pn)
			if !ok || !info.Flags.Has(port.Required) {
				continue
			}
			addr := port.NewAddress(p.Name(), pn)
			if !connectedOut[addr] {
				return pipelineerr.NewPortError(addr, pipelineerr.ErrMissingConnection)
			}
		}
	}
	return nil
}

// CheckConnectivity runs a BFS from an arbitrary registered process over the
// undirected resolved-connection graph and fails with OrphanedProcesses if
// any registered process is left unvisited.
func CheckConnectivity(reg *registry.Registry, book *connbook.Book) error {
	procs := reg.Processes()
	if len(procs) == 0 {
		return pipelineerr.ErrNoProcesses
	}

	adjacency := make(map[process.Name][]process.Name)
	for _, c := range book.Resolved {
		adjacency[c.Upstream.Node] = append(adjacency[c.Upstream.Node], c.Downstream.Node)
		adjacency[c.Downstream.Node] = append(adjacency[c.Downstream.Node], c.Upstream.Node)
	}

	visited := make(map[process.Name]bool, len(procs))
	start := procs[0].Name()
	queue := []process.Name{start}
	visited[start] = true

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, neighbor := range adjacency[name] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	for _, p := range procs {
		if !visited[p.Name()] {
			return pipelineerr.NewNameError(string(p.Name()), pipelineerr.ErrOrphanedProcesses)
		}
	}
	return nil
}

// CheckAcyclic builds a directed graph with one vertex per process, adding
// up -> down for each resolved connection whose downstream port does not
// carry input-nodep, and fails with NotADAG if it finds a cycle.
func CheckAcyclic(reg *registry.Registry, book *connbook.Book) error {
	g := newDirectedGraph()
	for _, p := range reg.Processes() {
		g.addNode(p.Name())
	}

	for _, c := range book.Resolved {
		downProc, ok := reg.Process(c.Downstream.Node)
		if !ok {
			continue
		}
		info, ok := downProc.InputPortInfo(c.Downstream.Port)
		if ok && info.Flags.Has(port.InputNoDep) {
			continue
		}
		g.addEdge(c.Upstream.Node, c.Downstream.Node)
	}

	if cycleNode, found := g.detectCycle(); found {
		return pipelineerr.NewNameError(string(cycleNode), pipelineerr.ErrNotADAG)
	}
	return nil
}

type directedNode struct {
	id         process.Name
	successors []*directedNode
}

type directedGraph struct {
	nodes map[process.Name]*directedNode
}

func newDirectedGraph() *directedGraph {
	return &directedGraph{nodes: make(map[process.Name]*directedNode)}
}

func (g *directedGraph) addNode(id process.Name) *directedNode {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &directedNode{id: id}
	g.nodes[id] = n
	return n
}

func (g *directedGraph) addEdge(from, to process.Name) {
	fromNode := g.addNode(from)
	toNode := g.addNode(to)
	fromNode.successors = append(fromNode.successors, toNode)
}

// detectCycle runs a three-color DFS (white/gray/black, tracked here as
// unvisited/temporary/permanent) following the up-to-down direction,
// reporting the first node found still on the recursion stack when
// revisited.
func (g *directedGraph) detectCycle() (process.Name, bool) {
	permanent := make(map[process.Name]bool)
	temporary := make(map[process.Name]bool)

	var cycleAt process.Name
	found := false

	var visit func(n *directedNode)
	visit = func(n *directedNode) {
		if found || permanent[n.id] {
			return
		}
		if temporary[n.id] {
			cycleAt = n.id
			found = true
			return
		}
		temporary[n.id] = true
		for _, succ := range n.successors {
			visit(succ)
			if found {
				return
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
	}

	for _, n := range g.nodes {
		if !permanent[n.id] {
			visit(n)
			if found {
				return cycleAt, true
			}
		}
	}
	return "", false
}
