// Package registry stores processes and clusters by unique name, plus each
// entity's parent cluster, per spec.md section 4.1. It owns no setup-pass
// logic: add_process's cascade through a cluster's children and connect()
// calls live in the pipeline package, which composes a Registry with a
// connection book and the type-check kernel.
package registry

import (
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
)

// Registry holds every registered process and cluster by name, plus the
// parent-cluster sparse map described in spec.md section 9: a
// Name -> Name map, not an owning pointer, so cluster removal stays local
// and parent links can never form a cycle.
type Registry struct {
	processes map[process.Name]process.Process
	clusters  map[process.Name]process.Cluster
	parent    map[process.Name]process.Name
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		processes: make(map[process.Name]process.Process),
		clusters:  make(map[process.Name]process.Cluster),
		parent:    make(map[process.Name]process.Name),
	}
}

// taken reports whether name is already used by any process or cluster,
// the union invariant 1 from spec.md section 3 enforces.
func (r *Registry) taken(name process.Name) bool {
	if _, ok := r.processes[name]; ok {
		return true
	}
	if _, ok := r.clusters[name]; ok {
		return true
	}
	return false
}

// AddProcess registers a single (non-cluster) process under parent, which
// may be "" for a top-level process. Returns DuplicateName if the name is
// already taken by any process or cluster.
func (r *Registry) AddProcess(p process.Process, parent process.Name) error {
	name := p.Name()
	if r.taken(name) {
		return pipelineerr.NewNameError(string(name), pipelineerr.ErrDuplicateName)
	}
	r.processes[name] = p
	if parent != "" {
		r.parent[name] = parent
	}
	return nil
}

// AddCluster registers a cluster under parent (which may be "" for a
// top-level cluster). It does not recurse into the cluster's children;
// the caller (pipeline.Builder) does that so it can also apply internal
// connections in the right order.
func (r *Registry) AddCluster(c process.Cluster, parent process.Name) error {
	name := c.Name()
	if r.taken(name) {
		return pipelineerr.NewNameError(string(name), pipelineerr.ErrDuplicateName)
	}
	r.clusters[name] = c
	if parent != "" {
		r.parent[name] = parent
	}
	return nil
}

// Remove deletes name from whichever map holds it, plus its parent link.
// It does not cascade to children; the caller does that for clusters.
func (r *Registry) Remove(name process.Name) {
	delete(r.processes, name)
	delete(r.clusters, name)
	delete(r.parent, name)
}

// Process looks up a registered (non-cluster) process by name.
func (r *Registry) Process(name process.Name) (process.Process, bool) {
	p, ok := r.processes[name]
	return p, ok
}

// Cluster looks up a registered cluster by name.
func (r *Registry) Cluster(name process.Name) (process.Cluster, bool) {
	c, ok := r.clusters[name]
	return c, ok
}

// IsCluster reports whether name refers to a registered cluster.
func (r *Registry) IsCluster(name process.Name) bool {
	_, ok := r.clusters[name]
	return ok
}

// Exists reports whether name refers to any registered process or cluster.
func (r *Registry) Exists(name process.Name) bool {
	return r.taken(name)
}

// Parent returns name's parent cluster and whether it has one.
func (r *Registry) Parent(name process.Name) (process.Name, bool) {
	p, ok := r.parent[name]
	return p, ok
}

// Processes returns every registered non-cluster process. The returned
// slice is a fresh copy safe to mutate.
func (r *Registry) Processes() []process.Process {
	out := make([]process.Process, 0, len(r.processes))
	for _, p := range r.processes {
		out = append(out, p)
	}
	return out
}

// AllNames returns the union of every registered process and cluster name.
func (r *Registry) AllNames() []process.Name {
	out := make([]process.Name, 0, len(r.processes)+len(r.clusters))
	for name := range r.processes {
		out = append(out, name)
	}
	for name := range r.clusters {
		out = append(out, name)
	}
	return out
}

// Len returns the total count of registered processes and clusters.
func (r *Registry) Len() int {
	return len(r.processes) + len(r.clusters)
}

// ProcessCount returns the count of registered non-cluster processes.
func (r *Registry) ProcessCount() int {
	return len(r.processes)
}
