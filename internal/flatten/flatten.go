// Package flatten implements the cluster flattener: the first setup pass,
// which rewrites connections that terminate on a cluster port into
// connections against the underlying process ports, iterating until no
// cluster-pending entry remains (spec.md section 4.3).
package flatten

import (
	"fmt"

	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
)

// ConnectFunc is the builder's internal connect operation: it re-enters
// the full connect() logic (cluster-pending routing, the type-check
// kernel, list bookkeeping) for a rewritten connection.
type ConnectFunc func(process.Connection) error

// Run drains book's cluster-pending list, expanding each entry against its
// cluster's input or output mappings, until no cluster-pending entry
// remains. Because a mapped internal address may itself be a cluster port,
// each expansion goes through connect, which may re-populate
// cluster-pending; Run keeps iterating until a full sweep adds nothing.
func Run(reg *registry.Registry, book *connbook.Book, connect ConnectFunc) error {
	for {
		pending := book.SnapshotClusterPending()
		if len(pending) == 0 {
			return nil
		}
		for _, entry := range pending {
			var err error
			switch entry.Side {
			case connbook.UpstreamIsCluster:
				err = expandUpstream(reg, entry.Conn, connect)
			case connbook.DownstreamIsCluster:
				err = expandDownstream(reg, entry.Conn, connect)
			}
			if err != nil {
				return err
			}
		}
	}
}

// expandUpstream handles a pending connection whose upstream address names
// a cluster. Fan-out is a logic fault here: an output mapping must be
// unique per external address.
func expandUpstream(reg *registry.Registry, c process.Connection, connect ConnectFunc) error {
	cluster, ok := reg.Cluster(c.Upstream.Node)
	if !ok {
		return pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
	}

	var matches []process.Connection
	for _, m := range cluster.OutputMappings() {
		if m.Downstream == c.Upstream {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrNoSuchPort)
	case 1:
		return connect(process.Connection{Upstream: matches[0].Upstream, Downstream: c.Downstream})
	default:
		return fmt.Errorf("cluster %q: %d output mappings match external port %q: %w",
			cluster.Name(), len(matches), c.Upstream, pipelineerr.ErrInternal)
	}
}

// expandDownstream handles a pending connection whose downstream address
// names a cluster. Every matching input mapping is expanded: fan-out is
// permitted on the input side.
func expandDownstream(reg *registry.Registry, c process.Connection, connect ConnectFunc) error {
	cluster, ok := reg.Cluster(c.Downstream.Node)
	if !ok {
		return pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
	}

	var matches []process.Connection
	for _, m := range cluster.InputMappings() {
		if m.Upstream == c.Downstream {
			matches = append(matches, m)
		}
	}

	if len(matches) == 0 {
		return pipelineerr.NewPortError(c.Downstream, pipelineerr.ErrNoSuchPort)
	}

	for _, m := range matches {
		if err := connect(process.Connection{Upstream: c.Upstream, Downstream: m.Downstream}); err != nil {
			return err
		}
	}
	return nil
}
