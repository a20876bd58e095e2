// Package connbook implements the connection book: the planned and resolved
// lists plus the auxiliary typed-pending lists that hold deferred
// connections, which each setup pass reads and rewrites, per spec.md
// section 2 item 2.
package connbook

import "github.com/pipelinegrid/pipelinegrid/internal/process"

// Direction records which side of a flow-pinned connection was just typed,
// so the flow-dependent propagator knows which type-mutator to invoke on
// the far endpoint.
type Direction int

const (
	// PushUpstream pins the upstream (output) port from the downstream type.
	PushUpstream Direction = iota
	// PushDownstream pins the downstream (input) port from the upstream type.
	PushDownstream
)

// PinCandidate pairs a deferred connection with the direction its pin must
// travel.
type PinCandidate struct {
	Conn process.Connection
	Dir  Direction
}

// ClusterSide records which endpoint of a cluster-pending connection named
// a cluster, so the flattener knows whether to expand an output or an
// input mapping.
type ClusterSide int

const (
	// UpstreamIsCluster means Conn.Upstream names a cluster.
	UpstreamIsCluster ClusterSide = iota
	// DownstreamIsCluster means Conn.Downstream names a cluster.
	DownstreamIsCluster
)

// ClusterPending pairs a pending connection with which side is a cluster.
type ClusterPending struct {
	Conn process.Connection
	Side ClusterSide
}

// Book holds every list of connections the setup passes read and rewrite.
// It has no behavior of its own beyond simple append/remove/snapshot
// operations; the passes that interpret its contents live in sibling
// packages (typecheck, flatten, typeprop, structural, edge).
type Book struct {
	// Planned records every connection a caller made via Connect, whether
	// or not setup has run yet. Reset replays this list.
	Planned []process.Connection

	// Resolved holds connections whose both endpoints are typed, concrete,
	// and reference real (non-cluster) processes.
	Resolved []process.Connection

	// Deferred is not materialized as its own list: the type-check kernel
	// always routes a deferred outcome into one of the three typed-pending
	// lists below instead, per spec.md section 4.2's table.

	// DataDependent holds connections whose upstream output type was
	// "data-dependent" at connect time.
	DataDependent []process.Connection

	// FlowUntyped holds connections where both endpoints are flow-dependent
	// families; resolved once cascade pins one side concrete.
	FlowUntyped []process.Connection

	// FlowPinned holds connections where exactly one endpoint is
	// flow-dependent and the other is already concrete, tagged with which
	// direction the pin must travel.
	FlowPinned []PinCandidate

	// ClusterPending holds connections where at least one endpoint names a
	// cluster, tagged with which side.
	ClusterPending []ClusterPending
}

// New returns an empty connection book.
func New() *Book {
	return &Book{}
}

// AppendPlanned appends c to the planned list.
func (b *Book) AppendPlanned(c process.Connection) {
	b.Planned = append(b.Planned, c)
}

// AppendResolved appends c to the resolved list.
func (b *Book) AppendResolved(c process.Connection) {
	b.Resolved = append(b.Resolved, c)
}

// AppendDataDependent appends c to the data-dependent list.
func (b *Book) AppendDataDependent(c process.Connection) {
	b.DataDependent = append(b.DataDependent, c)
}

// AppendFlowUntyped appends c to the flow-untyped list.
func (b *Book) AppendFlowUntyped(c process.Connection) {
	b.FlowUntyped = append(b.FlowUntyped, c)
}

// AppendFlowPinned appends a pin candidate to the flow-pinned list.
func (b *Book) AppendFlowPinned(c process.Connection, dir Direction) {
	b.FlowPinned = append(b.FlowPinned, PinCandidate{Conn: c, Dir: dir})
}

// AppendClusterPending appends a cluster-pending entry.
func (b *Book) AppendClusterPending(c process.Connection, side ClusterSide) {
	b.ClusterPending = append(b.ClusterPending, ClusterPending{Conn: c, Side: side})
}

// SnapshotClusterPending returns the current cluster-pending list and
// clears it, the pattern every fixed-point pass in this builder uses to
// avoid mutating a slice while iterating it (spec.md section 4.3).
func (b *Book) SnapshotClusterPending() []ClusterPending {
	snap := b.ClusterPending
	b.ClusterPending = nil
	return snap
}

// SnapshotFlowPinned returns the current flow-pinned list and clears it.
func (b *Book) SnapshotFlowPinned() []PinCandidate {
	snap := b.FlowPinned
	b.FlowPinned = nil
	return snap
}

// SnapshotFlowUntyped returns the current flow-untyped list and clears it.
func (b *Book) SnapshotFlowUntyped() []process.Connection {
	snap := b.FlowUntyped
	b.FlowUntyped = nil
	return snap
}

// RemoveAll removes every connection touching name on either side from
// every list in the book, used by remove_process (spec.md section 4.1).
func (b *Book) RemoveAll(name process.Name) {
	touches := func(c process.Connection) bool {
		return c.Upstream.Node == name || c.Downstream.Node == name
	}
	b.Planned = filterConns(b.Planned, touches)
	b.Resolved = filterConns(b.Resolved, touches)
	b.DataDependent = filterConns(b.DataDependent, touches)
	b.FlowUntyped = filterConns(b.FlowUntyped, touches)
	b.FlowPinned = filterPins(b.FlowPinned, func(p PinCandidate) bool { return touches(p.Conn) })
	b.ClusterPending = filterClusterPending(b.ClusterPending, func(p ClusterPending) bool { return touches(p.Conn) })
}

// RemoveExact removes the exact connection c from every list that can
// logically hold a resolved/planned connection (disconnect, spec.md
// section 4.1; see SPEC_FULL.md / DESIGN.md for the Open Question this
// resolves about disconnect's scope during setup).
func (b *Book) RemoveExact(c process.Connection) {
	eq := func(x process.Connection) bool { return x == c }
	b.Planned = filterConns(b.Planned, eq)
	b.Resolved = filterConns(b.Resolved, eq)
	b.DataDependent = filterConns(b.DataDependent, eq)
	b.FlowUntyped = filterConns(b.FlowUntyped, eq)
	b.FlowPinned = filterPins(b.FlowPinned, func(p PinCandidate) bool { return eq(p.Conn) })
	b.ClusterPending = filterClusterPending(b.ClusterPending, func(p ClusterPending) bool { return eq(p.Conn) })
}

// IsFullyResolved reports whether every deferred/pending list is empty,
// the postcondition spec.md's invariant 2 requires after a successful
// setup.
func (b *Book) IsFullyResolved() bool {
	return len(b.DataDependent) == 0 &&
		len(b.FlowUntyped) == 0 &&
		len(b.FlowPinned) == 0 &&
		len(b.ClusterPending) == 0
}

func filterConns(in []process.Connection, remove func(process.Connection) bool) []process.Connection {
	out := in[:0]
	for _, c := range in {
		if !remove(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func filterPins(in []PinCandidate, remove func(PinCandidate) bool) []PinCandidate {
	out := in[:0]
	for _, p := range in {
		if !remove(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func filterClusterPending(in []ClusterPending, remove func(ClusterPending) bool) []ClusterPending {
	out := in[:0]
	for _, p := range in {
		if !remove(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
