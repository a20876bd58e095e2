// Package typeprop implements the type-propagation engine: the
// data-dependent resolution that runs alongside process configuration, and
// the flow-dependent fixed-point propagator with its BFS cascade
// (spec.md section 4.4).
package typeprop

import (
	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
)

// ConnectFunc is the builder's internal connect operation.
type ConnectFunc func(process.Connection) error

// ReplayDataDependent re-enters every data-dependent connection whose
// upstream is p, now that p.Configure() has returned. The upstream output
// must have a concrete type by now, or this returns UntypedDataDependent.
func ReplayDataDependent(reg *registry.Registry, book *connbook.Book, p process.Name, connect ConnectFunc) error {
	pending := book.DataDependent
	var stay []process.Connection
	for _, c := range pending {
		if c.Upstream.Node != p {
			stay = append(stay, c)
			continue
		}

		proc, ok := reg.Process(p)
		if !ok {
			return pipelineerr.NewNameError(string(p), pipelineerr.ErrNoSuchProcess)
		}
		info, ok := proc.OutputPortInfo(c.Upstream.Port)
		if !ok {
			return pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrNoSuchPort)
		}
		if port.IsDataDependent(info.Type) {
			return pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrUntypedDataDependent)
		}
		if err := connect(c); err != nil {
			return err
		}
	}
	book.DataDependent = stay
	return nil
}

// AssertNoDataDependent implements setup pass 3: fail unless every
// data-dependent connection has been replayed away.
func AssertNoDataDependent(book *connbook.Book) error {
	if len(book.DataDependent) != 0 {
		c := book.DataDependent[0]
		return pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrUntypedDataDependent)
	}
	return nil
}

// AssertNoFlowUntyped implements setup pass 5: fail unless every
// flow-dependent family has been fully resolved.
func AssertNoFlowUntyped(book *connbook.Book) error {
	if len(book.FlowUntyped) != 0 {
		c := book.FlowUntyped[0]
		return pipelineerr.NewConnectionError(c.Upstream, c.Downstream, pipelineerr.ErrUntypedConnection)
	}
	return nil
}

// PropagateFlow drains book's flow-pinned list, pinning each candidate's
// undetermined side and cascading the pin through its flow-dependent
// family, until a full sweep produces no new pinning.
func PropagateFlow(reg *registry.Registry, book *connbook.Book, connect ConnectFunc) error {
	for {
		pinned := book.SnapshotFlowPinned()
		if len(pinned) == 0 {
			return nil
		}
		for _, pc := range pinned {
			if err := applyPin(reg, book, pc, connect); err != nil {
				return err
			}
		}
	}
}

// applyPin pushes the concrete type of the already-typed side onto the
// flow-dependent side, cascades the pin through that side's family, then
// replays the connection.
func applyPin(reg *registry.Registry, book *connbook.Book, pc connbook.PinCandidate, connect ConnectFunc) error {
	c := pc.Conn

	var pinnedAt port.Address
	var pinnedType string

	switch pc.Dir {
	case connbook.PushUpstream:
		downProc, ok := reg.Process(c.Downstream.Node)
		if !ok {
			return pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
		}
		downInfo, ok := downProc.InputPortInfo(c.Downstream.Port)
		if !ok {
			return pipelineerr.NewPortError(c.Downstream, pipelineerr.ErrNoSuchPort)
		}
		upProc, ok := reg.Process(c.Upstream.Node)
		if !ok {
			return pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
		}
		if !upProc.SetOutputPortType(c.Upstream.Port, downInfo.Type) {
			return pipelineerr.NewPortTypeError(c.Upstream, downInfo.Type, pipelineerr.ErrDependentTypeError)
		}
		pinnedAt, pinnedType = c.Upstream, downInfo.Type

	case connbook.PushDownstream:
		upProc, ok := reg.Process(c.Upstream.Node)
		if !ok {
			return pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
		}
		upInfo, ok := upProc.OutputPortInfo(c.Upstream.Port)
		if !ok {
			return pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrNoSuchPort)
		}
		downProc, ok := reg.Process(c.Downstream.Node)
		if !ok {
			return pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
		}
		if !downProc.SetInputPortType(c.Downstream.Port, upInfo.Type) {
			return pipelineerr.NewPortTypeError(c.Downstream, upInfo.Type, pipelineerr.ErrDependentTypeError)
		}
		pinnedAt, pinnedType = c.Downstream, upInfo.Type
	}

	if err := cascade(reg, book, pinnedAt.Node, connect); err != nil {
		return pipelineerr.NewCascadeError(pinnedAt, pinnedType, err)
	}

	return connect(c)
}

// cascade runs a BFS over book's flow-untyped list seeded with start,
// pushing a concrete type across a family one hop at a time.
func cascade(reg *registry.Registry, book *connbook.Book, start process.Name, connect ConnectFunc) error {
	queue := []process.Name{start}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		untyped := book.SnapshotFlowUntyped()
		var stay []process.Connection
		for _, c := range untyped {
			if c.Upstream.Node != name && c.Downstream.Node != name {
				stay = append(stay, c)
				continue
			}
			resolved, far, err := resolveAgainst(reg, c, name)
			if err != nil {
				return err
			}
			if !resolved {
				stay = append(stay, c)
				continue
			}
			if err := connect(c); err != nil {
				return err
			}
			queue = append(queue, far)
		}
		book.FlowUntyped = stay
	}
	return nil
}

// resolveAgainst inspects the endpoint of c that names near; if that
// endpoint's type is now concrete, it pushes the type into the far
// endpoint and reports the far process's name so the BFS can enqueue it.
// Requires port.IsConcrete rather than just !flow_dependent (the original's
// check): a stricter gate that also rejects "any" and data-dependent types.
// An "any" type can reach a flow-dependent port when a pin copies it from an
// "any" counterpart; such an entry stays in the flow-untyped list.
func resolveAgainst(reg *registry.Registry, c process.Connection, near process.Name) (bool, process.Name, error) {
	if c.Upstream.Node == near {
		upProc, ok := reg.Process(c.Upstream.Node)
		if !ok {
			return false, "", pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
		}
		info, ok := upProc.OutputPortInfo(c.Upstream.Port)
		if !ok {
			return false, "", pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrNoSuchPort)
		}
		if !port.IsConcrete(info.Type) {
			return false, "", nil
		}
		downProc, ok := reg.Process(c.Downstream.Node)
		if !ok {
			return false, "", pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
		}
		if !downProc.SetInputPortType(c.Downstream.Port, info.Type) {
			return false, "", pipelineerr.NewPortTypeError(c.Downstream, info.Type, pipelineerr.ErrDependentTypeError)
		}
		return true, c.Downstream.Node, nil
	}

	downProc, ok := reg.Process(c.Downstream.Node)
	if !ok {
		return false, "", pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	info, ok := downProc.InputPortInfo(c.Downstream.Port)
	if !ok {
		return false, "", pipelineerr.NewPortError(c.Downstream, pipelineerr.ErrNoSuchPort)
	}
	if !port.IsConcrete(info.Type) {
		return false, "", nil
	}
	upProc, ok := reg.Process(c.Upstream.Node)
	if !ok {
		return false, "", pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	if !upProc.SetOutputPortType(c.Upstream.Port, info.Type) {
		return false, "", pipelineerr.NewPortTypeError(c.Upstream, info.Type, pipelineerr.ErrDependentTypeError)
	}
	return true, c.Upstream.Node, nil
}
