package pipeline

import (
	"github.com/pipelinegrid/pipelinegrid/internal/config"
	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/metrics"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
	"github.com/pipelinegrid/pipelinegrid/internal/typecheck"
)

// Builder is the single in-process object that owns a pipeline's registry,
// connection book, and edge map across its lifecycle (spec.md section 2).
// It is single-threaded and not safe for concurrent use; callers must
// serialize access externally.
type Builder struct {
	reg   *registry.Registry
	book  *connbook.Book
	state State

	// insideSetup distinguishes a connect call originating from a setup
	// pass from one originating from a caller, per spec.md section 9's
	// design note: consulted instead of a global or thread-local flag.
	insideSetup bool

	lookup  config.SubBlockLookup
	factory process.EdgeFactory
	metrics *metrics.Metrics

	edges []process.Edge
}

// Option configures optional collaborators on a new Builder.
type Option func(*Builder)

// WithSubBlockLookup supplies the configuration sub-block source the edge
// materializer consults. Builders created without this option use
// config.Empty, so every edge is materialized with only its dependency key
// set.
func WithSubBlockLookup(lookup config.SubBlockLookup) Option {
	return func(b *Builder) { b.lookup = lookup }
}

// WithMetrics attaches a prometheus instrumentation bundle to the builder's
// setup orchestration.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// New returns an empty, Unconfigured builder. factory is required: it is
// the caller-supplied contract the edge materializer uses to instantiate
// edges during setup pass 6.
func New(factory process.EdgeFactory, opts ...Option) *Builder {
	b := &Builder{
		reg:     registry.New(),
		book:    connbook.New(),
		state:   Unconfigured,
		lookup:  config.Empty,
		factory: factory,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the builder's current lifecycle state.
func (b *Builder) State() State {
	return b.state
}

// AddProcess registers a single (non-cluster) process at the top level of
// the registry.
func (b *Builder) AddProcess(p process.Process) error {
	if p == nil {
		return pipelineerr.ErrNullProcess
	}
	if b.state != Unconfigured {
		return pipelineerr.NewNameError(string(p.Name()), pipelineerr.ErrAddAfterSetup)
	}
	return b.reg.AddProcess(p, "")
}

// AddCluster registers c and cascades the add through its children and
// internal connections, per spec.md section 4.1. The cascade is atomic: if
// any child, grandchild, or internal connection fails to add, every name
// this call registered is rolled back before returning the error (the
// documented resolution to spec.md section 9's open question 3).
func (b *Builder) AddCluster(c process.Cluster) error {
	if c == nil {
		return pipelineerr.ErrNullProcess
	}
	if b.state != Unconfigured {
		return pipelineerr.NewNameError(string(c.Name()), pipelineerr.ErrAddAfterSetup)
	}

	var added []process.Name
	if err := b.addClusterRecursive(c, "", &added); err != nil {
		for _, name := range added {
			b.reg.Remove(name)
			b.book.RemoveAll(name)
		}
		return err
	}
	return nil
}

func (b *Builder) addClusterRecursive(c process.Cluster, parent process.Name, added *[]process.Name) error {
	if err := b.reg.AddCluster(c, parent); err != nil {
		return err
	}
	*added = append(*added, c.Name())

	for _, child := range c.Processes() {
		if childCluster, ok := child.(process.Cluster); ok {
			if err := b.addClusterRecursive(childCluster, c.Name(), added); err != nil {
				return err
			}
			continue
		}
		if err := b.reg.AddProcess(child, c.Name()); err != nil {
			return err
		}
		*added = append(*added, child.Name())
	}

	for _, conn := range c.InternalConnections() {
		if err := b.Connect(conn.Upstream, conn.Downstream); err != nil {
			return err
		}
	}
	return nil
}

// RemoveProcess deregisters name, cascading through a cluster's children,
// and purges every connection list of entries touching it.
func (b *Builder) RemoveProcess(name process.Name) error {
	if b.state != Unconfigured {
		return pipelineerr.NewNameError(string(name), pipelineerr.ErrRemoveAfterSetup)
	}
	if !b.reg.Exists(name) {
		return pipelineerr.NewNameError(string(name), pipelineerr.ErrNoSuchProcess)
	}
	b.removeCascade(name)
	return nil
}

func (b *Builder) removeCascade(name process.Name) {
	if cluster, ok := b.reg.Cluster(name); ok {
		for _, child := range cluster.Processes() {
			b.removeCascade(child.Name())
		}
	}
	b.reg.Remove(name)
	b.book.RemoveAll(name)
}

// Connect registers a candidate connection. Outside setup_pipeline it fails
// with ConnectionAfterSetup unless the builder is Unconfigured; inside a
// setup pass it is always permitted and bypasses the planned list (spec.md
// section 4.1 and section 9's inside-setup design note).
func (b *Builder) Connect(up, down process.Address) error {
	return b.connect(process.Connection{Upstream: up, Downstream: down})
}

func (b *Builder) connect(c process.Connection) error {
	if b.state != Unconfigured && !b.insideSetup {
		return pipelineerr.NewConnectionError(c.Upstream, c.Downstream, pipelineerr.ErrConnectionAfterSetup)
	}
	if !b.insideSetup {
		b.book.AppendPlanned(c)
	}
	return b.dispatch(c)
}

// dispatch implements connect's routing rule: cluster-pending for any
// cluster endpoint, otherwise the type-check kernel decides which list the
// connection lands in.
func (b *Builder) dispatch(c process.Connection) error {
	if b.reg.IsCluster(c.Upstream.Node) {
		b.book.AppendClusterPending(c, connbook.UpstreamIsCluster)
		return nil
	}
	if b.reg.IsCluster(c.Downstream.Node) {
		b.book.AppendClusterPending(c, connbook.DownstreamIsCluster)
		return nil
	}

	upProc, ok := b.reg.Process(c.Upstream.Node)
	if !ok {
		return pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	downProc, ok := b.reg.Process(c.Downstream.Node)
	if !ok {
		return pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	upInfo, ok := upProc.OutputPortInfo(c.Upstream.Port)
	if !ok {
		return pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrNoSuchPort)
	}
	downInfo, ok := downProc.InputPortInfo(c.Downstream.Port)
	if !ok {
		return pipelineerr.NewPortError(c.Downstream, pipelineerr.ErrNoSuchPort)
	}

	if err := typecheck.CheckFlags(upInfo.Flags, downInfo.Flags); err != nil {
		return pipelineerr.NewConnectionError(c.Upstream, c.Downstream, err)
	}

	switch typecheck.Check(b.book, c, upInfo.Type, downInfo.Type) {
	case typecheck.Mismatch:
		return pipelineerr.NewConnectionError(c.Upstream, c.Downstream, pipelineerr.ErrTypeMismatch)
	case typecheck.Deferred:
		return nil
	default:
		b.book.AppendResolved(c)
		return nil
	}
}

// Disconnect removes the exact connection from every list that can hold
// it. Per spec.md section 9's open question 1, this applies uniformly
// whether or not setup is in progress: there is no special-cased
// "disconnect during setup-in-progress" behavior, it simply purges
// whichever list currently holds the connection.
func (b *Builder) Disconnect(up, down process.Address) error {
	if b.state != Unconfigured && !b.insideSetup {
		return pipelineerr.NewConnectionError(up, down, pipelineerr.ErrDisconnectAfterSetup)
	}
	b.book.RemoveExact(process.Connection{Upstream: up, Downstream: down})
	return nil
}
