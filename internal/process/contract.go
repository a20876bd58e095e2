// Package process declares the external Process/Cluster/Edge contracts the
// builder depends on but never implements. Concrete processes, clusters,
// and the edge/queue runtime that operates edges are all supplied by the
// caller; the core only calls through these interfaces.
package process

import (
	"math/big"

	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/zclconf/go-cty/cty"
)

// SubBlock is the value type a merged configuration sub-block resolves to.
type SubBlock = cty.Value

// Name and PortName are re-exported so callers implementing Process and
// Cluster don't need to import the internal port package directly.
type Name = port.Name
type PortName = port.PortName

// Address is a fully qualified (Name, PortName) pair.
type Address = port.Address

// NewAddress is re-exported so callers implementing Process and Cluster
// don't need to import the internal port package directly.
func NewAddress(node Name, p PortName) Address {
	return port.NewAddress(node, p)
}

// PortInfo is the metadata the builder reads from a process's ports: its
// type string, flag set, and optional frequency ratio.
type PortInfo = port.Info

// Flag is one of the four port flags with semantics in the core.
type Flag = port.Flag

const (
	OutputConst  = port.OutputConst
	InputMutable = port.InputMutable
	Required     = port.Required
	InputNoDep   = port.InputNoDep
)

// Process is the contract every computation node must satisfy. The builder
// never constructs or executes a Process: it is supplied by the caller,
// queried during setup, and mutated only through SetInputPortType,
// SetOutputPortType, Configure, Init, Reset, ConnectInputPort,
// ConnectOutputPort, and SetCoreFrequency, per spec.md section 5's
// "externally owned" resource policy.
type Process interface {
	Name() Name

	InputPorts() []PortName
	OutputPorts() []PortName
	InputPortInfo(p PortName) (PortInfo, bool)
	OutputPortInfo(p PortName) (PortInfo, bool)

	// SetInputPortType and SetOutputPortType attempt to pin a concrete type
	// onto a flow-dependent port. They report false on failure (e.g. the
	// process can't accept that type), which the type-propagation engine
	// turns into a DependentTypeError.
	SetInputPortType(p PortName, t string) bool
	SetOutputPortType(p PortName, t string) bool

	// Configure is called once per process during setup pass 2, after
	// clusters have been flattened. A process with a data-dependent output
	// must have assigned it a concrete type by the time Configure returns.
	Configure() error
	// Init is called once per process during setup pass 9, after the graph
	// has been fully validated and before frequencies are assigned.
	Init() error
	// Reset returns the process to its pre-setup state. The builder calls
	// it from Builder.Reset, which returns the pipeline to Unconfigured from
	// any state except Running.
	Reset() error

	// ConnectInputPort and ConnectOutputPort bind a materialized Edge to
	// one of the process's ports.
	ConnectInputPort(p PortName, e Edge) error
	ConnectOutputPort(p PortName, e Edge) error

	// SetCoreFrequency is called exactly once per process by the frequency
	// solver with the process's normalized integer execution rate.
	SetCoreFrequency(freq *big.Rat)
}

// Cluster is a named composite that forwards its external ports to ports of
// its internal children. It is a Process to the outside (it has a Name)
// but additionally exposes its children, their internal connections, and
// the external-to-internal port mappings the cluster flattener consumes.
type Cluster interface {
	Name() Name

	// Processes returns the cluster's direct children. A child may itself
	// be a Cluster; add_process recurses into it.
	Processes() []Process

	// InternalConnections lists connections between the cluster's children,
	// applied via connect() when the cluster is added.
	InternalConnections() []Connection

	// InputMappings and OutputMappings relate the cluster's own external
	// port addresses (Name() as the node) to addresses on its children.
	// Fan-out is permitted on InputMappings (multiple children may share
	// one external input address) but not on OutputMappings, per spec.md
	// section 4.3.
	InputMappings() []Connection
	OutputMappings() []Connection
}

// Connection is a directed link from an upstream output-port address to a
// downstream input-port address.
type Connection struct {
	Upstream   Address
	Downstream Address
}

// Edge is the opaque runtime resource the edge materializer creates per
// resolved connection. The builder creates and binds edges but never
// operates them; the edge/queue runtime that does is out of scope here.
type Edge interface {
	SetUpstreamProcess(p Process)
	SetDownstreamProcess(p Process)
}

// EdgeFactory constructs an Edge from its merged configuration sub-block.
// The builder calls it once per resolved connection during setup pass 6.
type EdgeFactory interface {
	NewEdge(dependency bool, cfg SubBlock) (Edge, error)
}
