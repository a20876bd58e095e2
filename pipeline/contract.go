package pipeline

import "github.com/pipelinegrid/pipelinegrid/internal/process"

// Name, PortName, Address, PortInfo, and Flag are re-exported so callers
// implementing Process and Cluster don't need to import internal packages.
type (
	Name     = process.Name
	PortName = process.PortName
	Address  = process.Address
	PortInfo = process.PortInfo
	Flag     = process.Flag
)

const (
	OutputConst  = process.OutputConst
	InputMutable = process.InputMutable
	Required     = process.Required
	InputNoDep   = process.InputNoDep
)

// Process, Cluster, Connection, Edge, and EdgeFactory are the external
// contracts the builder depends on. See internal/process for their
// documentation.
type (
	Process     = process.Process
	Cluster     = process.Cluster
	Connection  = process.Connection
	Edge        = process.Edge
	EdgeFactory = process.EdgeFactory
)
