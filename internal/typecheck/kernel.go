// Package typecheck implements the type-check kernel: the table in
// spec.md section 4.2 that classifies a candidate connection as
// compatible, mismatched, or deferred by inspecting the two endpoints'
// port type strings and flag sets.
package typecheck

import (
	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
)

// Outcome classifies a candidate connection.
type Outcome int

const (
	// Compatible means the connection can go straight to the resolved list.
	Compatible Outcome = iota
	// Deferred means the connection was routed into one of the book's
	// typed-pending lists and must wait for a later pass.
	Deferred
	// Mismatch means the connection is rejected outright.
	Mismatch
)

// Check classifies (upType, downType) and, for Deferred outcomes, appends
// the connection to the correct list of book. It does not check flags;
// call CheckFlags separately (FlagMismatch and TypeMismatch are reported
// independently by spec.md section 4.2).
func Check(book *connbook.Book, c process.Connection, upType, downType string) Outcome {
	switch {
	case port.IsDataDependent(upType):
		book.AppendDataDependent(c)
		return Deferred

	case port.IsFlowDependent(upType) && port.IsFlowDependent(downType):
		book.AppendFlowUntyped(c)
		return Deferred

	case port.IsFlowDependent(upType):
		book.AppendFlowPinned(c, connbook.PushUpstream)
		return Deferred

	case port.IsFlowDependent(downType):
		book.AppendFlowPinned(c, connbook.PushDownstream)
		return Deferred

	case !port.IsAny(upType) && !port.IsAny(downType) && upType != downType:
		return Mismatch

	default:
		return Compatible
	}
}

// CheckFlags reports FlagMismatch iff the upstream side carries
// output-const and the downstream side carries input-mutable.
func CheckFlags(upFlags, downFlags port.FlagSet) error {
	if upFlags.Has(port.OutputConst) && downFlags.Has(port.InputMutable) {
		return pipelineerr.ErrFlagMismatch
	}
	return nil
}
