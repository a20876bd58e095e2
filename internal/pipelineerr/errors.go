// Package pipelineerr declares the builder's error taxonomy: one sentinel
// per abstract kind, plus typed wrappers that carry the offending
// name/port/type for diagnostics. Callers use errors.Is against the
// sentinels and errors.As against the wrapper types.
package pipelineerr

import "errors"

// Input-validity errors.
var (
	// ErrNullPipelineConfig is never returned by this module: configuration
	// is an external SubBlockLookup the edge materializer calls out to
	// (internal/config), not a value the builder itself validates. Kept in
	// the taxonomy for completeness against the original's error kind set.
	ErrNullPipelineConfig = errors.New("pipelineerr: null pipeline config")
	ErrNullProcess        = errors.New("pipelineerr: null process")
	ErrDuplicateName      = errors.New("pipelineerr: duplicate name")
	ErrNoSuchProcess      = errors.New("pipelineerr: no such process")
	ErrNoSuchPort         = errors.New("pipelineerr: no such port")
)

// Lifecycle errors.
var (
	ErrAddAfterSetup         = errors.New("pipelineerr: add after setup")
	ErrRemoveAfterSetup      = errors.New("pipelineerr: remove after setup")
	ErrConnectionAfterSetup  = errors.New("pipelineerr: connect after setup")
	ErrDisconnectAfterSetup  = errors.New("pipelineerr: disconnect after setup")
	ErrDuplicateSetup        = errors.New("pipelineerr: setup already ran")
	ErrPipelineNotSetup      = errors.New("pipelineerr: pipeline not setup")
	ErrPipelineNotReady      = errors.New("pipelineerr: pipeline not ready")
	ErrResetWhileRunning     = errors.New("pipelineerr: reset while running")
	ErrNoProcesses           = errors.New("pipelineerr: no processes registered")
)

// Connection-validity errors.
var (
	ErrFlagMismatch = errors.New("pipelineerr: flag mismatch")
	ErrTypeMismatch = errors.New("pipelineerr: type mismatch")
)

// Type-resolution errors.
var (
	ErrUntypedDataDependent = errors.New("pipelineerr: output still data-dependent after configure")
	ErrUntypedConnection    = errors.New("pipelineerr: connection left untyped after propagation")
	ErrDependentTypeError   = errors.New("pipelineerr: failed to pin a flow-dependent port")
)

// Structural errors.
var (
	ErrMissingConnection = errors.New("pipelineerr: required port not connected")
	ErrOrphanedProcesses = errors.New("pipelineerr: not every process is reachable")
	ErrNotADAG           = errors.New("pipelineerr: dependency graph has a cycle")
)

// Frequency errors.
var ErrFrequencyMismatch = errors.New("pipelineerr: inconsistent frequency")

// ErrInternal flags a broken invariant rather than a user error, e.g. more
// than one output mapping matching a single cluster port after filtering.
var ErrInternal = errors.New("pipelineerr: internal invariant violated")

var namedSentinels = []struct {
	err   error
	label string
}{
	{ErrNullPipelineConfig, "NullPipelineConfig"},
	{ErrNullProcess, "NullProcess"},
	{ErrDuplicateName, "DuplicateName"},
	{ErrNoSuchProcess, "NoSuchProcess"},
	{ErrNoSuchPort, "NoSuchPort"},
	{ErrAddAfterSetup, "AddAfterSetup"},
	{ErrRemoveAfterSetup, "RemoveAfterSetup"},
	{ErrConnectionAfterSetup, "ConnectionAfterSetup"},
	{ErrDisconnectAfterSetup, "DisconnectAfterSetup"},
	{ErrDuplicateSetup, "DuplicateSetup"},
	{ErrPipelineNotSetup, "PipelineNotSetup"},
	{ErrPipelineNotReady, "PipelineNotReady"},
	{ErrResetWhileRunning, "ResetWhileRunning"},
	{ErrNoProcesses, "NoProcesses"},
	{ErrFlagMismatch, "FlagMismatch"},
	{ErrTypeMismatch, "TypeMismatch"},
	{ErrUntypedDataDependent, "UntypedDataDependent"},
	{ErrUntypedConnection, "UntypedConnection"},
	{ErrDependentTypeError, "DependentTypeError"},
	{ErrMissingConnection, "MissingConnection"},
	{ErrOrphanedProcesses, "OrphanedProcesses"},
	{ErrNotADAG, "NotADAG"},
	{ErrFrequencyMismatch, "FrequencyMismatch"},
	{ErrInternal, "Internal"},
}

// Kind returns the short label of the nearest sentinel err wraps, or
// "unknown" if none of them match. It exists for diagnostics and metrics
// labels, never for control flow — callers deciding behavior should use
// errors.Is/errors.As against the sentinels and wrapper types directly.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, s := range namedSentinels {
		if errors.Is(err, s.err) {
			return s.label
		}
	}
	return "unknown"
}
