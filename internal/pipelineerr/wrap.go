package pipelineerr

import (
	"fmt"
	"math/big"

	"github.com/pipelinegrid/pipelinegrid/internal/port"
)

// NameError reports a problem with a single registered name, such as a
// duplicate or missing process/cluster.
type NameError struct {
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Err)
}

func (e *NameError) Unwrap() error { return e.Err }

// NewNameError wraps sentinel with the offending name.
func NewNameError(name string, sentinel error) *NameError {
	return &NameError{Name: name, Err: sentinel}
}

// PortError reports a problem with a specific port address, optionally
// naming the offending type string (e.g. a type mismatch).
type PortError struct {
	Address port.Address
	Type    string
	Err     error
}

func (e *PortError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s (type %q): %s", e.Address, e.Type, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Address, e.Err)
}

func (e *PortError) Unwrap() error { return e.Err }

// NewPortError wraps sentinel with the offending port address.
func NewPortError(addr port.Address, sentinel error) *PortError {
	return &PortError{Address: addr, Err: sentinel}
}

// NewPortTypeError wraps sentinel with the offending port address and type.
func NewPortTypeError(addr port.Address, typ string, sentinel error) *PortError {
	return &PortError{Address: addr, Type: typ, Err: sentinel}
}

// ConnectionError reports a problem with a candidate or resolved connection
// between two port addresses.
type ConnectionError struct {
	Upstream   port.Address
	Downstream port.Address
	Err        error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s -> %s: %s", e.Upstream, e.Downstream, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NewConnectionError wraps sentinel with the offending connection's endpoints.
func NewConnectionError(up, down port.Address, sentinel error) *ConnectionError {
	return &ConnectionError{Upstream: up, Downstream: down, Err: sentinel}
}

// FrequencyError reports two inconsistent process frequencies found while
// validating a resolved edge.
type FrequencyError struct {
	Upstream       port.Name
	Downstream     port.Name
	UpstreamFreq   *big.Rat
	DownstreamFreq *big.Rat
}

func (e *FrequencyError) Error() string {
	return fmt.Sprintf("%s: freq(%s)=%s, freq(%s)=%s are inconsistent across their shared edge",
		ErrFrequencyMismatch, e.Upstream, e.UpstreamFreq.String(), e.Downstream, e.DownstreamFreq.String())
}

func (e *FrequencyError) Unwrap() error { return ErrFrequencyMismatch }

// NewFrequencyError reports an inconsistency between up and down's assigned
// core frequencies.
func NewFrequencyError(up, down port.Name, upFreq, downFreq *big.Rat) *FrequencyError {
	return &FrequencyError{Upstream: up, Downstream: down, UpstreamFreq: upFreq, DownstreamFreq: downFreq}
}

// CascadeError wraps a propagation failure that occurred while cascading a
// pin, tagging it with the original (name, port, type) that started the
// cascade per spec.md's DependentTypeCascadeError.
type CascadeError struct {
	PinnedAt port.Address
	PinType  string
	Err      error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade from pin %s=%q failed: %s", e.PinnedAt, e.PinType, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

// NewCascadeError wraps inner with the pin site that triggered the cascade.
func NewCascadeError(pinnedAt port.Address, pinType string, inner error) *CascadeError {
	return &CascadeError{PinnedAt: pinnedAt, PinType: pinType, Err: inner}
}
