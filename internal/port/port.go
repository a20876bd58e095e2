// Package port defines the names, addresses, and per-port metadata that make
// up the pipeline's data model: a process exposes input and output ports,
// each carrying a type string, a flag set, and an optional frequency ratio.
package port

import (
	"fmt"
	"math/big"
	"strings"
)

// Name identifies a process or cluster in the registry. Names must be
// unique across the union of processes and clusters.
type Name string

// PortName identifies a single input or output port on a process.
type PortName string

// Address is a fully qualified reference to a port on a named process or
// cluster: (Name, PortName). Its canonical string form is "name.port",
// the same literal separator the edge materializer's `_edge_by_conn`
// sub-block keys use.
type Address struct {
	Node Name
	Port PortName
}

// NewAddress builds an Address from its two components.
func NewAddress(node Name, p PortName) Address {
	return Address{Node: node, Port: p}
}

// String renders the address in "node.port" form.
func (a Address) String() string {
	return fmt.Sprintf("%s.%s", a.Node, a.Port)
}

// ParseAddress parses a "node.port" string back into an Address. Only the
// first dot splits the node from the port, so the port segment may itself
// contain further dots, matching how step addresses are written in
// configuration sub-block keys.
func ParseAddress(s string) (Address, error) {
	idx := strings.IndexByte(s, '.')
	if idx < 0 || idx == 0 || idx == len(s)-1 {
		return Address{}, fmt.Errorf("port: malformed address %q, want \"node.port\"", s)
	}
	return Address{Node: Name(s[:idx]), Port: PortName(s[idx+1:])}, nil
}

// Flag is one of the recognized port flags. Only these four carry semantics
// in the core; any other flag a process attaches is preserved but ignored.
type Flag string

const (
	// OutputConst marks an output port whose produced data is immutable.
	OutputConst Flag = "output-const"
	// InputMutable marks an input port whose consumer requires mutable data.
	InputMutable Flag = "input-mutable"
	// Required marks a port, either side, that must be connected at setup time.
	Required Flag = "required"
	// InputNoDep marks an input edge that does not contribute to the
	// dependency order; such edges are excluded from the DAG check.
	InputNoDep Flag = "input-nodep"
)

// FlagSet is an unordered collection of port flags with O(1) membership.
type FlagSet map[Flag]struct{}

// NewFlagSet builds a FlagSet from a list of flags.
func NewFlagSet(flags ...Flag) FlagSet {
	fs := make(FlagSet, len(flags))
	for _, f := range flags {
		fs[f] = struct{}{}
	}
	return fs
}

// Has reports whether the set contains f.
func (fs FlagSet) Has(f Flag) bool {
	_, ok := fs[f]
	return ok
}

// Info is the immutable-enough-for-a-single-read snapshot of a port's
// metadata: its type string, flags, and optional frequency ratio. Process
// implementations return a fresh Info from their port-info lookups; the
// core never mutates one in place, it calls the process's type-mutator
// methods and re-reads.
type Info struct {
	Type      string
	Flags     FlagSet
	Frequency *big.Rat // nil means "frequency unknown for this port"
}

// HasFrequency reports whether the port declares a frequency ratio.
func (i Info) HasFrequency() bool {
	return i.Frequency != nil
}

const (
	// TypeAny accepts or produces any concrete type.
	TypeAny = "any"
	// TypeDataDependent marks an output whose type is decided by the
	// process during its own configure() step.
	TypeDataDependent = "data-dependent"
	// flowDependentPrefix introduces a flow-dependent family tag, e.g.
	// "flow-dependent[T]".
	flowDependentPrefix = "flow-dependent["
	flowDependentSuffix = "]"
)

// IsAny reports whether t is the wildcard type.
func IsAny(t string) bool {
	return t == TypeAny
}

// IsDataDependent reports whether t is the data-dependent marker.
func IsDataDependent(t string) bool {
	return t == TypeDataDependent
}

// FlowTag returns the family tag of a "flow-dependent[tag]" type string and
// true, or ("", false) if t is not a flow-dependent type.
func FlowTag(t string) (string, bool) {
	if !strings.HasPrefix(t, flowDependentPrefix) || !strings.HasSuffix(t, flowDependentSuffix) {
		return "", false
	}
	tag := t[len(flowDependentPrefix) : len(t)-len(flowDependentSuffix)]
	return tag, true
}

// IsFlowDependent reports whether t names a flow-dependent family.
func IsFlowDependent(t string) bool {
	_, ok := FlowTag(t)
	return ok
}

// IsConcrete reports whether t is a fully resolved, comparable type: not
// "any", not "data-dependent", and not a flow-dependent family marker.
func IsConcrete(t string) bool {
	return !IsAny(t) && !IsDataDependent(t) && !IsFlowDependent(t)
}
