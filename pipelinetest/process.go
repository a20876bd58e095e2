// Package pipelinetest provides hand-written fakes for pipeline.Process,
// pipeline.Cluster, and pipeline.Edge. They exist so the builder's setup
// orchestration can be exercised without a real process runtime; none of
// them do any actual computation.
//
// These are written by hand rather than generated, since nothing in this
// module ever invokes the Go toolchain to run mockgen.
package pipelinetest

import (
	"math/big"

	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/pipelinegrid/pipelinegrid/pipeline"
)

// PortSpec describes one port's static shape for FakeProcess's constructor.
type PortSpec struct {
	Name      pipeline.PortName
	Type      string
	Flags     []pipeline.Flag
	Frequency *big.Rat
}

// FakeProcess is a minimal pipeline.Process. ConfigureFunc, InitFunc, and
// ResetFunc default to no-ops; set them to exercise failure paths or
// data-dependent type assignment from within Configure.
type FakeProcess struct {
	name pipeline.Name

	inputs  map[pipeline.PortName]pipeline.PortInfo
	outputs map[pipeline.PortName]pipeline.PortInfo

	inputOrder  []pipeline.PortName
	outputOrder []pipeline.PortName

	inputFamily  map[pipeline.PortName]string
	outputFamily map[pipeline.PortName]string

	ConfigureFunc func(*FakeProcess) error
	InitFunc      func(*FakeProcess) error
	ResetFunc     func(*FakeProcess) error

	ConnectedInputs  map[pipeline.PortName]pipeline.Edge
	ConnectedOutputs map[pipeline.PortName]pipeline.Edge

	CoreFrequency *big.Rat
	InitCalled    bool
	ResetCalled   bool
}

// NewFakeProcess builds a fake process with the given input and output
// port specs.
func NewFakeProcess(name pipeline.Name, inputs, outputs []PortSpec) *FakeProcess {
	p := &FakeProcess{
		name:             name,
		inputs:           make(map[pipeline.PortName]pipeline.PortInfo, len(inputs)),
		outputs:          make(map[pipeline.PortName]pipeline.PortInfo, len(outputs)),
		inputFamily:      make(map[pipeline.PortName]string),
		outputFamily:     make(map[pipeline.PortName]string),
		ConnectedInputs:  make(map[pipeline.PortName]pipeline.Edge),
		ConnectedOutputs: make(map[pipeline.PortName]pipeline.Edge),
	}
	for _, spec := range inputs {
		p.inputs[spec.Name] = pipeline.PortInfo{Type: spec.Type, Flags: port.NewFlagSet(toPortFlags(spec.Flags)...), Frequency: spec.Frequency}
		p.inputOrder = append(p.inputOrder, spec.Name)
		if tag, ok := port.FlowTag(spec.Type); ok {
			p.inputFamily[spec.Name] = tag
		}
	}
	for _, spec := range outputs {
		p.outputs[spec.Name] = pipeline.PortInfo{Type: spec.Type, Flags: port.NewFlagSet(toPortFlags(spec.Flags)...), Frequency: spec.Frequency}
		p.outputOrder = append(p.outputOrder, spec.Name)
		if tag, ok := port.FlowTag(spec.Type); ok {
			p.outputFamily[spec.Name] = tag
		}
	}
	return p
}

// syncFamily pushes a newly pinned concrete type onto every other port of
// this process that still carries the same flow-dependent family tag, the
// way a real process ties its template-typed ports together internally.
// The builder itself never assumes this; it only ever mutates the one port
// it was told to.
func (p *FakeProcess) syncFamily(tag, t string) {
	for n, fTag := range p.outputFamily {
		if fTag != tag {
			continue
		}
		if info := p.outputs[n]; port.IsFlowDependent(info.Type) {
			info.Type = t
			p.outputs[n] = info
		}
	}
	for n, fTag := range p.inputFamily {
		if fTag != tag {
			continue
		}
		if info := p.inputs[n]; port.IsFlowDependent(info.Type) {
			info.Type = t
			p.inputs[n] = info
		}
	}
}

func toPortFlags(flags []pipeline.Flag) []port.Flag {
	out := make([]port.Flag, len(flags))
	for i, f := range flags {
		out[i] = port.Flag(f)
	}
	return out
}

func (p *FakeProcess) Name() pipeline.Name { return p.name }

func (p *FakeProcess) InputPorts() []pipeline.PortName  { return p.inputOrder }
func (p *FakeProcess) OutputPorts() []pipeline.PortName { return p.outputOrder }

func (p *FakeProcess) InputPortInfo(name pipeline.PortName) (pipeline.PortInfo, bool) {
	info, ok := p.inputs[name]
	return info, ok
}

func (p *FakeProcess) OutputPortInfo(name pipeline.PortName) (pipeline.PortInfo, bool) {
	info, ok := p.outputs[name]
	return info, ok
}

// SetInputPortType succeeds for every declared input port, like a process
// with no opinion on what it accepts beyond the flow-dependent family tag it
// started with. It reports false for a port the process does not declare.
func (p *FakeProcess) SetInputPortType(name pipeline.PortName, t string) bool {
	info, ok := p.inputs[name]
	if !ok {
		return false
	}
	info.Type = t
	p.inputs[name] = info
	if tag, ok := p.inputFamily[name]; ok {
		p.syncFamily(tag, t)
	}
	return true
}

// SetOutputPortType succeeds for every declared output port, for the same
// reason, and reports false for a port the process does not declare.
func (p *FakeProcess) SetOutputPortType(name pipeline.PortName, t string) bool {
	info, ok := p.outputs[name]
	if !ok {
		return false
	}
	info.Type = t
	p.outputs[name] = info
	if tag, ok := p.outputFamily[name]; ok {
		p.syncFamily(tag, t)
	}
	return true
}

func (p *FakeProcess) Configure() error {
	if p.ConfigureFunc != nil {
		return p.ConfigureFunc(p)
	}
	return nil
}

func (p *FakeProcess) Init() error {
	p.InitCalled = true
	if p.InitFunc != nil {
		return p.InitFunc(p)
	}
	return nil
}

func (p *FakeProcess) Reset() error {
	p.ResetCalled = true
	if p.ResetFunc != nil {
		return p.ResetFunc(p)
	}
	return nil
}

func (p *FakeProcess) ConnectInputPort(name pipeline.PortName, e pipeline.Edge) error {
	p.ConnectedInputs[name] = e
	return nil
}

func (p *FakeProcess) ConnectOutputPort(name pipeline.PortName, e pipeline.Edge) error {
	p.ConnectedOutputs[name] = e
	return nil
}

func (p *FakeProcess) SetCoreFrequency(freq *big.Rat) {
	p.CoreFrequency = freq
}
