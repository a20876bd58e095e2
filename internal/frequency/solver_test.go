package frequency

import (
	"errors"
	"math/big"
	"testing"

	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type freqProcess struct {
	name    process.Name
	inputs  map[process.PortName]process.PortInfo
	outputs map[process.PortName]process.PortInfo
	core    *big.Rat
}

func newFreqProcess(name process.Name) *freqProcess {
	return &freqProcess{
		name:    name,
		inputs:  make(map[process.PortName]process.PortInfo),
		outputs: make(map[process.PortName]process.PortInfo),
	}
}

func (p *freqProcess) withInput(n process.PortName, freq *big.Rat) *freqProcess {
	p.inputs[n] = process.PortInfo{Type: "int", Frequency: freq}
	return p
}

func (p *freqProcess) withOutput(n process.PortName, freq *big.Rat) *freqProcess {
	p.outputs[n] = process.PortInfo{Type: "int", Frequency: freq}
	return p
}

func (p *freqProcess) Name() process.Name { return p.name }

func (p *freqProcess) InputPorts() []process.PortName  { return nil }
func (p *freqProcess) OutputPorts() []process.PortName { return nil }

func (p *freqProcess) InputPortInfo(n process.PortName) (process.PortInfo, bool) {
	info, ok := p.inputs[n]
	return info, ok
}

func (p *freqProcess) OutputPortInfo(n process.PortName) (process.PortInfo, bool) {
	info, ok := p.outputs[n]
	return info, ok
}

func (p *freqProcess) SetInputPortType(process.PortName, string) bool  { return false }
func (p *freqProcess) SetOutputPortType(process.PortName, string) bool { return false }
func (p *freqProcess) Configure() error                                { return nil }
func (p *freqProcess) Init() error                                     { return nil }
func (p *freqProcess) Reset() error                                    { return nil }
func (p *freqProcess) ConnectInputPort(process.PortName, process.Edge) error  { return nil }
func (p *freqProcess) ConnectOutputPort(process.PortName, process.Edge) error { return nil }

func (p *freqProcess) SetCoreFrequency(freq *big.Rat) { p.core = freq }

func addr(node, p string) process.Address {
	return process.NewAddress(process.Name(node), process.PortName(p))
}

func conn(up, uport, down, dport string) process.Connection {
	return process.Connection{Upstream: addr(up, uport), Downstream: addr(down, dport)}
}

func TestSolveSingleProcessGetsOne(t *testing.T) {
	reg := registry.New()
	a := newFreqProcess("a")
	require.NoError(t, reg.AddProcess(a, ""))

	require.NoError(t, Solve(reg, connbook.New()))
	assert.Equal(t, big.NewRat(1, 1), a.core)
}

func TestSolveScenarioS5Frequencies(t *testing.T) {
	// a.o=1/1 -> b.i=1/2, b.o=1/1 -> c.i=1/3.
	reg := registry.New()
	a := newFreqProcess("a").withOutput("o", big.NewRat(1, 1))
	b := newFreqProcess("b").withInput("i", big.NewRat(1, 2)).withOutput("o", big.NewRat(1, 1))
	c := newFreqProcess("c").withInput("i", big.NewRat(1, 3))
	require.NoError(t, reg.AddProcess(a, ""))
	require.NoError(t, reg.AddProcess(b, ""))
	require.NoError(t, reg.AddProcess(c, ""))

	book := connbook.New()
	book.AppendResolved(conn("a", "o", "b", "i"))
	book.AppendResolved(conn("b", "o", "c", "i"))

	require.NoError(t, Solve(reg, book))

	assert.Equal(t, big.NewInt(1), a.core.Num())
	assert.Equal(t, big.NewInt(2), b.core.Num())
	assert.Equal(t, big.NewInt(6), c.core.Num())
	assert.Equal(t, big.NewInt(1), a.core.Denom())
	assert.Equal(t, big.NewInt(1), b.core.Denom())
	assert.Equal(t, big.NewInt(1), c.core.Denom())
}

func TestSolveMismatchFails(t *testing.T) {
	// a->b seeds a=1,b=1; b->c derives c=2; a's second link to c then
	// validates a=1 against c=2 at a 1:1 ratio and disagrees.
	reg := registry.New()
	a := newFreqProcess("a").
		withOutput("o1", big.NewRat(1, 1)).
		withOutput("o2", big.NewRat(1, 1))
	b := newFreqProcess("b").
		withInput("i", big.NewRat(1, 1)).
		withOutput("o", big.NewRat(1, 1))
	c := newFreqProcess("c").
		withInput("i", big.NewRat(1, 2)).
		withInput("i2", big.NewRat(1, 1))
	require.NoError(t, reg.AddProcess(a, ""))
	require.NoError(t, reg.AddProcess(b, ""))
	require.NoError(t, reg.AddProcess(c, ""))

	book := connbook.New()
	book.AppendResolved(conn("a", "o1", "b", "i"))
	book.AppendResolved(conn("b", "o", "c", "i"))
	book.AppendResolved(conn("a", "o2", "c", "i2"))

	err := Solve(reg, book)
	assert.True(t, errors.Is(err, pipelineerr.ErrFrequencyMismatch))
}

func TestSolveIsolatedProcessDefaultsToOne(t *testing.T) {
	reg := registry.New()
	a := newFreqProcess("a").withOutput("o", big.NewRat(1, 1))
	b := newFreqProcess("b").withInput("i", big.NewRat(1, 1))
	isolated := newFreqProcess("isolated")
	require.NoError(t, reg.AddProcess(a, ""))
	require.NoError(t, reg.AddProcess(b, ""))
	require.NoError(t, reg.AddProcess(isolated, ""))

	book := connbook.New()
	book.AppendResolved(conn("a", "o", "b", "i"))

	require.NoError(t, Solve(reg, book))
	assert.Equal(t, big.NewInt(1), isolated.core.Num())
	assert.Equal(t, big.NewInt(1), isolated.core.Denom())
}

func TestSolveUnvalidatablePortSkipsAssignment(t *testing.T) {
	reg := registry.New()
	a := newFreqProcess("a").withOutput("o", nil)
	b := newFreqProcess("b").withInput("i", nil)
	require.NoError(t, reg.AddProcess(a, ""))
	require.NoError(t, reg.AddProcess(b, ""))

	book := connbook.New()
	book.AppendResolved(conn("a", "o", "b", "i"))

	require.NoError(t, Solve(reg, book))
	assert.Equal(t, big.NewInt(1), a.core.Num())
	assert.Equal(t, big.NewInt(1), b.core.Num())
}
