package registry

import (
	"errors"
	"math/big"
	"testing"

	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcess struct{ name process.Name }

func (s stubProcess) Name() process.Name                                            { return s.name }
func (s stubProcess) InputPorts() []process.PortName                                 { return nil }
func (s stubProcess) OutputPorts() []process.PortName                                { return nil }
func (s stubProcess) InputPortInfo(process.PortName) (process.PortInfo, bool)        { return process.PortInfo{}, false }
func (s stubProcess) OutputPortInfo(process.PortName) (process.PortInfo, bool)       { return process.PortInfo{}, false }
func (s stubProcess) SetInputPortType(process.PortName, string) bool                 { return false }
func (s stubProcess) SetOutputPortType(process.PortName, string) bool                { return false }
func (s stubProcess) Configure() error                                              { return nil }
func (s stubProcess) Init() error                                                    { return nil }
func (s stubProcess) Reset() error                                                   { return nil }
func (s stubProcess) ConnectInputPort(process.PortName, process.Edge) error          { return nil }
func (s stubProcess) ConnectOutputPort(process.PortName, process.Edge) error         { return nil }
func (s stubProcess) SetCoreFrequency(r *big.Rat)                                    {}

func TestAddProcessDuplicateName(t *testing.T) {
	r := New()
	require.NoError(t, r.AddProcess(stubProcess{name: "a"}, ""))

	err := r.AddProcess(stubProcess{name: "a"}, "")
	assert.True(t, errors.Is(err, pipelineerr.ErrDuplicateName))
}

func TestAddClusterAndProcessShareNamespace(t *testing.T) {
	r := New()
	require.NoError(t, r.AddCluster(stubCluster{name: "c"}, ""))

	err := r.AddProcess(stubProcess{name: "c"}, "")
	assert.True(t, errors.Is(err, pipelineerr.ErrDuplicateName))
}

func TestRemoveDeletesNameAndParentLink(t *testing.T) {
	r := New()
	require.NoError(t, r.AddProcess(stubProcess{name: "a"}, ""))
	require.NoError(t, r.AddProcess(stubProcess{name: "b"}, "a"))

	r.Remove("b")
	assert.False(t, r.Exists("b"))
	_, ok := r.Parent("b")
	assert.False(t, ok)
}

func TestParentLookup(t *testing.T) {
	r := New()
	require.NoError(t, r.AddCluster(stubCluster{name: "c"}, ""))
	require.NoError(t, r.AddProcess(stubProcess{name: "child"}, "c"))

	parent, ok := r.Parent("child")
	require.True(t, ok)
	assert.Equal(t, process.Name("c"), parent)

	_, ok = r.Parent("c")
	assert.False(t, ok)
}

func TestLenAndProcessCount(t *testing.T) {
	r := New()
	require.NoError(t, r.AddProcess(stubProcess{name: "a"}, ""))
	require.NoError(t, r.AddCluster(stubCluster{name: "c"}, ""))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 1, r.ProcessCount())
}

type stubCluster struct{ name process.Name }

func (s stubCluster) Name() process.Name                    { return s.name }
func (s stubCluster) Processes() []process.Process           { return nil }
func (s stubCluster) InternalConnections() []process.Connection { return nil }
func (s stubCluster) InputMappings() []process.Connection    { return nil }
func (s stubCluster) OutputMappings() []process.Connection   { return nil }
