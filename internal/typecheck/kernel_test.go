package typecheck

import (
	"testing"

	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/stretchr/testify/assert"
)

func testConn() process.Connection {
	return process.Connection{
		Upstream:   port.NewAddress("a", "out"),
		Downstream: port.NewAddress("b", "in"),
	}
}

func TestCheckDataDependent(t *testing.T) {
	b := connbook.New()
	outcome := Check(b, testConn(), port.TypeDataDependent, "int")
	assert.Equal(t, Deferred, outcome)
	assert.Len(t, b.DataDependent, 1)
}

func TestCheckBothFlowDependent(t *testing.T) {
	b := connbook.New()
	outcome := Check(b, testConn(), "flow-dependent[T]", "flow-dependent[T]")
	assert.Equal(t, Deferred, outcome)
	assert.Len(t, b.FlowUntyped, 1)
}

func TestCheckOnlyUpstreamFlowDependent(t *testing.T) {
	b := connbook.New()
	outcome := Check(b, testConn(), "flow-dependent[T]", "int")
	assert.Equal(t, Deferred, outcome)
	require := assert.New(t)
	require.Len(b.FlowPinned, 1)
	require.Equal(connbook.PushUpstream, b.FlowPinned[0].Dir)
}

func TestCheckOnlyDownstreamFlowDependent(t *testing.T) {
	b := connbook.New()
	outcome := Check(b, testConn(), "int", "flow-dependent[T]")
	assert.Equal(t, Deferred, outcome)
	assert.Equal(t, connbook.PushDownstream, b.FlowPinned[0].Dir)
}

func TestCheckMismatch(t *testing.T) {
	b := connbook.New()
	outcome := Check(b, testConn(), "int", "string")
	assert.Equal(t, Mismatch, outcome)
}

func TestCheckCompatibleViaAny(t *testing.T) {
	b := connbook.New()
	assert.Equal(t, Compatible, Check(b, testConn(), "any", "string"))
	assert.Equal(t, Compatible, Check(b, testConn(), "int", "any"))
	assert.Equal(t, Compatible, Check(b, testConn(), "int", "int"))
}

func TestCheckFlags(t *testing.T) {
	constOut := port.NewFlagSet(port.OutputConst)
	mutableIn := port.NewFlagSet(port.InputMutable)
	none := port.NewFlagSet()

	assert.ErrorIs(t, CheckFlags(constOut, mutableIn), pipelineerr.ErrFlagMismatch)
	assert.NoError(t, CheckFlags(constOut, none))
	assert.NoError(t, CheckFlags(none, mutableIn))
}
