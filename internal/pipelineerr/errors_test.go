package pipelineerr

import (
	"errors"
	"math/big"
	"testing"

	"github.com/pipelinegrid/pipelinegrid/internal/port"
	"github.com/stretchr/testify/assert"
)

func TestNameErrorUnwrap(t *testing.T) {
	err := NewNameError("proc-1", ErrDuplicateName)
	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.Contains(t, err.Error(), "proc-1")
}

func TestPortErrorUnwrap(t *testing.T) {
	addr := port.NewAddress("a", "out")
	err := NewPortError(addr, ErrNoSuchPort)
	assert.True(t, errors.Is(err, ErrNoSuchPort))
	assert.Contains(t, err.Error(), "a.out")

	typed := NewPortTypeError(addr, "int", ErrDependentTypeError)
	assert.Contains(t, typed.Error(), "int")
}

func TestConnectionErrorUnwrap(t *testing.T) {
	up := port.NewAddress("a", "out")
	down := port.NewAddress("b", "in")
	err := NewConnectionError(up, down, ErrTypeMismatch)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.Contains(t, err.Error(), "a.out -> b.in")
}

func TestFrequencyError(t *testing.T) {
	err := NewFrequencyError("a", "b", big.NewRat(1, 1), big.NewRat(2, 1))
	assert.True(t, errors.Is(err, ErrFrequencyMismatch))
	assert.Contains(t, err.Error(), "1/1")
	assert.Contains(t, err.Error(), "2/1")
}

func TestCascadeErrorWrapsInner(t *testing.T) {
	addr := port.NewAddress("a", "out")
	inner := NewPortTypeError(port.NewAddress("b", "in"), "int", ErrDependentTypeError)
	cascade := NewCascadeError(addr, "int", inner)

	assert.True(t, errors.Is(cascade, ErrDependentTypeError))
	assert.Same(t, inner, errors.Unwrap(cascade))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "DuplicateName", Kind(NewNameError("x", ErrDuplicateName)))
	assert.Equal(t, "NotADAG", Kind(NewNameError("x", ErrNotADAG)))
	assert.Equal(t, "unknown", Kind(errors.New("boom")))
	assert.Equal(t, "", Kind(nil))
}
