package pipeline

import (
	"context"
	"fmt"

	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/ctxlog"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
)

// Start transitions a Ready builder to Running. It is a no-op error source
// only in the sense that it requires Ready; there is no other failure mode.
func (b *Builder) Start(ctx context.Context) error {
	if b.state != Ready {
		return pipelineerr.ErrPipelineNotReady
	}
	b.state = Running
	ctxlog.FromContext(ctx).Debug("Builder: started.")
	return nil
}

// Stop transitions a Running builder back to Ready.
func (b *Builder) Stop(ctx context.Context) error {
	if b.state != Running {
		return pipelineerr.ErrPipelineNotReady
	}
	b.state = Ready
	ctxlog.FromContext(ctx).Debug("Builder: stopped.")
	return nil
}

// Reset returns the builder to Unconfigured, replaying every planned
// connection from scratch. It fails with ResetWhileRunning if the builder
// is currently Running.
func (b *Builder) Reset(ctx context.Context) error {
	if b.state == Running {
		return pipelineerr.ErrResetWhileRunning
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Builder: resetting.", "planned_connections", len(b.book.Planned))

	planned := b.book.Planned

	for _, p := range b.reg.Processes() {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("resetting process %q: %w", p.Name(), err)
		}
	}

	b.book = connbook.New()
	b.edges = nil
	b.state = Unconfigured
	b.insideSetup = false

	for _, c := range planned {
		if err := b.connect(c); err != nil {
			return err
		}
	}
	return nil
}

// Edges returns the builder's materialized edge list in resolved-connection
// order. It fails with PipelineNotSetup before the first setup_pipeline
// call and PipelineNotReady after a failed one.
func (b *Builder) Edges() ([]process.Edge, error) {
	if err := b.requireSetup(); err != nil {
		return nil, err
	}
	return b.edges, nil
}

// ResolvedConnections returns the connection book's resolved list. Valid
// mid-setup too, since setup passes read it as it grows.
func (b *Builder) ResolvedConnections() ([]process.Connection, error) {
	if err := b.requireSetup(); err != nil {
		return nil, err
	}
	return b.book.Resolved, nil
}

func (b *Builder) requireSetup() error {
	switch b.state {
	case Unconfigured:
		return pipelineerr.ErrPipelineNotSetup
	case Failed:
		return pipelineerr.ErrPipelineNotReady
	default:
		return nil
	}
}
