package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pipelinegrid/pipelinegrid/internal/ctxlog"
	"github.com/pipelinegrid/pipelinegrid/internal/edge"
	"github.com/pipelinegrid/pipelinegrid/internal/flatten"
	"github.com/pipelinegrid/pipelinegrid/internal/frequency"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/structural"
	"github.com/pipelinegrid/pipelinegrid/internal/typeprop"
)

// SetupPipeline runs the ten fixed-order setup passes of spec.md section
// 4.8. It fails with DuplicateSetup if the builder is already Ready or
// Running, and with NoProcesses if the registry holds no processes. A pass
// failure leaves the builder Failed; setup_successful stays false until a
// Reset.
func (b *Builder) SetupPipeline(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if b.state == Ready || b.state == Running {
		return pipelineerr.ErrDuplicateSetup
	}
	if b.reg.ProcessCount() == 0 {
		return pipelineerr.ErrNoProcesses
	}

	logger.Debug("SetupPipeline: starting.", "process_count", b.reg.ProcessCount())

	b.state = SetupInProgress
	b.insideSetup = true

	err := b.runSetupPasses(ctx)

	b.insideSetup = false
	if err != nil {
		b.state = Failed
		b.metrics.ObserveSetup("failed")
		logger.Error("SetupPipeline: failed.", "error", err)
		return err
	}

	b.state = Ready
	b.metrics.ObserveSetup("ready")
	logger.Debug("SetupPipeline: ready.", "edge_count", len(b.edges))
	return nil
}

func (b *Builder) runSetupPasses(ctx context.Context) error {
	passes := []struct {
		name string
		run  func() error
	}{
		{"flatten-clusters", func() error { return flatten.Run(b.reg, b.book, b.connect) }},
		{"configure-processes", b.configureProcesses},
		{"assert-data-dependent-empty", func() error { return typeprop.AssertNoDataDependent(b.book) }},
		{"propagate-flow-types", func() error { return typeprop.PropagateFlow(b.reg, b.book, b.connect) }},
		{"assert-flow-untyped-empty", func() error { return typeprop.AssertNoFlowUntyped(b.book) }},
		{"materialize-edges", b.materializeEdges},
		{"required-ports", func() error { return structural.CheckRequiredPorts(b.reg, b.book) }},
		{"connectivity", func() error { return structural.CheckConnectivity(b.reg, b.book) }},
		{"acyclic", func() error { return structural.CheckAcyclic(b.reg, b.book) }},
		{"init-processes", b.initProcesses},
		{"frequency-solver", func() error { return frequency.Solve(b.reg, b.book) }},
	}

	for _, pass := range passes {
		if err := b.timedPass(ctx, pass.name, pass.run); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) timedPass(ctx context.Context, name string, fn func() error) error {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	b.metrics.ObservePass(name, elapsed.Seconds(), pipelineerr.Kind(err))
	if err != nil {
		logger.Debug("setup pass failed.", "pass", name, "elapsed", elapsed, "error", err)
		return err
	}
	logger.Debug("setup pass complete.", "pass", name, "elapsed", elapsed)
	return nil
}

func (b *Builder) configureProcesses() error {
	for _, p := range b.reg.Processes() {
		if err := p.Configure(); err != nil {
			return fmt.Errorf("configuring process %q: %w", p.Name(), err)
		}
		if err := typeprop.ReplayDataDependent(b.reg, b.book, p.Name(), b.connect); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) initProcesses() error {
	for _, p := range b.reg.Processes() {
		if err := p.Init(); err != nil {
			return fmt.Errorf("initializing process %q: %w", p.Name(), err)
		}
	}
	return nil
}

func (b *Builder) materializeEdges() error {
	edges, err := edge.Materialize(b.reg, b.book, b.lookup, b.factory)
	if err != nil {
		return err
	}
	b.edges = edges
	return nil
}
