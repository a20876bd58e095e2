// Package frequency implements the frequency solver: setup pass 10, which
// assigns every process a consistent integer core frequency derived from
// per-port frequency ratios on the resolved connection graph (spec.md
// section 4.7).
package frequency

import (
	"math/big"

	"github.com/pipelinegrid/pipelinegrid/internal/connbook"
	"github.com/pipelinegrid/pipelinegrid/internal/pipelineerr"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
	"github.com/pipelinegrid/pipelinegrid/internal/rational"
	"github.com/pipelinegrid/pipelinegrid/internal/registry"
)

// Solve assigns SetCoreFrequency on every registered process. With exactly
// one process it assigns 1/1 directly. Otherwise it runs the work-queue
// propagation over book.Resolved, then normalizes every assigned value by
// the least common multiple of its denominators so every core frequency is
// a non-negative integer on the smallest shared time base.
func Solve(reg *registry.Registry, book *connbook.Book) error {
	procs := reg.Processes()

	if len(procs) == 1 {
		procs[0].SetCoreFrequency(rational.One())
		return nil
	}

	freq := make(map[process.Name]*big.Rat, len(procs))
	queue := append([]process.Connection(nil), book.Resolved...)

	for len(queue) > 0 {
		progressed := false
		var requeue []process.Connection

		for _, c := range queue {
			advanced, err := step(reg, freq, c)
			if err != nil {
				return err
			}
			if advanced {
				progressed = true
			} else {
				requeue = append(requeue, c)
			}
		}

		if !progressed {
			// Every remaining connection joins two processes without a
			// frequency, in a component reached from the assigned ones only
			// through connections lacking a port frequency. Seed that
			// component with 1/1 the same way the first one was seeded.
			freq[requeue[0].Upstream.Node] = rational.One()
		}
		queue = requeue
	}

	return normalize(procs, freq)
}

// step processes one resolved connection against the current freq map,
// reporting whether it made progress (an assignment or a validation).
func step(reg *registry.Registry, freq map[process.Name]*big.Rat, c process.Connection) (bool, error) {
	upProc, ok := reg.Process(c.Upstream.Node)
	if !ok {
		return false, pipelineerr.NewNameError(string(c.Upstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	downProc, ok := reg.Process(c.Downstream.Node)
	if !ok {
		return false, pipelineerr.NewNameError(string(c.Downstream.Node), pipelineerr.ErrNoSuchProcess)
	}
	upInfo, ok := upProc.OutputPortInfo(c.Upstream.Port)
	if !ok {
		return false, pipelineerr.NewPortError(c.Upstream, pipelineerr.ErrNoSuchPort)
	}
	downInfo, ok := downProc.InputPortInfo(c.Downstream.Port)
	if !ok {
		return false, pipelineerr.NewPortError(c.Downstream, pipelineerr.ErrNoSuchPort)
	}

	if !upInfo.HasFrequency() || !downInfo.HasFrequency() {
		return true, nil // unvalidatable; drop it from the queue without assigning.
	}

	upFreq, upAssigned := freq[c.Upstream.Node]
	downFreq, downAssigned := freq[c.Downstream.Node]

	switch {
	case upAssigned && downAssigned:
		upSide := rational.Mul(upFreq, upInfo.Frequency)
		downSide := rational.Mul(downFreq, downInfo.Frequency)
		if !rational.Equal(upSide, downSide) {
			return false, pipelineerr.NewFrequencyError(c.Upstream.Node, c.Downstream.Node, upSide, downSide)
		}
		return true, nil

	case upAssigned:
		freq[c.Downstream.Node] = rational.Quo(rational.Mul(upFreq, upInfo.Frequency), downInfo.Frequency)
		return true, nil

	case downAssigned:
		freq[c.Upstream.Node] = rational.Quo(rational.Mul(downFreq, downInfo.Frequency), upInfo.Frequency)
		return true, nil

	case len(freq) == 0:
		freq[c.Upstream.Node] = rational.One()
		freq[c.Downstream.Node] = rational.Quo(rational.Mul(freq[c.Upstream.Node], upInfo.Frequency), downInfo.Frequency)
		return true, nil

	default:
		return false, nil // neither assigned, map non-empty: requeue for later.
	}
}

// normalize scales every assigned frequency by the least common multiple of
// their denominators and assigns the result to every process. Processes
// that never received a frequency (isolated from any frequency-bearing
// connection) are assigned 1/1 scaled the same way, since every registered
// process must receive exactly one SetCoreFrequency call.
func normalize(procs []process.Process, freq map[process.Name]*big.Rat) error {
	if len(freq) == 0 {
		for _, p := range procs {
			p.SetCoreFrequency(rational.One())
		}
		return nil
	}

	values := make([]*big.Rat, 0, len(freq))
	for _, r := range freq {
		values = append(values, r)
	}
	lcm := rational.LCMDenominators(values...)

	for _, p := range procs {
		r, ok := freq[p.Name()]
		if !ok {
			r = rational.One()
		}
		scaled := rational.ScaleToInt(r, lcm)
		p.SetCoreFrequency(new(big.Rat).SetInt(scaled))
	}
	return nil
}
