package processor

import (
	"github.com/rs/xid"
	"github.com/sarchlab/akita/v3/sim"
	"github.com/sarchlab/akita/v3/tracing"
)

// ClockedRunner drives a Machine from an akita event engine, one Step per
// clock tick. Ticking stops once the machine is done or fails.
//
// The runner is a tracing domain: a run is one "run" task and every cycle is
// a "cycle" task under it. Attach akita tracers with tracing.CollectTrace.
type ClockedRunner struct {
	*sim.TickingComponent

	engine  sim.Engine
	machine Machine
	runID   string
	err     error
}

// NewClockedRunner builds a runner with its own serial engine.
func NewClockedRunner(name string, m Machine, freq sim.Freq) *ClockedRunner {
	engine := sim.NewSerialEngine()
	r := &ClockedRunner{
		engine:  engine,
		machine: m,
	}
	r.TickingComponent = sim.NewTickingComponent(name, engine, freq, r)
	return r
}

func (r *ClockedRunner) Tick(now sim.VTimeInSec) bool {
	if r.err != nil || r.machine.Done() {
		return false
	}

	id := xid.New().String()
	tracing.StartTask(id, r.runID, r, "cycle", "step", nil)
	err := r.machine.Step()
	tracing.EndTask(id, r)

	if err != nil {
		r.err = err
		return false
	}
	return !r.machine.Done()
}

// Run ticks the machine until it is done and returns the simulated time
// at which the last cycle ran.
func (r *ClockedRunner) Run() (sim.VTimeInSec, error) {
	if r.machine.Done() {
		return 0, nil
	}

	r.runID = xid.New().String()
	tracing.StartTask(r.runID, "", r, "run", "program", nil)
	r.TickLater(r.engine.CurrentTime())
	err := r.engine.Run()
	tracing.EndTask(r.runID, r)

	if err != nil {
		return r.engine.CurrentTime(), err
	}
	return r.engine.CurrentTime(), r.err
}
