package events

import (
	"fmt"
	"time"

	"github.com/riskforge/risksim/internal/stack"
)

// PauseProcessing tells the outer driver to sleep before the next step.
// It does not advance the logical simulation.
type PauseProcessing struct {
	stack.Event
	Delay time.Duration
}

// NewPauseProcessing creates a pause instruction.
func NewPauseProcessing(delay time.Duration) PauseProcessing {
	return PauseProcessing{
		Event: stack.NewEvent(KindPauseProcessing,
			fmt.Sprintf("SYSTEM: Paused Processing of Event Stack for %s", delay),
			fmt.Sprintf("delay=%s", delay)),
		Delay: delay,
	}
}

// SystemInterrupt halts the controller at the start of the next step.
// The tape is preserved.
type SystemInterrupt struct {
	stack.Event
}

// NewSystemInterrupt creates an interrupt event.
func NewSystemInterrupt() SystemInterrupt {
	return SystemInterrupt{
		Event: stack.NewEvent(KindSystemInterrupt,
			"SYSTEM: Interrupted Processing of Event Stack", ""),
	}
}

// SystemResume records that processing resumed after a pause or
// interrupt.
type SystemResume struct {
	stack.Event
}

// NewSystemResume creates a resume event.
func NewSystemResume() SystemResume {
	return SystemResume{
		Event: stack.NewEvent(KindSystemResume,
			"SYSTEM: Resumed Processing of Event Stack", ""),
	}
}

// SystemStep records that a single processing step was forced by the
// driver.
type SystemStep struct {
	stack.Event
}

// NewSystemStep creates a forced step event.
func NewSystemStep() SystemStep {
	return SystemStep{
		Event: stack.NewEvent(KindSystemStep,
			"SYSTEM: Forced Step in Processing of Event Stack", ""),
	}
}

// SimulationComplete records that the forward budget was exhausted.
// Processing it is terminal.
type SimulationComplete struct {
	stack.Event
	Turn int
}

// NewSimulationComplete creates the budget exhaustion event.
func NewSimulationComplete(turn int) SimulationComplete {
	return SimulationComplete{
		Event: stack.NewEvent(KindSimulationComplete,
			fmt.Sprintf("SYSTEM: Simulation Complete at T%d", turn),
			fmt.Sprintf("turn=%d", turn)),
		Turn: turn,
	}
}
