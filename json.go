package tickfsm

import (
	"encoding/json"

	"github.com/enetx/g"
)

// Snapshot is a read-only report of the engine's runtime condition, meant for
// diagnostics. It cannot be loaded back into an engine.
type Snapshot struct {
	Initialized       bool                `json:"initialized"`
	Finished          bool                `json:"finished"`
	Current           g.String            `json:"current,omitempty"`
	Previous          g.String            `json:"previous,omitempty"`
	SinceTransitionMS int64               `json:"since_transition_ms"`
	Pending           int                 `json:"pending"`
	Armed             g.Slice[ArmedTimer] `json:"armed"`
}

// ArmedTimer describes a timed transition whose timer is running.
type ArmedTimer struct {
	Name       g.String `json:"name,omitempty"`
	From       g.String `json:"from"`
	To         g.String `json:"to,omitempty"`
	IntervalMS int64    `json:"interval_ms"`
	ElapsedMS  int64    `json:"elapsed_ms"`
}

// Snapshot captures the engine's current runtime condition.
func (e *Engine) Snapshot() Snapshot {
	now := e.clock.Now()

	s := Snapshot{
		Initialized:       e.initialized,
		Finished:          e.finished,
		SinceTransitionMS: e.SinceTransition().Milliseconds(),
		Pending:           len(e.deferred),
		Armed:             make(g.Slice[ArmedTimer], 0),
	}

	if e.current != nil {
		s.Current = e.current.name
	}

	if e.previous != nil {
		s.Previous = e.previous.name
	}

	for i := range e.timed {
		slot := &e.timed[i]
		if !slot.armed {
			continue
		}

		timer := ArmedTimer{
			Name:       slot.name,
			From:       slot.from.name,
			IntervalMS: slot.interval.Milliseconds(),
			ElapsedMS:  slot.elapsed(now).Milliseconds(),
		}

		if slot.to != nil {
			timer.To = slot.to.name
		}

		s.Armed.Push(timer)
	}

	return s
}

// MarshalJSON implements the json.Marshaler interface.
func (e *Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Snapshot())
}
