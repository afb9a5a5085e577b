package tickfsm

import (
	"time"

	"github.com/enetx/g"
)

// Registry hands out states and transitions with stable, monotonically
// increasing identities. Identities are scoped to the registry, so separate
// registries (and separate tests) never share counters.
type Registry struct {
	nextState ID
	nextEdge  ID
}

// NewRegistry creates an empty registry. The first state and the first
// transition both receive ID 1.
func NewRegistry() *Registry { return &Registry{} }

// State creates a named state.
func (r *Registry) State(name g.String, opts ...StateOption) *State {
	r.nextState++

	s := &State{id: r.nextState, name: name}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Transition creates an event-triggered transition from -> to on event.
func (r *Registry) Transition(from, to *State, event EventID, opts ...TransitionOption) *Transition {
	return &Transition{edge: r.edge(from, to, opts), event: event}
}

// Timed creates a time-triggered transition from -> to after interval.
func (r *Registry) Timed(from, to *State, interval time.Duration, opts ...TransitionOption) *TimedTransition {
	return &TimedTransition{edge: r.edge(from, to, opts), interval: interval}
}

func (r *Registry) edge(from, to *State, opts []TransitionOption) edge {
	r.nextEdge++

	e := edge{id: r.nextEdge, from: from, to: to}
	for _, opt := range opts {
		opt(&e)
	}

	return e
}
