package tickfsm

import (
	"time"

	"github.com/enetx/g"
)

// edge is the shape shared by event and timed transitions.
type edge struct {
	id     ID
	name   g.String
	from   *State
	to     *State
	action Callback
	guard  GuardFunc
}

// Transition is an edge taken when Trigger receives its event while the
// machine is in the source state.
type Transition struct {
	edge
	event EventID
}

// TimedTransition is an edge taken by Run once the machine has dwelt in the
// source state for at least the interval.
type TimedTransition struct {
	edge
	interval time.Duration
}

// TransitionOption configures either kind of transition at creation.
type TransitionOption func(*edge)

// WithName sets the display name used in logs and graph output.
func WithName(name g.String) TransitionOption {
	return func(e *edge) { e.name = name }
}

// WithAction sets the callback run between the source exit and the target entry.
func WithAction(cb Callback) TransitionOption {
	return func(e *edge) { e.action = cb }
}

// WithGuard sets the predicate that must return true for the transition to fire.
func WithGuard(guard GuardFunc) TransitionOption {
	return func(e *edge) { e.guard = guard }
}

// WithGuards sets multiple guards that must all pass.
func WithGuards(guards ...GuardFunc) TransitionOption {
	return func(e *edge) {
		e.guard = func() bool {
			for _, guard := range guards {
				if !guard() {
					return false
				}
			}
			return true
		}
	}
}

// ID returns the identity assigned by the registry.
func (e *edge) ID() ID { return e.id }

// Name returns the display name.
func (e *edge) Name() g.String { return e.name }

// From returns the source state.
func (e *edge) From() *State { return e.from }

// To returns the target state. A nil target never completes.
func (e *edge) To() *State { return e.to }

// IsGuarded reports whether a guard is set.
func (e *edge) IsGuarded() bool { return e.guard != nil }

func (e *edge) matches(s *State) bool { return e.from != nil && e.from == s }

// Event returns the event id the transition reacts to.
func (t *Transition) Event() EventID { return t.event }

// Interval returns the dwell time after which the transition fires.
func (t *TimedTransition) Interval() time.Duration { return t.interval }

// timedSlot is the engine-owned table entry for a TimedTransition.
// The arm state lives here, not in the client's TimedTransition.
type timedSlot struct {
	*TimedTransition
	armed   bool
	armedAt time.Duration
}

func (s *timedSlot) arm(now time.Duration) {
	s.armed = true
	s.armedAt = now
}

func (s *timedSlot) disarm() {
	s.armed = false
	s.armedAt = 0
}

func (s *timedSlot) elapsed(now time.Duration) time.Duration {
	if !s.armed {
		return 0
	}

	return now - s.armedAt
}
