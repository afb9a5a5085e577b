package tickfsm

import (
	"time"

	"github.com/enetx/g"
)

// Kind tells event and timed transitions apart.
type Kind int

const (
	KindEvent Kind = iota
	KindTimed
)

func (k Kind) String() string {
	if k == KindTimed {
		return "timed"
	}
	return "event"
}

// Outcome is the result of one transition attempt.
type Outcome int

const (
	// Committed means the full exit/action/enter sequence ran.
	Committed Outcome = iota
	// Inert means the transition has no target state.
	Inert
	// Blocked means the guard returned false.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Inert:
		return "inert"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Attempt describes a transition attempt after it completed or aborted.
type Attempt struct {
	Kind    Kind
	ID      ID
	Name    g.String
	From    *State
	To      *State
	Outcome Outcome
	At      time.Duration
}

// Observer is notified of every transition attempt, on the caller's stack,
// after the attempt's callbacks have run.
type Observer interface {
	Observe(Attempt)
}

// EntryObserver is an Observer that also wants to know about every state
// entry, including the initial one that no attempt precedes. Entered runs
// after the state's on-enter callback.
type EntryObserver interface {
	Observer
	Entered(from, to *State, at time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Attempt)

// Observe calls f(a).
func (f ObserverFunc) Observe(a Attempt) { f(a) }
