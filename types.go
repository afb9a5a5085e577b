package tickfsm

import (
	"log/slog"
	"time"

	"github.com/enetx/g"
)

type (
	// ID is the identity assigned to a State or a transition by its Registry.
	ID int

	// EventID is the key matched against the values passed to Trigger.
	EventID int

	// Callback is a side-effecting lifecycle hook (on enter, on state, on exit,
	// transition action, engine hooks and the Run tick).
	Callback func()

	// GuardFunc decides whether an otherwise matched transition may fire.
	GuardFunc func() bool

	// FatalFunc receives the unrecoverable error raised when a transition table
	// cannot grow. The engine aborts with a panic once it returns.
	FatalFunc func(err error)

	// Engine is the polled state machine.
	// It is driven from a single control loop and performs no locking.
	Engine struct {
		initial  *State
		current  *State
		previous *State

		initialized  bool
		finished     bool
		transitioned bool

		lastRun        time.Duration
		lastTransition time.Duration

		transitions g.Slice[*Transition]
		timed       g.Slice[timedSlot]

		onTransition Callback
		onFinished   Callback

		clock     Clock
		logger    *slog.Logger
		fatal     FatalFunc
		observers g.Slice[Observer]
		dedup     bool
		limit     int

		busy     bool
		deferred g.Slice[EventID]
	}
)

// Logger is the default logger used when none is provided.
var Logger = slog.Default()
