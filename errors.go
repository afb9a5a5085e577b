package tickfsm

import (
	"errors"
	"fmt"

	"github.com/enetx/g"
)

// ErrNoInitialState is reported by Validate when the machine has no initial
// state. Such a machine initializes but never leaves the nil state.
var ErrNoInitialState = errors.New("tickfsm: no initial state configured")

// ErrOutOfStorage is the fatal error raised when a transition table would grow
// past the limit configured with WithTableLimit. It is delivered to the
// FatalFunc and then used as the panic value.
type ErrOutOfStorage struct {
	// Table is "transitions" or "timed".
	Table string
	Limit int
}

func (e *ErrOutOfStorage) Error() string {
	return fmt.Sprintf("tickfsm: out of storage: %s table is limited to %d entries", e.Table, e.Limit)
}

// ErrInertTransition reports a transition without a target state.
// It matches, but an attempt to take it always fails.
type ErrInertTransition struct {
	Kind string
	ID   ID
	Name string
}

func (e *ErrInertTransition) Error() string {
	return fmt.Sprintf("tickfsm: %s transition %d %q has no target state", e.Kind, e.ID, e.Name)
}

// ErrDetachedTransition reports a transition without a source state.
// It can never match.
type ErrDetachedTransition struct {
	Kind string
	ID   ID
	Name string
}

func (e *ErrDetachedTransition) Error() string {
	return fmt.Sprintf("tickfsm: %s transition %d %q has no source state", e.Kind, e.ID, e.Name)
}

// ErrInvalidMachine is returned by Validate and collects every problem found.
// The individual problems are reachable through errors.Is and errors.As.
type ErrInvalidMachine struct {
	Problems []error
}

func (e *ErrInvalidMachine) Error() string {
	msgs := g.NewSlice[g.String]()
	for _, p := range e.Problems {
		msgs.Push(g.String(p.Error()))
	}

	return fmt.Sprintf("tickfsm: invalid machine: %s", msgs.Join("; "))
}

// Unwrap exposes the collected problems to errors.Is and errors.As.
func (e *ErrInvalidMachine) Unwrap() []error { return e.Problems }
