package tickfsm

import "github.com/enetx/g"

// State is a named node of the machine.
// States are created by a Registry and are never mutated by the engine.
type State struct {
	id      ID
	name    g.String
	onEnter Callback
	onState Callback
	onExit  Callback
	final   bool
}

// StateOption configures a State at creation.
type StateOption func(*State)

// WithOnEnter sets the callback invoked when the state is entered.
func WithOnEnter(cb Callback) StateOption {
	return func(s *State) { s.onEnter = cb }
}

// WithOnState sets the callback invoked on every Run tick spent in the state.
func WithOnState(cb Callback) StateOption {
	return func(s *State) { s.onState = cb }
}

// WithOnExit sets the callback invoked when the state is left.
func WithOnExit(cb Callback) StateOption {
	return func(s *State) { s.onExit = cb }
}

// AsFinal marks the state as terminal. Entering it finishes the machine.
func AsFinal() StateOption {
	return func(s *State) { s.final = true }
}

// ID returns the identity assigned by the registry.
func (s *State) ID() ID { return s.id }

// Name returns the display name.
func (s *State) Name() g.String { return s.name }

// IsFinal reports whether entering the state finishes the machine.
func (s *State) IsFinal() bool { return s.final }

func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}

	return string(s.name)
}
