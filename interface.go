package tickfsm

import (
	"time"

	"github.com/enetx/g"
)

// StateMachine is the surface drivers depend on. *Engine implements it.
type StateMachine interface {
	Trigger(EventID) bool
	Run(time.Duration, Callback)
	Reset()
	Current() *State
	Previous() *State
	IsInState(*State) bool
	IsFinished() bool
	SinceTransition() time.Duration
	Validate() error
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
}

// Interface compliance check.
var _ StateMachine = (*Engine)(nil)
