// Package tickfsm provides a finite state machine for cooperative, polled
// control loops. States carry enter, on-state and exit callbacks and are
// connected by event transitions (taken by Trigger) and timed transitions
// (taken by Run once their source state has been occupied long enough).
// The engine never blocks, never starts goroutines and reads time only
// through a Clock. It is built with types from github.com/enetx/g.
package tickfsm

import (
	"time"

	"github.com/enetx/g"
)

// New creates an engine that starts in initial, which may be nil and set
// later with SetInitialState.
func New(initial *State, opts ...Option) *Engine {
	e := &Engine{
		initial:     initial,
		transitions: g.NewSlice[*Transition](),
		timed:       g.NewSlice[timedSlot](),
		observers:   g.NewSlice[Observer](),
		deferred:    g.NewSlice[EventID](),
		logger:      Logger,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.clock == nil {
		e.clock = NewSystemClock()
	}

	if e.fatal == nil {
		e.fatal = func(err error) { e.logger.Error("out of storage", "error", err) }
	}

	return e
}

// SetInitialState sets the state entered on initialization. It takes effect
// on the next initialization, i.e. before the first Trigger or Run or after
// Reset.
func (e *Engine) SetInitialState(s *State) *Engine {
	e.initial = s
	return e
}

// OnTransition sets the hook invoked on every committed transition, after the
// transition action and before the target state is entered.
func (e *Engine) OnTransition(cb Callback) *Engine {
	e.onTransition = cb
	return e
}

// OnFinished sets the hook invoked when a final state is entered.
func (e *Engine) OnFinished(cb Callback) *Engine {
	e.onFinished = cb
	return e
}

// Initial returns the configured initial state.
func (e *Engine) Initial() *State { return e.initial }

// Current returns the current state, or nil before initialization.
func (e *Engine) Current() *State { return e.current }

// Previous returns the state left by the last transition.
func (e *Engine) Previous() *State { return e.previous }

// IsInState reports whether s is the current state.
func (e *Engine) IsInState(s *State) bool { return s != nil && e.current == s }

// IsFinished reports whether a final state has been entered since the last
// Reset.
func (e *Engine) IsFinished() bool { return e.finished }

// IsInitialized reports whether the lazy initialization has run.
func (e *Engine) IsInitialized() bool { return e.initialized }

// SinceTransition returns the time elapsed since the last state change,
// or zero if the machine has not entered any state yet.
func (e *Engine) SinceTransition() time.Duration {
	if !e.transitioned {
		return 0
	}

	return e.clock.Now() - e.lastTransition
}

// Pending returns the number of events raised from callbacks that have not
// been processed yet.
func (e *Engine) Pending() int { return len(e.deferred) }

// Trigger delivers event to the machine. The first transition in insertion
// order leaving the current state on event is attempted, and Trigger reports
// whether it committed. Events raised from inside a transition callback are
// queued, Trigger returns false for them, and they are processed once the
// running transition has completed.
func (e *Engine) Trigger(event EventID) bool {
	if e.busy {
		e.deferred.Push(event)
		e.logger.Debug("deferring event raised during transition", "event", event)
		return false
	}

	e.initFSM()
	e.drain()

	ok := e.trigger(event)
	e.drain()

	return ok
}

// Run is the polled step. It initializes the machine if needed and then does
// nothing unless at least interval has passed since the last run or state
// change. Otherwise it arms or fires the timed transitions of the current
// state, at most one firing per call, and when none fired calls the current
// state's on-state callback followed by tick.
func (e *Engine) Run(interval time.Duration, tick Callback) {
	if e.busy {
		return
	}

	e.initFSM()

	now := e.clock.Now()
	if e.current == nil || e.finished || now-e.lastRun < interval {
		return
	}

	e.lastRun = now
	current := e.current

	for i := range e.timed {
		slot := &e.timed[i]
		if !slot.matches(e.current) {
			continue
		}

		if !slot.armed {
			slot.arm(now)
			e.logger.Debug("timer armed", "name", slot.name, "state", e.current.name, "interval", slot.interval)
			continue
		}

		if slot.elapsed(now) < slot.interval {
			continue
		}

		committed := e.attempt(&slot.edge, KindTimed)
		if committed {
			e.timed[i].disarm()
		}

		// guards and observers may have queued events during the attempt
		e.drain()

		if committed || e.current != current || e.finished {
			return
		}
	}

	if cb := e.current.onState; cb != nil {
		cb()
	}

	if tick != nil {
		tick()
	}
}

// Reset returns the machine to its pre-run condition. The next Trigger or Run
// enters the initial state again. Registered transitions, states and hooks
// are kept; every timer is disarmed and queued events are dropped.
func (e *Engine) Reset() {
	e.initialized = false
	e.finished = false
	e.transitioned = false
	e.lastRun = 0
	e.lastTransition = 0
	e.current = nil
	e.previous = nil
	e.deferred = g.NewSlice[EventID]()
	e.disarmAll()

	e.logger.Debug("machine reset")
}

// Validate reports configuration errors that would leave the machine, or
// some of its transitions, silently inert.
func (e *Engine) Validate() error {
	var problems []error

	if e.initial == nil {
		problems = append(problems, ErrNoInitialState)
	}

	for _, t := range e.transitions {
		problems = append(problems, checkEdge(&t.edge, KindEvent)...)
	}

	for _, slot := range e.timed {
		problems = append(problems, checkEdge(&slot.edge, KindTimed)...)
	}

	if len(problems) == 0 {
		return nil
	}

	return &ErrInvalidMachine{Problems: problems}
}

func checkEdge(ed *edge, kind Kind) []error {
	var problems []error

	if ed.from == nil {
		problems = append(problems, &ErrDetachedTransition{Kind: kind.String(), ID: ed.id, Name: string(ed.name)})
	}

	if ed.to == nil {
		problems = append(problems, &ErrInertTransition{Kind: kind.String(), ID: ed.id, Name: string(ed.name)})
	}

	return problems
}

// initFSM enters the initial state once per run-cycle.
func (e *Engine) initFSM() {
	if e.initialized {
		return
	}

	e.initialized = true

	if e.initial == nil {
		e.logger.Warn("no initial state configured, machine stays inert")
		return
	}

	e.busy = true
	func() {
		defer func() { e.busy = false }()
		e.changeTo(e.initial)
	}()

	e.drain()
}

// trigger dispatches one event without touching the deferred queue.
func (e *Engine) trigger(event EventID) bool {
	if e.current == nil || e.finished {
		return false
	}

	for _, t := range e.transitions {
		if t.matches(e.current) && t.event == event {
			return e.attempt(&t.edge, KindEvent)
		}
	}

	e.logger.Debug("no transition for event", "event", event, "state", e.current.name)

	return false
}

// attempt runs the transition protocol. Once the guard passes, the exit,
// action, transition hook, entry and finished hook all run in that order.
func (e *Engine) attempt(ed *edge, kind Kind) bool {
	e.busy = true
	defer func() { e.busy = false }()

	from := e.current

	if ed.to == nil {
		e.logger.Debug("transition has no target", "name", ed.name, "kind", kind)
		e.observe(ed, kind, from, Inert)
		return false
	}

	if ed.guard != nil && !ed.guard() {
		e.logger.Debug("guard rejected transition", "name", ed.name, "kind", kind, "from", from.name, "to", ed.to.name)
		e.observe(ed, kind, from, Blocked)
		return false
	}

	e.logger.Debug("executing transition", "name", ed.name, "kind", kind, "from", from.name, "to", ed.to.name)

	if cb := ed.from.onExit; cb != nil {
		cb()
	}

	if ed.action != nil {
		ed.action()
	}

	if e.onTransition != nil {
		e.onTransition()
	}

	e.changeTo(ed.to)
	e.observe(ed, kind, from, Committed)

	return true
}

// changeTo makes s the current state and enters it.
func (e *Engine) changeTo(s *State) {
	now := e.clock.Now()

	e.previous = e.current
	e.current = s
	e.disarmAll()

	e.logger.Debug("entering state", "state", s.name)

	if s.onEnter != nil {
		s.onEnter()
	}

	e.lastRun = now
	e.lastTransition = now
	e.transitioned = true

	e.entered(s, now)

	if s.final {
		e.finished = true
		e.logger.Debug("machine finished", "state", s.name)

		if e.onFinished != nil {
			e.onFinished()
		}
	}
}

// drain processes events queued by callbacks, oldest first.
func (e *Engine) drain() {
	for len(e.deferred) > 0 {
		event := e.deferred[0]
		e.deferred = e.deferred[1:]
		e.trigger(event)
	}
}

// disarmAll disarms every timer. Timers of the state being entered are armed
// again lazily by the next Run scan, so dwell time counts from that entry.
func (e *Engine) disarmAll() {
	for i := range e.timed {
		e.timed[i].disarm()
	}
}

func (e *Engine) observe(ed *edge, kind Kind, from *State, outcome Outcome) {
	if len(e.observers) == 0 {
		return
	}

	a := Attempt{
		Kind:    kind,
		ID:      ed.id,
		Name:    ed.name,
		From:    from,
		To:      ed.to,
		Outcome: outcome,
		At:      e.clock.Now(),
	}

	for _, o := range e.observers {
		o.Observe(a)
	}
}

func (e *Engine) entered(s *State, at time.Duration) {
	for _, o := range e.observers {
		if eo, ok := o.(EntryObserver); ok {
			eo.Entered(e.previous, s, at)
		}
	}
}
