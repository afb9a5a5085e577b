package tickfsm

import "log/slog"

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. The default is a SystemClock created with
// the engine.
func WithClock(clock Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithFatalHandler sets the function told about unrecoverable table growth
// failures before the engine aborts.
func WithFatalHandler(fn FatalFunc) Option {
	return func(e *Engine) { e.fatal = fn }
}

// WithObserver adds an observer of transition attempts.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers.Push(o) }
}

// WithDeduplication drops transitions equal to one already registered:
// same (from, to, event) for event transitions, same (from, to, interval) for
// timed ones. The first registration wins.
func WithDeduplication() Option {
	return func(e *Engine) { e.dedup = true }
}

// WithTableLimit caps the number of entries each transition table may hold.
// Zero means unlimited. Exceeding the cap is fatal: the FatalFunc is called
// and AddTransitions or AddTimedTransitions then panics with an
// *ErrOutOfStorage. The default FatalFunc only logs, so the panic is an
// ordinary one that a deferred recover in the caller can intercept. Install a
// FatalFunc that exits the process when the condition must not be survivable.
func WithTableLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}
