package tickfsm

import "github.com/enetx/g"

const (
	tableTransitions = "transitions"
	tableTimed       = "timed"
)

// AddTransitions appends event transitions to the table in the given order.
// Nil entries are skipped.
func (e *Engine) AddTransitions(ts ...*Transition) *Engine {
	for _, t := range ts {
		if t == nil {
			continue
		}

		if e.dedup && e.hasTransition(t) {
			e.logger.Debug("dropping duplicate transition", "name", t.name, "event", t.event)
			continue
		}

		e.ensureRoom(tableTransitions, len(e.transitions))
		e.transitions.Push(t)
	}

	return e
}

// AddTimedTransitions appends timed transitions to the table in the given
// order. Nil entries are skipped. New entries start disarmed.
func (e *Engine) AddTimedTransitions(ts ...*TimedTransition) *Engine {
	for _, t := range ts {
		if t == nil {
			continue
		}

		if e.dedup && e.hasTimed(t) {
			e.logger.Debug("dropping duplicate timed transition", "name", t.name, "interval", t.interval)
			continue
		}

		e.ensureRoom(tableTimed, len(e.timed))
		e.timed.Push(timedSlot{TimedTransition: t})
	}

	return e
}

// Transitions returns a copy of the event transition table.
func (e *Engine) Transitions() g.Slice[*Transition] { return e.transitions.Clone() }

// TimedTransitions returns a copy of the timed transition table.
func (e *Engine) TimedTransitions() g.Slice[*TimedTransition] {
	out := make(g.Slice[*TimedTransition], 0, len(e.timed))
	for _, slot := range e.timed {
		out.Push(slot.TimedTransition)
	}

	return out
}

func (e *Engine) hasTransition(t *Transition) bool {
	for _, have := range e.transitions {
		if have.from == t.from && have.to == t.to && have.event == t.event {
			return true
		}
	}
	return false
}

func (e *Engine) hasTimed(t *TimedTransition) bool {
	for _, have := range e.timed {
		if have.from == t.from && have.to == t.to && have.interval == t.interval {
			return true
		}
	}
	return false
}

// ensureRoom aborts when appending one more entry would exceed the limit.
func (e *Engine) ensureRoom(table string, size int) {
	if e.limit <= 0 || size < e.limit {
		return
	}

	err := &ErrOutOfStorage{Table: table, Limit: e.limit}
	if e.fatal != nil {
		e.fatal(err)
	}

	panic(err)
}
