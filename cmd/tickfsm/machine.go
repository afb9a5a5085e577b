package main

import (
	"log/slog"

	"github.com/enetx/tickfsm"
	"github.com/enetx/tickfsm/definition"
)

// load builds the machine at path. Every callback name resolves to a debug
// log line and every guard passes unless its name is in deny.
func (a *app) load(path string, deny []string, opts ...tickfsm.Option) (*definition.Definition, *definition.Machine, error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, nil, err
	}

	denied := make(map[string]bool, len(deny))
	for _, name := range deny {
		denied[name] = true
	}

	guards := make(map[string]tickfsm.GuardFunc)
	for _, name := range guardNames(def) {
		guards[name] = func() bool {
			ok := !denied[name]
			a.logger.Debug("guard evaluated", "guard", name, "result", ok)
			return ok
		}
	}

	bindings := definition.Bindings{
		Guards: guards,
		Fallback: func(name string) tickfsm.Callback {
			return func() { a.logger.Debug("callback", "name", name) }
		},
	}

	base := []tickfsm.Option{tickfsm.WithLogger(a.logger)}
	if a.cfg.TableLimit > 0 {
		base = append(base, tickfsm.WithTableLimit(a.cfg.TableLimit))
	}

	if a.cfg.Dedup {
		base = append(base, tickfsm.WithDeduplication())
	}

	m, err := def.Build(bindings, append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}

	return def, m, nil
}

func guardNames(def *definition.Definition) []string {
	var names []string

	for _, t := range def.Transitions {
		if t.Guard != "" {
			names = append(names, t.Guard)
		}
	}

	for _, t := range def.Timed {
		if t.Guard != "" {
			names = append(names, t.Guard)
		}
	}

	return names
}

// attemptLogger logs every transition attempt at info level.
func attemptLogger(logger *slog.Logger) tickfsm.Observer {
	return tickfsm.ObserverFunc(func(at tickfsm.Attempt) {
		logger.Info("transition attempt",
			"kind", at.Kind.String(),
			"name", at.Name,
			"from", at.From.String(),
			"to", at.To.String(),
			"outcome", at.Outcome.String(),
			"at", at.At,
		)
	})
}
