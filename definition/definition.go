// Package definition loads tickfsm machines from YAML documents.
//
// A document names states, event transitions and timed transitions. Callbacks
// and guards are referenced by name and resolved through Bindings when the
// definition is built, so the same file can drive firmware, tests and the
// tickfsm command line tool.
package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/enetx/g"
	"github.com/enetx/tickfsm"
	"gopkg.in/yaml.v3"
)

// Definition is the parsed form of a machine document.
type Definition struct {
	Initial     string     `yaml:"initial"`
	Interval    string     `yaml:"interval,omitempty"`
	States      []StateDef `yaml:"states"`
	Transitions []EventDef `yaml:"transitions,omitempty"`
	Timed       []TimedDef `yaml:"timed,omitempty"`
}

// StateDef describes one state.
type StateDef struct {
	Name    string `yaml:"name"`
	OnEnter string `yaml:"on_enter,omitempty"`
	OnState string `yaml:"on_state,omitempty"`
	OnExit  string `yaml:"on_exit,omitempty"`
	Final   bool   `yaml:"final,omitempty"`
}

// EventDef describes an event transition.
type EventDef struct {
	Name  string `yaml:"name,omitempty"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Event int    `yaml:"event"`
	OnRun string `yaml:"on_run,omitempty"`
	Guard string `yaml:"guard,omitempty"`
}

// TimedDef describes a timed transition. After is a Go duration string.
type TimedDef struct {
	Name  string `yaml:"name,omitempty"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	After string `yaml:"after"`
	OnRun string `yaml:"on_run,omitempty"`
	Guard string `yaml:"guard,omitempty"`
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(data []byte) (*Definition, error) {
	var def Definition

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse machine definition: %w", err)
	}

	return &def, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine definition: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return def, nil
}

// RunInterval returns the run interval declared by the document, or fallback
// when none is declared.
func (d *Definition) RunInterval(fallback time.Duration) (time.Duration, error) {
	if d.Interval == "" {
		return fallback, nil
	}

	interval, err := time.ParseDuration(d.Interval)
	if err != nil || interval < 0 {
		return 0, &ErrBadInterval{Where: "interval", Value: d.Interval}
	}

	return interval, nil
}

// Machine is a built definition: the engine plus its states by name.
type Machine struct {
	Engine   *tickfsm.Engine
	States   *g.MapSafe[g.String, *tickfsm.State]
	Interval time.Duration
}

// State looks a state up by name.
func (m *Machine) State(name g.String) g.Option[*tickfsm.State] {
	return m.States.Get(name)
}

// Build creates the states and transitions of the document in a fresh
// registry and registers them with a new engine configured with opts.
func (d *Definition) Build(b Bindings, opts ...tickfsm.Option) (*Machine, error) {
	reg := tickfsm.NewRegistry()
	states := g.NewMapSafe[g.String, *tickfsm.State]()

	for _, sd := range d.States {
		if sd.Name == "" {
			return nil, errors.New("state without a name")
		}

		name := g.String(sd.Name)
		if states.Get(name).IsSome() {
			return nil, &ErrDuplicateState{Name: sd.Name}
		}

		stateOpts, err := d.stateOptions(sd, b)
		if err != nil {
			return nil, err
		}

		states.Set(name, reg.State(name, stateOpts...))
	}

	lookup := func(where, name string) (*tickfsm.State, error) {
		s := states.Get(g.String(name))
		if s.IsNone() {
			return nil, &ErrUnknownState{Where: where, Name: name}
		}

		return s.Some(), nil
	}

	initial, err := lookup("initial", d.Initial)
	if err != nil {
		return nil, err
	}

	interval, err := d.RunInterval(0)
	if err != nil {
		return nil, err
	}

	engine := tickfsm.New(initial, opts...)

	for i, ed := range d.Transitions {
		where := fmt.Sprintf("transitions[%d]", i)

		from, err := lookup(where+".from", ed.From)
		if err != nil {
			return nil, err
		}

		to, err := lookup(where+".to", ed.To)
		if err != nil {
			return nil, err
		}

		topts, err := edgeOptions(ed.Name, ed.OnRun, ed.Guard, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}

		engine.AddTransitions(reg.Transition(from, to, tickfsm.EventID(ed.Event), topts...))
	}

	for i, td := range d.Timed {
		where := fmt.Sprintf("timed[%d]", i)

		from, err := lookup(where+".from", td.From)
		if err != nil {
			return nil, err
		}

		to, err := lookup(where+".to", td.To)
		if err != nil {
			return nil, err
		}

		after, err := time.ParseDuration(td.After)
		if err != nil || after < 0 {
			return nil, &ErrBadInterval{Where: where + ".after", Value: td.After}
		}

		topts, err := edgeOptions(td.Name, td.OnRun, td.Guard, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}

		engine.AddTimedTransitions(reg.Timed(from, to, after, topts...))
	}

	return &Machine{Engine: engine, States: states, Interval: interval}, nil
}

func (d *Definition) stateOptions(sd StateDef, b Bindings) ([]tickfsm.StateOption, error) {
	var opts []tickfsm.StateOption

	hooks := []struct {
		name string
		with func(tickfsm.Callback) tickfsm.StateOption
	}{
		{sd.OnEnter, tickfsm.WithOnEnter},
		{sd.OnState, tickfsm.WithOnState},
		{sd.OnExit, tickfsm.WithOnExit},
	}

	for _, h := range hooks {
		if h.name == "" {
			continue
		}

		cb, err := b.callback(h.name)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", sd.Name, err)
		}

		opts = append(opts, h.with(cb))
	}

	if sd.Final {
		opts = append(opts, tickfsm.AsFinal())
	}

	return opts, nil
}

func edgeOptions(name, onRun, guard string, b Bindings) ([]tickfsm.TransitionOption, error) {
	var opts []tickfsm.TransitionOption

	if name != "" {
		opts = append(opts, tickfsm.WithName(g.String(name)))
	}

	if onRun != "" {
		cb, err := b.callback(onRun)
		if err != nil {
			return nil, err
		}

		opts = append(opts, tickfsm.WithAction(cb))
	}

	if guard != "" {
		fn, err := b.guard(guard)
		if err != nil {
			return nil, err
		}

		opts = append(opts, tickfsm.WithGuard(fn))
	}

	return opts, nil
}
