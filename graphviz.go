package tickfsm

import "github.com/enetx/g"

// States returns every state the engine knows about: the initial state first,
// then states in order of first appearance in the event table and then the
// timed table.
func (e *Engine) States() g.Slice[*State] {
	seen := g.NewSet[*State]()
	states := g.NewSlice[*State]()

	add := func(s *State) {
		if s == nil || seen.Contains(s) {
			return
		}

		seen.Insert(s)
		states.Push(s)
	}

	add(e.initial)
	add(e.current)

	for _, t := range e.transitions {
		add(t.from)
		add(t.to)
	}

	for _, slot := range e.timed {
		add(slot.from)
		add(slot.to)
	}

	return states
}

// ToDOT generates a DOT language string representation of the machine for
// visualization. Final states are drawn as double circles, the current state
// is highlighted, timed transitions are dashed and guarded ones are red.
func (e *Engine) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph FSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	if e.initial != nil {
		b.WriteString("  __start [shape=point, style=invis];\n")
		b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", quote(e.initial.name)))
	}

	for _, s := range e.States() {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", quote(s.name)))

		if s.final {
			attrs.Push("shape=doublecircle")
		}

		switch {
		case s == e.current:
			attrs.Push("fillcolor=\"#90ee90\"")
		case s.final:
			attrs.Push("fillcolor=\"#d3d3d3\"")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", quote(s.name), attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, t := range e.transitions {
		writeEdge(b, &t.edge, "ID="+g.Int(t.event).String(), false)
	}

	for _, slot := range e.timed {
		writeEdge(b, &slot.edge, g.String(slot.interval.String()), true)
	}

	b.WriteString("}\n")

	return b.String()
}

func writeEdge(b *g.Builder, ed *edge, param g.String, timed bool) {
	if ed.from == nil || ed.to == nil {
		return
	}

	label := param
	if ed.name != "" {
		label = g.Format("{} ({})", quote(ed.name), param)
	}

	var attrs g.Slice[g.String]
	attrs.Push(g.Format("label=\" {} \"", label))

	if timed {
		attrs.Push("style=dashed")
	}

	if ed.guard != nil {
		attrs.Push("color=red", "arrowhead=odiamond")
	}

	b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", quote(ed.from.name), quote(ed.to.name), attrs.Join(", ")))
}

func quote(s g.String) g.String {
	return s.ReplaceAll(`"`, `\"`)
}
