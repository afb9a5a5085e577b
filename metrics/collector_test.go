package metrics_test

import (
	"strings"
	"testing"

	"github.com/enetx/tickfsm"
	"github.com/enetx/tickfsm/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := tickfsm.NewRegistry()
	a := reg.State("a")
	b := reg.State("b")

	c := metrics.NewCollector("tickfsm", "demo")

	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(c))

	e := tickfsm.New(a, tickfsm.WithClock(tickfsm.NewManualClock()), tickfsm.WithObserver(c)).
		AddTransitions(
			reg.Transition(a, b, 1),
			reg.Transition(b, a, 2, tickfsm.WithGuard(func() bool { return false })),
			reg.Transition(b, nil, 3),
		)

	require.True(t, e.Trigger(1))
	require.False(t, e.Trigger(2))
	require.False(t, e.Trigger(3))

	expected := `
# HELP tickfsm_attempts_total Transition attempts by kind and outcome.
# TYPE tickfsm_attempts_total counter
tickfsm_attempts_total{kind="event",machine="demo",outcome="blocked"} 1
tickfsm_attempts_total{kind="event",machine="demo",outcome="committed"} 1
tickfsm_attempts_total{kind="event",machine="demo",outcome="inert"} 1
# HELP tickfsm_transitions_total Committed transitions by source and target state.
# TYPE tickfsm_transitions_total counter
tickfsm_transitions_total{from="a",machine="demo",to="b"} 1
# HELP tickfsm_state_active 1 for the current state of the machine.
# TYPE tickfsm_state_active gauge
tickfsm_state_active{machine="demo",state="a"} 0
tickfsm_state_active{machine="demo",state="b"} 1
`

	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected)))
}

func TestCollector_CountsTimedAttempts(t *testing.T) {
	reg := tickfsm.NewRegistry()
	a := reg.State("a")
	b := reg.State("b")

	c := metrics.NewCollector("", "timed")
	clock := tickfsm.NewManualClock()

	e := tickfsm.New(a, tickfsm.WithClock(clock), tickfsm.WithObserver(c)).
		AddTimedTransitions(reg.Timed(a, b, 0))

	e.Run(0, nil)
	e.Run(0, nil)
	require.Same(t, b, e.Current())

	require.Equal(t, 4, testutil.CollectAndCount(c))
	require.Equal(t, 1, testutil.CollectAndCount(c, "attempts_total"))
}

func TestCollector_MarksInitialStateActive(t *testing.T) {
	reg := tickfsm.NewRegistry()
	a := reg.State("a")
	b := reg.State("b")

	c := metrics.NewCollector("tickfsm", "init")

	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(c))

	e := tickfsm.New(a, tickfsm.WithClock(tickfsm.NewManualClock()), tickfsm.WithObserver(c)).
		AddTransitions(reg.Transition(a, b, 1))

	e.Run(0, nil)

	expected := `
# HELP tickfsm_state_active 1 for the current state of the machine.
# TYPE tickfsm_state_active gauge
tickfsm_state_active{machine="init",state="a"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "tickfsm_state_active"))

	e.Trigger(1)
	e.Reset()
	e.Run(0, nil)

	expected = `
# HELP tickfsm_state_active 1 for the current state of the machine.
# TYPE tickfsm_state_active gauge
tickfsm_state_active{machine="init",state="a"} 1
tickfsm_state_active{machine="init",state="b"} 0
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "tickfsm_state_active"))
}
