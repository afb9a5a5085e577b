package tickfsm_test

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/enetx/tickfsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_MarshalJSON(t *testing.T) {
	reg := NewRegistry()
	a := reg.State("a")
	b := reg.State("b")

	clock := NewManualClock()
	e := New(a, WithClock(clock)).
		AddTransitions(reg.Transition(b, a, evBack)).
		AddTimedTransitions(reg.Timed(a, b, 2*time.Second, WithName("slow")))

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"initialized": false,
		"finished": false,
		"since_transition_ms": 0,
		"pending": 0,
		"armed": []
	}`, string(data))

	e.Run(0, nil)
	clock.Set(750 * time.Millisecond)

	data, err = json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"initialized": true,
		"finished": false,
		"current": "a",
		"since_transition_ms": 750,
		"pending": 0,
		"armed": [
			{"name": "slow", "from": "a", "to": "b", "interval_ms": 2000, "elapsed_ms": 750}
		]
	}`, string(data))
}

func TestEngine_SnapshotAfterTransition(t *testing.T) {
	reg := NewRegistry()
	a := reg.State("a")
	b := reg.State("b", AsFinal())

	e := New(a, WithClock(NewManualClock())).AddTransitions(reg.Transition(a, b, evGo))
	require.True(t, e.Trigger(evGo))

	s := e.Snapshot()
	assert.True(t, s.Finished)
	assert.EqualValues(t, "b", s.Current)
	assert.EqualValues(t, "a", s.Previous)
}
