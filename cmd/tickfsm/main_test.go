package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/enetx/tickfsm"
	"github.com/enetx/tickfsm/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func runSnapshot(t *testing.T, args ...string) tickfsm.Snapshot {
	t.Helper()

	stdout, _, err := execute(t, append([]string{"run", "testdata/door.yaml"}, args...)...)
	require.NoError(t, err)

	var snap tickfsm.Snapshot
	require.NoError(t, json.Unmarshal([]byte(stdout), &snap))

	return snap
}

func TestValidate(t *testing.T) {
	stdout, _, err := execute(t, "validate", "testdata/door.yaml")
	require.NoError(t, err)
	assert.Equal(t, "testdata/door.yaml: ok (3 states, 3 transitions, 1 timed)\n", stdout)
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := execute(t, "validate", "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestDot(t *testing.T) {
	stdout, _, err := execute(t, "dot", "testdata/door.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "digraph FSM {")
	assert.Contains(t, stdout, `"open" -> "closed" [label=" autoclose (5s) ", style=dashed];`)
}

func TestRun_AutoClose(t *testing.T) {
	snap := runSnapshot(t, "--for", "6s", "--step", "100ms", "--event", "1@0s")

	assert.True(t, snap.Initialized)
	assert.False(t, snap.Finished)
	assert.EqualValues(t, "closed", snap.Current)
	assert.EqualValues(t, "open", snap.Previous)
}

func TestRun_DeniedGuard(t *testing.T) {
	snap := runSnapshot(t, "--for", "1s", "--event", "1@0s", "--deny", "authorized")

	assert.EqualValues(t, "closed", snap.Current)
	assert.Empty(t, snap.Previous)
}

func TestRun_StopsWhenFinished(t *testing.T) {
	_, stderr, err := execute(t, "run", "testdata/door.yaml", "--event", "9@250ms", "--for", "1h")
	require.NoError(t, err)
	assert.Contains(t, stderr, "machine finished")
	assert.Contains(t, stderr, "outcome=committed")
}

func TestRun_Metrics(t *testing.T) {
	_, stderr, err := execute(t, "run", "testdata/door.yaml",
		"--for", "500ms", "--event", "1@0s", "--event", "2@200ms", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, stderr, `tickfsm_transitions_total{from="open",machine="testdata/door.yaml",to="closed"} 1`)
	assert.Contains(t, stderr, `tickfsm_attempts_total{kind="event",machine="testdata/door.yaml",outcome="committed"} 2`)
}

func TestRun_InvalidFlags(t *testing.T) {
	_, _, err := execute(t, "run", "testdata/door.yaml", "--step", "0s")
	assert.Error(t, err)

	_, _, err = execute(t, "run", "testdata/door.yaml", "--event", "x@1s")
	assert.Error(t, err)

	_, _, err = execute(t, "--log-format", "xml", "dot", "testdata/door.yaml")
	assert.Error(t, err)
}

func TestParseEvents_SortsByOffset(t *testing.T) {
	events, err := parseEvents([]string{"2@1s", "1@200ms", "3"})
	require.NoError(t, err)

	assert.Equal(t, []scheduled{
		{event: 3, at: 0},
		{event: 1, at: 200 * time.Millisecond},
		{event: 2, at: time.Second},
	}, events)
}

func TestGuardNames(t *testing.T) {
	def, err := definition.Load("testdata/door.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"authorized"}, guardNames(def))
}
