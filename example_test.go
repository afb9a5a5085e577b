package tickfsm_test

import (
	"fmt"
	"time"

	"github.com/enetx/tickfsm"
)

// A traffic light driven by timed transitions and a pedestrian button.
func Example_trafficLight() {
	const buttonPressed tickfsm.EventID = 1

	reg := tickfsm.NewRegistry()

	red := reg.State("red", tickfsm.WithOnEnter(func() { fmt.Println("red") }))
	green := reg.State("green", tickfsm.WithOnEnter(func() { fmt.Println("green") }))
	yellow := reg.State("yellow", tickfsm.WithOnEnter(func() { fmt.Println("yellow") }))

	clock := tickfsm.NewManualClock()

	light := tickfsm.New(red, tickfsm.WithClock(clock)).
		AddTimedTransitions(
			reg.Timed(red, green, 3*time.Second),
			reg.Timed(green, yellow, 5*time.Second),
			reg.Timed(yellow, red, time.Second),
		).
		AddTransitions(
			reg.Transition(green, yellow, buttonPressed, tickfsm.WithName("pedestrian")),
		)

	for range 20 {
		light.Run(250*time.Millisecond, nil)
		clock.Advance(250 * time.Millisecond)
	}

	light.Trigger(buttonPressed)

	// Output:
	// red
	// green
	// yellow
}

// Entering a final state finishes the machine.
func Example_finished() {
	reg := tickfsm.NewRegistry()

	start := reg.State("start", tickfsm.WithOnExit(func() { fmt.Println("exit start") }))
	done := reg.State("done", tickfsm.WithOnEnter(func() { fmt.Println("enter done") }), tickfsm.AsFinal())

	m := tickfsm.New(start).
		AddTransitions(reg.Transition(start, done, 7, tickfsm.WithAction(func() { fmt.Println("run transition") }))).
		OnTransition(func() { fmt.Println("transition hook") }).
		OnFinished(func() { fmt.Println("finished") })

	fmt.Println(m.Trigger(7), m.IsFinished(), m.Current())

	// Output:
	// exit start
	// run transition
	// transition hook
	// enter done
	// finished
	// true true done
}
