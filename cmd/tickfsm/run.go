package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/enetx/tickfsm"
	"github.com/enetx/tickfsm/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type runOptions struct {
	duration time.Duration
	step     time.Duration
	interval time.Duration
	events   []string
	deny     []string
	realtime bool
	metrics  bool
}

// scheduled is an event raised once the simulation reaches at.
type scheduled struct {
	event tickfsm.EventID
	at    time.Duration
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Drive a machine and print its final snapshot",
		Long: `Steps the machine by --step until it finishes or --for has elapsed. Each step
raises the events scheduled with --event, then calls Run. The clock is simulated
unless --realtime is given.`,
		Example: `  tickfsm run door.yaml --for 10s --event 1@200ms --event 2@3s
  tickfsm run door.yaml --deny authorized --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], opts)
		},
	}

	cmd.Flags().DurationVar(&opts.duration, "for", 5*time.Second, "how long to drive the machine")
	cmd.Flags().DurationVar(&opts.step, "step", 10*time.Millisecond, "clock advance between Run calls")
	cmd.Flags().DurationVar(&opts.interval, "interval", -1, "Run interval, defaults to the one in FILE")
	cmd.Flags().StringArrayVar(&opts.events, "event", nil, "event to raise as EVENT@OFFSET, e.g. 1@200ms")
	cmd.Flags().StringSliceVar(&opts.deny, "deny", nil, "guards that reject")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "use the system clock and sleep between steps")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics to stderr when done")

	return cmd
}

func (a *app) run(cmd *cobra.Command, path string, opts *runOptions) error {
	if opts.step <= 0 {
		return fmt.Errorf("--step must be positive, got %s", opts.step)
	}

	events, err := parseEvents(opts.events)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector("tickfsm", path)

	var (
		clock  tickfsm.Clock
		manual *tickfsm.ManualClock
	)

	if opts.realtime {
		clock = tickfsm.NewSystemClock()
	} else {
		manual = tickfsm.NewManualClock()
		clock = manual
	}

	def, m, err := a.load(path, opts.deny,
		tickfsm.WithClock(clock),
		tickfsm.WithObserver(attemptLogger(a.logger)),
		tickfsm.WithObserver(collector),
	)
	if err != nil {
		return err
	}

	interval := opts.interval
	if interval < 0 {
		if interval, err = def.RunInterval(0); err != nil {
			return err
		}
	}

	engine := m.Engine
	ctx := cmd.Context()

	for elapsed := time.Duration(0); elapsed <= opts.duration; elapsed += opts.step {
		for len(events) > 0 && events[0].at <= elapsed {
			ok := engine.Trigger(events[0].event)
			a.logger.Debug("event raised", "event", events[0].event, "at", elapsed, "committed", ok)
			events = events[1:]
		}

		engine.Run(interval, nil)

		if engine.IsFinished() {
			a.logger.Info("machine finished", "state", engine.Current().String(), "at", elapsed)
			break
		}

		if manual != nil {
			manual.Advance(opts.step)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.step):
		}
	}

	if err := writeSnapshot(cmd.OutOrStdout(), engine); err != nil {
		return err
	}

	if opts.metrics {
		return writeMetrics(cmd.ErrOrStderr(), collector)
	}

	return nil
}

func parseEvents(specs []string) ([]scheduled, error) {
	events := make([]scheduled, 0, len(specs))

	for _, spec := range specs {
		id, offset, found := strings.Cut(spec, "@")
		if !found {
			offset = "0s"
		}

		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("event %q: invalid id: %w", spec, err)
		}

		at, err := time.ParseDuration(strings.TrimSpace(offset))
		if err != nil || at < 0 {
			return nil, fmt.Errorf("event %q: invalid offset", spec)
		}

		events = append(events, scheduled{event: tickfsm.EventID(n), at: at})
	}

	slices.SortStableFunc(events, func(x, y scheduled) int {
		return cmp.Compare(x.at, y.at)
	})

	return events, nil
}

func writeSnapshot(w io.Writer, engine *tickfsm.Engine) error {
	data, err := json.MarshalIndent(engine.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func writeMetrics(w io.Writer, c prometheus.Collector) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(c); err != nil {
		return err
	}

	families, err := registry.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
