package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tmux-easyjump"

// Metrics holds all OTEL metric instruments for tmux-easyjump.
// All methods are nil-safe so callers never guard.
type Metrics struct {
	// Jumps counts runs, partitioned by outcome: jumped, cancelled, no_match.
	Jumps metric.Int64Counter

	// Panes captured per run and matches found per run.
	PanesCaptured metric.Int64Counter
	MatchesFound  metric.Int64Counter

	// Hint allocation: labels handed out vs matches dropped past capacity.
	HintsAssigned metric.Int64Counter
	HintsDropped  metric.Int64Counter

	// PhaseDuration records per-phase wall time, partitioned by phase
	// (snapshot, find, assign, render, select).
	PhaseDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Jumps, err = meter.Int64Counter("jumps.total",
		metric.WithDescription("Total jump runs partitioned by outcome (jumped, cancelled, no_match)"))
	if err != nil {
		return nil, err
	}

	m.PanesCaptured, err = meter.Int64Counter("panes.captured",
		metric.WithDescription("Panes captured into the snapshot"),
		metric.WithUnit("{pane}"))
	if err != nil {
		return nil, err
	}

	m.MatchesFound, err = meter.Int64Counter("matches.found",
		metric.WithDescription("Pattern occurrences found across all panes"),
		metric.WithUnit("{match}"))
	if err != nil {
		return nil, err
	}

	m.HintsAssigned, err = meter.Int64Counter("hints.assigned",
		metric.WithDescription("Hint labels assigned to matches"),
		metric.WithUnit("{hint}"))
	if err != nil {
		return nil, err
	}

	m.HintsDropped, err = meter.Int64Counter("hints.dropped",
		metric.WithDescription("Matches left unreachable because hint capacity was exceeded"),
		metric.WithUnit("{match}"))
	if err != nil {
		return nil, err
	}

	m.PhaseDuration, err = meter.Float64Histogram("phase.duration",
		metric.WithDescription("Wall time per run phase (snapshot, find, assign, render, select)"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordJump records a completed run with the given outcome.
func (m *Metrics) RecordJump(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.Jumps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("jump.outcome", outcome),
	))
}

// RecordSnapshot records the pane count of one snapshot.
func (m *Metrics) RecordSnapshot(ctx context.Context, panes int) {
	if m == nil {
		return
	}
	m.PanesCaptured.Add(ctx, int64(panes))
}

// RecordMatches records how many matches the finder produced.
func (m *Metrics) RecordMatches(ctx context.Context, matches int) {
	if m == nil {
		return
	}
	m.MatchesFound.Add(ctx, int64(matches))
}

// RecordHints records the hint allocation split.
func (m *Metrics) RecordHints(ctx context.Context, assigned, dropped int) {
	if m == nil {
		return
	}
	m.HintsAssigned.Add(ctx, int64(assigned))
	if dropped > 0 {
		m.HintsDropped.Add(ctx, int64(dropped))
	}
}

// RecordPhase records one phase's duration in seconds.
func (m *Metrics) RecordPhase(ctx context.Context, phase string, seconds float64) {
	if m == nil {
		return
	}
	m.PhaseDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("phase", phase),
	))
}
