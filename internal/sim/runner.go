// Package sim drives headless cluster runs: a synthetic frame clock, a
// script of external operations, metric observation, and per-frame snapshots
// for storage and plotting.
package sim

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kav-sh/orbitals/internal/orbit"
)

// RunConfig controls one headless run.
type RunConfig struct {
	// Ticks is the number of frames to simulate.
	Ticks int
	// TickMs is the synthetic frame period. It advances the swap clock;
	// the force integration itself is per-tick, not time-scaled.
	TickMs float64
	// SampleEvery keeps one snapshot per that many ticks (1 = all).
	SampleEvery int
	// ValidateState aborts the run when any body goes NaN/Inf.
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Ticks:         3600,
		TickMs:        1000.0 / 60,
		SampleEvery:   6,
		ValidateState: true,
	}
}

// SimError marks where in a run something went wrong.
type SimError struct {
	Tick    int
	TimeMs  float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.0fms): %s", e.Tick, e.TimeMs, e.Message)
}

// Metric observes the cluster each tick and reduces to a single value at
// the end of a run.
type Metric interface {
	Name() string
	Observe(c *orbit.Cluster, tick int, nowMs float64)
	Value() float64
	Reset()
}

// Observer is a per-tick hook without a reduced value (plot collectors,
// telemetry sinks).
type Observer interface {
	OnTick(c *orbit.Cluster, tick int, nowMs float64)
}

// BodySample is one body's state captured in a snapshot, the read surface
// the presentation layer consumes.
type BodySample struct {
	ID       int64
	Name     string
	Sun      bool
	Swapping bool
	Position r3.Vec
}

type Snapshot struct {
	Tick   int
	TimeMs float64
	Bodies []BodySample
}

type Result struct {
	Snapshots []Snapshot
	Metrics   map[string]float64
	TicksRun  int
	Errors    []error
}

// Runner owns one cluster for the duration of a run.
type Runner struct {
	cluster   *orbit.Cluster
	schedule  Schedule
	metrics   []Metric
	observers []Observer
}

func New(c *orbit.Cluster) *Runner {
	return &Runner{cluster: c}
}

func (r *Runner) Cluster() *orbit.Cluster { return r.cluster }

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Schedule queues external operations to fire at given ticks, modeling the
// input side of the UI boundary (handoffs, additions, edits).
func (r *Runner) Schedule(ops ...Op) { r.schedule = append(r.schedule, ops...) }

// Run executes the configured number of ticks. Scheduled operations apply
// before the tick they name; metrics and observers see the pre-tick state,
// matching how a render loop reads the previous frame.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Snapshots: make([]Snapshot, 0, cfg.Ticks/cfg.SampleEvery+1),
		Metrics:   make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	nowMs := 0.0
	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		r.schedule.applyAt(r.cluster, tick, nowMs)

		for _, m := range r.metrics {
			m.Observe(r.cluster, tick, nowMs)
		}
		for _, o := range r.observers {
			o.OnTick(r.cluster, tick, nowMs)
		}
		if tick%cfg.SampleEvery == 0 {
			result.Snapshots = append(result.Snapshots, snapshot(r.cluster, tick, nowMs))
		}

		r.cluster.Tick(nowMs, cfg.TickMs)
		nowMs += cfg.TickMs
		result.TicksRun++

		if cfg.ValidateState && !r.cluster.Valid() {
			result.Errors = append(result.Errors, SimError{Tick: tick, TimeMs: nowMs, Message: "invalid state (NaN/Inf)"})
			break
		}
	}

	result.Snapshots = append(result.Snapshots, snapshot(r.cluster, result.TicksRun, nowMs))
	r.finish(result)
	return result, nil
}

// RunWithCallback steps the cluster, invoking cb after every tick; a false
// return stops the run. Used by the live view.
func (r *Runner) RunWithCallback(ctx context.Context, cfg RunConfig, cb func(tick int, nowMs float64) bool) error {
	if err := validateRunConfig(cfg); err != nil {
		return err
	}

	nowMs := 0.0
	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.schedule.applyAt(r.cluster, tick, nowMs)
		r.cluster.Tick(nowMs, cfg.TickMs)
		nowMs += cfg.TickMs

		if cfg.ValidateState && !r.cluster.Valid() {
			return SimError{Tick: tick, TimeMs: nowMs, Message: "invalid state (NaN/Inf)"}
		}
		if !cb(tick, nowMs) {
			return nil
		}
	}
	return nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func snapshot(c *orbit.Cluster, tick int, nowMs float64) Snapshot {
	s := Snapshot{Tick: tick, TimeMs: nowMs, Bodies: make([]BodySample, 0, c.Len())}
	for _, b := range c.Bodies() {
		s.Bodies = append(s.Bodies, BodySample{
			ID:       b.ID,
			Name:     b.Name,
			Sun:      b.Role == orbit.RoleSun,
			Swapping: b.Swapping(),
			Position: b.Pos,
		})
	}
	return s
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.TickMs <= 0 {
		return fmt.Errorf("tick period must be positive, got %f", cfg.TickMs)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("sample interval must be positive, got %d", cfg.SampleEvery)
	}
	return nil
}
