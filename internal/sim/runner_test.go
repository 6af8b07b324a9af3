package sim

import (
	"context"
	"math/rand"
	"testing"

	"github.com/kav-sh/orbitals/internal/orbit"
)

func pairCluster(t *testing.T) *orbit.Cluster {
	t.Helper()
	traits := []float64{50, 50, 50}
	descs := []orbit.Descriptor{
		{Name: "sol", Sun: true, Attributes: traits, Preferences: traits},
		{Name: "vega", Position: [3]float64{2, 0, 0}, Attributes: traits, Preferences: traits},
	}
	c, err := orbit.NewCluster(nil, 3, descs, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewCluster: %v", err)
	}
	return c
}

func TestRunnerRun(t *testing.T) {
	r := New(pairCluster(t))
	cfg := RunConfig{Ticks: 100, TickMs: 20, SampleEvery: 10, ValidateState: true}

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.TicksRun != 100 {
		t.Errorf("ticks run = %d, want 100", result.TicksRun)
	}
	// One sample per interval plus the final state.
	if len(result.Snapshots) != 11 {
		t.Errorf("snapshots = %d, want 11", len(result.Snapshots))
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}

	final := result.Snapshots[len(result.Snapshots)-1]
	if len(final.Bodies) != 2 {
		t.Fatalf("final snapshot bodies = %d, want 2", len(final.Bodies))
	}
	if !final.Bodies[0].Sun {
		t.Errorf("sun flag lost in snapshot")
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New(pairCluster(t))

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero ticks", RunConfig{Ticks: 0, TickMs: 20, SampleEvery: 1}},
		{"negative tick period", RunConfig{Ticks: 10, TickMs: -1, SampleEvery: 1}},
		{"zero sample interval", RunConfig{Ticks: 10, TickMs: 20, SampleEvery: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerContextCancel(t *testing.T) {
	r := New(pairCluster(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, RunConfig{Ticks: 1000, TickMs: 20, SampleEvery: 1})
	if err == nil {
		t.Fatal("expected context error")
	}
	if result.TicksRun != 0 {
		t.Errorf("ticks run after cancel = %d", result.TicksRun)
	}
}

func TestRunnerSchedule(t *testing.T) {
	c := pairCluster(t)
	r := New(c)

	r.Schedule(
		Op{Tick: 5, Kind: OpSetSun, BodyID: 2},
		Op{Tick: 10, Kind: OpAddBody, Descriptor: &orbit.Descriptor{Name: "nova", Position: [3]float64{0, 3, 0}}},
		Op{Tick: 20, Kind: OpRemoveBody, BodyID: 1},
		Op{Tick: 30, Kind: OpSetAttribute, BodyID: 2, Index: 0, Value: 10},
	)

	result, err := r.Run(context.Background(), RunConfig{Ticks: 40, TickMs: 20, SampleEvery: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if sun := c.Sun(); sun == nil || sun.ID != 2 {
		t.Errorf("scheduled handoff not applied")
	}
	if c.Len() != 2 {
		t.Errorf("len = %d after scheduled add+remove, want 2", c.Len())
	}
	// Body 1 had been demoted at tick 5, so the removal at tick 20 was
	// allowed to take it.
	if c.Find(1) != nil {
		t.Errorf("scheduled removal not applied")
	}

	// The snapshot taken at the handoff tick already shows the flipped
	// role while positions have not visually swapped yet.
	snap := result.Snapshots[5]
	for _, b := range snap.Bodies {
		if b.ID == 2 {
			if !b.Sun || !b.Swapping {
				t.Errorf("snapshot at handoff tick: sun=%v swapping=%v", b.Sun, b.Swapping)
			}
			if b.Position.X != 2 {
				t.Errorf("position jumped at handoff: %+v", b.Position)
			}
		}
	}
}

type countingMetric struct {
	observed int
}

func (m *countingMetric) Name() string { return "ticks_observed" }

func (m *countingMetric) Observe(c *orbit.Cluster, tick int, nowMs float64) { m.observed++ }

func (m *countingMetric) Value() float64 { return float64(m.observed) }

func (m *countingMetric) Reset() { m.observed = 0 }

func TestRunnerMetrics(t *testing.T) {
	r := New(pairCluster(t))
	m := &countingMetric{observed: 99} // Reset must clear stale state
	r.AddMetric(m)

	result, err := r.Run(context.Background(), RunConfig{Ticks: 50, TickMs: 20, SampleEvery: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := result.Metrics["ticks_observed"]; got != 50 {
		t.Errorf("metric = %v, want 50", got)
	}
}

func TestRunWithCallback(t *testing.T) {
	r := New(pairCluster(t))

	calls := 0
	err := r.RunWithCallback(context.Background(), RunConfig{Ticks: 100, TickMs: 20, SampleEvery: 1}, func(tick int, nowMs float64) bool {
		calls++
		return calls < 7
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 7 {
		t.Errorf("callback calls = %d, want 7 (stopped early)", calls)
	}
}
