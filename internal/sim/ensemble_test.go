package sim

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/kav-sh/orbitals/internal/orbit"
)

func TestEnsembleRun(t *testing.T) {
	factory := func(seed int64) (*Runner, error) {
		rng := rand.New(rand.NewSource(seed))
		descs := []orbit.Descriptor{{Name: "sol", Sun: true}}
		for i := 0; i < 3; i++ {
			descs = append(descs, orbit.RandomDescriptor(rng, 3))
		}
		cluster, err := orbit.NewCluster(nil, 3, descs, rng)
		if err != nil {
			return nil, err
		}
		return New(cluster), nil
	}

	cfg := DefaultRunConfig()
	cfg.Ticks = 40
	cfg.SampleEvery = 10

	results, err := NewEnsemble(factory, 4, 100).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, res := range results {
		if res.TicksRun != 40 {
			t.Errorf("member %d ran %d ticks, want 40", i, res.TicksRun)
		}
	}

	// distinct seeds should randomize distinct starting rosters
	a := results[0].Snapshots[0].Bodies
	b := results[1].Snapshots[0].Bodies
	same := len(a) == len(b)
	if same {
		for i := range a {
			if a[i].Position != b[i].Position {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("seeds 100 and 101 produced identical starting positions")
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	factory := func(seed int64) (*Runner, error) {
		return nil, fmt.Errorf("no cluster for seed %d", seed)
	}
	cfg := DefaultRunConfig()
	cfg.Ticks = 5
	if _, err := NewEnsemble(factory, 2, 0).Run(context.Background(), cfg); err == nil {
		t.Fatal("expected factory error to surface")
	}
}
