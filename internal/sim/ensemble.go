package sim

import (
	"context"
	"sync"
)

// ClusterFactory builds a fresh cluster for a given seed. Each ensemble
// member gets its own cluster; nothing is shared across goroutines.
type ClusterFactory func(seed int64) (*Runner, error)

// Ensemble runs the same scenario across consecutive seeds concurrently,
// for sensitivity checks on the starting randomization.
type Ensemble struct {
	factory   ClusterFactory
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory ClusterFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			runner, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
