package descent

import (
	"context"
	"math"
	"sync"
)

// Multistart runs independent descents from several initial weights
// concurrently. Objectives are pure, so the runs share nothing and need
// no locking.
type Multistart struct {
	obj   Objective
	inits []float64
}

func NewMultistart(obj Objective, inits []float64) *Multistart {
	return &Multistart{obj: obj, inits: inits}
}

func (m *Multistart) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(m.inits))
	errs := make([]error, len(m.inits))

	var wg sync.WaitGroup
	for i, w0 := range m.inits {
		wg.Add(1)
		go func(idx int, w0 float64) {
			defer wg.Done()
			results[idx], errs[idx] = New(m.obj).Run(ctx, w0, cfg)
		}(i, w0)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Best returns the index and result with the lowest final loss. Runs that
// recorded no losses are skipped; the index is -1 when every run is empty.
func Best(results []*Result) (int, *Result) {
	best := math.Inf(1)
	bestIdx := -1

	for i, r := range results {
		if len(r.Losses) == 0 {
			continue
		}
		if final := r.Losses[len(r.Losses)-1]; final < best {
			best = final
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return -1, nil
	}
	return bestIdx, results[bestIdx]
}
