package objective

import (
	"fmt"

	"github.com/san-kum/dualgrad/internal/descent"
	"github.com/san-kum/dualgrad/internal/dual"
)

// Sample evaluates f on n evenly spaced points across [min, max] and
// returns the points with the function values and derivatives at each.
// A single dual-number evaluation per point produces both columns.
func Sample(f descent.Objective, min, max float64, n int) (xs, values, derivs []float64, err error) {
	if n < 2 {
		return nil, nil, nil, fmt.Errorf("need at least 2 sample points, got %d", n)
	}
	if max <= min {
		return nil, nil, nil, fmt.Errorf("invalid interval [%g, %g]", min, max)
	}

	xs = make([]float64, n)
	values = make([]float64, n)
	derivs = make([]float64, n)

	step := (max - min) / float64(n-1)
	for i := 0; i < n; i++ {
		x := min + float64(i)*step
		y, err := f.Eval(dual.Var(x))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sampling %s at %g: %w", f.Name(), x, err)
		}
		xs[i] = x
		values[i] = y.Real
		derivs[i] = y.Tangent
	}

	return xs, values, derivs, nil
}
