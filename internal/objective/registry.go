package objective

import (
	"fmt"
	"sort"

	"github.com/san-kum/dualgrad/internal/descent"
	"github.com/san-kum/dualgrad/internal/metrics"
)

type Registry struct {
	functions map[string]func() descent.Objective
}

func NewRegistry() *Registry {
	r := &Registry{
		functions: make(map[string]func() descent.Objective),
	}

	r.functions["parabola"] = func() descent.Objective { return NewParabola() }
	r.functions["doublewell"] = func() descent.Objective { return NewDoubleWell() }
	r.functions["ripple"] = func() descent.Objective { return NewRipple() }
	r.functions["softplus"] = func() descent.Objective { return NewSoftplus() }
	r.functions["logbarrier"] = func() descent.Objective { return NewLogBarrier() }
	r.functions["powerbowl"] = func() descent.Objective { return NewPowerBowl() }
	r.functions["hinge"] = func() descent.Objective { return NewHinge() }

	return r
}

func (r *Registry) Get(name string) (descent.Objective, error) {
	fn, ok := r.functions[name]
	if !ok {
		return nil, fmt.Errorf("unknown function: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []descent.Metric {
	return []descent.Metric{
		metrics.NewGradNorm(),
		metrics.NewPathLength(),
		metrics.NewOscillation(),
	}
}
