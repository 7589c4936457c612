package descent

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/dualgrad/internal/dual"
)

// Descender runs gradient descent on a scalar objective. Gradients come
// from a single forward evaluation on dual numbers each step; there is no
// finite differencing anywhere.
type Descender struct {
	obj       Objective
	metrics   []Metric
	observers []Observer
}

func New(obj Objective) *Descender {
	return &Descender{
		obj:       obj,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (d *Descender) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Descender) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Descender) Objective() Objective { return d.obj }

func (d *Descender) Run(ctx context.Context, w0 float64, cfg Config) (*Result, error) {
	if err := d.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Weights: make([]float64, 0, cfg.Steps),
		Losses:  make([]float64, 0, cfg.Steps),
		Grads:   make([]float64, 0, cfg.Steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	w := w0

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.FinalWeight = w
			return result, ctx.Err()
		default:
		}

		y, err := d.obj.Eval(dual.Var(w))
		if err != nil {
			result.Errors = append(result.Errors, StepError{Step: i, Weight: w, Message: err.Error()})
			break
		}

		loss, grad := y.Real, y.Tangent

		if cfg.ValidateState && !y.IsValid() {
			result.Errors = append(result.Errors, StepError{Step: i, Weight: w, Message: "invalid loss (NaN/Inf)"})
			break
		}

		result.Weights = append(result.Weights, w)
		result.Losses = append(result.Losses, loss)
		result.Grads = append(result.Grads, grad)
		result.Steps++

		for _, m := range d.metrics {
			m.Observe(i, w, loss, grad)
		}
		for _, obs := range d.observers {
			obs.OnStep(i, w, loss, grad)
		}

		if cfg.Tolerance > 0 && math.Abs(grad) <= cfg.Tolerance {
			result.Converged = true
			break
		}

		w -= cfg.LearningRate * grad
	}

	result.FinalWeight = w

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	if len(result.Losses) > 0 {
		result.Metrics["final_loss"] = result.Losses[len(result.Losses)-1]
	}

	return result, nil
}

func (d *Descender) validateConfig(cfg Config) error {
	if cfg.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %f", cfg.LearningRate)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %f", cfg.Tolerance)
	}
	return nil
}
