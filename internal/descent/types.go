package descent

import (
	"fmt"

	"github.com/san-kum/dualgrad/internal/dual"
)

// Objective is a scalar function evaluated on dual numbers so that each
// call yields both the loss and its exact first derivative.
type Objective interface {
	Name() string
	Eval(x dual.Number[float64]) (dual.Number[float64], error)
}

type Metric interface {
	Name() string
	Observe(step int, w, loss, grad float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, w, loss, grad float64)
}

type Config struct {
	LearningRate  float64
	Steps         int
	Tolerance     float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		LearningRate:  0.1,
		Steps:         100,
		Tolerance:     1e-8,
		ValidateState: true,
	}
}

type Result struct {
	Weights     []float64
	Losses      []float64
	Grads       []float64
	Metrics     map[string]float64
	FinalWeight float64
	Steps       int
	Converged   bool
	Errors      []error
}

type StepError struct {
	Step    int
	Weight  float64
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (w=%.6f): %s", e.Step, e.Weight, e.Message)
}
