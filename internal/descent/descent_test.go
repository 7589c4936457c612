package descent

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/san-kum/dualgrad/internal/dual"
)

// f(w) = w², minimum at 0.
type testObjective struct{}

func (t *testObjective) Name() string { return "test" }
func (t *testObjective) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	return x.Mul(x), nil
}

type failingObjective struct{}

func (f *failingObjective) Name() string { return "failing" }
func (f *failingObjective) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	return dual.Number[float64]{}, fmt.Errorf("no value at %f", x.Real)
}

func TestDescenderRun(t *testing.T) {
	d := New(&testObjective{})

	cfg := Config{
		LearningRate: 0.1,
		Steps:        100,
		Tolerance:    1e-8,
	}

	result, err := d.Run(context.Background(), 3.0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Converged {
		t.Error("expected convergence on a parabola")
	}

	if math.Abs(result.FinalWeight) > 1e-6 {
		t.Errorf("expected final weight ~0, got %f", result.FinalWeight)
	}

	// First step evaluates f at the initial weight: f(3) = 9, f'(3) = 6.
	if result.Losses[0] != 9 {
		t.Errorf("expected initial loss 9, got %f", result.Losses[0])
	}
	if result.Grads[0] != 6 {
		t.Errorf("expected initial gradient 6, got %f", result.Grads[0])
	}

	if result.Metrics["final_loss"] >= result.Losses[0] {
		t.Error("expected loss to decrease")
	}
}

func TestDescenderInvalidConfig(t *testing.T) {
	d := New(&testObjective{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero lr", Config{LearningRate: 0, Steps: 10}},
		{"negative lr", Config{LearningRate: -0.1, Steps: 10}},
		{"zero steps", Config{LearningRate: 0.1, Steps: 0}},
		{"negative tolerance", Config{LearningRate: 0.1, Steps: 10, Tolerance: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Run(context.Background(), 1.0, tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDescenderEvalError(t *testing.T) {
	d := New(&failingObjective{})

	result, err := d.Run(context.Background(), 1.0, Config{LearningRate: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(result.Errors))
	}
	if result.Steps != 0 {
		t.Errorf("expected 0 completed steps, got %d", result.Steps)
	}
}

func TestDescenderDiverges(t *testing.T) {
	d := New(&testObjective{})

	// lr > 1 on w² overshoots and blows up; the validity guard stops it.
	cfg := Config{LearningRate: 1.5, Steps: 10000, ValidateState: true}

	result, err := d.Run(context.Background(), 3.0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Converged {
		t.Error("expected divergence")
	}
	if len(result.Errors) == 0 && result.Steps == 10000 {
		t.Log("descent survived all steps without overflow")
	}
}

func TestDescenderCancellation(t *testing.T) {
	d := New(&testObjective{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx, 3.0, Config{LearningRate: 0.1, Steps: 100})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(step int, w, loss, grad float64) {
	t.count++
	t.sum += loss
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestDescenderMetrics(t *testing.T) {
	d := New(&testObjective{})

	metric := &testMetric{}
	d.AddMetric(metric)

	result, err := d.Run(context.Background(), 3.0, Config{LearningRate: 0.1, Steps: 20})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != result.Steps {
		t.Errorf("expected %d observations, got %d", result.Steps, metric.count)
	}
}

func TestMultistart(t *testing.T) {
	ms := NewMultistart(&testObjective{}, []float64{-3, -1, 2, 5})

	cfg := Config{LearningRate: 0.1, Steps: 200, Tolerance: 1e-10}

	results, err := ms.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("multistart failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	idx, best := Best(results)
	if idx < 0 || best == nil {
		t.Fatal("expected a best result")
	}
	if math.Abs(best.FinalWeight) > 1e-4 {
		t.Errorf("expected best final weight ~0, got %f", best.FinalWeight)
	}
}

func TestStepError(t *testing.T) {
	err := StepError{Step: 7, Weight: 1.5, Message: "test error"}
	expected := "step 7 (w=1.500000): test error"
	if err.Error() != expected {
		t.Errorf("StepError.Error() = %q, want %q", err.Error(), expected)
	}
}
