package store

import (
	"testing"

	"github.com/san-kum/dualgrad/internal/descent"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &descent.Result{
		Weights:     []float64{3.0, 2.4},
		Losses:      []float64{9.0, 5.76},
		Grads:       []float64{6.0, 4.8},
		Metrics:     map[string]float64{"grad_norm": 5.4},
		FinalWeight: 1.92,
		Steps:       2,
		Converged:   false,
	}

	cfg := descent.Config{LearningRate: 0.1, Steps: 2, Seed: 42}

	runID, err := st.Save("parabola", cfg, 3.0, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Function != "parabola" {
		t.Errorf("expected function parabola, got %s", meta.Function)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Init != 3.0 {
		t.Errorf("expected init 3.0, got %f", meta.Init)
	}
	if meta.Metrics["grad_norm"] != 5.4 {
		t.Errorf("expected grad_norm 5.4, got %f", meta.Metrics["grad_norm"])
	}

	weights, losses, grads, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}

	if len(weights) != 2 || len(losses) != 2 || len(grads) != 2 {
		t.Fatalf("expected 2 trace rows, got %d/%d/%d", len(weights), len(losses), len(grads))
	}
	if weights[0] != 3.0 {
		t.Errorf("expected first weight 3.0, got %f", weights[0])
	}
	if losses[1] != 5.76 {
		t.Errorf("expected second loss 5.76, got %f", losses[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d runs", len(runs))
	}

	result := &descent.Result{
		Weights: []float64{1.0},
		Losses:  []float64{1.0},
		Grads:   []float64{2.0},
		Metrics: map[string]float64{},
		Steps:   1,
	}

	if _, err := st.Save("ripple", descent.Config{LearningRate: 0.1}, 1.0, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Function != "ripple" {
		t.Errorf("expected function ripple, got %s", runs[0].Function)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, _, _, err := st.LoadTrace("no_such_run"); err == nil {
		t.Error("expected error for missing trace")
	}
}
