package metrics

import (
	"math"
	"testing"
)

func TestGradNorm(t *testing.T) {
	m := NewGradNorm()

	m.Observe(0, 3.0, 9.0, 6.0)
	m.Observe(1, 2.4, 5.76, -4.8)

	expected := (6.0 + 4.8) / 2
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected grad norm %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestPathLength(t *testing.T) {
	m := NewPathLength()

	m.Observe(0, 3.0, 0, 0)
	if m.Value() != 0 {
		t.Errorf("expected 0 after first observation, got %f", m.Value())
	}

	m.Observe(1, 2.0, 0, 0)
	m.Observe(2, 2.5, 0, 0)

	if m.Value() != 1.5 {
		t.Errorf("expected path length 1.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestOscillation(t *testing.T) {
	m := NewOscillation()

	m.Observe(0, 0, 0, 6.0)
	m.Observe(1, 0, 0, -4.0)
	m.Observe(2, 0, 0, 3.0)
	m.Observe(3, 0, 0, 2.0)

	if m.Value() != 2 {
		t.Errorf("expected 2 sign flips, got %f", m.Value())
	}

	// Zero gradients neither flip nor reset the sign.
	m.Observe(4, 0, 0, 0.0)
	m.Observe(5, 0, 0, 1.0)
	if m.Value() != 2 {
		t.Errorf("expected 2 sign flips after zero gradient, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}
