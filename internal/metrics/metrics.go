// Package metrics provides descent-quality metrics observed step by step
// during a gradient descent run.
package metrics

import "math"

// GradNorm tracks the mean absolute gradient over a run.
type GradNorm struct {
	sum     float64
	samples int
}

func NewGradNorm() *GradNorm { return &GradNorm{} }

func (g *GradNorm) Name() string { return "grad_norm" }

func (g *GradNorm) Observe(step int, w, loss, grad float64) {
	g.sum += math.Abs(grad)
	g.samples++
}

func (g *GradNorm) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return g.sum / float64(g.samples)
}

func (g *GradNorm) Reset() {
	g.sum = 0
	g.samples = 0
}

// PathLength accumulates the total distance traveled by the weight.
type PathLength struct {
	last    float64
	started bool
	total   float64
}

func NewPathLength() *PathLength { return &PathLength{} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(step int, w, loss, grad float64) {
	if p.started {
		p.total += math.Abs(w - p.last)
	}
	p.last = w
	p.started = true
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.last = 0
	p.started = false
	p.total = 0
}

// Oscillation counts gradient sign flips. A high count relative to the
// number of steps means the learning rate overshoots the minimum.
type Oscillation struct {
	lastSign int
	flips    int
}

func NewOscillation() *Oscillation { return &Oscillation{} }

func (o *Oscillation) Name() string { return "oscillation" }

func (o *Oscillation) Observe(step int, w, loss, grad float64) {
	sign := 0
	if grad > 0 {
		sign = 1
	} else if grad < 0 {
		sign = -1
	}
	if sign == 0 {
		return
	}
	if o.lastSign != 0 && sign != o.lastSign {
		o.flips++
	}
	o.lastSign = sign
}

func (o *Oscillation) Value() float64 { return float64(o.flips) }

func (o *Oscillation) Reset() {
	o.lastSign = 0
	o.flips = 0
}
