package objective

import (
	"github.com/san-kum/dualgrad/internal/dual"
)

// Parabola is Scale·(x-Center)².
type Parabola struct {
	Center float64
	Scale  float64
}

func NewParabola() *Parabola {
	return &Parabola{Center: 0, Scale: 1}
}

func (p *Parabola) Name() string { return "parabola" }

func (p *Parabola) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	d := x.SubReal(p.Center)
	return d.Mul(d).MulReal(p.Scale), nil
}

// DoubleWell is x⁴/4 - x²/2, with minima at x = ±1 and a local maximum
// at the origin.
type DoubleWell struct{}

func NewDoubleWell() *DoubleWell { return &DoubleWell{} }

func (d *DoubleWell) Name() string { return "doublewell" }

func (d *DoubleWell) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	x2 := x.Mul(x)
	return x2.Mul(x2).MulReal(0.25).Sub(x2.MulReal(0.5)), nil
}

// Ripple is x² + Amp·sin(Freq·x), a bowl with superimposed oscillation.
type Ripple struct {
	Freq float64
	Amp  float64
}

func NewRipple() *Ripple {
	return &Ripple{Freq: 3, Amp: 0.5}
}

func (r *Ripple) Name() string { return "ripple" }

func (r *Ripple) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	return x.Mul(x).Add(x.MulReal(r.Freq).Sin().MulReal(r.Amp)), nil
}

// Softplus is ln(1+e^(kx))/k, a smooth approximation of ReLU that
// exercises Exp, Log and Div together.
type Softplus struct {
	Sharpness float64
}

func NewSoftplus() *Softplus {
	return &Softplus{Sharpness: 1}
}

func (s *Softplus) Name() string { return "softplus" }

func (s *Softplus) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	l, err := x.MulReal(s.Sharpness).Exp().AddReal(1).Log()
	if err != nil {
		return dual.Number[float64]{}, err
	}
	return l.DivReal(s.Sharpness)
}

// LogBarrier is x² - Mu·ln(x-Wall), defined only for x > Wall. Outside
// the domain Eval fails with the dual package's DomainError, which the
// descent engine records.
type LogBarrier struct {
	Wall float64
	Mu   float64
}

func NewLogBarrier() *LogBarrier {
	return &LogBarrier{Wall: 0, Mu: 1}
}

func (b *LogBarrier) Name() string { return "logbarrier" }

func (b *LogBarrier) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	l, err := x.SubReal(b.Wall).Log()
	if err != nil {
		return dual.Number[float64]{}, err
	}
	return x.Mul(x).Sub(l.MulReal(b.Mu)), nil
}

// PowerBowl is (1+x²)^Exponent - 1, flat near the origin for small
// exponents and steep for large ones.
type PowerBowl struct {
	Exponent float64
}

func NewPowerBowl() *PowerBowl {
	return &PowerBowl{Exponent: 1.5}
}

func (p *PowerBowl) Name() string { return "powerbowl" }

func (p *PowerBowl) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	return x.Mul(x).AddReal(1).PowReal(p.Exponent).SubReal(1), nil
}

// Hinge is relu(x)² + relu(-x), piecewise with a kink at the origin.
type Hinge struct{}

func NewHinge() *Hinge { return &Hinge{} }

func (h *Hinge) Name() string { return "hinge" }

func (h *Hinge) Eval(x dual.Number[float64]) (dual.Number[float64], error) {
	r := x.Relu()
	return r.Mul(r).Add(x.Neg().Relu()), nil
}
