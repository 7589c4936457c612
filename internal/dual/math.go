package dual

import "math"

// Sin returns sin(a) + cos(a)·b·ε.
func (x Number[T]) Sin() Number[T] {
	a := float64(x.Real)
	return Number[T]{
		Real:    T(math.Sin(a)),
		Tangent: T(math.Cos(a)) * x.Tangent,
	}
}

// Cos returns cos(a) - sin(a)·b·ε.
func (x Number[T]) Cos() Number[T] {
	a := float64(x.Real)
	return Number[T]{
		Real:    T(math.Cos(a)),
		Tangent: -T(math.Sin(a)) * x.Tangent,
	}
}

// Tanh returns tanh(a) + (1 - tanh²(a))·b·ε.
func (x Number[T]) Tanh() Number[T] {
	t := T(math.Tanh(float64(x.Real)))
	return Number[T]{
		Real:    t,
		Tangent: (1 - t*t) * x.Tangent,
	}
}

// Exp returns e^a + e^a·b·ε.
func (x Number[T]) Exp() Number[T] {
	e := T(math.Exp(float64(x.Real)))
	return Number[T]{
		Real:    e,
		Tangent: e * x.Tangent,
	}
}

// Log returns ln(a) + (b/a)·ε. It fails with a DomainError when the real
// part is not strictly positive.
func (x Number[T]) Log() (Number[T], error) {
	if x.Real <= 0 {
		return Number[T]{}, &DomainError{Op: "log", Arg: float64(x.Real)}
	}
	return Number[T]{
		Real:    T(math.Log(float64(x.Real))),
		Tangent: x.Tangent / x.Real,
	}, nil
}

// Relu returns x unchanged when the real part is positive, and 0 + 0ε
// otherwise. The non-differentiable point a = 0 takes the zero branch,
// the usual ReLU convention.
func (x Number[T]) Relu() Number[T] {
	if x.Real > 0 {
		return x
	}
	return Number[T]{}
}

// Pow returns x^y for dual exponents:
//
//	(a+bε)^(c+dε) = a^c + a^c·((b/a)·c + ln(a)·d)·ε
//
// When the exponent carries no tangent the computation reduces to PowReal,
// which permits negative bases under the usual real power rules. Otherwise
// ln(a) is required and Pow fails with a DomainError for a ≤ 0.
func (x Number[T]) Pow(y Number[T]) (Number[T], error) {
	if y.Tangent == 0 {
		return x.PowReal(y.Real), nil
	}
	if x.Real <= 0 {
		return Number[T]{}, &DomainError{Op: "pow", Arg: float64(x.Real)}
	}
	a, b := float64(x.Real), float64(x.Tangent)
	c, d := float64(y.Real), float64(y.Tangent)
	v := math.Pow(a, c)
	return Number[T]{
		Real:    T(v),
		Tangent: T(v * (b/a*c + math.Log(a)*d)),
	}, nil
}

// PowReal returns x^c for a plain real exponent:
//
//	(a+bε)^c = a^c + a^(c-1)·b·c·ε
//
// Negative bases follow math.Pow, which yields NaN for non-integer
// exponents rather than an error.
func (x Number[T]) PowReal(c T) Number[T] {
	a, b := float64(x.Real), float64(x.Tangent)
	return Number[T]{
		Real:    T(math.Pow(a, float64(c))),
		Tangent: T(math.Pow(a, float64(c)-1) * b * float64(c)),
	}
}

// RealPow returns a^y for a plain real base and a dual exponent:
//
//	a^(c+dε) = a^c + a^c·ln(a)·d·ε
//
// When the exponent carries no tangent the result is a^c + 0ε under
// math.Pow semantics. Otherwise RealPow fails with a DomainError for
// a ≤ 0, since ln(a) is undefined there.
func RealPow[T Float](a T, y Number[T]) (Number[T], error) {
	if y.Tangent == 0 {
		return Number[T]{Real: T(math.Pow(float64(a), float64(y.Real)))}, nil
	}
	if a <= 0 {
		return Number[T]{}, &DomainError{Op: "pow", Arg: float64(a)}
	}
	v := math.Pow(float64(a), float64(y.Real))
	return Number[T]{
		Real:    T(v),
		Tangent: T(v * math.Log(float64(a)) * float64(y.Tangent)),
	}, nil
}
