package dual

import (
	"fmt"
	"math"
)

// Float is the set of precisions a Number can carry.
type Float interface {
	~float32 | ~float64
}

// Number is an immutable dual number Real + Tangent·ε with ε² = 0.
type Number[T Float] struct {
	Real    T
	Tangent T
}

// New constructs a dual number from its two components.
func New[T Float](real, tangent T) Number[T] {
	return Number[T]{Real: real, Tangent: tangent}
}

// FromReal promotes a plain real number r to r + 0ε. Promotion is total
// and symmetric: r op x and x op r both go through FromReal(r).
func FromReal[T Float](r T) Number[T] {
	return Number[T]{Real: r}
}

// Var seeds a differentiation variable: a + 1ε. Evaluating f at Var(a)
// yields f(a) in the real part and f'(a) in the tangent part.
func Var[T Float](a T) Number[T] {
	return Number[T]{Real: a, Tangent: 1}
}

func (x Number[T]) Add(y Number[T]) Number[T] {
	return Number[T]{Real: x.Real + y.Real, Tangent: x.Tangent + y.Tangent}
}

func (x Number[T]) Sub(y Number[T]) Number[T] {
	return Number[T]{Real: x.Real - y.Real, Tangent: x.Tangent - y.Tangent}
}

func (x Number[T]) Mul(y Number[T]) Number[T] {
	return Number[T]{
		Real:    x.Real * y.Real,
		Tangent: x.Real*y.Tangent + x.Tangent*y.Real,
	}
}

// Div returns x/y. It fails with ErrDivisionByZero when the real part of
// the divisor is exactly zero.
func (x Number[T]) Div(y Number[T]) (Number[T], error) {
	if y.Real == 0 {
		return Number[T]{}, ErrDivisionByZero
	}
	return Number[T]{
		Real:    x.Real / y.Real,
		Tangent: (x.Tangent*y.Real - x.Real*y.Tangent) / (y.Real * y.Real),
	}, nil
}

// Neg returns -x.
func (x Number[T]) Neg() Number[T] {
	return Number[T]{Real: -x.Real, Tangent: -x.Tangent}
}

// AddReal returns x + r.
func (x Number[T]) AddReal(r T) Number[T] {
	return x.Add(FromReal(r))
}

// SubReal returns x - r.
func (x Number[T]) SubReal(r T) Number[T] {
	return x.Sub(FromReal(r))
}

// MulReal returns x * r.
func (x Number[T]) MulReal(r T) Number[T] {
	return x.Mul(FromReal(r))
}

// DivReal returns x / r.
func (x Number[T]) DivReal(r T) (Number[T], error) {
	return x.Div(FromReal(r))
}

// RealSub returns r - x, the reversed subtraction.
func RealSub[T Float](r T, x Number[T]) Number[T] {
	return FromReal(r).Sub(x)
}

// RealDiv returns r / x, the reversed division.
func RealDiv[T Float](r T, x Number[T]) (Number[T], error) {
	return FromReal(r).Div(x)
}

// Abs returns the absolute value of the real part with a zero tangent.
func (x Number[T]) Abs() Number[T] {
	if x.Real < 0 {
		return Number[T]{Real: -x.Real}
	}
	return Number[T]{Real: x.Real}
}

// Conj returns the conjugate Real - Tangent·ε.
func (x Number[T]) Conj() Number[T] {
	return Number[T]{Real: x.Real, Tangent: -x.Tangent}
}

// Equal reports whether both components are equal. This is stricter than
// the comparison operators below, which look at the real part only.
func (x Number[T]) Equal(y Number[T]) bool {
	return x.Real == y.Real && x.Tangent == y.Tangent
}

// The ordering methods compare real parts only. The dual algebra has no
// total order, so the tangent is deliberately not a factor.

func (x Number[T]) Less(y Number[T]) bool      { return x.Real < y.Real }
func (x Number[T]) LessEq(y Number[T]) bool    { return x.Real <= y.Real }
func (x Number[T]) Greater(y Number[T]) bool   { return x.Real > y.Real }
func (x Number[T]) GreaterEq(y Number[T]) bool { return x.Real >= y.Real }

// IsValid reports whether both components are finite.
func (x Number[T]) IsValid() bool {
	for _, v := range [2]float64{float64(x.Real), float64(x.Tangent)} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (x Number[T]) String() string {
	return fmt.Sprintf("(%g, %g)", float64(x.Real), float64(x.Tangent))
}

// Derivative evaluates f at Var(at) and returns the value and the exact
// first derivative of f at that point.
func Derivative[T Float](f func(Number[T]) Number[T], at T) (value, deriv T) {
	y := f(Var(at))
	return y.Real, y.Tangent
}
