// Package dual implements dual-number arithmetic for forward-mode
// automatic differentiation of scalar functions.
//
// A dual number a + bε pairs a real part with a tangent part, where
// ε² = 0. Evaluating a function at [Var](a) propagates both the value
// and the exact first derivative through every operation:
//
//	x := dual.Var(3.0)        // 3 + 1ε
//	y := x.Mul(x)             // 9 + 6ε
//	y.Real                    // f(3)  = 9
//	y.Tangent                 // f'(3) = 6
//
// Available operations:
//
//   - [Number.Add], [Number.Sub], [Number.Mul], [Number.Div], [Number.Neg]
//   - [Number.Sin], [Number.Cos], [Number.Tanh], [Number.Exp], [Number.Log]
//   - [Number.Relu], [Number.Pow], [Number.PowReal], [RealPow]
//
// Values are immutable; every operation returns a new Number. The type is
// generic over float32 and float64, chosen once at instantiation. There is
// no locking anywhere: dual numbers are plain values and can be shared by
// any number of goroutines.
//
// The truncation ε² = 0 is structural. No operation produces a second-order
// term, so derivatives are exact, not finite-difference approximations.
package dual
