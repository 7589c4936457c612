// Package objective provides scalar objective functions for gradient
// descent, each expressed in dual-number arithmetic so that evaluation
// yields the exact derivative alongside the value.
//
// Each function implements the [descent.Objective] interface:
//
//   - [Parabola]: (x-c)², the classic convex bowl
//   - [DoubleWell]: x⁴/4 - x²/2, two minima at ±1
//   - [Ripple]: x² + a·sin(fx), convex with local wiggles
//   - [Softplus]: smooth ReLU, ln(1+e^(kx))/k
//   - [LogBarrier]: x² - μ·ln(x-wall), constrained to x > wall
//   - [PowerBowl]: (1+x²)^p - 1, curvature controlled by p
//
// Functions are registered by name in [Registry] for CLI lookup.
package objective
