// Package descent runs scalar gradient descent driven by forward-mode
// automatic differentiation.
//
// An [Objective] is evaluated on dual numbers, so each step costs one
// function evaluation and yields the exact gradient with it:
//
//	d := descent.New(obj)
//	result, err := d.Run(ctx, 3.0, descent.DefaultConfig())
//
// [Metric] and [Observer] implementations hook into every step;
// [Multistart] runs several descents concurrently.
package descent
