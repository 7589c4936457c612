package objective_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dualgrad/internal/descent"
	"github.com/san-kum/dualgrad/internal/dual"
	"github.com/san-kum/dualgrad/internal/objective"
)

// centralDiff approximates f'(x) numerically to cross-check the exact
// dual-propagated derivative.
func centralDiff(f descent.Objective, x float64) float64 {
	const h = 1e-6
	y1, err := f.Eval(dual.FromReal(x + h))
	Expect(err).NotTo(HaveOccurred())
	y2, err := f.Eval(dual.FromReal(x - h))
	Expect(err).NotTo(HaveOccurred())
	return (y1.Real - y2.Real) / (2 * h)
}

var _ = Describe("registered objectives", func() {
	var registry *objective.Registry

	BeforeEach(func() {
		registry = objective.NewRegistry()
	})

	// Points chosen inside every function's domain and away from the
	// hinge kink at the origin.
	samplePoints := []float64{0.5, 1.3, 2.7}

	It("lists every registered function", func() {
		Expect(registry.List()).To(ContainElements(
			"parabola", "doublewell", "ripple", "softplus", "logbarrier", "powerbowl", "hinge",
		))
	})

	It("rejects unknown names", func() {
		_, err := registry.Get("no_such_function")
		Expect(err).To(MatchError(ContainSubstring("unknown function")))
	})

	It("propagates exact derivatives through every function", func() {
		for _, name := range registry.List() {
			f, err := registry.Get(name)
			Expect(err).NotTo(HaveOccurred())

			for _, x := range samplePoints {
				y, err := f.Eval(dual.Var(x))
				Expect(err).NotTo(HaveOccurred(), "%s at %g", name, x)
				Expect(math.IsNaN(y.Tangent)).To(BeFalse(), "%s at %g", name, x)
				Expect(y.Tangent).To(BeNumerically("~", centralDiff(f, x), 1e-4),
					"%s derivative at %g", name, x)
			}
		}
	})

	It("matches closed-form derivatives for the parabola", func() {
		f, err := registry.Get("parabola")
		Expect(err).NotTo(HaveOccurred())

		y, err := f.Eval(dual.Var(3.0))
		Expect(err).NotTo(HaveOccurred())
		Expect(y.Real).To(Equal(9.0))
		Expect(y.Tangent).To(Equal(6.0))
	})

	It("fails with a domain error outside the log barrier", func() {
		f, err := registry.Get("logbarrier")
		Expect(err).NotTo(HaveOccurred())

		_, err = f.Eval(dual.Var(-1.0))
		var de *dual.DomainError
		Expect(errors.As(err, &de)).To(BeTrue())
	})

	It("descends the double well into the nearest minimum", func() {
		f, err := registry.Get("doublewell")
		Expect(err).NotTo(HaveOccurred())

		cfg := descent.Config{LearningRate: 0.1, Steps: 500, Tolerance: 1e-10}

		result, err := descent.New(f).Run(context.Background(), 2.0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Converged).To(BeTrue())
		Expect(result.FinalWeight).To(BeNumerically("~", 1.0, 1e-4))

		result, err = descent.New(f).Run(context.Background(), -2.0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.FinalWeight).To(BeNumerically("~", -1.0, 1e-4))
	})
})
