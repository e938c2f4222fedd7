package expect_test

import (
	"fmt"

	"github.com/statforge/epred/draws"
	"github.com/statforge/epred/expect"
)

// ExampleExpected computes the expected success count of a binomial
// model with three posterior draws of the success probability.
func ExampleExpected() {
	mu, _ := draws.NewConstParam([]float64{0.2, 0.4, 0.6}, draws.Identity)
	b := &draws.Bundle{
		Family:   draws.Binomial,
		NSamples: 3,
		NObs:     1,
		DPars:    map[string]*draws.Param{"mu": mu},
		Data:     draws.Data{Trials: []float64{10}},
	}

	res, _ := expect.Expected(b)
	for s := 0; s < 3; s++ {
		v, _ := res.Values.At(s, 0)
		fmt.Println(v)
	}
	// Output:
	// 2
	// 4
	// 6
}

// ExampleExpected_summary reduces the draws axis to reporting
// statistics.
func ExampleExpected_summary() {
	mu, _ := draws.NewConstParam([]float64{1, 2, 3, 4}, draws.Identity)
	sigma, _ := draws.NewConstParam([]float64{0, 0, 0, 0}, draws.Log)
	b := &draws.Bundle{
		Family:   draws.Gaussian,
		NSamples: 4,
		NObs:     1,
		DPars:    map[string]*draws.Param{"mu": mu, "sigma": sigma},
	}

	res, _ := expect.Expected(b, expect.WithSummary())
	est, _ := res.Values.At(0, 0)
	fmt.Println(res.SummaryLabels[0], est)
	// Output:
	// Estimate 2.5
}
