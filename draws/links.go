// Package draws: inverse link functions.
// Distributional parameters are stored on the linear scale; the inverse
// link maps a linear predictor onto the parameter's natural scale. The
// engine applies inverses on demand and never needs the forward maps.
package draws

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Link identifies the link function attached to one distributional
// parameter.
//
//   - Identity — μ = η
//   - Log      — μ = exp(η), positive parameters (rates, scales)
//   - Logit    — μ = 1/(1+exp(−η)), probabilities
//   - Probit   — μ = Φ(η), probabilities via the standard normal CDF
//   - CLogLog  — μ = 1−exp(−exp(η))
//   - Cauchit  — μ = 1/2 + atan(η)/π
//   - Inverse  — μ = 1/η
//   - Sqrt     — μ = η²
//   - Softplus — μ = log(1+exp(η)), a smooth positivity map
//   - TanHalf  — μ = 2·atan(η), circular responses on (−π, π)
type Link uint8

const (
	// Identity link: the parameter is its linear predictor.
	Identity Link = iota

	// Log link for strictly positive parameters.
	Log

	// Logit link for probability parameters.
	Logit

	// Probit link for probability parameters.
	Probit

	// CLogLog is the complementary log-log link.
	CLogLog

	// Cauchit is the Cauchy-CDF link.
	Cauchit

	// Inverse is the reciprocal link.
	Inverse

	// Sqrt link: the linear predictor is the square root of the
	// parameter.
	Sqrt

	// Softplus is a numerically gentle alternative to Log.
	Softplus

	// TanHalf is the half-tangent link used for circular locations.
	TanHalf
)

// stdNormal backs the probit inverse.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Inv applies the inverse link to one linear-scale value.
// Complexity: O(1); pure.
func (l Link) Inv(x float64) float64 {
	switch l {
	case Log:
		return math.Exp(x)
	case Logit:
		return 1 / (1 + math.Exp(-x))
	case Probit:
		return stdNormal.CDF(x)
	case CLogLog:
		return 1 - math.Exp(-math.Exp(x))
	case Cauchit:
		return 0.5 + math.Atan(x)/math.Pi
	case Inverse:
		return 1 / x
	case Sqrt:
		return x * x
	case Softplus:
		// log1p(exp(x)) overflows for large x; the limit is x itself.
		if x > 35 {
			return x
		}
		return math.Log1p(math.Exp(x))
	case TanHalf:
		return 2 * math.Atan(x)
	default:
		return x
	}
}

// String implements fmt.Stringer.
func (l Link) String() string {
	switch l {
	case Identity:
		return "identity"
	case Log:
		return "log"
	case Logit:
		return "logit"
	case Probit:
		return "probit"
	case CLogLog:
		return "cloglog"
	case Cauchit:
		return "cauchit"
	case Inverse:
		return "inverse"
	case Sqrt:
		return "sqrt"
	case Softplus:
		return "softplus"
	case TanHalf:
		return "tan_half"
	default:
		return "unknown"
	}
}
