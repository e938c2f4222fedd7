// Package draws: the family tag vocabulary.
// The tag is pure identity — the behavior behind each tag lives in the
// expect package's closed registry. Unknown tags are legal here and
// fail fast at dispatch time.
package draws

// FamilyName tags the response distribution of a bundle.
type FamilyName string

// Known family tags. Custom families registered with the expect package
// use their own tags outside this list.
const (
	Gaussian         FamilyName = "gaussian"
	Student          FamilyName = "student"
	SkewNormal       FamilyName = "skew_normal"
	Lognormal        FamilyName = "lognormal"
	ShiftedLognormal FamilyName = "shifted_lognormal"
	ExGaussian       FamilyName = "exgaussian"
	AsymLaplace      FamilyName = "asym_laplace"
	GenExtremeValue  FamilyName = "gen_extreme_value"
	Exponential      FamilyName = "exponential"
	Gamma            FamilyName = "gamma"
	Weibull          FamilyName = "weibull"
	Frechet          FamilyName = "frechet"
	InverseGaussian  FamilyName = "inverse_gaussian"
	Beta             FamilyName = "beta"
	VonMises         FamilyName = "von_mises"

	Bernoulli       FamilyName = "bernoulli"
	Poisson         FamilyName = "poisson"
	NegBinomial     FamilyName = "negbinomial"
	Geometric       FamilyName = "geometric"
	Binomial        FamilyName = "binomial"
	BetaBinomial    FamilyName = "beta_binomial"
	DiscreteWeibull FamilyName = "discrete_weibull"
	COMPoisson      FamilyName = "com_poisson"

	HurdlePoisson     FamilyName = "hurdle_poisson"
	HurdleNegBinomial FamilyName = "hurdle_negbinomial"
	HurdleGamma       FamilyName = "hurdle_gamma"
	HurdleLognormal   FamilyName = "hurdle_lognormal"

	ZeroInflatedPoisson      FamilyName = "zero_inflated_poisson"
	ZeroInflatedNegBinomial  FamilyName = "zero_inflated_negbinomial"
	ZeroInflatedBinomial     FamilyName = "zero_inflated_binomial"
	ZeroInflatedBetaBinomial FamilyName = "zero_inflated_beta_binomial"
	ZeroInflatedBeta         FamilyName = "zero_inflated_beta"
	ZeroOneInflatedBeta      FamilyName = "zero_one_inflated_beta"

	Categorical FamilyName = "categorical"
	Multinomial FamilyName = "multinomial"
	Dirichlet   FamilyName = "dirichlet"

	Cumulative        FamilyName = "cumulative"
	StoppingRatio     FamilyName = "sratio"
	ContinuationRatio FamilyName = "cratio"
	AdjacentCategory  FamilyName = "acat"

	// Mixture marks a finite mixture; the component tags live in
	// Bundle.Components and must not be Mixture themselves.
	Mixture FamilyName = "mixture"

	// Cox is the proportional-hazards partial-likelihood family. It has
	// no closed-form mean; requesting its expectation is an explicit
	// unsupported operation, never a silent wrong value.
	Cox FamilyName = "cox"
)
