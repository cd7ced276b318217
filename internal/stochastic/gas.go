package stochastic

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// GasParams configures the hard-wall pressure estimator. A gas of
// non-interacting particles bounces between walls at x = -1 and x = 1;
// each trial draws initial positions and velocities, counts wall hits
// over a time window, and converts the transferred momentum into a
// pressure sample.
type GasParams struct {
	Particles int     // particles per trial
	Trials    int     // independent pressure samples
	Window    float64 // observation time per trial
	Seed      uint64
}

// DefaultGasParams matches the classroom setup: 8 particles, 10000
// trials, a window of 4 time units.
func DefaultGasParams() GasParams {
	return GasParams{Particles: 8, Trials: 10000, Window: 4, Seed: 1}
}

// GasResult holds the pressure samples and their summary statistics.
type GasResult struct {
	Samples []float64
	Mean    float64
	Std     float64 // sample standard deviation (ddof=1)
}

// RunGas estimates the wall pressure Monte Carlo style. Each particle
// starts uniformly in [0, 1) with a standard normal velocity; over the
// window dt it crosses a wall
//
//	n = floor((|x0 + v*dt| + 1) / 2)
//
// times, each crossing transferring momentum 2|v|. The pressure sample
// of one trial is p = (2 / (N*dt)) * sum |v_i| * n_i.
func RunGas(par GasParams) *GasResult {
	src := rand.NewSource(par.Seed)
	uni := distuv.Uniform{Min: 0, Max: 1, Src: src}
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	res := &GasResult{Samples: make([]float64, par.Trials)}
	for r := 0; r < par.Trials; r++ {
		sum := 0.0
		for i := 0; i < par.Particles; i++ {
			x0 := uni.Rand()
			v := gauss.Rand()
			n := math.Floor((math.Abs(x0+v*par.Window) + 1) / 2)
			sum += math.Abs(v) * n
		}
		res.Samples[r] = 2 * sum / (float64(par.Particles) * par.Window)
	}

	res.Mean = stat.Mean(res.Samples, nil)
	res.Std = math.Sqrt(stat.Variance(res.Samples, nil))
	return res
}

// Histogram bins the samples into nBins equal-width bins and
// normalizes the counts to a probability density.
func Histogram(samples []float64, nBins int) (centers, density []float64) {
	lo, hi := samples[0], samples[0]
	for _, s := range samples {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	w := (hi - lo) / float64(nBins)
	if w == 0 {
		w = 1
	}

	counts := make([]float64, nBins)
	for _, s := range samples {
		b := int((s - lo) / w)
		if b >= nBins {
			b = nBins - 1
		}
		counts[b]++
	}

	centers = make([]float64, nBins)
	density = make([]float64, nBins)
	norm := 1 / (float64(len(samples)) * w)
	for b := range counts {
		centers[b] = lo + (float64(b)+0.5)*w
		density[b] = counts[b] * norm
	}
	return centers, density
}

// GaussianPDF evaluates the normal density with the given mean and
// standard deviation at each point, for overlaying on a histogram.
func GaussianPDF(x []float64, mean, std float64) []float64 {
	n := distuv.Normal{Mu: mean, Sigma: std}
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = n.Prob(xi)
	}
	return out
}
