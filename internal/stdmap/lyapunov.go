package stdmap

import (
	"math"
	"runtime"

	"github.com/numlab/physlab/internal/dynamo"
)

// Lyapunov estimates the largest Lyapunov exponent of the map at the
// seed (theta0, p0) by iterating a tangent vector alongside the orbit
// and renormalizing it each step:
//
//	lambda = (1/n) * sum ln |J_i v_i|
//
// where J is the tangent map [[1, 1], [K cos theta', 1 + K cos theta']].
// A positive value indicates a chaotic orbit.
func (m *Map) Lyapunov(theta0, p0 float64, n int) float64 {
	theta, p := theta0, p0

	// tangent vector, renormalized every step
	v0, v1 := 1.0, 0.0

	sumLog := 0.0
	for i := 0; i < n; i++ {
		theta, p = m.Step(theta, p)

		c := m.K * math.Cos(theta)
		w0 := v0 + v1
		w1 := c*v0 + (1+c)*v1

		norm := math.Hypot(w0, w1)
		if norm == 0 {
			return 0
		}
		sumLog += math.Log(norm)
		v0, v1 = w0/norm, w1/norm
	}

	return sumLog / float64(n)
}

// KScanPoint records the averaged Lyapunov exponent at one kick
// strength.
type KScanPoint struct {
	K      float64
	Lambda float64
}

// ScanK sweeps the kick strength over [kMin, kMax] in num steps and
// averages the Lyapunov exponent over a small grid of seeds, tracing
// the transition from regular to chaotic dynamics.
func ScanK(kMin, kMax float64, num, iters int) []KScanPoint {
	seeds := SeedGrid(4, 4)
	out := make([]KScanPoint, num)

	// every K value is independent, so the scan parallelizes cleanly
	dynamo.ParallelFor(num, 4, runtime.NumCPU(), func(start, end int) {
		for i := start; i < end; i++ {
			k := kMin + (kMax-kMin)*float64(i)/float64(num-1)
			m := New(k)

			sum := 0.0
			for _, s := range seeds {
				sum += m.Lyapunov(s.Theta, s.P, iters)
			}

			out[i] = KScanPoint{K: k, Lambda: sum / float64(len(seeds))}
		}
	})

	return out
}
