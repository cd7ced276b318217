package analysis

import (
	"math"

	"github.com/numlab/physlab/internal/dynamo"
)

// Point is one sample in a 2D phase plane.
type Point struct {
	X, Y float64
}

// PhasePortrait extracts the (x, p) trajectory of a recorded run.
func PhasePortrait(res *dynamo.Result, xIdx, pIdx int) []Point {
	pts := make([]Point, 0, len(res.States))
	for _, s := range res.States {
		if xIdx >= len(s) || pIdx >= len(s) {
			return nil
		}
		pts = append(pts, Point{X: s[xIdx], Y: s[pIdx]})
	}
	return pts
}

// Strobe samples a recorded run once per drive period, producing the
// stroboscopic section that distinguishes periodic, quasi-periodic and
// chaotic forced motion. Samples are linearly interpolated between the
// two recorded states bracketing each strobe time.
func Strobe(res *dynamo.Result, xIdx, pIdx int, period float64) []Point {
	if len(res.Times) < 2 || period <= 0 {
		return nil
	}

	var pts []Point
	next := period
	for i := 1; i < len(res.Times); i++ {
		for res.Times[i] >= next {
			t0, t1 := res.Times[i-1], res.Times[i]
			frac := (next - t0) / (t1 - t0)
			s0, s1 := res.States[i-1], res.States[i]
			pts = append(pts, Point{
				X: s0[xIdx] + frac*(s1[xIdx]-s0[xIdx]),
				Y: s0[pIdx] + frac*(s1[pIdx]-s0[pIdx]),
			})
			next += period
		}
	}
	return pts
}

// Section records the phase-plane point each time the variable at
// crossIdx crosses the threshold from below.
func Section(res *dynamo.Result, crossIdx, xIdx, pIdx int, threshold float64) []Point {
	if len(res.States) < 2 {
		return nil
	}

	var pts []Point
	prev := res.States[0][crossIdx]
	for i := 1; i < len(res.States); i++ {
		curr := res.States[i][crossIdx]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			s0, s1 := res.States[i-1], res.States[i]
			pts = append(pts, Point{
				X: s0[xIdx] + frac*(s1[xIdx]-s0[xIdx]),
				Y: s0[pIdx] + frac*(s1[pIdx]-s0[pIdx]),
			})
		}
		prev = curr
	}
	return pts
}
