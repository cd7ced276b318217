package stdmap

import "math"

const twoPi = 2 * math.Pi

// Map is the Chirikov standard map on the torus,
//
//	theta' = theta + p            (mod 2pi)
//	p'     = p + K*sin(theta')    (folded to [-pi, pi))
//
// with kick strength K. K below ~1 gives mostly regular dynamics,
// K around 2.6 a mixed phase space, K above ~6 near-global chaos.
type Map struct {
	K float64
}

func New(k float64) *Map {
	return &Map{K: k}
}

// Point is one phase-space sample with theta in [0, 2pi) and p in
// [-pi, pi).
type Point struct {
	Theta, P float64
}

// fold wraps v into [0, 2pi).
func fold(v float64) float64 {
	v = math.Mod(v, twoPi)
	if v < 0 {
		v += twoPi
	}
	return v
}

// foldCentered wraps v into [-pi, pi).
func foldCentered(v float64) float64 {
	return fold(v+math.Pi) - math.Pi
}

// Step advances one iteration from (theta, p).
func (m *Map) Step(theta, p float64) (float64, float64) {
	theta += p
	p += m.K * math.Sin(theta)
	return theta, p
}

// Orbit iterates the map n times from the seed (theta0, p0) and
// returns the folded phase-space points.
func (m *Map) Orbit(theta0, p0 float64, n int) []Point {
	pts := make([]Point, n)
	theta, p := theta0, p0
	for i := 0; i < n; i++ {
		theta, p = m.Step(theta, p)
		pts[i] = Point{Theta: fold(theta), P: foldCentered(p)}
	}
	return pts
}

// SeedGrid returns rows*cols seeds evenly covering the torus, the
// batch equivalent of clicking start points all over the plot area.
func SeedGrid(rows, cols int) []Point {
	seeds := make([]Point, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			seeds = append(seeds, Point{
				Theta: (float64(j) + 0.5) * twoPi / float64(cols),
				P:     (float64(i)+0.5)*twoPi/float64(rows) - math.Pi,
			})
		}
	}
	return seeds
}
