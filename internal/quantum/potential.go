package quantum

import "math"

// Potential is a time-independent potential V(x).
type Potential func(x float64) float64

// AsymmetricDoubleWell returns V(x) = x^4 - x^2 - A*x. The parameter A
// tilts the two wells against each other; A=0 restores the symmetric
// double well with its near-degenerate tunneling doublets.
func AsymmetricDoubleWell(a float64) Potential {
	return func(x float64) float64 {
		return x*x*x*x - x*x - a*x
	}
}

// Cosine returns the Bloch-periodic potential V(x) = A*cos(2*pi*x)
// with period 1.
func Cosine(a float64) Potential {
	return func(x float64) float64 {
		return a * math.Cos(2*math.Pi*x)
	}
}

// HarmonicWell returns V(x) = x^2/2, whose spectrum hEff*(n + 1/2) is
// known in closed form.
func HarmonicWell() Potential {
	return func(x float64) float64 {
		return 0.5 * x * x
	}
}

// Flat returns V(x) = 0, turning the hard-walled solver into the
// particle in a box and the periodic solver into free Bloch bands.
func Flat() Potential {
	return func(float64) float64 { return 0 }
}
