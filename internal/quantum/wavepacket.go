package quantum

import (
	"math"
	"math/cmplx"
)

// Gaussian samples the wave packet
//
//	phi(x, 0) = (2*pi*sigma^2)^(-1/4) * exp(-(x-x0)^2 / (4*sigma^2))
//	            * exp(i*p0*x / hEff)
//
// centered at x0 with width sigma and mean momentum p0.
func Gaussian(x []float64, x0, sigma, p0, hEff float64) []complex128 {
	amp := math.Pow(2*math.Pi*sigma*sigma, -0.25)
	phi := make([]complex128, len(x))
	for i, xi := range x {
		d := xi - x0
		env := amp * math.Exp(-d*d/(4*sigma*sigma))
		phi[i] = complex(env, 0) * cmplx.Exp(complex(0, p0*xi/hEff))
	}
	return phi
}

// Evolution propagates an initial packet in the eigenbasis of a
// Spectrum: phi(t) = sum c_n * exp(-i*E_n*t/hEff) * psi_n with
// c_n = dx * <psi_n|phi>.
type Evolution struct {
	spec *Spectrum
	c    []complex128

	// Energy is the expectation value sum |c_n|^2 E_n.
	Energy float64

	// Residual is the summed reconstruction defect sum |phi' - phi|
	// of the packet rebuilt from the coefficients; it measures how
	// much of the packet leaks outside the truncated basis.
	Residual float64
}

// NewEvolution projects phi onto the eigenbasis.
func NewEvolution(spec *Spectrum, phi []complex128) *Evolution {
	n := len(spec.X)

	e := &Evolution{
		spec: spec,
		c:    make([]complex128, n),
	}

	// c_n = dx * sum_j psi_n(x_j) * phi(x_j); eigenfunctions are real
	for j := 0; j < n; j++ {
		wave := spec.Wave(j)
		var sum complex128
		for i := 0; i < n; i++ {
			sum += complex(wave[i], 0) * phi[i]
		}
		e.c[j] = complex(spec.Dx, 0) * sum
		e.Energy += (real(e.c[j])*real(e.c[j]) + imag(e.c[j])*imag(e.c[j])) * spec.Energies[j]
	}

	rebuilt := e.At(0)
	for i := range phi {
		e.Residual += cmplx.Abs(rebuilt[i] - phi[i])
	}

	return e
}

// At returns phi(t) sampled on the grid.
func (e *Evolution) At(t float64) []complex128 {
	n := len(e.spec.X)
	phi := make([]complex128, n)

	for j := 0; j < n; j++ {
		phase := cmplx.Exp(complex(0, -e.spec.Energies[j]*t/e.spec.HEff))
		cj := e.c[j] * phase
		wave := e.spec.Wave(j)
		for i := 0; i < n; i++ {
			phi[i] += cj * complex(wave[i], 0)
		}
	}

	return phi
}

// Density returns |phi|^2 for a sampled packet.
func Density(phi []complex128) []float64 {
	rho := make([]float64, len(phi))
	for i, p := range phi {
		rho[i] = real(p)*real(p) + imag(p)*imag(p)
	}
	return rho
}

// Norm returns the discrete probability sum |phi|^2 * dx.
func Norm(phi []complex128, dx float64) float64 {
	sum := 0.0
	for _, p := range phi {
		sum += real(p)*real(p) + imag(p)*imag(p)
	}
	return sum * dx
}
