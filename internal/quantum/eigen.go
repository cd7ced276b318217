package quantum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoConvergence indicates the eigensolver failed to factorize
	// the Hamiltonian.
	ErrNoConvergence = errors.New("quantum: eigendecomposition did not converge")

	// ErrGridTooSmall indicates fewer than two grid points.
	ErrGridTooSmall = errors.New("quantum: grid needs at least two points")
)

// Spectrum holds the eigenvalues and position-space eigenfunctions of
// a discretized 1D Hamiltonian. Eigenvalues ascend; eigenfunctions are
// stored column-wise and normalized so that sum |psi|^2 * dx = 1.
type Spectrum struct {
	X        []float64
	Dx       float64
	HEff     float64
	Energies []float64
	waves    *mat.Dense
}

// Solve diagonalizes the finite-difference Hamiltonian of a particle
// in the potential V on the hard-walled grid x:
//
//	H[i][i]   = V(x_i) + 2z,   z = hEff^2 / (2*dx^2)
//	H[i][i+1] = H[i+1][i] = -z
//
// The tridiagonal matrix is real symmetric, so the spectrum is real
// and gonum's symmetric eigensolver applies directly.
func Solve(hEff float64, x []float64, v Potential) (*Spectrum, error) {
	n := len(x)
	if n < 2 {
		return nil, ErrGridTooSmall
	}

	dx := x[1] - x[0]
	z := hEff * hEff / (2 * dx * dx)

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, v(x[i])+2*z)
		if i+1 < n {
			h.SetSym(i, i+1, -z)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(h, true); !ok {
		return nil, fmt.Errorf("%w (n=%d)", ErrNoConvergence, n)
	}

	spec := &Spectrum{
		X:        x,
		Dx:       dx,
		HEff:     hEff,
		Energies: eig.Values(nil),
		waves:    mat.NewDense(n, n, nil),
	}
	eig.VectorsTo(spec.waves)
	spec.normalize()

	return spec, nil
}

// normalize rescales each eigenvector by 1/sqrt(dx) so the discrete
// probability sum |psi|^2 * dx equals one.
func (s *Spectrum) normalize() {
	r, c := s.waves.Dims()
	inv := 1 / math.Sqrt(s.Dx)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			s.waves.Set(i, j, s.waves.At(i, j)*inv)
		}
	}
}

// Wave returns the i-th eigenfunction sampled on the grid.
func (s *Spectrum) Wave(i int) []float64 {
	n := len(s.X)
	out := make([]float64, n)
	mat.Col(out, i, s.waves)
	return out
}

// Below returns the indices of all eigenvalues strictly below eMax.
func (s *Spectrum) Below(eMax float64) []int {
	var idx []int
	for i, e := range s.Energies {
		if e < eMax {
			idx = append(idx, i)
		}
	}
	return idx
}
