package quantum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BlochSpectrum holds the eigenvalues and Bloch eigenfunctions of a
// periodic potential at one Bloch phase k. Eigenfunctions are complex;
// only their probability densities are exposed, which is what gets
// plotted.
type BlochSpectrum struct {
	X        []float64
	Dx       float64
	K        float64
	Energies []float64
	density  [][]float64
}

// SolveBloch diagonalizes the Bloch Hamiltonian of a particle in the
// periodic potential V at phase k. The matrix is the hard-wall
// tridiagonal one plus the two corner couplings
//
//	H[0][n-1] = -z * exp(-ik),  H[n-1][0] = -z * exp(+ik)
//
// making it complex Hermitian. gonum's mat package has no Hermitian
// eigensolver, so the N x N Hermitian problem H = A + iB is embedded
// as the real symmetric 2N x 2N problem
//
//	[ A  -B ]
//	[ B   A ]
//
// whose spectrum is that of H with every eigenvalue doubled; taking
// every second value of the ascending list recovers the N Bloch
// energies, and each eigenvector pair (u; v) yields psi = u + iv.
func SolveBloch(hEff float64, x []float64, v Potential, k float64) (*BlochSpectrum, error) {
	n := len(x)
	if n < 2 {
		return nil, ErrGridTooSmall
	}

	dx := x[1] - x[0]
	z := hEff * hEff / (2 * dx * dx)

	m := mat.NewSymDense(2*n, nil)

	// A block: tridiagonal with real corner part -z*cos(k).
	for i := 0; i < n; i++ {
		diag := v(x[i]) + 2*z
		m.SetSym(i, i, diag)
		m.SetSym(n+i, n+i, diag)
		if i+1 < n {
			m.SetSym(i, i+1, -z)
			m.SetSym(n+i, n+i+1, -z)
		}
	}
	cornerRe := -z * math.Cos(k)
	m.SetSym(0, n-1, m.At(0, n-1)+cornerRe)
	m.SetSym(n, 2*n-1, m.At(n, 2*n-1)+cornerRe)

	// B block: antisymmetric imaginary corner part.
	// B[0][n-1] = z*sin(k), B[n-1][0] = -z*sin(k); the embedding
	// places -B in the upper right and B in the lower left.
	cornerIm := z * math.Sin(k)
	m.SetSym(0, 2*n-1, m.At(0, 2*n-1)-cornerIm)
	m.SetSym(n-1, n, m.At(n-1, n)+cornerIm)

	var eig mat.EigenSym
	if ok := eig.Factorize(m, true); !ok {
		return nil, fmt.Errorf("%w (bloch, n=%d, k=%.4f)", ErrNoConvergence, n, k)
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	spec := &BlochSpectrum{
		X:        x,
		Dx:       dx,
		K:        k,
		Energies: make([]float64, n),
		density:  make([][]float64, n),
	}

	for j := 0; j < n; j++ {
		// each Hermitian eigenvalue appears twice in the embedding
		col := 2 * j
		spec.Energies[j] = values[col]

		rho := make([]float64, n)
		norm := 0.0
		for i := 0; i < n; i++ {
			re := vectors.At(i, col)
			im := vectors.At(n+i, col)
			rho[i] = re*re + im*im
			norm += rho[i]
		}
		// probability normalization sum rho * dx = 1
		if norm > 0 {
			inv := 1 / (norm * dx)
			for i := range rho {
				rho[i] *= inv
			}
		}
		spec.density[j] = rho
	}

	return spec, nil
}

// Density returns |psi_i|^2 sampled on the grid.
func (s *BlochSpectrum) Density(i int) []float64 {
	return s.density[i]
}

// Below returns the indices of all eigenvalues strictly below eMax.
func (s *BlochSpectrum) Below(eMax float64) []int {
	var idx []int
	for i, e := range s.Energies {
		if e < eMax {
			idx = append(idx, i)
		}
	}
	return idx
}

// Band is one energy band E_n(k) across the Brillouin zone.
type Band struct {
	K []float64
	E []float64
}

// Bands sweeps the Bloch phase across [-pi, pi] in nK steps and
// returns the lowest nBands bands of the periodic potential.
func Bands(hEff float64, x []float64, v Potential, nK, nBands int) ([]Band, error) {
	if nK < 2 {
		return nil, fmt.Errorf("quantum: band sweep needs at least 2 k points, got %d", nK)
	}
	if nBands > len(x) {
		nBands = len(x)
	}

	bands := make([]Band, nBands)
	for b := range bands {
		bands[b].K = make([]float64, nK)
		bands[b].E = make([]float64, nK)
	}

	for i := 0; i < nK; i++ {
		k := -math.Pi + 2*math.Pi*float64(i)/float64(nK-1)
		spec, err := SolveBloch(hEff, x, v, k)
		if err != nil {
			return nil, err
		}
		for b := 0; b < nBands; b++ {
			bands[b].K[i] = k
			bands[b].E[i] = spec.Energies[b]
		}
	}

	return bands, nil
}

// PeriodicExtend tiles grid values over nPer periods of width period,
// for plotting a cell-periodic quantity over several lattice cells.
func PeriodicExtend(x, vals []float64, nPer int, period float64) (xp, vp []float64) {
	n := len(x)
	xp = make([]float64, 0, n*nPer)
	vp = make([]float64, 0, n*nPer)
	for p := 0; p < nPer; p++ {
		shift := float64(p) * period
		for i := 0; i < n; i++ {
			xp = append(xp, x[i]+shift)
			vp = append(vp, vals[i])
		}
	}
	return xp, vp
}
