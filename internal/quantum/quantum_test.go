package quantum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/numlab/physlab/internal/quantum"
)

var _ = Describe("Discretize", func() {
	It("excludes both endpoints", func() {
		x, dx := quantum.Discretize(-1, 1, 3)
		Expect(dx).To(BeNumerically("~", 0.5, 1e-12))
		Expect(x).To(HaveLen(3))
		Expect(x[0]).To(BeNumerically("~", -0.5, 1e-12))
		Expect(x[2]).To(BeNumerically("~", 0.5, 1e-12))
	})
})

var _ = Describe("PeriodicGrid", func() {
	It("excludes the right endpoint", func() {
		x, dx := quantum.PeriodicGrid(0, 1, 4)
		Expect(dx).To(BeNumerically("~", 0.25, 1e-12))
		Expect(x[0]).To(BeZero())
		Expect(x[3]).To(BeNumerically("~", 0.75, 1e-12))
	})
})

var _ = Describe("Solve", func() {
	It("rejects a degenerate grid", func() {
		_, err := quantum.Solve(1, []float64{0}, quantum.Flat())
		Expect(err).To(MatchError(quantum.ErrGridTooSmall))
	})

	It("recovers the particle-in-a-box spectrum", func() {
		hEff := 1.0
		x, _ := quantum.Discretize(0, 1, 400)
		spec, err := quantum.Solve(hEff, x, quantum.Flat())
		Expect(err).NotTo(HaveOccurred())

		for n := 1; n <= 4; n++ {
			want := hEff * hEff * math.Pi * math.Pi * float64(n*n) / 2
			Expect(spec.Energies[n-1]).To(BeNumerically("~", want, 0.01*want))
		}
	})

	It("recovers the harmonic ladder hEff*(n + 1/2)", func() {
		hEff := 0.1
		x, _ := quantum.Discretize(-4, 4, 500)
		spec, err := quantum.Solve(hEff, x, quantum.HarmonicWell())
		Expect(err).NotTo(HaveOccurred())

		for n := 0; n < 5; n++ {
			want := hEff * (float64(n) + 0.5)
			Expect(spec.Energies[n]).To(BeNumerically("~", want, 1e-3))
		}
	})

	It("normalizes eigenfunctions to unit probability", func() {
		x, dx := quantum.Discretize(-2, 2, 200)
		spec, err := quantum.Solve(0.5, x, quantum.AsymmetricDoubleWell(0.1))
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 6; i++ {
			psi := spec.Wave(i)
			sum := 0.0
			for _, p := range psi {
				sum += p * p
			}
			Expect(sum * dx).To(BeNumerically("~", 1, 1e-9))
		}
	})

	It("splits the double-well doublets when the wells are tilted", func() {
		x, _ := quantum.Discretize(-2, 2, 300)

		sym, err := quantum.Solve(0.1, x, quantum.AsymmetricDoubleWell(0))
		Expect(err).NotTo(HaveOccurred())
		tilted, err := quantum.Solve(0.1, x, quantum.AsymmetricDoubleWell(0.2))
		Expect(err).NotTo(HaveOccurred())

		symGap := sym.Energies[1] - sym.Energies[0]
		tiltGap := tilted.Energies[1] - tilted.Energies[0]
		Expect(tiltGap).To(BeNumerically(">", symGap))
	})

	It("selects levels below an energy cut", func() {
		hEff := 1.0
		x, _ := quantum.Discretize(0, 1, 300)
		spec, err := quantum.Solve(hEff, x, quantum.Flat())
		Expect(err).NotTo(HaveOccurred())

		e2 := hEff * hEff * math.Pi * math.Pi * 4 / 2
		idx := spec.Below(e2 * 1.05)
		Expect(idx).To(Equal([]int{0, 1}))
	})
})

var _ = Describe("SolveBloch", func() {
	It("reproduces the free-particle bands at k=0", func() {
		hEff := 1.0
		x, _ := quantum.PeriodicGrid(0, 1, 200)
		spec, err := quantum.SolveBloch(hEff, x, quantum.Flat(), 0)
		Expect(err).NotTo(HaveOccurred())

		// free bands at k=0: E = (2*pi*m*hEff)^2 / 2 for m = 0, +-1, ...
		Expect(spec.Energies[0]).To(BeNumerically("~", 0, 1e-6))
		e1 := 2 * math.Pi * math.Pi * hEff * hEff
		Expect(spec.Energies[1]).To(BeNumerically("~", e1, 0.01*e1))
		Expect(spec.Energies[2]).To(BeNumerically("~", e1, 0.01*e1))
	})

	It("matches the free dispersion inside the zone", func() {
		hEff := 1.0
		k := 1.0
		x, _ := quantum.PeriodicGrid(0, 1, 300)
		spec, err := quantum.SolveBloch(hEff, x, quantum.Flat(), k)
		Expect(err).NotTo(HaveOccurred())

		want := hEff * hEff * k * k / 2
		Expect(spec.Energies[0]).To(BeNumerically("~", want, 0.02*want))
	})

	It("opens a gap at the zone edge for a cosine potential", func() {
		hEff := 1.0
		x, _ := quantum.PeriodicGrid(0, 1, 200)

		free, err := quantum.SolveBloch(hEff, x, quantum.Flat(), math.Pi)
		Expect(err).NotTo(HaveOccurred())
		cos, err := quantum.SolveBloch(hEff, x, quantum.Cosine(5), math.Pi)
		Expect(err).NotTo(HaveOccurred())

		freeGap := free.Energies[1] - free.Energies[0]
		cosGap := cos.Energies[1] - cos.Energies[0]
		Expect(cosGap).To(BeNumerically(">", freeGap+0.1))
	})

	It("normalizes Bloch densities", func() {
		x, dx := quantum.PeriodicGrid(0, 1, 128)
		spec, err := quantum.SolveBloch(0.5, x, quantum.Cosine(2), 0.7)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 4; i++ {
			rho := spec.Density(i)
			sum := 0.0
			for _, r := range rho {
				sum += r
			}
			Expect(sum * dx).To(BeNumerically("~", 1, 1e-9))
		}
	})
})

var _ = Describe("Bands", func() {
	It("produces symmetric bands E(-k) = E(k)", func() {
		x, _ := quantum.PeriodicGrid(0, 1, 100)
		bands, err := quantum.Bands(1, x, quantum.Cosine(3), 21, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(bands).To(HaveLen(3))

		b0 := bands[0]
		nK := len(b0.K)
		for i := 0; i < nK/2; i++ {
			Expect(b0.E[i]).To(BeNumerically("~", b0.E[nK-1-i], 1e-6))
		}
	})

	It("rejects a sweep with fewer than two k points", func() {
		x, _ := quantum.PeriodicGrid(0, 1, 50)
		_, err := quantum.Bands(1, x, quantum.Cosine(3), 1, 2)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Gaussian packets", func() {
	var (
		hEff = 0.05
		x    []float64
		dx   float64
		spec *quantum.Spectrum
	)

	BeforeEach(func() {
		var err error
		x, dx = quantum.Discretize(-2, 2, 400)
		spec, err = quantum.Solve(hEff, x, quantum.AsymmetricDoubleWell(0))
		Expect(err).NotTo(HaveOccurred())
	})

	It("builds a normalized packet", func() {
		phi := quantum.Gaussian(x, -0.7, 0.1, 0, hEff)
		Expect(quantum.Norm(phi, dx)).To(BeNumerically("~", 1, 1e-3))
	})

	It("reconstructs the packet from the eigenbasis", func() {
		phi := quantum.Gaussian(x, -0.7, 0.1, 0, hEff)
		ev := quantum.NewEvolution(spec, phi)
		Expect(ev.Residual).To(BeNumerically("<", 1e-6))
	})

	It("conserves norm and energy under evolution", func() {
		phi := quantum.Gaussian(x, -0.7, 0.1, 0.5, hEff)
		ev := quantum.NewEvolution(spec, phi)
		Expect(ev.Energy).To(BeNumerically(">", spec.Energies[0]))

		for _, t := range []float64{0.5, 2, 10} {
			Expect(quantum.Norm(ev.At(t), dx)).To(BeNumerically("~", 1, 1e-6))
		}
	})

	It("tunnels a packet between symmetric wells", func() {
		// start in the left well; the doublet splitting makes the
		// density at the right minimum grow from (near) zero
		phi := quantum.Gaussian(x, -0.7, 0.1, 0, hEff)
		ev := quantum.NewEvolution(spec, phi)

		right := 0
		for i, xi := range x {
			if math.Abs(xi-0.7) < math.Abs(x[right]-0.7) {
				right = i
			}
		}

		rho0 := quantum.Density(ev.At(0))[right]
		splitting := spec.Energies[1] - spec.Energies[0]
		tHalf := math.Pi * hEff / splitting
		rhoHalf := quantum.Density(ev.At(tHalf))[right]
		Expect(rhoHalf).To(BeNumerically(">", rho0*10))
	})
})
