package figures

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/numlab/physlab/internal/quantum"
)

// EigenLadder draws the potential with each bound eigenfunction
// offset vertically by its energy, the usual textbook ladder picture.
func EigenLadder(spec *quantum.Spectrum, v quantum.Potential, eMax float64, scale float64, path string) error {
	p := newPlot("stationary states", "x", "E")

	pot := make([]float64, len(spec.X))
	for i, xi := range spec.X {
		pot[i] = v(xi)
	}
	if err := addLine(p, spec.X, pot, color.Black, "V(x)"); err != nil {
		return err
	}

	for n, idx := range spec.Below(eMax) {
		e := spec.Energies[idx]
		psi := spec.Wave(idx)

		level := make([]float64, len(spec.X))
		shifted := make([]float64, len(spec.X))
		for i := range spec.X {
			level[i] = e
			shifted[i] = e + scale*psi[i]
		}

		base, err := plotter.NewLine(xyPoints(spec.X, level))
		if err != nil {
			return err
		}
		base.Color = color.Gray{Y: 0xcc}
		base.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(base)

		if err := addLine(p, spec.X, shifted, seriesColor(n), fmt.Sprintf("n=%d", idx)); err != nil {
			return err
		}
	}

	return SavePNG(p, 6, 4.5, path)
}

// BandDiagram draws E_n(k) across the Brillouin zone.
func BandDiagram(bands []quantum.Band, title, path string) error {
	p := newPlot(title, "k", "E")
	for i, b := range bands {
		if err := addLine(p, b.K, b.E, seriesColor(i), fmt.Sprintf("band %d", i)); err != nil {
			return err
		}
	}
	p.Legend.Top = true
	return SavePNG(p, 6, 4.5, path)
}

// BlochDensities draws the probability densities of the lowest Bloch
// states tiled over several lattice periods.
func BlochDensities(spec *quantum.BlochSpectrum, eMax float64, periods int, path string) error {
	p := newPlot(fmt.Sprintf("Bloch densities, k=%.2f", spec.K), "x", "|psi|^2")

	period := spec.Dx * float64(len(spec.X))
	for n, idx := range spec.Below(eMax) {
		xs, rho := quantum.PeriodicExtend(spec.X, spec.Density(idx), periods, period)
		if err := addLine(p, xs, rho, seriesColor(n), fmt.Sprintf("n=%d", idx)); err != nil {
			return err
		}
	}

	return SavePNG(p, 7, 4, path)
}

// PacketEvolution draws |phi(x, t)|^2 snapshots of an evolving packet
// over the potential (rescaled into view).
func PacketEvolution(ev *quantum.Evolution, spec *quantum.Spectrum, times []float64, path string) error {
	p := newPlot("wave packet evolution", "x", "|phi|^2")

	for i, t := range times {
		rho := quantum.Density(ev.At(t))
		if err := addLine(p, spec.X, rho, seriesColor(i), fmt.Sprintf("t=%.2f", t)); err != nil {
			return err
		}
	}

	p.Legend.Top = true
	return SavePNG(p, 7, 4.5, path)
}
