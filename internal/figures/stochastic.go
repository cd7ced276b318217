package figures

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/numlab/physlab/internal/stochastic"
)

// PressureHistogram draws the distribution of pressure samples with
// the matching Gaussian overlaid.
func PressureHistogram(res *stochastic.GasResult, nBins int, path string) error {
	p := newPlot("ideal gas wall pressure", "p", "density")

	centers, density := stochastic.Histogram(res.Samples, nBins)
	if err := addScatter(p, centers, density, seriesColor(0), 2, "samples"); err != nil {
		return err
	}

	overlay := stochastic.GaussianPDF(centers, res.Mean, res.Std)
	if err := addLine(p, centers, overlay, seriesColor(3), "gaussian"); err != nil {
		return err
	}

	p.Legend.Top = true
	return SavePNG(p, 6, 4.5, path)
}

// WalkPanels tiles one density panel per requested snapshot time:
// walker histogram, free Gaussian and absorbing-wall theory curve.
func WalkPanels(res *stochastic.WalkResult, times []int, nBins int, path string) error {
	const cols = 2
	rows := (len(times) + cols - 1) / cols

	w := vg.Length(5*cols) * vg.Inch
	h := vg.Length(3.5*float64(rows)) * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(150))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Points(8), PadY: vg.Points(8),
		PadTop: vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}

	for i, t := range times {
		if t < 0 || t >= len(res.Snapshots) {
			return fmt.Errorf("figures: no snapshot at t=%d", t)
		}
		snap := res.Snapshots[t]

		p := newPlot(fmt.Sprintf("t=%d, survive %.2f", t, snap.Survive), "x", "density")

		if len(snap.Pos) > 0 {
			centers, density := stochastic.Histogram(snap.Pos, nBins)
			// rescale to the surviving fraction so panels share a norm
			for j := range density {
				density[j] *= snap.Survive
			}
			if err := addScatter(p, centers, density, seriesColor(0), 1.5, "walkers"); err != nil {
				return err
			}

			free := stochastic.FreeDensity(centers, res.Params, float64(t))
			if err := addLine(p, centers, free, color.Gray{Y: 0x99}, "free"); err != nil {
				return err
			}

			wall := stochastic.AbsorbedDensity(centers, res.Params, float64(t))
			if err := addLine(p, centers, wall, seriesColor(3), "absorbing"); err != nil {
				return err
			}
		}

		plots[i/cols][i%cols] = p
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("figures: create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("figures: write %s: %w", path, err)
	}
	return nil
}

// SurvivalSeries draws the surviving fraction, ensemble mean and
// variance against time next to their free-diffusion references.
func SurvivalSeries(res *stochastic.WalkResult, path string) error {
	p := newPlot("drift-diffusion ensemble", "t", "")

	n := len(res.Snapshots)
	ts := make([]float64, n)
	surv := make([]float64, n)
	mean := make([]float64, n)
	meanRef := make([]float64, n)
	for i, s := range res.Snapshots {
		ts[i] = s.T
		surv[i] = s.Survive
		mean[i] = s.Mean
		meanRef[i] = res.Params.X0 + res.Params.VDrift*s.T
	}

	if err := addLine(p, ts, surv, seriesColor(0), "survival"); err != nil {
		return err
	}
	if err := addLine(p, ts, mean, seriesColor(1), "mean"); err != nil {
		return err
	}
	if err := addLine(p, ts, meanRef, color.Gray{Y: 0x99}, "x0 + v t"); err != nil {
		return err
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return SavePNG(p, 6, 4.5, path)
}
