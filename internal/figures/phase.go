package figures

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/numlab/physlab/internal/analysis"
	"github.com/numlab/physlab/internal/dynamo"
	"github.com/numlab/physlab/internal/physics"
	"github.com/numlab/physlab/internal/stdmap"
)

// energyGrid samples the undriven double-well energy over the phase
// window for contour drawing.
type energyGrid struct {
	well      *physics.DrivenDoubleWell
	x0, p0, d float64
	nx, np    int
}

func (g energyGrid) Dims() (int, int) { return g.nx, g.np }
func (g energyGrid) X(c int) float64  { return g.x0 + float64(c)*g.d }
func (g energyGrid) Y(r int) float64  { return g.p0 + float64(r)*g.d }
func (g energyGrid) Z(c, r int) float64 {
	return g.well.Energy(dynamo.State{g.X(c), g.Y(r)})
}

// WellPortrait draws the driven double-well phase plane: energy
// contours of the undriven well, the continuous trajectory, and the
// stroboscopic samples on top.
func WellPortrait(well *physics.DrivenDoubleWell, traj, strobe []analysis.Point, path string) error {
	p := newPlot("driven double well", "x", "p")

	grid := energyGrid{well: well, x0: -1.8, p0: -1.8, d: 0.02, nx: 181, np: 181}
	contour := plotter.NewContour(grid, physics.ContourLevels,
		moreland.SmoothBlueRed().Palette(len(physics.ContourLevels)))
	p.Add(contour)

	tx, ty := splitPoints(traj)
	if err := addLine(p, tx, ty, color.Gray{Y: 0xb0}, "trajectory"); err != nil {
		return err
	}

	sx, sy := splitPoints(strobe)
	if err := addScatter(p, sx, sy, seriesColor(3), 1.8, "strobe"); err != nil {
		return err
	}

	p.X.Min, p.X.Max = -1.8, 1.8
	p.Y.Min, p.Y.Max = -1.8, 1.8
	return SavePNG(p, 6, 6, path)
}

// MapPortrait scatters a family of standard-map orbits, one color per
// seed.
func MapPortrait(k float64, orbits [][]stdmap.Point, path string) error {
	p := newPlot("standard map", "theta", "p")

	for i, orbit := range orbits {
		xs := make([]float64, len(orbit))
		ys := make([]float64, len(orbit))
		for j, pt := range orbit {
			xs[j] = pt.Theta
			ys[j] = pt.P
		}
		if err := addScatter(p, xs, ys, seriesColor(i), 0.6, ""); err != nil {
			return err
		}
	}

	p.Title.Text = fmt.Sprintf("standard map, K=%g", k)
	return SavePNG(p, 6, 6, path)
}

// LyapunovScan draws the averaged largest Lyapunov exponent against
// the kick strength, with the chaotic-regime estimate ln(K/2) overlaid.
func LyapunovScan(points []stdmap.KScanPoint, path string) error {
	p := newPlot("standard map chaos onset", "K", "lambda")

	ks := make([]float64, len(points))
	ls := make([]float64, len(points))
	ref := make([]float64, len(points))
	for i, pt := range points {
		ks[i] = pt.K
		ls[i] = pt.Lambda
		// strong-kick estimate, clipped where it goes negative
		ref[i] = math.Max(0, math.Log(pt.K/2))
	}

	if err := addLine(p, ks, ls, seriesColor(0), "measured"); err != nil {
		return err
	}
	if err := addLine(p, ks, ref, seriesColor(1), "ln(K/2)"); err != nil {
		return err
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return SavePNG(p, 6, 4.5, path)
}

func splitPoints(pts []analysis.Point) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, pt := range pts {
		xs[i] = pt.X
		ys[i] = pt.Y
	}
	return xs, ys
}
