package figures

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/numlab/physlab/internal/calc"
)

// Convergence draws the log-log relative-error curves of a method
// sweep, with dashed reference slopes h^order for each distinct order.
func Convergence(s *calc.Sweep, title, path string) error {
	p := newPlot(title, "h", "relative error")
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	names := make([]string, 0, len(s.Errors))
	for name := range s.Errors {
		names = append(names, name)
	}
	sort.Strings(names)

	orders := map[int]bool{}
	for i, name := range names {
		errs := clipPositive(s.Errors[name])
		if err := addScatter(p, s.H, errs, seriesColor(i), 1.5, name); err != nil {
			return err
		}
		orders[s.Orders[name]] = true
	}

	i := len(names)
	for order := 1; order <= 8; order++ {
		if !orders[order] {
			continue
		}
		ref, err := plotter.NewLine(xyPoints(s.H, s.Scaling(order)))
		if err != nil {
			return err
		}
		ref.Color = seriesColor(i)
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(ref)
		p.Legend.Add(fmt.Sprintf("h^%d", order), ref)
		i++
	}

	return SavePNG(p, 6, 4.5, path)
}

// log axes reject non-positive values; floor them at a tiny epsilon
// so a method that hits the exact answer still plots.
func clipPositive(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if v <= 0 {
			v = 1e-17
		}
		out[i] = v
	}
	return out
}
