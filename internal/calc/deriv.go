package calc

// Func is a scalar function of one variable.
type Func func(x float64) float64

// ForwardDiff approximates f'(x0) by the forward difference
// (f(x0+h) - f(x0)) / h. Discretization error is O(h).
func ForwardDiff(f Func, x0, h float64) float64 {
	return (f(x0+h) - f(x0)) / h
}

// CentralDiff approximates f'(x0) by the central difference
// (f(x0+h/2) - f(x0-h/2)) / h. Discretization error is O(h^2).
func CentralDiff(f Func, x0, h float64) float64 {
	return (f(x0+h/2) - f(x0-h/2)) / h
}

// ExtrapolatedDiff approximates f'(x0) by Richardson extrapolation of
// two central differences at step h/2 and h/4,
//
//	(8*(f(x0+h/4) - f(x0-h/4)) - (f(x0+h/2) - f(x0-h/2))) / (3h)
//
// cancelling the h^2 term. Discretization error is O(h^4).
func ExtrapolatedDiff(f Func, x0, h float64) float64 {
	return (8*(f(x0+h/4)-f(x0-h/4)) - (f(x0+h/2) - f(x0-h/2))) / (3 * h)
}

// DiffMethod names one of the differentiation rules together with its
// expected error order in h.
type DiffMethod struct {
	Name  string
	Order int
	Eval  func(f Func, x0, h float64) float64
}

// DiffMethods lists the three rules in increasing order of accuracy.
var DiffMethods = []DiffMethod{
	{Name: "forward", Order: 1, Eval: ForwardDiff},
	{Name: "central", Order: 2, Eval: CentralDiff},
	{Name: "extrapolated", Order: 4, Eval: ExtrapolatedDiff},
}
