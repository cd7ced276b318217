package calc

// stripes returns the left edges of the N subintervals of [a, b] and
// the stripe width h. For N == 1 the width degenerates to b-a.
func stripes(a, b float64, n int) ([]float64, float64) {
	h := (b - a) / float64(n)
	if n == 1 {
		h = b - a
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = a + float64(i)*h
	}
	return x, h
}

// MidpointInt integrates f over [a, b] with N subintervals using the
// midpoint rule h * sum f(x_i + h/2). Error is O(h^2).
func MidpointInt(f Func, a, b float64, n int) float64 {
	x, h := stripes(a, b, n)
	sum := 0.0
	for _, xi := range x {
		sum += f(xi + h/2)
	}
	return h * sum
}

// TrapezoidInt integrates f over [a, b] with N subintervals using the
// trapezoid rule (h/2) * sum (f(x_i) + f(x_i+h)). Error is O(h^2).
func TrapezoidInt(f Func, a, b float64, n int) float64 {
	x, h := stripes(a, b, n)
	sum := 0.0
	for _, xi := range x {
		sum += f(xi) + f(xi+h)
	}
	return h / 2 * sum
}

// SimpsonInt integrates f over [a, b] with N subintervals using
// Simpson's rule (h/6) * sum (f(x_i) + 4f(x_i+h/2) + f(x_i+h)).
// Error is O(h^4).
func SimpsonInt(f Func, a, b float64, n int) float64 {
	x, h := stripes(a, b, n)
	sum := 0.0
	for _, xi := range x {
		sum += f(xi) + 4*f(xi+h/2) + f(xi+h)
	}
	return h / 6 * sum
}

// QuadMethod names one of the quadrature rules together with its
// expected error order in h.
type QuadMethod struct {
	Name  string
	Order int
	Eval  func(f Func, a, b float64, n int) float64
}

var QuadMethods = []QuadMethod{
	{Name: "midpoint", Order: 2, Eval: MidpointInt},
	{Name: "trapezoid", Order: 2, Eval: TrapezoidInt},
	{Name: "simpson", Order: 4, Eval: SimpsonInt},
}
