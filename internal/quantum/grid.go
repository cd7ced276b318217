package quantum

// Discretize returns the N interior grid points of [a, b] used for the
// position-space discretization of a hard-walled problem. The wave
// function vanishes at a and b, so the grid excludes both endpoints:
//
//	dx  = (b - a) / (N + 1)
//	x_i = a + (i + 1) * dx
func Discretize(a, b float64, n int) (x []float64, dx float64) {
	dx = (b - a) / float64(n+1)
	x = make([]float64, n)
	for i := range x {
		x[i] = a + float64(i+1)*dx
	}
	return x, dx
}

// PeriodicGrid returns N evenly spaced points covering [a, b) for a
// potential with period b-a. The right endpoint is excluded because it
// is identified with the left one.
func PeriodicGrid(a, b float64, n int) (x []float64, dx float64) {
	dx = (b - a) / float64(n)
	x = make([]float64, n)
	for i := range x {
		x[i] = a + float64(i)*dx
	}
	return x, dx
}
