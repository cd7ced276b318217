package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real signal by the
// radix-2 Cooley-Tukey recursion. The input length must be a power of
// two; use Pad to round a signal up.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// Pad zero-extends the signal to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	if n == len(data) {
		return data
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

// PowerSpectrum returns the one-sided magnitude spectrum of a signal,
// zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(Pad(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// Frequencies returns the frequency axis matching PowerSpectrum for a
// signal of n samples taken dt apart.
func Frequencies(n int, dt float64) []float64 {
	padded := 1
	for padded < n {
		padded *= 2
	}
	f := make([]float64, padded/2)
	df := 1 / (float64(padded) * dt)
	for i := range f {
		f[i] = float64(i) * df
	}
	return f
}

// DominantFrequency returns the frequency of the largest non-DC peak
// of the spectrum.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	freqs := Frequencies(len(data), dt)
	best, bestPow := 0.0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > bestPow {
			bestPow = ps[i]
			best = freqs[i]
		}
	}
	return best
}
