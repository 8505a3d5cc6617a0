package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is an in-place iterative radix-2 transform. The input length must be a
// power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	out := make([]complex128, n)
	for i, v := range data {
		out[i] = complex(v, 0)
	}
	if n <= 1 {
		return out
	}
	if n&(n-1) != 0 {
		panic("fft requires power of 2 length")
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			out[i], out[j] = out[j], out[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		step := cmplx.Rect(1, -2*math.Pi/float64(size))
		for base := 0; base < n; base += size {
			w := complex(1, 0)
			for k := 0; k < size/2; k++ {
				a, b := out[base+k], w*out[base+k+size/2]
				out[base+k], out[base+k+size/2] = a+b, a-b
				w *= step
			}
		}
	}
	return out
}

// PowerSpectrum removes the mean, zero-pads to a power of two and returns the
// magnitude of the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := nextPow2(len(data))
	padded := make([]float64, n)

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i, v := range data {
		padded[i] = v - mean
	}

	fft := FFT(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in Hz for samples
// taken every dt seconds, or 0 if the signal is flat.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	best, bestIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bestIdx = ps[i], i
		}
	}
	if best < 1e-12 {
		return 0
	}
	n := 2 * len(ps)
	return float64(bestIdx) / (float64(n) * dt)
}

// Crossings counts sign changes through zero.
func Crossings(data []float64) int {
	count := 0
	for i := 1; i < len(data); i++ {
		if (data[i-1] < 0 && data[i] >= 0) || (data[i-1] >= 0 && data[i] < 0) {
			count++
		}
	}
	return count
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
