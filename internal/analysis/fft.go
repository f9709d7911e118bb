// Package analysis provides frequency analysis of run series, used to
// spot oscillating mass transfer that the stability function should
// have prevented.
package analysis

import (
	"math"
	"math/cmplx"
)

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

// PowerSpectrum returns the magnitude of the positive-frequency half
// of the FFT.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// Spectrum pads the series to a power-of-two length, removes the mean
// so the DC component does not swamp everything, and returns the power
// spectrum.
func Spectrum(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	n := 1
	for n < len(series) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range series {
		padded[i] = v - mean
	}
	return PowerSpectrum(padded)
}

// LowQuarter returns the low-frequency quarter of a power spectrum,
// where slow mass oscillations live. Spectra with fewer than four bins
// are returned whole.
func LowQuarter(ps []float64) []float64 {
	if len(ps) < 4 {
		return ps
	}
	return ps[:len(ps)/4]
}

// DominantPeriod returns the period, in ticks, of the strongest
// non-constant component of the series, or 0 when the series is flat.
func DominantPeriod(series []float64) float64 {
	ps := Spectrum(series)
	if len(ps) < 2 {
		return 0
	}

	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	if bestPower < 1e-12 {
		return 0
	}
	return float64(2*len(ps)) / float64(best)
}
