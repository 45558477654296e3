package spectral

import (
	"fmt"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality over go-dsp.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the full complex spectrum of a real signal
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// ComputeInverse computes the inverse FFT (normalised by 1/N)
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// ComputeInverseReal computes inverse FFT and returns real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))

	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}

// ComputePadded zero-pads (or truncates) x to n samples before
// transforming it.
func (f *FFT) ComputePadded(x []float64, n int) []complex128 {
	if n <= 0 {
		return []complex128{}
	}
	return fft.FFT(dsputils.ZeroPad(dsputils.ToComplex(fit(x, n)), n))
}

// RealSpectrum returns the non-negative frequency half (n/2+1 bins) of the
// spectrum of x zero-padded to n samples.
func (f *FFT) RealSpectrum(x []float64, n int) []complex128 {
	full := f.ComputePadded(x, n)
	if len(full) == 0 {
		return full
	}
	return full[:n/2+1]
}

// InverseRealSpectrum is the inverse of RealSpectrum: it rebuilds the
// Hermitian spectrum of length n from its non-negative half and returns the
// real signal. Imaginary parts of the DC and, for even n, Nyquist bins are
// ignored.
func (f *FFT) InverseRealSpectrum(half []complex128, n int) ([]float64, error) {
	if n <= 0 {
		return []float64{}, nil
	}
	if len(half) != n/2+1 {
		return nil, fmt.Errorf("half spectrum has %d bins, expected %d for n=%d", len(half), n/2+1, n)
	}

	full := make([]complex128, n)
	full[0] = complex(real(half[0]), 0)
	for k := 1; k < len(half); k++ {
		if 2*k == n {
			full[k] = complex(real(half[k]), 0)
			continue
		}
		full[k] = half[k]
		full[n-k] = complex(real(half[k]), -imag(half[k]))
	}

	return f.ComputeInverseReal(full), nil
}

// FrequencyGrid returns the frequencies of the n/2+1 bins of RealSpectrum
// for a signal sampled every dt seconds. The first entry is always 0.
func FrequencyGrid(n int, dt float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	freqs := make([]float64, n/2+1)
	df := 1.0 / (float64(n) * dt)
	for k := range freqs {
		freqs[k] = float64(k) * df
	}
	return freqs
}

func fit(x []float64, n int) []float64 {
	if len(x) > n {
		return x[:n]
	}
	return x
}
