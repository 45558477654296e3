package spectral

import (
	"fmt"

	"github.com/RyanBlaney/wakefield/algorithms/common"
)

// ConvolveWindow returns samples [offset, offset+count) of the full linear
// convolution of signal with kernel, summed directly. Each output sample
// sums j in ascending order, so results do not depend on scheduling.
func ConvolveWindow(signal, kernel []float64, offset, count int) []float64 {
	out := make([]float64, max(count, 0))
	if len(signal) == 0 || len(kernel) == 0 {
		return out
	}

	common.ParallelFor(len(out), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			k := offset + i
			jStart := max(0, k-len(kernel)+1)
			jEnd := min(len(signal)-1, k)

			sum := 0.0
			for j := jStart; j <= jEnd; j++ {
				sum += signal[j] * kernel[k-j]
			}
			out[i] = sum
		}
	})

	return out
}

// Convolver performs FFT convolution against a kernel whose spectrum is
// computed once and reused across calls.
type Convolver struct {
	fft      *FFT
	size     int
	spectrum []complex128
}

// NewConvolver transforms kernel zero-padded to size. A linear convolution
// window [offset, offset+count) with a signal of length m is free of
// wraparound when size > offset+count-1 and size+offset >= m+len(kernel)-1.
func NewConvolver(kernel []float64, size int) (*Convolver, error) {
	if size < len(kernel) {
		return nil, fmt.Errorf("fft size %d shorter than kernel (%d samples)", size, len(kernel))
	}
	f := NewFFT()
	return &Convolver{
		fft:      f,
		size:     size,
		spectrum: f.ComputePadded(kernel, size),
	}, nil
}

// Size returns the transform length.
func (c *Convolver) Size() int {
	return c.size
}

// Spectrum exposes the cached kernel spectrum.
func (c *Convolver) Spectrum() []complex128 {
	return c.spectrum
}

// Window returns samples [offset, offset+count) of the circular convolution
// of signal (zero-padded to Size) with the kernel.
func (c *Convolver) Window(signal []float64, offset, count int) ([]float64, error) {
	if len(signal) > c.size {
		return nil, fmt.Errorf("signal of %d samples exceeds fft size %d", len(signal), c.size)
	}
	if offset < 0 || count < 0 || offset+count > c.size {
		return nil, fmt.Errorf("window [%d, %d) outside fft size %d", offset, offset+count, c.size)
	}

	product := c.fft.ComputePadded(signal, c.size)
	for k := range product {
		product[k] *= c.spectrum[k]
	}

	full := c.fft.ComputeInverseReal(product)
	out := make([]float64, count)
	copy(out, full[offset:offset+count])
	return out, nil
}
