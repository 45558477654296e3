package spectral

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealSpectrumRoundTrip(t *testing.T) {
	f := NewFFT()
	x := []float64{1, -2, 0.5, 3, 0, 0, 4.25}

	for _, n := range []int{8, 16, 15} {
		half := f.RealSpectrum(x, n)
		require.Len(t, half, n/2+1)

		back, err := f.InverseRealSpectrum(half, n)
		require.NoError(t, err)
		require.Len(t, back, n)
		for i := range back {
			want := 0.0
			if i < len(x) {
				want = x[i]
			}
			assert.InDelta(t, want, back[i], 1e-10, "n=%d i=%d", n, i)
		}
	}
}

func TestInverseRealSpectrumLengthCheck(t *testing.T) {
	_, err := NewFFT().InverseRealSpectrum(make([]complex128, 3), 8)
	assert.Error(t, err)
}

func TestFrequencyGrid(t *testing.T) {
	freqs := FrequencyGrid(8, 0.25)
	require.Len(t, freqs, 5)
	assert.Equal(t, 0.0, freqs[0])
	assert.InDelta(t, 0.5, freqs[1], 1e-15)
	assert.InDelta(t, 2.0, freqs[4], 1e-15, "Nyquist = 1/(2 dt)")
}

func TestConvolveWindowMatchesDefinition(t *testing.T) {
	signal := []float64{1, 2, 3}
	kernel := []float64{0, 1, 0.5}

	// full convolution: 0 1 2.5 4 1.5
	full := ConvolveWindow(signal, kernel, 0, 5)
	assert.InDeltaSlice(t, []float64{0, 1, 2.5, 4, 1.5}, full, 1e-15)

	window := ConvolveWindow(signal, kernel, 1, 3)
	assert.InDeltaSlice(t, []float64{1, 2.5, 4}, window, 1e-15)

	beyond := ConvolveWindow(signal, kernel, 4, 3)
	assert.InDeltaSlice(t, []float64{1.5, 0, 0}, beyond, 1e-15)
}

func TestConvolverAgreesWithDirectSum(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	n := 300
	signal := make([]float64, n)
	kernel := make([]float64, 2*n-1)
	for i := range signal {
		signal[i] = rng.Float64()
	}
	for i := range kernel {
		kernel[i] = rng.NormFloat64()
	}

	offset := n - 1
	direct := ConvolveWindow(signal, kernel, offset, n)

	c, err := NewConvolver(kernel, 1024)
	require.NoError(t, err)
	assert.Equal(t, 1024, c.Size())
	assert.Len(t, c.Spectrum(), 1024)

	fast, err := c.Window(signal, offset, n)
	require.NoError(t, err)

	scale := 0.0
	for _, v := range direct {
		scale = math.Max(scale, math.Abs(v))
	}
	for i := range direct {
		assert.InDelta(t, direct[i], fast[i], 1e-12*scale, "i=%d", i)
	}
}

func TestConvolverRejectsBadSizes(t *testing.T) {
	_, err := NewConvolver(make([]float64, 10), 8)
	assert.Error(t, err)

	c, err := NewConvolver([]float64{1}, 4)
	require.NoError(t, err)
	_, err = c.Window(make([]float64, 5), 0, 1)
	assert.Error(t, err)
	_, err = c.Window([]float64{1}, 3, 2)
	assert.Error(t, err)
}
