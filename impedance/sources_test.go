package impedance_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/wakefield/impedance"
)

func singleResonator(t *testing.T) *impedance.Resonators {
	t.Helper()
	r, err := impedance.NewResonators([]float64{1e6}, []float64{1e9}, []float64{1})
	require.NoError(t, err)
	return r
}

func TestResonatorWakeOriginAndCausality(t *testing.T) {
	r := singleResonator(t)

	omegaR := 2 * math.Pi * 1e9
	alpha := omegaR / (2 * 1.0)
	omegaBar := math.Sqrt(omegaR*omegaR - alpha*alpha)

	grid := []float64{-1e-9, -1e-12, 0, 1e-10, 5e-10}
	wake := r.WakeCalc(grid)
	require.Len(t, wake, len(grid))

	assert.Equal(t, 0.0, wake[0])
	assert.Equal(t, 0.0, wake[1])
	assert.Equal(t, 1e6*alpha, wake[2], "W(0) is R·α, half the causal limit")

	for _, j := range []int{3, 4} {
		tt := grid[j]
		want := 2 * 1e6 * alpha * math.Exp(-alpha*tt) * (math.Cos(omegaBar*tt) - alpha/omegaBar*math.Sin(omegaBar*tt))
		assert.InDelta(t, want, wake[j], 1e-12*math.Abs(want))
	}

	cachedGrid, cachedWake := r.LastWake()
	assert.Equal(t, grid, cachedGrid)
	assert.Equal(t, wake, cachedWake)
}

func TestResonatorImpedance(t *testing.T) {
	r := singleResonator(t)

	freqs := []float64{0, 0.5e9, 1e9, 2e9}
	z := r.ImpedCalc(freqs)
	require.Len(t, z, 4)

	assert.Equal(t, complex(0, 0), z[0], "0 Hz sentinel is not evaluated")
	assert.InDelta(t, 1e6, real(z[2]), 1e-9)
	assert.InDelta(t, 0, imag(z[2]), 1e-9, "purely real at resonance")

	want := complex(1e6, 0) / complex(1, 1*(0.5-2))
	assert.InDelta(t, real(want), real(z[1]), 1e-6)
	assert.InDelta(t, imag(want), imag(z[1]), 1e-6)

	// Z(f_r/k) and Z(k·f_r) are complex conjugates
	assert.InDelta(t, real(z[1]), real(z[3]), 1e-6)
	assert.InDelta(t, -imag(z[1]), imag(z[3]), 1e-6)

	_, cached := r.LastImpedance()
	assert.Equal(t, z, cached)
}

func TestResonatorModesAdd(t *testing.T) {
	a, err := impedance.NewResonators([]float64{1e6}, []float64{1e9}, []float64{1})
	require.NoError(t, err)
	b, err := impedance.NewResonators([]float64{2e5}, []float64{3e9}, []float64{20})
	require.NoError(t, err)
	both, err := impedance.NewResonators([]float64{1e6, 2e5}, []float64{1e9, 3e9}, []float64{1, 20})
	require.NoError(t, err)
	assert.Equal(t, 2, both.NResonators())

	grid := []float64{0, 1e-11, 2e-10, 1e-9}
	wa, wb, wab := a.WakeCalc(grid), b.WakeCalc(grid), both.WakeCalc(grid)
	for j := range grid {
		assert.Equal(t, wa[j]+wb[j], wab[j], "j=%d", j)
	}

	freqs := []float64{0, 1e8, 1e9, 3e9}
	za, zb, zab := a.ImpedCalc(freqs), b.ImpedCalc(freqs), both.ImpedCalc(freqs)
	for j := range freqs {
		assert.Equal(t, za[j]+zb[j], zab[j], "j=%d", j)
	}
}

func TestResonatorValidation(t *testing.T) {
	cases := []struct {
		name    string
		rs      []float64
		fr      []float64
		q       []float64
		wantErr error
	}{
		{"length mismatch", []float64{1, 2}, []float64{1e9}, []float64{1}, impedance.ErrLengthMismatch},
		{"no modes", nil, nil, nil, impedance.ErrInvalidParameter},
		{"zero frequency", []float64{1}, []float64{0}, []float64{1}, impedance.ErrInvalidParameter},
		{"negative frequency", []float64{1}, []float64{-1e9}, []float64{1}, impedance.ErrInvalidParameter},
		{"zero Q", []float64{1}, []float64{1e9}, []float64{0}, impedance.ErrInvalidParameter},
		{"over-damped", []float64{1}, []float64{1e9}, []float64{0.5}, impedance.ErrInvalidParameter},
		{"strongly over-damped", []float64{1}, []float64{1e9}, []float64{0.3}, impedance.ErrInvalidParameter},
		{"NaN R", []float64{math.NaN()}, []float64{1e9}, []float64{1}, impedance.ErrInvalidParameter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := impedance.NewResonators(tc.rs, tc.fr, tc.q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestWakeTableRoundTrip(t *testing.T) {
	times := []float64{0, 1e-10, 2e-10, 4e-10, 8e-10}
	values := []float64{5e14, 3e14, -1e14, 2e13, 0}

	table, err := impedance.NewWakeTable(times, values)
	require.NoError(t, err)
	assert.True(t, table.SupportsWake())
	assert.False(t, table.SupportsImpedance())

	got := table.WakeCalc(times)
	for i := range values {
		assert.InDelta(t, values[i], got[i], 1e-12*5e14, "knot %d", i)
	}
	assert.Equal(t, got, table.LastWake())

	// one sample before the data and one after saturate to zero
	edges := table.WakeCalc([]float64{-1e-10, 1.5e-10, 9e-10})
	assert.Equal(t, 0.0, edges[0])
	assert.InDelta(t, 1e14, edges[1], 1e2)
	assert.Equal(t, 0.0, edges[2])

	z := table.ImpedCalc([]float64{0, 1e9})
	assert.Equal(t, []complex128{0, 0}, z, "no impedance data loaded")
}

func TestWakeTableNaNTimeIsZero(t *testing.T) {
	table, err := impedance.NewWakeTable([]float64{0, 1}, []float64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1.5, 0}, table.WakeCalc([]float64{math.NaN(), 0.5, math.NaN()}))
}

func TestImpedanceTablePrependsOrigin(t *testing.T) {
	table, err := impedance.NewImpedanceTable([]float64{1e9, 2e9}, []float64{10, 20}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1e9, 2e9}, table.FrequencyArrayLoaded)
	assert.Equal(t, []float64{0, 10, 20}, table.ReZArrayLoaded)
	assert.Equal(t, []float64{0, 1, 2}, table.ImZArrayLoaded)

	z := table.ImpedCalc([]float64{0, 0.5e9, 1e9, 1.5e9, 3e9})
	assert.Equal(t, complex(0, 0), z[0])
	assert.InDelta(t, 5, real(z[1]), 1e-12)
	assert.InDelta(t, 0.5, imag(z[1]), 1e-12)
	assert.Equal(t, complex(10, 1), z[2])
	assert.InDelta(t, 15, real(z[3]), 1e-12)
	assert.InDelta(t, 1.5, imag(z[3]), 1e-12)
	assert.Equal(t, complex(0, 0), z[4], "beyond the table")
	assert.Equal(t, z, table.LastImpedance())

	wake := table.WakeCalc([]float64{0, 1})
	assert.Equal(t, []float64{0, 0}, wake)

	starting, err := impedance.NewImpedanceTable([]float64{0, 1e9}, []float64{3, 4}, []float64{0, 0})
	require.NoError(t, err)
	assert.Len(t, starting.FrequencyArrayLoaded, 2, "no prepend when data starts at 0 Hz")
}

func TestInputTableValidation(t *testing.T) {
	_, err := impedance.NewImpedanceTable([]float64{1, 2}, []float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, impedance.ErrLengthMismatch))

	_, err = impedance.NewImpedanceTable(nil, nil, nil)
	assert.True(t, errors.Is(err, impedance.ErrInvalidParameter))

	_, err = impedance.NewImpedanceTable([]float64{-1, 2}, []float64{1, 2}, []float64{1, 2})
	assert.True(t, errors.Is(err, impedance.ErrInvalidParameter), "prepended 0 breaks ordering")

	_, err = impedance.NewWakeTable([]float64{0, 1}, []float64{1})
	assert.True(t, errors.Is(err, impedance.ErrLengthMismatch))

	_, err = impedance.NewWakeTable([]float64{0, 0}, []float64{1, 1})
	assert.True(t, errors.Is(err, impedance.ErrInvalidParameter))
}
