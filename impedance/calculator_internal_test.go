package impedance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/wakefield/logging"
)

// fixedSlicer serves a hand-written grid and profile.
type fixedSlicer struct {
	centers []float64
	profile []float64
}

func (s *fixedSlicer) BinCenters() []float64        { return s.centers }
func (s *fixedSlicer) Profile() []float64           { return s.profile }
func (s *fixedSlicer) BinIndex(float64) (int, bool) { return 0, false }

func uniformSlicer(n int, left, width float64) *fixedSlicer {
	s := &fixedSlicer{
		centers: make([]float64, n),
		profile: make([]float64, n),
	}
	for i := range n {
		s.centers[i] = left + (float64(i)+0.5)*width
		s.profile[i] = float64(min(i, n-i))
	}
	return s
}

func testResonator(t *testing.T) *Resonators {
	t.Helper()
	r, err := NewResonators([]float64{1e6}, []float64{1e9}, []float64{1})
	require.NoError(t, err)
	return r
}

func TestModeIsFixedAtConstruction(t *testing.T) {
	slicer := uniformSlicer(64, 0, 1e-11)
	cfg := &CalculatorConfig{Mode: ModeDirect, Logger: &logging.NoOpLogger{}}

	iv, err := NewInducedVoltageTime(slicer, []WakeSource{testResonator(t)}, cfg)
	require.NoError(t, err)
	assert.Equal(t, ModeDirect, iv.Mode())
	assert.Nil(t, iv.convolver)

	// a mode without its processed state fails instead of dereferencing it
	iv.mode = ModeFFT
	require.NotPanics(t, func() {
		_, err = iv.InducedVoltageGeneration(1)
	})
	assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)

	iv.mode = Mode(9)
	_, err = iv.InducedVoltageGeneration(1)
	assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)

	cfg.Mode = ModeFFT
	fftCalc, err := NewInducedVoltageTime(slicer, []WakeSource{testResonator(t)}, cfg)
	require.NoError(t, err)
	assert.Equal(t, ModeFFT, fftCalc.Mode())
	v, err := fftCalc.InducedVoltageGeneration(1)
	require.NoError(t, err)
	assert.Len(t, v, 64)
}

func TestCheckUniformGrid(t *testing.T) {
	assert.NoError(t, checkUniformGrid(nil))
	assert.NoError(t, checkUniformGrid([]float64{3}))
	assert.NoError(t, checkUniformGrid(uniformSlicer(256, 1e-3, 1e-11).centers))

	for _, centers := range [][]float64{
		{0, 1, 3, 4},
		{0, 1, 2, 2.5},
		{2, 1, 0},
		{0, 0, 0},
	} {
		err := checkUniformGrid(centers)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "centers %v", centers)
	}
}

func TestCalculatorsRejectNonUniformGrid(t *testing.T) {
	slicer := &fixedSlicer{
		centers: []float64{0, 1e-11, 3e-11, 4e-11},
		profile: []float64{1, 2, 2, 1},
	}
	cfg := &CalculatorConfig{Logger: &logging.NoOpLogger{}}

	_, err := NewInducedVoltageTime(slicer, []WakeSource{testResonator(t)}, cfg)
	assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)

	_, err = NewInducedVoltageFreq(slicer, []WakeSource{testResonator(t)}, cfg)
	assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)

	// a grid that turns non-uniform after construction fails on reprocess
	good := uniformSlicer(4, 0, 1e-11)
	iv, err := NewInducedVoltageTime(good, []WakeSource{testResonator(t)}, cfg)
	require.NoError(t, err)
	good.centers[2] += 5e-12
	assert.True(t, errors.Is(iv.Reprocess(), ErrInvalidParameter))
}
