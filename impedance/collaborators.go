package impedance

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/wakefield/algorithms/common"
)

// Beam is the macro-particle population receiving the kick.
type Beam interface {
	// TimeCoordinates returns the time offset [s] of every macro-particle.
	TimeCoordinates() []float64

	// EnergyCoordinates returns the energy offset [eV] of every
	// macro-particle. Kicks are written into this slice in place.
	EnergyCoordinates() []float64

	// IntensityScale is the charge represented by one macro-particle, in
	// units of the elementary charge.
	IntensityScale() float64
}

// Slicer is the binning of the beam the calculators convolve over.
type Slicer interface {
	// BinCenters returns the ordered bin center times [s].
	BinCenters() []float64

	// Profile returns the number of macro-particles in each bin.
	Profile() []float64

	// BinIndex returns the bin holding time t, or false when t lies outside
	// every bin.
	BinIndex(t float64) (int, bool)
}

// ApplyKick adds voltage[bin] to the energy of every macro-particle whose
// time falls in a bin. Particles outside the bins are left untouched.
func ApplyKick(beam Beam, slicer Slicer, voltage []float64) error {
	dt := beam.TimeCoordinates()
	dE := beam.EnergyCoordinates()
	if len(dt) != len(dE) {
		return fmt.Errorf("%w: %d time but %d energy coordinates", ErrLengthMismatch, len(dt), len(dE))
	}
	if n := len(slicer.BinCenters()); len(voltage) != n {
		return fmt.Errorf("%w: voltage has %d samples for %d bins", ErrGridMismatch, len(voltage), n)
	}

	common.ParallelFor(len(dt), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if bin, ok := slicer.BinIndex(dt[i]); ok {
				dE[i] += voltage[bin]
			}
		}
	})
	return nil
}

// gridTolerance is the allowed deviation of a bin center from the uniform
// grid, relative to the bin spacing.
const gridTolerance = 1e-6

// checkUniformGrid returns ErrInvalidParameter unless the centers are
// strictly increasing with a constant spacing. Fewer than two centers
// always pass.
func checkUniformGrid(centers []float64) error {
	n := len(centers)
	if n < 2 {
		return nil
	}
	width := (centers[n-1] - centers[0]) / float64(n-1)
	if !(width > 0) || math.IsInf(width, 0) {
		return fmt.Errorf("%w: bin spacing %g is not positive", ErrInvalidParameter, width)
	}
	for i, c := range centers {
		want := centers[0] + float64(i)*width
		if !(math.Abs(c-want) <= gridTolerance*width) {
			return fmt.Errorf("%w: bin %d center %g is off the uniform grid (expected %g)",
				ErrInvalidParameter, i, c, want)
		}
	}
	return nil
}
