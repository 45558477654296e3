// Package beam holds a longitudinal macro-particle beam and its uniform
// time slicing.
package beam

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/wakefield/algorithms/common"
)

// Beam is a population of macro-particles with longitudinal coordinates.
type Beam struct {
	Dt        []float64 // time offset [s]
	DE        []float64 // energy offset [eV]
	Intensity float64   // number of real particles
	Charge    float64   // particle charge in units of e
}

// New wraps the coordinates. dt and dE are used in place, not copied.
func New(dt, dE []float64, intensity, charge float64) (*Beam, error) {
	if len(dt) != len(dE) {
		return nil, fmt.Errorf("beam: %d time but %d energy coordinates", len(dt), len(dE))
	}
	if len(dt) == 0 {
		return nil, fmt.Errorf("beam: no macro-particles")
	}
	if !(intensity > 0) {
		return nil, fmt.Errorf("beam: intensity must be positive, got %g", intensity)
	}
	return &Beam{Dt: dt, DE: dE, Intensity: intensity, Charge: charge}, nil
}

// NMacroparticles returns the number of macro-particles.
func (b *Beam) NMacroparticles() int {
	return len(b.Dt)
}

func (b *Beam) TimeCoordinates() []float64 {
	return b.Dt
}

func (b *Beam) EnergyCoordinates() []float64 {
	return b.DE
}

// IntensityScale is the number of elementary charges one macro-particle
// stands for.
func (b *Beam) IntensityScale() float64 {
	return b.Charge * b.Intensity / float64(len(b.Dt))
}

// MeanDt returns the mean time offset.
func (b *Beam) MeanDt() float64 {
	return common.Mean(b.Dt)
}

// MeanDE returns the mean energy offset.
func (b *Beam) MeanDE() float64 {
	return common.Mean(b.DE)
}

// Moments holds the first two moments of both coordinates.
type Moments struct {
	MeanDt, SigmaDt float64
	MeanDE, SigmaDE float64
}

// Moments returns the mean and the standard deviation of dt and dE. A
// single particle has zero spread.
func (b *Beam) Moments() Moments {
	if len(b.Dt) < 2 {
		return Moments{MeanDt: b.MeanDt(), MeanDE: b.MeanDE()}
	}
	var m Moments
	m.MeanDt, m.SigmaDt = stat.MeanStdDev(b.Dt, nil)
	m.MeanDE, m.SigmaDE = stat.MeanStdDev(b.DE, nil)
	return m
}
