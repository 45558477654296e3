// Package impedance computes the voltage a beam induces on itself through
// wake functions and impedances, and applies the resulting energy kick.
package impedance

// ElementaryCharge in coulomb.
const ElementaryCharge = 1.602176634e-19

// WakeSource produces a wake function sampled on a time grid or an
// impedance sampled on a frequency grid. Each call replaces the source's
// cached grid and values.
type WakeSource interface {
	// WakeCalc returns the wake [Ω/s] at every time of timeArray [s].
	WakeCalc(timeArray []float64) []float64

	// ImpedCalc returns the impedance [Ω] at every frequency of freqArray
	// [Hz]. freqArray is ascending and starts with the 0 Hz sample.
	ImpedCalc(freqArray []float64) []complex128
}

// domainLimited is implemented by sources that only carry data in one
// domain, such as tables loaded from files.
type domainLimited interface {
	SupportsWake() bool
	SupportsImpedance() bool
}

func supportsWake(src WakeSource) bool {
	if d, ok := src.(domainLimited); ok {
		return d.SupportsWake()
	}
	return true
}

func supportsImpedance(src WakeSource) bool {
	if d, ok := src.(domainLimited); ok {
		return d.SupportsImpedance()
	}
	return true
}
