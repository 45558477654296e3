package impedance

import (
	"fmt"
	"math"
	"sync"

	"github.com/RyanBlaney/wakefield/algorithms/common"
)

// Resonators is the analytic impedance of one or more resonant modes.
//
//	Z(f)     = R / (1 + jQ(f/f_r - f_r/f))
//	W(t > 0) = 2αR exp(-αt) (cos ω̄t - (α/ω̄) sin ω̄t)
//	W(0)     = αR
//	W(t < 0) = 0
//
// with ω_r = 2πf_r, α = ω_r/2Q and ω̄ = sqrt(ω_r² - α²).
type Resonators struct {
	RS         []float64 // shunt impedance [Ω]
	FrequencyR []float64 // resonant frequency [Hz]
	Q          []float64 // quality factor
	OmegaR     []float64 // angular resonant frequency [rad/s]

	mu        sync.Mutex
	timeArray []float64
	wake      []float64
	freqArray []float64
	impedance []complex128
}

// NewResonators builds the modes from parallel arrays, one entry per mode.
func NewResonators(rs, frequencyR, q []float64) (*Resonators, error) {
	if len(rs) != len(frequencyR) || len(rs) != len(q) {
		return nil, fmt.Errorf("%w: resonators got %d R, %d f_r, %d Q",
			ErrLengthMismatch, len(rs), len(frequencyR), len(q))
	}
	if len(rs) == 0 {
		return nil, fmt.Errorf("%w: no resonant modes", ErrInvalidParameter)
	}

	for i := range rs {
		switch {
		case math.IsNaN(rs[i]) || math.IsInf(rs[i], 0):
			return nil, fmt.Errorf("%w: mode %d has non-finite R %g", ErrInvalidParameter, i, rs[i])
		case !(frequencyR[i] > 0) || math.IsInf(frequencyR[i], 0):
			return nil, fmt.Errorf("%w: mode %d needs a positive finite resonant frequency, got %g",
				ErrInvalidParameter, i, frequencyR[i])
		case !(q[i] > 0.5) || math.IsInf(q[i], 0):
			// Q <= 1/2 is over-damped: ω̄ is not real and the wake is undefined
			return nil, fmt.Errorf("%w: mode %d needs a finite Q > 0.5, got %g", ErrInvalidParameter, i, q[i])
		}
	}

	r := &Resonators{
		RS:         append([]float64(nil), rs...),
		FrequencyR: append([]float64(nil), frequencyR...),
		Q:          append([]float64(nil), q...),
		OmegaR:     make([]float64, len(rs)),
	}
	for i, f := range r.FrequencyR {
		r.OmegaR[i] = 2 * math.Pi * f
	}
	return r, nil
}

// NResonators returns the number of modes.
func (r *Resonators) NResonators() int {
	return len(r.RS)
}

// WakeCalc evaluates the wake on timeArray. The (sign(t)+1) weighting
// gives the full 2αR-scaled wake behind the charge, αR at t = 0 and nothing
// ahead of it.
func (r *Resonators) WakeCalc(timeArray []float64) []float64 {
	n := len(r.RS)
	alpha := make([]float64, n)
	omegaBar := make([]float64, n)
	for i := range n {
		alpha[i] = r.OmegaR[i] / (2 * r.Q[i])
		omegaBar[i] = math.Sqrt(r.OmegaR[i]*r.OmegaR[i] - alpha[i]*alpha[i])
	}

	wake := make([]float64, len(timeArray))
	common.ParallelFor(len(timeArray), func(lo, hi int) {
		for j := lo; j < hi; j++ {
			t := timeArray[j]
			if t < 0 {
				// weight is zero; skipping also avoids 0*Inf from exp(-αt)
				continue
			}
			s := common.Sign(t)
			for i := range n {
				wake[j] += (s + 1) * r.RS[i] * alpha[i] * math.Exp(-alpha[i]*t) *
					(math.Cos(omegaBar[i]*t) - alpha[i]/omegaBar[i]*math.Sin(omegaBar[i]*t))
			}
		}
	})

	r.mu.Lock()
	r.timeArray = timeArray
	r.wake = wake
	r.mu.Unlock()

	return wake
}

// ImpedCalc evaluates the impedance on freqArray. The first sample stands
// for 0 Hz, where the formula is singular, and is left at 0.
func (r *Resonators) ImpedCalc(freqArray []float64) []complex128 {
	impedance := make([]complex128, len(freqArray))
	for i := range r.RS {
		for j := 1; j < len(impedance); j++ {
			impedance[j] += complex(r.RS[i], 0) /
				complex(1, r.Q[i]*(freqArray[j]/r.FrequencyR[i]-r.FrequencyR[i]/freqArray[j]))
		}
	}

	r.mu.Lock()
	r.freqArray = freqArray
	r.impedance = impedance
	r.mu.Unlock()

	return impedance
}

// LastWake returns the grid and values of the most recent WakeCalc.
func (r *Resonators) LastWake() (timeArray, wake []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timeArray, r.wake
}

// LastImpedance returns the grid and values of the most recent ImpedCalc.
func (r *Resonators) LastImpedance() (freqArray []float64, impedance []complex128) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.freqArray, r.impedance
}
