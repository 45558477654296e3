package impedance

import (
	"fmt"
	"sync"

	"github.com/RyanBlaney/wakefield/algorithms/common"
)

// InputTable is a wake or impedance loaded as samples, linearly
// interpolated onto the requested grid. Outside the loaded range the values
// are 0 on both sides.
type InputTable struct {
	TimeArray []float64 // loaded wake abscissae [s]
	WakeArray []float64 // loaded wake [Ω/s]

	FrequencyArrayLoaded []float64 // loaded frequencies [Hz], starting at 0
	ReZArrayLoaded       []float64 // loaded Re Z [Ω]
	ImZArrayLoaded       []float64 // loaded Im Z [Ω]

	wakeCurve *common.LinearInterpolator
	reCurve   *common.LinearInterpolator
	imCurve   *common.LinearInterpolator

	mu        sync.Mutex
	wake      []float64
	impedance []complex128
}

// NewWakeTable loads a wake function sampled at increasing times.
func NewWakeTable(timeArray, wake []float64) (*InputTable, error) {
	if len(timeArray) != len(wake) {
		return nil, fmt.Errorf("%w: wake table has %d times and %d values",
			ErrLengthMismatch, len(timeArray), len(wake))
	}

	t := &InputTable{
		TimeArray: append([]float64(nil), timeArray...),
		WakeArray: append([]float64(nil), wake...),
	}

	curve, err := common.NewLinearInterpolator(t.TimeArray, t.WakeArray, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: wake table: %v", ErrInvalidParameter, err)
	}
	t.wakeCurve = curve
	return t, nil
}

// NewImpedanceTable loads an impedance given as real and imaginary parts at
// increasing frequencies. When the first frequency is not 0 a (0 Hz, 0 Ω)
// sample is prepended so interpolation near the origin stays defined.
func NewImpedanceTable(frequency, reZ, imZ []float64) (*InputTable, error) {
	if len(frequency) != len(reZ) || len(reZ) != len(imZ) {
		return nil, fmt.Errorf("%w: impedance table has %d frequencies, %d Re Z, %d Im Z",
			ErrLengthMismatch, len(frequency), len(reZ), len(imZ))
	}
	if len(frequency) == 0 {
		return nil, fmt.Errorf("%w: empty impedance table", ErrInvalidParameter)
	}

	t := &InputTable{
		FrequencyArrayLoaded: append([]float64(nil), frequency...),
		ReZArrayLoaded:       append([]float64(nil), reZ...),
		ImZArrayLoaded:       append([]float64(nil), imZ...),
	}
	if t.FrequencyArrayLoaded[0] != 0 {
		t.FrequencyArrayLoaded = append([]float64{0}, t.FrequencyArrayLoaded...)
		t.ReZArrayLoaded = append([]float64{0}, t.ReZArrayLoaded...)
		t.ImZArrayLoaded = append([]float64{0}, t.ImZArrayLoaded...)
	}

	var err error
	if t.reCurve, err = common.NewLinearInterpolator(t.FrequencyArrayLoaded, t.ReZArrayLoaded, 0, 0); err != nil {
		return nil, fmt.Errorf("%w: impedance table: %v", ErrInvalidParameter, err)
	}
	if t.imCurve, err = common.NewLinearInterpolator(t.FrequencyArrayLoaded, t.ImZArrayLoaded, 0, 0); err != nil {
		return nil, fmt.Errorf("%w: impedance table: %v", ErrInvalidParameter, err)
	}
	return t, nil
}

// SupportsWake reports whether the table was loaded with wake samples.
func (t *InputTable) SupportsWake() bool {
	return t.wakeCurve != nil
}

// SupportsImpedance reports whether the table was loaded with impedance samples.
func (t *InputTable) SupportsImpedance() bool {
	return t.reCurve != nil
}

// WakeCalc interpolates the loaded wake onto timeArray. A table without wake
// samples yields zeros.
func (t *InputTable) WakeCalc(timeArray []float64) []float64 {
	var wake []float64
	if t.wakeCurve != nil {
		wake = t.wakeCurve.PredictInto(nil, timeArray)
	} else {
		wake = make([]float64, len(timeArray))
	}

	t.mu.Lock()
	t.wake = wake
	t.mu.Unlock()
	return wake
}

// ImpedCalc interpolates real and imaginary parts independently onto
// freqArray. A table without impedance samples yields zeros.
func (t *InputTable) ImpedCalc(freqArray []float64) []complex128 {
	impedance := make([]complex128, len(freqArray))
	if t.reCurve != nil {
		for i, f := range freqArray {
			impedance[i] = complex(t.reCurve.Predict(f), t.imCurve.Predict(f))
		}
	}

	t.mu.Lock()
	t.impedance = impedance
	t.mu.Unlock()
	return impedance
}

// LastWake returns the values of the most recent WakeCalc.
func (t *InputTable) LastWake() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wake
}

// LastImpedance returns the values of the most recent ImpedCalc.
func (t *InputTable) LastImpedance() []complex128 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.impedance
}
