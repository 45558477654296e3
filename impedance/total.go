package impedance

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/wakefield/logging"
)

// InducedVoltageCalculator is one contribution to the total induced voltage.
type InducedVoltageCalculator interface {
	InducedVoltageGeneration(intensityScale float64) ([]float64, error)
	Reprocess() error
}

// TotalInducedVoltage sums the voltage of several calculators sharing one
// slicer and kicks the beam once with the sum.
type TotalInducedVoltage struct {
	Slicer         Slicer
	Calculators    []InducedVoltageCalculator
	InducedVoltage []float64 // last summed voltage per bin [V]

	logger logging.Logger
}

// NewTotalInducedVoltage aggregates the calculators. They are shared, not
// copied. A nil logger uses the global one.
func NewTotalInducedVoltage(slicer Slicer, calculators []InducedVoltageCalculator, logger logging.Logger) (*TotalInducedVoltage, error) {
	if len(calculators) == 0 {
		return nil, fmt.Errorf("%w: no induced voltage calculators", ErrInvalidParameter)
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &TotalInducedVoltage{
		Slicer:      slicer,
		Calculators: calculators,
		logger:      logger.WithFields(logging.Fields{"component": "total_induced_voltage"}),
	}, nil
}

// InducedVoltageSum adds up the voltage of every calculator. A calculator
// bound to a different bin count fails the whole sum with ErrGridMismatch.
func (t *TotalInducedVoltage) InducedVoltageSum(intensityScale float64) ([]float64, error) {
	n := len(t.Slicer.BinCenters())
	sum := make([]float64, n)

	for i, calc := range t.Calculators {
		voltage, err := calc.InducedVoltageGeneration(intensityScale)
		if err != nil {
			return nil, fmt.Errorf("calculator %d: %w", i, err)
		}
		if len(voltage) != n {
			return nil, fmt.Errorf("%w: calculator %d returned %d samples for %d bins",
				ErrGridMismatch, i, len(voltage), n)
		}
		floats.Add(sum, voltage)
	}

	t.InducedVoltage = sum
	return sum, nil
}

// Track applies the summed voltage to the beam in a single kick pass.
func (t *TotalInducedVoltage) Track(beam Beam) error {
	voltage, err := t.InducedVoltageSum(beam.IntensityScale())
	if err != nil {
		t.logger.Error(err, "Induced voltage sum failed")
		return err
	}
	return ApplyKick(beam, t.Slicer, voltage)
}

// Reprocess reprocesses every calculator after a change of the bin grid.
func (t *TotalInducedVoltage) Reprocess() error {
	for i, calc := range t.Calculators {
		if err := calc.Reprocess(); err != nil {
			return fmt.Errorf("reprocess calculator %d: %w", i, err)
		}
	}
	t.logger.Debug("Calculators reprocessed", logging.Fields{
		"calculators": len(t.Calculators),
		"bins":        len(t.Slicer.BinCenters()),
	})
	return nil
}
