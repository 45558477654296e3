package impedance

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/wakefield/algorithms/common"
	"github.com/RyanBlaney/wakefield/algorithms/spectral"
	"github.com/RyanBlaney/wakefield/logging"
)

// InducedVoltageTime computes the induced voltage from the sum of the wakes
// of its sources, convolved with the beam profile.
//
// For n bins with centers c_0..c_{n-1} the wake is sampled on 2n-1 lags:
// TimeArray[Cut+m] = c_m - c_0 and TimeArray[Cut-m] = -(c_m - c_0) with
// Cut = n-1, covering every lag between two bins in either direction.
type InducedVoltageTime struct {
	Slicer  Slicer
	Sources []WakeSource

	TimeArray      []float64 // wake lags [s]
	TotalWake      []float64 // summed wake on TimeArray [Ω/s]
	Cut            int       // index of lag 0 in TimeArray
	Shape          int       // FFT length, smallest power of two >= 2n-1
	InducedVoltage []float64 // last generated voltage per bin [V]

	mode      Mode
	nBins     int
	convolver *spectral.Convolver
	logger    logging.Logger
}

// NewInducedVoltageTime binds the sources to the slicer's current grid.
// A nil config uses DefaultCalculatorConfig.
func NewInducedVoltageTime(slicer Slicer, sources []WakeSource, config *CalculatorConfig) (*InducedVoltageTime, error) {
	if config == nil {
		config = DefaultCalculatorConfig()
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no wake sources", ErrInvalidParameter)
	}
	for i, src := range sources {
		if !supportsWake(src) {
			return nil, fmt.Errorf("%w: source %d carries no wake", ErrUnsupportedDomain, i)
		}
	}
	if config.Mode != ModeFFT && config.Mode != ModeDirect {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, config.Mode)
	}

	iv := &InducedVoltageTime{
		Slicer:  slicer,
		Sources: sources,
		mode:    config.Mode,
		logger:  config.logger("induced_voltage_time"),
	}
	if err := iv.Reprocess(); err != nil {
		return nil, err
	}
	return iv, nil
}

// Mode returns the convolution chosen at construction. Switching it takes a
// new calculator.
func (iv *InducedVoltageTime) Mode() Mode {
	return iv.mode
}

// Reprocess rebuilds TimeArray, TotalWake, Cut and Shape from the slicer's
// current bin centers. It must follow any change of the bin grid.
func (iv *InducedVoltageTime) Reprocess() error {
	centers := iv.Slicer.BinCenters()
	n := len(centers)
	if n == 0 {
		return fmt.Errorf("%w: empty bin grid", ErrInvalidParameter)
	}
	if err := checkUniformGrid(centers); err != nil {
		return err
	}

	cut := n - 1
	timeArray := make([]float64, 2*n-1)
	for m := range n {
		lag := centers[m] - centers[0]
		timeArray[cut+m] = lag
		if m > 0 {
			timeArray[cut-m] = -lag
		}
	}

	totalWake := make([]float64, len(timeArray))
	for _, src := range iv.Sources {
		wake := src.WakeCalc(timeArray)
		if len(wake) != len(totalWake) {
			return fmt.Errorf("%w: source returned %d wake samples for %d lags",
				ErrLengthMismatch, len(wake), len(totalWake))
		}
		floats.Add(totalWake, wake)
	}

	shape := common.NextPowerOf2(2*n - 1)

	var convolver *spectral.Convolver
	if iv.mode == ModeFFT {
		var err error
		convolver, err = spectral.NewConvolver(totalWake, shape)
		if err != nil {
			return fmt.Errorf("wake spectrum: %w", err)
		}
	}

	iv.nBins = n
	iv.TimeArray = timeArray
	iv.TotalWake = totalWake
	iv.Cut = cut
	iv.Shape = shape
	iv.convolver = convolver

	iv.logger.Debug("Wake processed", logging.Fields{
		"bins":    n,
		"cut":     cut,
		"shape":   shape,
		"mode":    iv.mode.String(),
		"sources": len(iv.Sources),
	})
	return nil
}

// InducedVoltageGeneration convolves the current profile with TotalWake and
// returns one voltage per bin, scaled by -e·intensityScale so that a
// positive wake decelerates the charges behind.
func (iv *InducedVoltageTime) InducedVoltageGeneration(intensityScale float64) ([]float64, error) {
	profile := iv.Slicer.Profile()
	if len(profile) != iv.nBins {
		return nil, fmt.Errorf("%w: profile has %d bins, wake was processed for %d (reprocess needed)",
			ErrGridMismatch, len(profile), iv.nBins)
	}

	var conv []float64
	switch iv.mode {
	case ModeDirect:
		conv = spectral.ConvolveWindow(profile, iv.TotalWake, iv.Cut, iv.nBins)
	case ModeFFT:
		if iv.convolver == nil {
			return nil, fmt.Errorf("%w: wake spectrum not processed", ErrInvalidParameter)
		}
		var err error
		conv, err = iv.convolver.Window(profile, iv.Cut, iv.nBins)
		if err != nil {
			return nil, fmt.Errorf("fft convolution: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, iv.mode)
	}

	factor := -ElementaryCharge * intensityScale
	for i := range conv {
		conv[i] *= factor
	}

	iv.InducedVoltage = conv
	return conv, nil
}

// Track generates the voltage for the beam and kicks its macro-particles.
func (iv *InducedVoltageTime) Track(beam Beam) error {
	voltage, err := iv.InducedVoltageGeneration(beam.IntensityScale())
	if err != nil {
		iv.logger.Error(err, "Induced voltage generation failed")
		return err
	}
	return ApplyKick(beam, iv.Slicer, voltage)
}
