package impedance

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/wakefield/algorithms/common"
	"github.com/RyanBlaney/wakefield/algorithms/spectral"
	"github.com/RyanBlaney/wakefield/logging"
)

// InducedVoltageFreq computes the induced voltage from the summed impedance
// of its sources multiplied with the beam spectrum. The profile is treated
// as periodic over NFFT bins, so NFFT sets the frequency resolution.
type InducedVoltageFreq struct {
	Slicer              Slicer
	Sources             []WakeSource
	FrequencyResolution float64 // requested resolution [Hz], 0 for none

	NFFT           int          // transform length (power of two)
	Frequencies    []float64    // NFFT/2+1 frequencies [Hz], first one 0
	TotalImpedance []complex128 // summed impedance on Frequencies [Ω]
	BinWidth       float64      // bin spacing [s]
	InducedVoltage []float64    // last generated voltage per bin [V]

	nBins  int
	fft    *spectral.FFT
	logger logging.Logger
}

// NewInducedVoltageFreq binds the sources to the slicer's current grid.
// A nil config uses DefaultCalculatorConfig.
func NewInducedVoltageFreq(slicer Slicer, sources []WakeSource, config *CalculatorConfig) (*InducedVoltageFreq, error) {
	if config == nil {
		config = DefaultCalculatorConfig()
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no impedance sources", ErrInvalidParameter)
	}
	for i, src := range sources {
		if !supportsImpedance(src) {
			return nil, fmt.Errorf("%w: source %d carries no impedance", ErrUnsupportedDomain, i)
		}
	}
	if config.FrequencyResolution < 0 || math.IsNaN(config.FrequencyResolution) {
		return nil, fmt.Errorf("%w: frequency resolution %g", ErrInvalidParameter, config.FrequencyResolution)
	}

	iv := &InducedVoltageFreq{
		Slicer:              slicer,
		Sources:             sources,
		FrequencyResolution: config.FrequencyResolution,
		fft:                 spectral.NewFFT(),
		logger:              config.logger("induced_voltage_freq"),
	}
	if err := iv.Reprocess(); err != nil {
		return nil, err
	}
	return iv, nil
}

// Reprocess rebuilds the frequency grid and the total impedance from the
// slicer's current bin centers.
func (iv *InducedVoltageFreq) Reprocess() error {
	centers := iv.Slicer.BinCenters()
	n := len(centers)
	if n < 2 {
		return fmt.Errorf("%w: frequency domain needs at least 2 bins, got %d", ErrInvalidParameter, n)
	}
	if err := checkUniformGrid(centers); err != nil {
		return err
	}
	binWidth := centers[1] - centers[0]

	nfft := common.NextPowerOf2(2*n - 1)
	if iv.FrequencyResolution > 0 {
		needed := int(math.Ceil(1 / (binWidth * iv.FrequencyResolution)))
		nfft = max(nfft, common.NextPowerOf2(needed))
	}

	freqs := spectral.FrequencyGrid(nfft, binWidth)
	total := make([]complex128, len(freqs))
	for _, src := range iv.Sources {
		z := src.ImpedCalc(freqs)
		if len(z) != len(total) {
			return fmt.Errorf("%w: source returned %d impedance samples for %d frequencies",
				ErrLengthMismatch, len(z), len(total))
		}
		for k := range total {
			total[k] += z[k]
		}
	}

	iv.nBins = n
	iv.BinWidth = binWidth
	iv.NFFT = nfft
	iv.Frequencies = freqs
	iv.TotalImpedance = total

	iv.logger.Debug("Impedance processed", logging.Fields{
		"bins":      n,
		"n_fft":     nfft,
		"freq_step": freqs[1],
		"sources":   len(iv.Sources),
	})
	return nil
}

// InducedVoltageGeneration multiplies the beam spectrum with the total
// impedance and transforms back, returning one voltage per bin.
func (iv *InducedVoltageFreq) InducedVoltageGeneration(intensityScale float64) ([]float64, error) {
	profile := iv.Slicer.Profile()
	if len(profile) != iv.nBins {
		return nil, fmt.Errorf("%w: profile has %d bins, impedance was processed for %d (reprocess needed)",
			ErrGridMismatch, len(profile), iv.nBins)
	}

	spectrum := iv.fft.RealSpectrum(profile, iv.NFFT)
	for k := range spectrum {
		spectrum[k] *= iv.TotalImpedance[k]
	}

	signal, err := iv.fft.InverseRealSpectrum(spectrum, iv.NFFT)
	if err != nil {
		return nil, fmt.Errorf("inverse spectrum: %w", err)
	}

	// the profile counts charges per bin, dividing by the bin width turns it
	// into a line density
	factor := -ElementaryCharge * intensityScale / iv.BinWidth
	voltage := make([]float64, iv.nBins)
	for i := range voltage {
		voltage[i] = factor * signal[i]
	}

	iv.InducedVoltage = voltage
	return voltage, nil
}

// Track generates the voltage for the beam and kicks its macro-particles.
func (iv *InducedVoltageFreq) Track(beam Beam) error {
	voltage, err := iv.InducedVoltageGeneration(beam.IntensityScale())
	if err != nil {
		iv.logger.Error(err, "Induced voltage generation failed")
		return err
	}
	return ApplyKick(beam, iv.Slicer, voltage)
}
