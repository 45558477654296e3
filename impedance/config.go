package impedance

import (
	"fmt"

	"github.com/RyanBlaney/wakefield/logging"
)

// Mode selects how InducedVoltageTime convolves the profile with the wake.
type Mode int

const (
	// ModeFFT pads profile and wake to Shape and convolves in the
	// frequency domain.
	ModeFFT Mode = iota
	// ModeDirect sums the discrete convolution in the time domain.
	ModeDirect
)

func (m Mode) String() string {
	switch m {
	case ModeFFT:
		return "fft"
	case ModeDirect:
		return "direct"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "fft" or "direct" to its Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "fft", "":
		return ModeFFT, nil
	case "direct", "time":
		return ModeDirect, nil
	default:
		return ModeFFT, fmt.Errorf("%w: unknown convolution mode %q", ErrInvalidParameter, name)
	}
}

// CalculatorConfig configures the induced voltage calculators.
type CalculatorConfig struct {
	// Mode is used by InducedVoltageTime only.
	Mode Mode

	// FrequencyResolution [Hz] is the finest frequency spacing
	// InducedVoltageFreq must reach. Zero keeps the minimum FFT length.
	FrequencyResolution float64

	// Logger defaults to the global logger tagged with the component name.
	Logger logging.Logger
}

// DefaultCalculatorConfig returns FFT convolution at minimum length.
func DefaultCalculatorConfig() *CalculatorConfig {
	return &CalculatorConfig{
		Mode: ModeFFT,
	}
}

func (c *CalculatorConfig) logger(component string) logging.Logger {
	if c.Logger != nil {
		return c.Logger.WithFields(logging.Fields{"component": component})
	}
	return logging.ForComponent(component)
}
