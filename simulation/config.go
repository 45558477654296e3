package simulation

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/RyanBlaney/wakefield/impedance"
)

const ExampleConfigFile = `[Beam]

#######################
# Required Parameters #
#######################

# Number of macro-particles drawn from a bi-Gaussian distribution.
Particles = 100000
# Number of real particles the macro-particles stand for.
Intensity = 1e10

# RMS bunch length [s] and energy spread [eV].
SigmaDt = 2e-10
SigmaDE = 1e6

#######################
# Optional Parameters #
#######################

# Charge in units of the elementary charge. Default is 1.
# Charge = 1
# Seed of the particle generator. Default is 1.
# Seed = 1

[Slices]

# The bunch is centered in [CutLeft, CutRight) [s].
Count = 100
CutLeft = 0
CutRight = 2e-9

[Tracking]

Turns = 10

# Convolution used for time-domain sources: fft or direct. "freq" computes
# every source that has an impedance in the frequency domain instead.
Mode = fft

# Finest frequency spacing [Hz] for the frequency domain. 0 keeps the
# shortest transform.
# FrequencyResolution = 0

# Each resonator gets its own named section.
[Resonator "cavity"]
R = 1e6
Frequency = 1e9
Q = 10

# Tabulated sources. Resonator tables hold (GHz, Q, MOhm) triples,
# impedance tables (Hz, Re Z, Im Z) and wake tables (s, W).
# [Tables]
# Resonators = path/to/resonators.dat
# Impedance = path/to/impedance.dat
# Wake = path/to/wake.dat`

// BeamConfig describes the macro-particle fixture.
type BeamConfig struct {
	Particles int
	Intensity float64
	Charge    float64
	SigmaDt   float64
	SigmaDE   float64
	Seed      int64
}

// SlicesConfig describes the bin grid.
type SlicesConfig struct {
	Count    int
	CutLeft  float64
	CutRight float64
}

// TrackingConfig describes the turn loop.
type TrackingConfig struct {
	Turns               int
	Mode                string
	FrequencyResolution float64
}

// ResonatorConfig is a single resonator mode in SI units.
type ResonatorConfig struct {
	R         float64
	Frequency float64
	Q         float64
}

// TablesConfig lists optional table files.
type TablesConfig struct {
	Resonators string
	Impedance  string
	Wake       string
}

// Config is the whole run configuration.
type Config struct {
	Beam      BeamConfig
	Slices    SlicesConfig
	Tracking  TrackingConfig
	Resonator map[string]*ResonatorConfig
	Tables    TablesConfig
}

// DefaultConfig returns a configuration without any impedance source.
func DefaultConfig() *Config {
	return &Config{
		Beam: BeamConfig{
			Particles: 100000,
			Intensity: 1e10,
			Charge:    1,
			SigmaDt:   2e-10,
			SigmaDE:   1e6,
			Seed:      1,
		},
		Slices: SlicesConfig{
			Count:    100,
			CutLeft:  0,
			CutRight: 2e-9,
		},
		Tracking: TrackingConfig{
			Turns: 10,
			Mode:  "fft",
		},
	}
}

// ReadConfig reads an INI file on top of DefaultConfig and validates it.
func ReadConfig(fname string) (*Config, error) {
	cfg := DefaultConfig()
	if err := gcfg.ReadFileInto(cfg, fname); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// ReadConfigString is ReadConfig for an in-memory INI document.
func ReadConfigString(str string) (*Config, error) {
	cfg := DefaultConfig()
	if err := gcfg.ReadStringInto(cfg, str); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FrequencyDomain is true when Mode asks for the frequency-domain
// calculator.
func (t *TrackingConfig) FrequencyDomain() bool {
	return strings.EqualFold(t.Mode, "freq")
}

// ConvolutionMode maps Mode to the time-domain convolution. The frequency
// mode still convolves wake-only tables by FFT.
func (t *TrackingConfig) ConvolutionMode() (impedance.Mode, error) {
	if t.FrequencyDomain() {
		return impedance.ModeFFT, nil
	}
	return impedance.ParseMode(strings.ToLower(t.Mode))
}

// Validate checks that every parameter is in range and that there is at
// least one source.
func (c *Config) Validate() error {
	switch {
	case c.Beam.Particles <= 0:
		return fmt.Errorf("Beam.Particles must be positive, got %d", c.Beam.Particles)
	case !positive(c.Beam.Intensity):
		return fmt.Errorf("Beam.Intensity must be positive, got %g", c.Beam.Intensity)
	case !finite(c.Beam.Charge) || c.Beam.Charge == 0:
		return fmt.Errorf("Beam.Charge must be non-zero, got %g", c.Beam.Charge)
	case !positive(c.Beam.SigmaDt):
		return fmt.Errorf("Beam.SigmaDt must be positive, got %g", c.Beam.SigmaDt)
	case !finite(c.Beam.SigmaDE) || c.Beam.SigmaDE < 0:
		return fmt.Errorf("Beam.SigmaDE must be non-negative, got %g", c.Beam.SigmaDE)
	}

	if c.Slices.Count <= 0 {
		return fmt.Errorf("Slices.Count must be positive, got %d", c.Slices.Count)
	}
	if !finite(c.Slices.CutLeft) || !finite(c.Slices.CutRight) ||
		c.Slices.CutRight <= c.Slices.CutLeft {
		return fmt.Errorf("Slices cuts [%g, %g) are not an interval",
			c.Slices.CutLeft, c.Slices.CutRight)
	}

	if c.Tracking.Turns <= 0 {
		return fmt.Errorf("Tracking.Turns must be positive, got %d", c.Tracking.Turns)
	}
	if _, err := c.Tracking.ConvolutionMode(); err != nil {
		return fmt.Errorf("Tracking.Mode: %w", err)
	}
	if !finite(c.Tracking.FrequencyResolution) || c.Tracking.FrequencyResolution < 0 {
		return fmt.Errorf("Tracking.FrequencyResolution must be non-negative, got %g",
			c.Tracking.FrequencyResolution)
	}

	for name, res := range c.Resonator {
		if !positive(res.R) || !positive(res.Frequency) || !(res.Q > 0.5) {
			return fmt.Errorf("Resonator %q: need R > 0, Frequency > 0 and Q > 0.5, got R=%g Frequency=%g Q=%g",
				name, res.R, res.Frequency, res.Q)
		}
	}

	if len(c.Resonator) == 0 && c.Tables.Resonators == "" &&
		c.Tables.Impedance == "" && c.Tables.Wake == "" {
		return fmt.Errorf("no impedance source: add a [Resonator] section or a [Tables] entry")
	}

	return nil
}

func positive(x float64) bool { return x > 0 && !math.IsInf(x, 0) }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
