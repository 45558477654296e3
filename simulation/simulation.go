// Package simulation wires a configured beam, its slices and every
// impedance source into a turn-by-turn tracking loop.
package simulation

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/wakefield/algorithms/common"
	"github.com/RyanBlaney/wakefield/beam"
	"github.com/RyanBlaney/wakefield/impedance"
	"github.com/RyanBlaney/wakefield/logging"
	"github.com/RyanBlaney/wakefield/tables"
)

// TurnStats summarizes one tracked turn.
type TurnStats struct {
	Turn       int
	MeanDE     float64 // mean energy offset after the kick [eV]
	SigmaDE    float64 // energy spread after the kick [eV]
	MaxVoltage float64 // max |V| of the summed induced voltage [V]
}

// Simulation owns every object of a run.
type Simulation struct {
	Config *Config

	Beam   *beam.Beam
	Slices *beam.Slices

	// WakeSources are convolved in the time domain and ImpedanceSources
	// multiplied in the frequency domain.
	WakeSources      []impedance.WakeSource
	ImpedanceSources []impedance.WakeSource

	TimeCalculator *impedance.InducedVoltageTime
	FreqCalculator *impedance.InducedVoltageFreq
	Total          *impedance.TotalInducedVoltage

	History []TurnStats

	logger logging.Logger
}

// New builds the beam, the slices, the sources and the calculators
// described by cfg. The config is validated first.
func New(cfg *Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		Config: cfg,
		logger: logging.ForComponent("simulation"),
	}

	if err := s.buildBeam(); err != nil {
		return nil, err
	}
	if err := s.buildSources(); err != nil {
		return nil, err
	}
	if err := s.buildCalculators(); err != nil {
		return nil, err
	}

	s.logger.Info("Simulation ready", logging.Fields{
		"particles":         s.Beam.NMacroparticles(),
		"bins":              s.Slices.NSlices,
		"wake_sources":      len(s.WakeSources),
		"impedance_sources": len(s.ImpedanceSources),
		"mode":              cfg.Tracking.Mode,
	})
	return s, nil
}

func (s *Simulation) buildBeam() error {
	bc := s.Config.Beam
	sc := s.Config.Slices

	center := (sc.CutLeft + sc.CutRight) / 2
	dt, dE, err := beam.Bigaussian(bc.Particles, center, bc.SigmaDt, bc.SigmaDE, uint64(bc.Seed))
	if err != nil {
		return fmt.Errorf("generate beam: %w", err)
	}
	if s.Beam, err = beam.New(dt, dE, bc.Intensity, bc.Charge); err != nil {
		return err
	}
	if s.Slices, err = beam.NewSlices(s.Beam, sc.Count, sc.CutLeft, sc.CutRight); err != nil {
		return err
	}
	return nil
}

// buildSources groups the sources by domain. Resonators carry both and go
// wherever Tracking.Mode points; tables only carry one.
func (s *Simulation) buildSources() error {
	freq := s.Config.Tracking.FrequencyDomain()
	place := func(src impedance.WakeSource) {
		if freq {
			s.ImpedanceSources = append(s.ImpedanceSources, src)
		} else {
			s.WakeSources = append(s.WakeSources, src)
		}
	}

	if len(s.Config.Resonator) > 0 {
		names := make([]string, 0, len(s.Config.Resonator))
		for name := range s.Config.Resonator {
			names = append(names, name)
		}
		sort.Strings(names)

		rs := make([]float64, len(names))
		fr := make([]float64, len(names))
		q := make([]float64, len(names))
		for i, name := range names {
			res := s.Config.Resonator[name]
			rs[i], fr[i], q[i] = res.R, res.Frequency, res.Q
		}
		res, err := impedance.NewResonators(rs, fr, q)
		if err != nil {
			return fmt.Errorf("resonator sections: %w", err)
		}
		place(res)
	}

	tc := s.Config.Tables
	if tc.Resonators != "" {
		rs, fr, q, err := tables.ReadResonators(tc.Resonators)
		if err != nil {
			return err
		}
		res, err := impedance.NewResonators(rs, fr, q)
		if err != nil {
			return fmt.Errorf("%s: %w", tc.Resonators, err)
		}
		place(res)
	}
	if tc.Impedance != "" {
		f, reZ, imZ, err := tables.ReadImpedance(tc.Impedance)
		if err != nil {
			return err
		}
		tab, err := impedance.NewImpedanceTable(f, reZ, imZ)
		if err != nil {
			return fmt.Errorf("%s: %w", tc.Impedance, err)
		}
		s.ImpedanceSources = append(s.ImpedanceSources, tab)
	}
	if tc.Wake != "" {
		t, w, err := tables.ReadWake(tc.Wake)
		if err != nil {
			return err
		}
		tab, err := impedance.NewWakeTable(t, w)
		if err != nil {
			return fmt.Errorf("%s: %w", tc.Wake, err)
		}
		s.WakeSources = append(s.WakeSources, tab)
	}
	return nil
}

func (s *Simulation) buildCalculators() error {
	mode, err := s.Config.Tracking.ConvolutionMode()
	if err != nil {
		return err
	}
	calcConfig := &impedance.CalculatorConfig{
		Mode:                mode,
		FrequencyResolution: s.Config.Tracking.FrequencyResolution,
		Logger:              s.logger,
	}

	var calcs []impedance.InducedVoltageCalculator
	if len(s.WakeSources) > 0 {
		if s.TimeCalculator, err = impedance.NewInducedVoltageTime(s.Slices, s.WakeSources, calcConfig); err != nil {
			return err
		}
		calcs = append(calcs, s.TimeCalculator)
	}
	if len(s.ImpedanceSources) > 0 {
		if s.FreqCalculator, err = impedance.NewInducedVoltageFreq(s.Slices, s.ImpedanceSources, calcConfig); err != nil {
			return err
		}
		calcs = append(calcs, s.FreqCalculator)
	}

	s.Total, err = impedance.NewTotalInducedVoltage(s.Slices, calcs, s.logger)
	return err
}

// Run tracks Tracking.Turns turns. Each turn histograms the beam, sums the
// induced voltage and kicks every particle once.
func (s *Simulation) Run() error {
	turns := s.Config.Tracking.Turns
	s.History = make([]TurnStats, 0, turns)

	for turn := range turns {
		s.Slices.Track()
		if err := s.Total.Track(s.Beam); err != nil {
			s.logger.Error(err, "Tracking failed", logging.Fields{"turn": turn})
			return fmt.Errorf("turn %d: %w", turn, err)
		}

		moments := s.Beam.Moments()
		st := TurnStats{
			Turn:       turn,
			MeanDE:     moments.MeanDE,
			SigmaDE:    moments.SigmaDE,
			MaxVoltage: common.MaxAbs(s.Total.InducedVoltage),
		}
		s.History = append(s.History, st)

		s.logger.Info("Turn tracked", logging.Fields{
			"turn":        turn,
			"mean_dE":     st.MeanDE,
			"sigma_dE":    st.SigmaDE,
			"max_voltage": st.MaxVoltage,
		})
	}
	return nil
}

// Rebin changes the slicing grid and reprocesses every calculator.
func (s *Simulation) Rebin(count int, cutLeft, cutRight float64) error {
	if err := s.Slices.Rebin(count, cutLeft, cutRight); err != nil {
		return err
	}
	if err := s.Total.Reprocess(); err != nil {
		return err
	}
	s.Config.Slices = SlicesConfig{Count: count, CutLeft: cutLeft, CutRight: cutRight}
	return nil
}
