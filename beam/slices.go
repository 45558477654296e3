package beam

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/wakefield/algorithms/common"
)

// Slices bins a beam into NSlices equal bins over [CutLeft, CutRight).
// A particle at t falls in bin floor((t - CutLeft)/width); t == CutRight and
// anything outside the cuts belongs to no bin.
type Slices struct {
	Beam     *Beam
	NSlices  int
	CutLeft  float64
	CutRight float64

	Edges           []float64 // NSlices+1 bin edges [s]
	Centers         []float64 // NSlices bin centers [s]
	NMacroparticles []float64 // macro-particles per bin

	binWidth    float64
	invBinWidth float64
}

// NewSlices builds the grid and histograms the beam once.
func NewSlices(b *Beam, nSlices int, cutLeft, cutRight float64) (*Slices, error) {
	s := &Slices{Beam: b}
	if err := s.Rebin(nSlices, cutLeft, cutRight); err != nil {
		return nil, err
	}
	return s, nil
}

// Rebin replaces the grid and histograms the beam again. Calculators bound
// to the slices need a reprocess afterwards.
func (s *Slices) Rebin(nSlices int, cutLeft, cutRight float64) error {
	if nSlices <= 0 {
		return fmt.Errorf("slices: need at least one bin, got %d", nSlices)
	}
	if !(cutRight > cutLeft) || math.IsInf(cutRight-cutLeft, 0) {
		return fmt.Errorf("slices: invalid cuts [%g, %g)", cutLeft, cutRight)
	}

	s.NSlices = nSlices
	s.CutLeft = cutLeft
	s.CutRight = cutRight
	s.binWidth = (cutRight - cutLeft) / float64(nSlices)
	s.invBinWidth = float64(nSlices) / (cutRight - cutLeft)

	s.Edges = make([]float64, nSlices+1)
	for i := range s.Edges {
		s.Edges[i] = cutLeft + float64(i)*s.binWidth
	}
	s.Centers = make([]float64, nSlices)
	for i := range s.Centers {
		s.Centers[i] = (s.Edges[i] + s.Edges[i+1]) / 2
	}
	s.NMacroparticles = make([]float64, nSlices)

	s.Track()
	return nil
}

// BinWidth returns the bin spacing [s].
func (s *Slices) BinWidth() float64 {
	return s.binWidth
}

func (s *Slices) BinCenters() []float64 {
	return s.Centers
}

func (s *Slices) Profile() []float64 {
	return s.NMacroparticles
}

// BinIndex returns the bin holding t.
func (s *Slices) BinIndex(t float64) (int, bool) {
	if !(t >= s.CutLeft) || t > s.CutRight {
		return 0, false
	}
	bin := int((t - s.CutLeft) * s.invBinWidth)
	if bin >= s.NSlices {
		return 0, false
	}
	return bin, true
}

// Track recounts the macro-particles per bin.
func (s *Slices) Track() {
	for i := range s.NMacroparticles {
		s.NMacroparticles[i] = 0
	}
	if s.Beam == nil {
		return
	}

	// per-chunk histograms hold integer counts, so merging is exact
	dt := s.Beam.Dt
	partial := make([][]float64, common.NumChunks(len(dt)))
	common.ParallelChunks(len(dt), func(chunk, lo, hi int) {
		hist := make([]float64, s.NSlices)
		for p := lo; p < hi; p++ {
			if bin, ok := s.BinIndex(dt[p]); ok {
				hist[bin]++
			}
		}
		partial[chunk] = hist
	})

	for _, hist := range partial {
		for i, c := range hist {
			s.NMacroparticles[i] += c
		}
	}
}
