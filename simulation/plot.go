package simulation

import (
	"fmt"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	panelWidth  = 6 * vg.Inch
	panelHeight = 3 * vg.Inch
)

// WritePlot stacks the total wake, the total impedance magnitude and the
// induced voltage of the last turn into one image. The format follows the
// file extension (png, jpg, svg, pdf, ...).
func (s *Simulation) WritePlot(path string) error {
	if s.Total.InducedVoltage == nil {
		if _, err := s.Total.InducedVoltageSum(s.Beam.IntensityScale()); err != nil {
			return err
		}
	}

	var panels []*plot.Plot
	if tc := s.TimeCalculator; tc != nil {
		p, err := linePlot("Total wake", "t [s]", "W [Ω/s]", tc.TimeArray, tc.TotalWake)
		if err != nil {
			return err
		}
		panels = append(panels, p)
	}
	if fc := s.FreqCalculator; fc != nil {
		mag := make([]float64, len(fc.TotalImpedance))
		for i, z := range fc.TotalImpedance {
			mag[i] = cmplx.Abs(z)
		}
		p, err := linePlot("Total impedance", "f [Hz]", "|Z| [Ω]", fc.Frequencies, mag)
		if err != nil {
			return err
		}
		panels = append(panels, p)
	}
	p, err := linePlot("Induced voltage", "t [s]", "V [V]", s.Slices.BinCenters(), s.Total.InducedVoltage)
	if err != nil {
		return err
	}
	panels = append(panels, p)

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	c, err := draw.NewFormattedCanvas(panelWidth, panelHeight*vg.Length(len(panels)), format)
	if err != nil {
		return fmt.Errorf("plot %s: %w", path, err)
	}

	grid := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		grid[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 3 * vg.Millimeter,
	}
	canvases := plot.Align(grid, tiles, draw.New(c))
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("plot %s: %w", path, err)
	}
	return f.Close()
}

func linePlot(title, xLabel, yLabel string, xs, ys []float64) (*plot.Plot, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("plot %s: %d x values for %d y values", title, len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plot %s: %w", title, err)
	}
	p.Add(line, plotter.NewGrid())
	return p, nil
}
