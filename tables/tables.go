// Package tables reads whitespace-delimited impedance and wake tables.
package tables

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

const (
	gigahertz = 1e9
	megaohm   = 1e6
)

// ReadResonators reads a resonator table with one mode per line:
// resonant frequency [GHz], quality factor, shunt impedance [MΩ]. The
// returned arrays are in Ω, Hz and plain Q, in the argument order of
// impedance.NewResonators.
func ReadResonators(path string) (rs, frequencyR, q []float64, err error) {
	cols, err := readColumns(path, 3)
	if err != nil {
		return nil, nil, nil, err
	}

	frequencyR, q, rs = cols[0], cols[1], cols[2]
	for i := range frequencyR {
		frequencyR[i] *= gigahertz
		rs[i] *= megaohm
	}
	return rs, frequencyR, q, nil
}

// ReadImpedance reads frequency [Hz], Re Z [Ω], Im Z [Ω] columns.
func ReadImpedance(path string) (frequency, reZ, imZ []float64, err error) {
	cols, err := readColumns(path, 3)
	if err != nil {
		return nil, nil, nil, err
	}
	return cols[0], cols[1], cols[2], nil
}

// ReadWake reads time [s], wake [Ω/s] columns.
func ReadWake(path string) (timeArray, wake []float64, err error) {
	cols, err := readColumns(path, 2)
	if err != nil {
		return nil, nil, err
	}
	return cols[0], cols[1], nil
}

func readColumns(path string, n int) ([][]float64, error) {
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}

	cols, err := table.ReadTable(path, idxs, nil)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(cols) != n {
		return nil, fmt.Errorf("read table %s: got %d columns, want %d", path, len(cols), n)
	}
	if len(cols[0]) == 0 {
		return nil, fmt.Errorf("read table %s: no rows", path)
	}
	return cols, nil
}
