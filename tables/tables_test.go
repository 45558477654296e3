package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.dat")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadResonatorsScalesUnits(t *testing.T) {
	path := writeTable(t, "1.0 1.0 1.0\n0.5 20 0.25\n")

	rs, fr, q, err := ReadResonators(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1e9, 0.5e9}, fr)
	assert.Equal(t, []float64{1, 20}, q)
	assert.Equal(t, []float64{1e6, 0.25e6}, rs)
}

func TestReadImpedanceAndWake(t *testing.T) {
	f, re, im, err := ReadImpedance(writeTable(t, "0 1 0\n1e9 2 -1\n2e9 3 -2\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1e9, 2e9}, f)
	assert.Equal(t, []float64{1, 2, 3}, re)
	assert.Equal(t, []float64{0, -1, -2}, im)

	tm, w, err := ReadWake(writeTable(t, "0 5e14\n1e-10 2e14\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1e-10}, tm)
	assert.Equal(t, []float64{5e14, 2e14}, w)
}

func TestReadMissingFile(t *testing.T) {
	_, _, _, err := ReadResonators(filepath.Join(t.TempDir(), "missing.dat"))
	assert.Error(t, err)

	_, _, err = ReadWake(filepath.Join(t.TempDir(), "missing.dat"))
	assert.Error(t, err)
}
