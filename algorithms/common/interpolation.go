package common

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// LinearInterpolator evaluates the piecewise-linear curve through a set of
// loaded knots. Points outside [xs[0], xs[n-1]] take the fixed Left/Right
// values instead of being extrapolated.
type LinearInterpolator struct {
	curve  interp.PiecewiseLinear
	lo, hi float64
	Left   float64
	Right  float64
}

// NewLinearInterpolator fits the knots (xs, ys). xs must be strictly
// increasing and hold at least two samples.
func NewLinearInterpolator(xs, ys []float64, left, right float64) (*LinearInterpolator, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interpolation knots: %d abscissae but %d values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("interpolation knots: need at least 2 samples, got %d", len(xs))
	}
	// Fit panics on unordered abscissae
	if !AllStrictlyIncreasing(xs) {
		return nil, fmt.Errorf("interpolation knots: abscissae are not strictly increasing")
	}

	li := &LinearInterpolator{
		lo:    xs[0],
		hi:    xs[len(xs)-1],
		Left:  left,
		Right: right,
	}
	if err := li.curve.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interpolation knots: %w", err)
	}
	return li, nil
}

// Predict returns the interpolated value at x. NaN lies outside every knot
// interval and takes the Right value.
func (li *LinearInterpolator) Predict(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return li.Right
	case x < li.lo:
		return li.Left
	case x > li.hi:
		return li.Right
	default:
		return li.curve.Predict(x)
	}
}

// PredictInto evaluates every point of xs into dst, allocating dst when it
// is too short.
func (li *LinearInterpolator) PredictInto(dst, xs []float64) []float64 {
	if cap(dst) < len(xs) {
		dst = make([]float64, len(xs))
	}
	dst = dst[:len(xs)]
	for i, x := range xs {
		dst[i] = li.Predict(x)
	}
	return dst
}

// LinearInterp is the one-shot form: it interpolates (xp, fp) at every x,
// with left/right returned outside the knot range.
func LinearInterp(x, xp, fp []float64, left, right float64) ([]float64, error) {
	li, err := NewLinearInterpolator(xp, fp, left, right)
	if err != nil {
		return nil, err
	}
	return li.PredictInto(nil, x), nil
}
