// Package stats provides the small set of numeric routines shared by the
// analytics and prescription code: least-squares trend fitting over an
// index, coefficient of variation, and moving averages.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Regression holds an ordinary least-squares fit of values against their
// index (0, 1, 2, ...).
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// LinearRegression fits values against their index. Degenerate inputs
// (fewer than two points, constant series, non-finite results) return a
// neutral fit of slope 0 and R² 0 instead of NaN or Inf.
func LinearRegression(values []float64) Regression {
	n := len(values)
	if n < 2 {
		return Regression{Slope: 0, Intercept: meanOrZero(values), RSquared: 0}
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, values, nil, false)
	rSquared := stat.RSquared(xs, values, nil, intercept, slope)

	if !isFinite(slope) || !isFinite(intercept) {
		return Regression{Slope: 0, Intercept: meanOrZero(values), RSquared: 0}
	}
	if !isFinite(rSquared) {
		// Constant series fit perfectly but have zero explained variance.
		rSquared = 0
	}

	return Regression{Slope: slope, Intercept: intercept, RSquared: rSquared}
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	return meanOrZero(values)
}

// CoefficientOfVariation returns the ratio of the standard deviation to
// the mean, or 0 when the mean is 0 or the input has fewer than two points.
func CoefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := stat.Mean(values, nil)
	if mean == 0 {
		return 0
	}
	stddev := math.Sqrt(stat.Variance(values, nil))
	cov := stddev / math.Abs(mean)
	if !isFinite(cov) {
		return 0
	}
	return cov
}

// MovingAverage returns the trailing moving average of values with the
// given window. Windows larger than the prefix shrink to the available
// points so the output has the same length as the input.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 || len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
			out[i] = sum / float64(window)
		} else {
			out[i] = sum / float64(i+1)
		}
	}
	return out
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
