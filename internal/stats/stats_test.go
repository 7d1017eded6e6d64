package stats_test

import (
	"math"
	"testing"

	"github.com/getSweetSpotcl/fitai/internal/stats"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLinearRegression(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   stats.Regression
	}{
		{
			name:   "perfect line",
			values: []float64{1, 2, 3, 4},
			want:   stats.Regression{Slope: 1, Intercept: 1, RSquared: 1},
		},
		{
			name:   "empty",
			values: nil,
			want:   stats.Regression{Slope: 0, Intercept: 0, RSquared: 0},
		},
		{
			name:   "single point",
			values: []float64{5},
			want:   stats.Regression{Slope: 0, Intercept: 5, RSquared: 0},
		},
		{
			name:   "constant series",
			values: []float64{3, 3, 3, 3},
			want:   stats.Regression{Slope: 0, Intercept: 3, RSquared: 0},
		},
		{
			name:   "descending line",
			values: []float64{4, 3, 2, 1},
			want:   stats.Regression{Slope: -1, Intercept: 4, RSquared: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.LinearRegression(tt.values)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("LinearRegression() mismatch (-want +got):\n%s", diff)
			}
			if math.IsNaN(got.Slope) || math.IsNaN(got.RSquared) {
				t.Errorf("LinearRegression() produced NaN: %+v", got)
			}
		})
	}
}

func TestMean(t *testing.T) {
	if got := stats.Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got, want := stats.Mean([]float64{2, 4, 6}), 4.0; got != want {
		t.Errorf("Mean() = %v, want %v", got, want)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "zero mean", values: []float64{-1, 1}, want: 0},
		{name: "constant", values: []float64{5, 5, 5}, want: 0},
		// mean 10, sample stddev sqrt(2/1) over {9,11} is sqrt(2).
		{name: "spread", values: []float64{9, 11}, want: math.Sqrt2 / 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.CoefficientOfVariation(tt.values)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CoefficientOfVariation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMovingAverage(t *testing.T) {
	got := stats.MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("MovingAverage() mismatch (-want +got):\n%s", diff)
	}

	if got := stats.MovingAverage(nil, 3); got != nil {
		t.Errorf("MovingAverage(nil) = %v, want nil", got)
	}
	if got := stats.MovingAverage([]float64{1, 2}, 0); got != nil {
		t.Errorf("MovingAverage(window=0) = %v, want nil", got)
	}
}

func TestRound2(t *testing.T) {
	if got, want := stats.Round2(0.12499), 0.12; got != want {
		t.Errorf("Round2() = %v, want %v", got, want)
	}
	if got, want := stats.Round2(0.125), 0.13; got != want {
		t.Errorf("Round2() = %v, want %v", got, want)
	}
}
