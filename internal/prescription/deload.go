package prescription

import (
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

// DeloadRecommendation tells the user when and how hard to back off.
type DeloadRecommendation struct {
	AverageFatigue     float64          `json:"averageFatigue"`
	FatigueTrend       fitness.Trend    `json:"fatigueTrend"`
	Severity           fitness.Severity `json:"severity"`
	Timing             string           `json:"timing"`
	DurationDays       int              `json:"durationDays"`
	VolumeReduction    int              `json:"volumeReduction"`    // percent
	IntensityReduction int              `json:"intensityReduction"` // percent
}

// RecommendDeloadWeek classifies accumulated fatigue and maps it to a
// deload timing, duration, and volume/intensity reduction.
func RecommendDeloadWeek(markers []fitness.FatigueMarker) DeloadRecommendation {
	values := make([]float64, len(markers))
	for i, marker := range markers {
		values[i] = marker.Value
	}

	average := stats.Mean(values)
	severity := fatigueSeverity(average)
	recommendation := DeloadRecommendation{
		AverageFatigue:  stats.Round2(average),
		FatigueTrend:    fatigueTrend(values),
		Severity:        severity,
		VolumeReduction: 30,
	}

	switch severity {
	case fitness.SeverityHigh:
		recommendation.Timing = "Inmediato"
		recommendation.DurationDays = 7
		recommendation.VolumeReduction = 50
		recommendation.IntensityReduction = 30
	case fitness.SeverityModerate:
		recommendation.Timing = "Próxima semana"
		recommendation.DurationDays = 5
	case fitness.SeverityLow:
		recommendation.Timing = "En 2-3 semanas"
		recommendation.DurationDays = 3
	}

	return recommendation
}

func fatigueSeverity(average float64) fitness.Severity {
	switch {
	case average > 7:
		return fitness.SeverityHigh
	case average > 5:
		return fitness.SeverityModerate
	default:
		return fitness.SeverityLow
	}
}

// fatigueTrend compares the first and last markers; a change above 10%
// in either direction counts as a trend.
func fatigueTrend(values []float64) fitness.Trend {
	if len(values) < 2 || values[0] == 0 {
		return fitness.TrendStable
	}
	change := (values[len(values)-1] - values[0]) / values[0]
	switch {
	case change > 0.1:
		return fitness.TrendIncreasing
	case change < -0.1:
		return fitness.TrendDecreasing
	default:
		return fitness.TrendStable
	}
}
