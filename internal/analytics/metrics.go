package analytics

import (
	"math"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

// EstimateOneRepMax averages the Epley, Brzycki, and Lombardi estimators
// over every set with 1 to 10 reps. Sets outside that range carry too
// much estimation error and are skipped. Returns 0 when no set qualifies.
func EstimateOneRepMax(sets []fitness.SetPerformance) float64 {
	var estimates []float64
	for _, set := range sets {
		if set.Reps < 1 || set.Reps > 10 {
			continue
		}
		w := set.Weight
		r := float64(set.Reps)
		estimates = append(estimates,
			w*(1+r/30),          // Epley
			w/(1.0278-0.0278*r), // Brzycki
			w*math.Pow(r, 0.1),  // Lombardi
		)
	}
	if len(estimates) == 0 {
		return 0
	}
	return math.Round(stats.Mean(estimates))
}

// CalculateTrainingStressScore scores a session's training load on a
// scale where an hour at maximal effort with moderate volume lands at 100.
func CalculateTrainingStressScore(session fitness.WorkoutHistory) float64 {
	durationFactor := math.Min(session.Duration/60, 2)
	volumeFactor := math.Log(session.TotalVolume/1000 + 1)
	intensityFactor := session.AvgRPE / 10
	return math.Round(durationFactor * volumeFactor * intensityFactor * heartRateFactor(session) * 100)
}

func heartRateFactor(session fitness.WorkoutHistory) float64 {
	if len(session.HeartRateData) == 0 {
		return 1
	}
	values := make([]float64, len(session.HeartRateData))
	for i, sample := range session.HeartRateData {
		values[i] = sample.Value
	}
	return math.Min(stats.Mean(values)/150, 1.5)
}
