// Package analytics turns a user's workout history into plateau
// predictions, volume recommendations, injury risk assessments, and
// per-session load metrics. Every function is a pure computation over
// the data passed in; nothing is cached or persisted across calls.
package analytics

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

// ErrInsufficientData signals that a statistical method's minimum
// sample-size precondition is unmet. The API layer translates it into a
// "need more data" response instead of a generic failure.
var ErrInsufficientData = errors.NewSentinel("insufficient workout data")

const (
	minSessionsForPlateau = 6
	minPointsPerExercise  = 4
	plateauWindow         = 6
	minLikelihood         = 0.3
)

// PlateauPrediction estimates how likely an exercise is to stall and when.
type PlateauPrediction struct {
	ExerciseID     string        `json:"exerciseId"`
	ExerciseName   string        `json:"exerciseName"`
	Likelihood     float64       `json:"likelihood"`
	CurrentTrend   fitness.Trend `json:"currentTrend"`
	TimeframeWeeks int           `json:"timeframeWeeks"`
	Confidence     float64       `json:"confidence"`
}

// exerciseSeries is the per-exercise volume history in session date order.
type exerciseSeries struct {
	exerciseID string
	name       string
	dates      []time.Time
	volumes    []float64
}

// DetectTrainingPlateaus fits a linear trend to each exercise's recent
// volume series and scores the likelihood of a plateau. It returns
// ErrInsufficientData when the user has fewer than 6 sessions.
func DetectTrainingPlateaus(userID string, history []fitness.WorkoutHistory) ([]PlateauPrediction, error) {
	sessions := sessionsForUser(userID, history)
	if len(sessions) < minSessionsForPlateau {
		return nil, errors.Wrap(ErrInsufficientData, "detect training plateaus",
			slog.String("user_id", userID), slog.Int("sessions", len(sessions)))
	}

	var predictions []PlateauPrediction
	for _, series := range groupByExercise(sessions) {
		if len(series.volumes) < minPointsPerExercise {
			continue
		}

		recent := series.volumes
		if len(recent) > plateauWindow {
			recent = recent[len(recent)-plateauWindow:]
		}

		fit := stats.LinearRegression(recent)
		likelihood := plateauLikelihood(fit, recent, weeksSinceLastPR(series))
		if likelihood < minLikelihood {
			continue
		}

		predictions = append(predictions, PlateauPrediction{
			ExerciseID:     series.exerciseID,
			ExerciseName:   series.name,
			Likelihood:     likelihood,
			CurrentTrend:   classifyTrend(fit.Slope),
			TimeframeWeeks: plateauTimeframe(fit.Slope),
			Confidence:     stats.Round2(math.Min(float64(len(series.volumes))/8, 1) * math.Max(fit.RSquared, 0.3)),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Likelihood > predictions[j].Likelihood
	})
	return predictions, nil
}

// plateauLikelihood scores plateau signals additively and caps at 1.0.
func plateauLikelihood(fit stats.Regression, volumes []float64, weeksSincePR float64) float64 {
	var likelihood float64
	if fit.Slope < 0.05 {
		likelihood += 0.4
	}
	if fit.RSquared > 0.8 && fit.Slope < 0.1 {
		likelihood += 0.3
	}
	if stats.CoefficientOfVariation(volumes) < 0.1 {
		likelihood += 0.2
	}
	if weeksSincePR > 4 {
		likelihood += 0.3
	}
	return math.Min(likelihood, 1.0)
}

func classifyTrend(slope float64) fitness.Trend {
	switch {
	case slope > 0.1:
		return fitness.TrendIncreasing
	case slope > -0.05:
		return fitness.TrendStable
	default:
		return fitness.TrendDecreasing
	}
}

// plateauTimeframe projects weeks until the plateau lands. Slopes near
// -0.01 blow the projection up, so it is clamped to a year.
func plateauTimeframe(slope float64) int {
	weeks := math.Round((1 / (slope + 0.01)) * 2)
	if weeks < 1 || weeks > 52 {
		return 52
	}
	return int(weeks)
}

// weeksSinceLastPR measures weeks between the user's latest session and
// the last session where the exercise's volume set a new all-time high.
func weeksSinceLastPR(series exerciseSeries) float64 {
	if len(series.volumes) == 0 {
		return 0
	}
	var (
		best   float64
		prDate = series.dates[0]
	)
	for i, v := range series.volumes {
		if v > best {
			best = v
			prDate = series.dates[i]
		}
	}
	last := series.dates[len(series.dates)-1]
	return last.Sub(prDate).Hours() / (24 * 7)
}

// sessionsForUser filters history to the user's sessions in date order.
func sessionsForUser(userID string, history []fitness.WorkoutHistory) []fitness.WorkoutHistory {
	var sessions []fitness.WorkoutHistory
	for _, session := range history {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions
}

// groupByExercise collects each exercise's volume series across sessions,
// returned in first-seen order so output ordering stays deterministic.
func groupByExercise(sessions []fitness.WorkoutHistory) []exerciseSeries {
	index := make(map[string]int)
	var groups []exerciseSeries
	for _, session := range sessions {
		for _, perf := range session.Exercises {
			i, ok := index[perf.ExerciseID]
			if !ok {
				i = len(groups)
				index[perf.ExerciseID] = i
				groups = append(groups, exerciseSeries{
					exerciseID: perf.ExerciseID,
					name:       perf.Name,
					dates:      nil,
					volumes:    nil,
				})
			}
			groups[i].dates = append(groups[i].dates, session.Date)
			groups[i].volumes = append(groups[i].volumes, perf.TotalVolume)
		}
	}
	return groups
}
