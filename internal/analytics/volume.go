package analytics

import (
	"log/slog"
	"math"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

const (
	minSessionsForVolume = 4
	volumeWindow         = 8
	adaptationWindow     = 6
	defaultAdaptation    = 0.5
)

// VolumeRecommendation is the suggested weekly training volume and the
// signals it was derived from.
type VolumeRecommendation struct {
	CurrentVolume      float64               `json:"currentVolume"`
	RecommendedVolume  float64               `json:"recommendedVolume"`
	Adjustment         float64               `json:"adjustment"`
	RecoveryScore      float64               `json:"recoveryScore"`
	AdaptationRate     float64               `json:"adaptationRate"`
	VolumeTrend        fitness.Trend         `json:"volumeTrend"`
	Periodization      fitness.Periodization `json:"periodization"`
	MuscleGroupVolumes map[string]float64    `json:"muscleGroupVolumes"`
}

// CalculateOptimalVolume derives a recommended training volume from the
// user's recent sessions, recovery signals, and adaptation rate. The
// catalog supplies muscle-group tags for the per-group volume breakdown.
// It returns ErrInsufficientData below 4 sessions.
func CalculateOptimalVolume(
	userID string,
	history []fitness.WorkoutHistory,
	profile fitness.UserProfile,
	catalog []fitness.Exercise,
) (VolumeRecommendation, error) {
	sessions := sessionsForUser(userID, history)
	if len(sessions) < minSessionsForVolume {
		return VolumeRecommendation{}, errors.Wrap(ErrInsufficientData, "calculate optimal volume",
			slog.String("user_id", userID), slog.Int("sessions", len(sessions)))
	}

	recent := sessions
	if len(recent) > volumeWindow {
		recent = recent[len(recent)-volumeWindow:]
	}

	volumes := make([]float64, len(recent))
	for i, session := range recent {
		volumes[i] = session.TotalVolume
	}

	currentVolume := stats.Mean(volumes)
	fit := stats.LinearRegression(volumes)
	recovery := recoveryScore(recent)
	adaptation := adaptationRate(sessions)

	adjustment := volumeAdjustment(recovery, adaptation, profile.ExperienceLevel)

	return VolumeRecommendation{
		CurrentVolume:      currentVolume,
		RecommendedVolume:  math.Round(currentVolume * (1 + adjustment)),
		Adjustment:         adjustment,
		RecoveryScore:      stats.Round2(recovery),
		AdaptationRate:     stats.Round2(adaptation),
		VolumeTrend:        classifyTrend(fit.Slope),
		Periodization:      periodizationFor(adaptation),
		MuscleGroupVolumes: muscleGroupVolumes(recent, catalog),
	}, nil
}

// volumeAdjustment composes the fractional volume delta from recovery and
// adaptation signals, then applies the experience-level guardrails.
func volumeAdjustment(recovery, adaptation float64, level fitness.ExperienceLevel) float64 {
	var adjustment float64
	switch {
	case recovery > 0.8:
		adjustment += 0.10
	case recovery < 0.4:
		adjustment -= 0.15
	}
	switch {
	case adaptation > 0.3:
		adjustment += 0.05
	case adaptation < 0.1:
		adjustment -= 0.10
	}

	switch level {
	case fitness.ExperienceBeginner:
		adjustment = math.Min(adjustment, 0.15)
	case fitness.ExperienceAdvanced:
		adjustment *= 0.7
	case fitness.ExperienceIntermediate:
	}
	return adjustment
}

// recoveryScore averages explicit recovery scores when the sessions carry
// them, otherwise estimates recovery from perceived exertion.
func recoveryScore(sessions []fitness.WorkoutHistory) float64 {
	var explicit []float64
	for _, session := range sessions {
		if session.RecoveryScore != nil {
			explicit = append(explicit, *session.RecoveryScore)
		}
	}
	if len(explicit) > 0 {
		return stats.Mean(explicit)
	}

	estimates := make([]float64, len(sessions))
	for i, session := range sessions {
		estimates[i] = math.Max(0, 1-session.AvgRPE/10*0.6)
	}
	return stats.Mean(estimates)
}

// adaptationRate compares the mean volume of the last 6 sessions against
// the 6 before them. Short histories fall back to a neutral 0.5.
func adaptationRate(sessions []fitness.WorkoutHistory) float64 {
	if len(sessions) < 2*adaptationWindow {
		return defaultAdaptation
	}

	recent := sessions[len(sessions)-adaptationWindow:]
	older := sessions[len(sessions)-2*adaptationWindow : len(sessions)-adaptationWindow]

	olderAvg := meanVolume(older)
	if olderAvg == 0 {
		return defaultAdaptation
	}
	rate := (meanVolume(recent) - olderAvg) / olderAvg
	return math.Min(rate, 1)
}

func meanVolume(sessions []fitness.WorkoutHistory) float64 {
	volumes := make([]float64, len(sessions))
	for i, session := range sessions {
		volumes[i] = session.TotalVolume
	}
	return stats.Mean(volumes)
}

func periodizationFor(adaptation float64) fitness.Periodization {
	switch {
	case adaptation > 0.3:
		return fitness.PeriodizationLinear
	case adaptation < 0.1:
		return fitness.PeriodizationUndulating
	default:
		return fitness.PeriodizationBlock
	}
}

// muscleGroupVolumes aggregates set volume by each exercise's tagged
// muscle groups. Exercises missing from the catalog, or an empty catalog,
// land in a single "total" bucket so the breakdown always sums to the
// observed volume.
func muscleGroupVolumes(sessions []fitness.WorkoutHistory, catalog []fitness.Exercise) map[string]float64 {
	tags := make(map[string][]string, len(catalog))
	for _, exercise := range catalog {
		tags[exercise.ID] = exercise.MuscleGroups
	}

	out := make(map[string]float64)
	for _, session := range sessions {
		for _, perf := range session.Exercises {
			groups := tags[perf.ExerciseID]
			if len(groups) == 0 {
				out["total"] += perf.TotalVolume
				continue
			}
			share := perf.TotalVolume / float64(len(groups))
			for _, group := range groups {
				out[group] += share
			}
		}
	}
	return out
}
