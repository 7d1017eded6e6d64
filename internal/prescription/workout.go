package prescription

import (
	"math"
	"sort"
	"strings"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/stats"
)

const (
	warmupMinutes   = 10
	cooldownMinutes = 10
	setupSeconds    = 30
)

// ExercisePrescription is one exercise with its prescribed loading scheme.
type ExercisePrescription struct {
	Exercise    fitness.Exercise `json:"exercise"`
	Sets        int              `json:"sets"`
	MinReps     int              `json:"minReps"`
	MaxReps     int              `json:"maxReps"`
	RestSeconds int              `json:"restSeconds"`
	TargetRPE   float64          `json:"targetRpe"`
}

// WorkoutRecommendation is a full prescribed session.
type WorkoutRecommendation struct {
	Exercises         []ExercisePrescription `json:"exercises"`
	EstimatedDuration float64                `json:"estimatedDuration"` // minutes
	DifficultyScore   float64                `json:"difficultyScore"`   // 1-10
}

// GenerateWorkoutRecommendation selects suitable catalog exercises for
// the profile and prescribes sets, reps, rest, and target RPE from the
// user's primary goal and experience level.
func GenerateWorkoutRecommendation(
	profile fitness.UserProfile,
	catalog []fitness.Exercise,
) WorkoutRecommendation {
	exercises := selectExercises(profile, catalog)

	prescriptions := make([]ExercisePrescription, 0, len(exercises))
	goal := primaryGoal(profile.Goals)
	for _, exercise := range exercises {
		prescriptions = append(prescriptions, prescribe(exercise, goal, profile.ExperienceLevel))
	}

	return WorkoutRecommendation{
		Exercises:         prescriptions,
		EstimatedDuration: estimatedDuration(prescriptions),
		DifficultyScore:   difficultyScore(exercises, profile.ExperienceLevel),
	}
}

// selectExercises filters the catalog by constraints and experience
// level, prefers compound movements, and caps the session at 6 exercises.
func selectExercises(profile fitness.UserProfile, catalog []fitness.Exercise) []fitness.Exercise {
	maxDifficulty := 10.0
	if profile.ExperienceLevel == fitness.ExperienceBeginner {
		maxDifficulty = 6
	}

	var selected []fitness.Exercise
	for _, exercise := range catalog {
		if exercise.Difficulty > maxDifficulty {
			continue
		}
		if excludedByConstraints(exercise, profile.Constraints) {
			continue
		}
		selected = append(selected, exercise)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Compound != selected[j].Compound {
			return selected[i].Compound
		}
		return selected[i].Difficulty > selected[j].Difficulty
	})
	if len(selected) > 6 {
		selected = selected[:6]
	}
	return selected
}

// prescribe maps goal and experience onto a loading scheme.
func prescribe(exercise fitness.Exercise, goal string, level fitness.ExperienceLevel) ExercisePrescription {
	p := ExercisePrescription{
		Exercise:    exercise,
		Sets:        4,
		MinReps:     8,
		MaxReps:     12,
		RestSeconds: 90,
		TargetRPE:   7.5,
	}

	switch goal {
	case "strength":
		p.MinReps, p.MaxReps = 3, 5
		p.RestSeconds = 120
		if exercise.Compound {
			p.RestSeconds = 180
		}
	case "endurance":
		p.MinReps, p.MaxReps = 12, 15
		p.RestSeconds = 60
	default: // hypertrophy
	}

	switch level {
	case fitness.ExperienceBeginner:
		p.Sets = 3
		p.TargetRPE = 6.5
	case fitness.ExperienceAdvanced:
		p.Sets = 5
		p.TargetRPE = 8.5
	case fitness.ExperienceIntermediate:
	}

	return p
}

// primaryGoal picks the first recognized goal, defaulting to hypertrophy.
func primaryGoal(goals []string) string {
	for _, goal := range goals {
		switch strings.ToLower(goal) {
		case "strength", "endurance", "hypertrophy":
			return strings.ToLower(goal)
		}
	}
	return "hypertrophy"
}

// estimatedDuration books warm-up and cool-down around the working sets,
// charging each set its rest plus setup time.
func estimatedDuration(prescriptions []ExercisePrescription) float64 {
	var workSeconds float64
	for _, p := range prescriptions {
		workSeconds += float64(p.Sets * (setupSeconds + p.RestSeconds))
	}
	return warmupMinutes + workSeconds/60 + cooldownMinutes
}

// difficultyScore averages exercise difficulty with a 20% adjustment for
// experience, clamped to the 1-10 scale.
func difficultyScore(exercises []fitness.Exercise, level fitness.ExperienceLevel) float64 {
	if len(exercises) == 0 {
		return 1
	}
	difficulties := make([]float64, len(exercises))
	for i, exercise := range exercises {
		difficulties[i] = exercise.Difficulty
	}
	score := stats.Mean(difficulties)

	switch level {
	case fitness.ExperienceBeginner:
		score *= 0.8
	case fitness.ExperienceAdvanced:
		score *= 1.2
	case fitness.ExperienceIntermediate:
	}

	return stats.Round2(math.Min(math.Max(score, 1), 10))
}
