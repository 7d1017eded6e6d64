package prescription_test

import (
	"math"
	"testing"
	"time"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/prescription"
	"github.com/google/go-cmp/cmp"
)

func benchPress() fitness.Exercise {
	return fitness.Exercise{
		ID:           "bench-press",
		Name:         "Bench Press",
		Category:     "push",
		MuscleGroups: []string{"chest", "triceps", "shoulders"},
		Equipment:    []string{"barbell", "bench"},
		Difficulty:   5,
		Compound:     true,
	}
}

func testCatalog() []fitness.Exercise {
	return []fitness.Exercise{
		benchPress(),
		{
			ID:           "db-press",
			Name:         "Dumbbell Press",
			Category:     "push",
			MuscleGroups: []string{"chest", "triceps", "shoulders"},
			Equipment:    []string{"dumbbell", "bench"},
			Difficulty:   4,
			Compound:     true,
		},
		{
			ID:                "dips",
			Name:              "Dips",
			Category:          "push",
			MuscleGroups:      []string{"chest", "triceps"},
			Equipment:         []string{"dip bars"},
			Difficulty:        6,
			Compound:          true,
			Contraindications: []string{"shoulder impingement"},
		},
		{
			ID:           "pushup",
			Name:         "Push-Up",
			Category:     "push",
			MuscleGroups: []string{"chest", "triceps"},
			Equipment:    nil,
			Difficulty:   2,
			Compound:     true,
		},
		{
			ID:           "cable-fly",
			Name:         "Cable Fly",
			Category:     "push",
			MuscleGroups: []string{"chest"},
			Equipment:    []string{"cable machine"},
			Difficulty:   3,
			Compound:     false,
		},
		{
			ID:           "machine-press",
			Name:         "Machine Chest Press",
			Category:     "push",
			MuscleGroups: []string{"chest", "triceps"},
			Equipment:    []string{"machine"},
			Difficulty:   2,
			Compound:     false,
		},
		{
			ID:           "squat",
			Name:         "Back Squat",
			Category:     "legs",
			MuscleGroups: []string{"quads", "glutes"},
			Equipment:    []string{"barbell"},
			Difficulty:   6,
			Compound:     true,
		},
	}
}

func TestGenerateExerciseSubstitutions_sharedMuscleGroups(t *testing.T) {
	subs := prescription.GenerateExerciseSubstitutions(benchPress(), testCatalog(), nil)

	if len(subs) == 0 {
		t.Fatal("expected substitutions for a common exercise")
	}
	if len(subs) > 5 {
		t.Fatalf("got %d substitutions, want at most 5", len(subs))
	}
	for _, sub := range subs {
		if sub.Exercise.ID == "squat" {
			t.Errorf("squat shares no muscle groups with bench press, must not appear")
		}
		if sub.Exercise.ID == "bench-press" {
			t.Errorf("the original exercise must not substitute itself")
		}
	}
}

func TestGenerateExerciseSubstitutions_ranking(t *testing.T) {
	subs := prescription.GenerateExerciseSubstitutions(benchPress(), testCatalog(), nil)

	for i := 1; i < len(subs); i++ {
		if subs[i].Score > subs[i-1].Score {
			t.Errorf("substitutions not ranked by score: %+v", subs)
		}
	}
	// The dumbbell press matches on every similarity axis.
	if subs[0].Exercise.ID != "db-press" {
		t.Errorf("top substitution = %q, want db-press", subs[0].Exercise.ID)
	}
}

func TestGenerateExerciseSubstitutions_constraints(t *testing.T) {
	constraints := []fitness.Constraint{
		{Type: fitness.ConstraintEquipment, Severity: fitness.SeverityHigh, Description: "no dumbbell at home"},
		{Type: fitness.ConstraintInjury, Severity: fitness.SeverityModerate, Description: "shoulder impingement"},
	}

	subs := prescription.GenerateExerciseSubstitutions(benchPress(), testCatalog(), constraints)

	for _, sub := range subs {
		if sub.Exercise.ID == "db-press" {
			t.Errorf("dumbbell press requires excluded equipment, must not appear")
		}
		if sub.Exercise.ID == "dips" {
			t.Errorf("dips are contraindicated for shoulder impingement, must not appear")
		}
		// One high (0.3) and one moderate (0.2) constraint.
		if math.Abs(sub.Suitability-0.5) > 1e-9 {
			t.Errorf("Suitability = %v, want 0.5", sub.Suitability)
		}
	}
}

func TestGenerateExerciseSubstitutions_emptyCatalog(t *testing.T) {
	if subs := prescription.GenerateExerciseSubstitutions(benchPress(), nil, nil); len(subs) != 0 {
		t.Errorf("GenerateExerciseSubstitutions() = %+v, want empty", subs)
	}
}

func TestGenerateWorkoutRecommendation_strengthScheme(t *testing.T) {
	profile := fitness.UserProfile{
		UserID:          "user-1",
		ExperienceLevel: fitness.ExperienceIntermediate,
		Goals:           []string{"strength"},
	}

	got := prescription.GenerateWorkoutRecommendation(profile, testCatalog())

	if len(got.Exercises) == 0 {
		t.Fatal("expected exercises in the recommendation")
	}
	for _, p := range got.Exercises {
		if p.MinReps != 3 || p.MaxReps != 5 {
			t.Errorf("%s rep range = %d-%d, want 3-5 for strength", p.Exercise.Name, p.MinReps, p.MaxReps)
		}
		if p.Exercise.Compound && p.RestSeconds != 180 {
			t.Errorf("%s rest = %d, want 180s for compound strength work", p.Exercise.Name, p.RestSeconds)
		}
	}
}

func TestGenerateWorkoutRecommendation_duration(t *testing.T) {
	profile := fitness.UserProfile{
		UserID:          "user-1",
		ExperienceLevel: fitness.ExperienceIntermediate,
		Goals:           []string{"hypertrophy"},
	}

	got := prescription.GenerateWorkoutRecommendation(profile, testCatalog())

	var workSeconds float64
	for _, p := range got.Exercises {
		workSeconds += float64(p.Sets * (30 + p.RestSeconds))
	}
	want := 10 + workSeconds/60 + 10
	if math.Abs(got.EstimatedDuration-want) > 1e-9 {
		t.Errorf("EstimatedDuration = %v, want %v", got.EstimatedDuration, want)
	}
}

func TestGenerateWorkoutRecommendation_beginnerLimits(t *testing.T) {
	profile := fitness.UserProfile{
		UserID:          "user-1",
		ExperienceLevel: fitness.ExperienceBeginner,
		Goals:           []string{"hypertrophy"},
	}

	got := prescription.GenerateWorkoutRecommendation(profile, testCatalog())

	for _, p := range got.Exercises {
		if p.Exercise.Difficulty > 6 {
			t.Errorf("%s difficulty %v exceeds the beginner cap", p.Exercise.Name, p.Exercise.Difficulty)
		}
		if p.Sets != 3 {
			t.Errorf("%s sets = %d, want 3 for a beginner", p.Exercise.Name, p.Sets)
		}
		if p.TargetRPE != 6.5 {
			t.Errorf("%s target RPE = %v, want 6.5 for a beginner", p.Exercise.Name, p.TargetRPE)
		}
	}
	if got.DifficultyScore < 1 || got.DifficultyScore > 10 {
		t.Errorf("DifficultyScore = %v, want within [1,10]", got.DifficultyScore)
	}
}

func TestGenerateWorkoutRecommendation_emptyCatalog(t *testing.T) {
	profile := fitness.UserProfile{UserID: "user-1", ExperienceLevel: fitness.ExperienceIntermediate}

	got := prescription.GenerateWorkoutRecommendation(profile, nil)

	if len(got.Exercises) != 0 {
		t.Errorf("Exercises = %+v, want empty", got.Exercises)
	}
	if got.EstimatedDuration != 20 {
		t.Errorf("EstimatedDuration = %v, want warm-up plus cool-down only", got.EstimatedDuration)
	}
	if got.DifficultyScore != 1 {
		t.Errorf("DifficultyScore = %v, want floor of 1", got.DifficultyScore)
	}
}

func TestRecommendDeloadWeek(t *testing.T) {
	markerDate := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	markers := func(values ...float64) []fitness.FatigueMarker {
		out := make([]fitness.FatigueMarker, len(values))
		for i, v := range values {
			out[i] = fitness.FatigueMarker{Date: markerDate.AddDate(0, 0, i), Value: v, Type: "subjective"}
		}
		return out
	}

	tests := []struct {
		name string
		in   []fitness.FatigueMarker
		want prescription.DeloadRecommendation
	}{
		{
			name: "high fatigue deloads immediately",
			in:   markers(8, 8, 9),
			want: prescription.DeloadRecommendation{
				AverageFatigue:     8.33,
				FatigueTrend:       fitness.TrendIncreasing,
				Severity:           fitness.SeverityHigh,
				Timing:             "Inmediato",
				DurationDays:       7,
				VolumeReduction:    50,
				IntensityReduction: 30,
			},
		},
		{
			name: "moderate fatigue deloads next week",
			in:   markers(6, 6, 6),
			want: prescription.DeloadRecommendation{
				AverageFatigue:     6,
				FatigueTrend:       fitness.TrendStable,
				Severity:           fitness.SeverityModerate,
				Timing:             "Próxima semana",
				DurationDays:       5,
				VolumeReduction:    30,
				IntensityReduction: 0,
			},
		},
		{
			name: "low fatigue can wait",
			in:   markers(5, 4, 3),
			want: prescription.DeloadRecommendation{
				AverageFatigue:     4,
				FatigueTrend:       fitness.TrendDecreasing,
				Severity:           fitness.SeverityLow,
				Timing:             "En 2-3 semanas",
				DurationDays:       3,
				VolumeReduction:    30,
				IntensityReduction: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prescription.RecommendDeloadWeek(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RecommendDeloadWeek() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptimizeWorkoutTiming(t *testing.T) {
	// Morning sessions historically outperform evening ones.
	sessionAt := func(hour int, rpe float64) fitness.WorkoutHistory {
		return fitness.WorkoutHistory{
			UserID:      "user-1",
			Date:        time.Date(2026, time.March, 2, hour, 0, 0, 0, time.UTC),
			Duration:    60,
			TotalVolume: 5000,
			AvgRPE:      rpe,
		}
	}
	performance := []fitness.WorkoutHistory{
		sessionAt(7, 9),
		sessionAt(8, 9),
		sessionAt(19, 5),
		sessionAt(20, 5),
	}
	schedule := []fitness.TimeSlot{
		{Day: time.Monday, StartHour: 7, Duration: 60},
		{Day: time.Wednesday, StartHour: 19, Duration: 60},
		{Day: time.Friday, StartHour: 6, Duration: 60, LastResort: true},
	}

	got := prescription.OptimizeWorkoutTiming(schedule, performance)

	if got.BestPeriod != prescription.PeriodMorning {
		t.Errorf("BestPeriod = %q, want morning", got.BestPeriod)
	}
	if len(got.Slots) != 2 {
		t.Fatalf("Slots = %+v, want 2 (last-resort slot excluded)", got.Slots)
	}
	if got.Slots[0].Period != prescription.PeriodMorning {
		t.Errorf("top slot period = %q, want morning", got.Slots[0].Period)
	}
	if got.AdherencePrediction != 0.7 {
		t.Errorf("AdherencePrediction = %v, want 0.7", got.AdherencePrediction)
	}
}

func TestOptimizeWorkoutTiming_deterministic(t *testing.T) {
	schedule := []fitness.TimeSlot{
		{Day: time.Tuesday, StartHour: 13, Duration: 45},
		{Day: time.Thursday, StartHour: 18, Duration: 45},
	}

	first := prescription.OptimizeWorkoutTiming(schedule, nil)
	second := prescription.OptimizeWorkoutTiming(schedule, nil)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated calls disagree (-first +second):\n%s", diff)
	}
}
