package history_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/history"
	"github.com/getSweetSpotcl/fitai/internal/ptr"
	"github.com/getSweetSpotcl/fitai/internal/sqlite"
	"github.com/getSweetSpotcl/fitai/internal/testhelpers"
	"github.com/google/go-cmp/cmp"
)

func newTestRepository(t *testing.T) (context.Context, *history.Repository) {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return ctx, history.NewRepository(db, logger)
}

func TestRepository_userLifecycle(t *testing.T) {
	ctx, repo := newTestRepository(t)

	userID, err := repo.CreateUser(ctx, "secret-key", "Ada", "premium", fitness.ExperienceIntermediate)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	user, err := repo.AuthenticateAPIKey(ctx, "secret-key")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	want := history.User{ID: userID, DisplayName: "Ada", Plan: "premium", Experience: fitness.ExperienceIntermediate}
	if diff := cmp.Diff(want, user); diff != "" {
		t.Errorf("authenticated user mismatch (-want +got):\n%s", diff)
	}

	if _, err = repo.AuthenticateAPIKey(ctx, "wrong-key"); !errors.Is(err, history.ErrInvalidAPIKey) {
		t.Errorf("expected ErrInvalidAPIKey, got %v", err)
	}

	if _, err = repo.GetUser(ctx, userID+1000); !errors.Is(err, history.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	constraint := fitness.Constraint{
		Type:        fitness.ConstraintInjury,
		Severity:    fitness.SeverityModerate,
		Description: "knee injury",
	}
	if err = repo.AddConstraint(ctx, userID, constraint); err != nil {
		t.Fatalf("add constraint: %v", err)
	}
	constraints, err := repo.ListConstraints(ctx, userID)
	if err != nil {
		t.Fatalf("list constraints: %v", err)
	}
	if diff := cmp.Diff([]fitness.Constraint{constraint}, constraints); diff != "" {
		t.Errorf("constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestRepository_workoutRoundTrip(t *testing.T) {
	ctx, repo := newTestRepository(t)

	userID, err := repo.CreateUser(ctx, "key", "Ada", "free", fitness.ExperienceBeginner)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	userIDString := strconv.Itoa(userID)
	sessions := []fitness.WorkoutHistory{
		{
			ID:     "w2",
			UserID: userIDString,
			Date:   time.Date(2026, 2, 9, 18, 0, 0, 0, time.UTC),
			Exercises: []fitness.ExercisePerformance{
				{
					ExerciseID: "back-squat",
					Name:       "Back Squat",
					Sets: []fitness.SetPerformance{
						{Reps: 5, Weight: 100, RPE: ptr.Ref(8.0), RestTime: ptr.Ref(120)},
						{Reps: 5, Weight: 100, RPE: ptr.Ref(8.5), RestTime: ptr.Ref(120)},
					},
					TotalVolume: 1000,
					AvgRPE:      8.25,
				},
			},
			Duration:      55,
			TotalVolume:   1000,
			AvgRPE:        8.25,
			RecoveryScore: ptr.Ref(0.7),
		},
		{
			ID:     "w1",
			UserID: userIDString,
			Date:   time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC),
			Exercises: []fitness.ExercisePerformance{
				{
					ExerciseID:  "bench-press",
					Name:        "Bench Press",
					Sets:        []fitness.SetPerformance{{Reps: 8, Weight: 60}},
					TotalVolume: 480,
					AvgRPE:      7,
				},
				{
					ExerciseID:  "barbell-row",
					Name:        "Barbell Row",
					Sets:        []fitness.SetPerformance{{Reps: 10, Weight: 50, RPE: ptr.Ref(7.0)}},
					TotalVolume: 500,
					AvgRPE:      7,
				},
			},
			Duration:    45,
			TotalVolume: 980,
			AvgRPE:      7,
		},
	}
	for _, session := range sessions {
		if err = repo.SaveWorkout(ctx, userID, session); err != nil {
			t.Fatalf("save workout %s: %v", session.ID, err)
		}
	}

	got, err := repo.ListWorkouts(ctx, userID)
	if err != nil {
		t.Fatalf("list workouts: %v", err)
	}

	// Listing orders by date ascending regardless of insertion order.
	want := []fitness.WorkoutHistory{sessions[1], sessions[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("workouts mismatch (-want +got):\n%s", diff)
	}
}

func TestRepository_exerciseCatalog(t *testing.T) {
	ctx, repo := newTestRepository(t)

	exercises, err := repo.ListExercises(ctx)
	if err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	if len(exercises) == 0 {
		t.Fatal("expected seeded exercise catalog")
	}
	for i := 1; i < len(exercises); i++ {
		if exercises[i-1].Name > exercises[i].Name {
			t.Errorf("catalog not sorted by name: %q before %q", exercises[i-1].Name, exercises[i].Name)
		}
	}

	got, err := repo.GetExercise(ctx, "bench-press")
	if err != nil {
		t.Fatalf("get exercise: %v", err)
	}
	want := fitness.Exercise{
		ID:                "bench-press",
		Name:              "Bench Press",
		Category:          "push",
		MuscleGroups:      []string{"chest", "triceps", "shoulders"},
		Equipment:         []string{"barbell", "bench"},
		Difficulty:        5,
		Compound:          true,
		Contraindications: []string{"shoulder impingement"},
		FormCues:          []string{"retract shoulder blades", "feet planted"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exercise mismatch (-want +got):\n%s", diff)
	}

	info, err := repo.GetExerciseInfo(ctx, "bench-press")
	if err != nil {
		t.Fatalf("get exercise info: %v", err)
	}
	if !strings.HasPrefix(info, "## Instrucciones") {
		t.Errorf("unexpected exercise info: %q", info)
	}

	if _, err = repo.GetExercise(ctx, "does-not-exist"); !errors.Is(err, history.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
