package main

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/getSweetSpotcl/fitai/internal/e2etest"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/prescription"
)

func Test_application_substitutions(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	userID := registerTestUser(t, server, "free")

	// A stored injury constraint is honored when the request carries none.
	resp, err := client.PostJSON(ctx, "/api/users/"+strconv.Itoa(userID)+"/constraints", fitness.Constraint{
		Type:        fitness.ConstraintInjury,
		Severity:    fitness.SeverityModerate,
		Description: "shoulder impingement",
	})
	if err != nil {
		t.Fatalf("post constraint: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("post constraint: unexpected status code %d", resp.StatusCode)
	}

	resp, err = client.PostJSON(ctx, "/api/recommendations/substitutions", map[string]any{
		"exerciseId": "bench-press",
	})
	if err != nil {
		t.Fatalf("post substitutions: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var body struct {
		Substitutions []prescription.Substitution `json:"substitutions"`
	}
	if err = e2etest.DecodeJSON(resp, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Substitutions) == 0 {
		t.Fatal("expected substitution candidates")
	}
	for _, substitution := range body.Substitutions {
		if substitution.Exercise.ID == "bench-press" {
			t.Error("substitutions must not contain the original exercise")
		}
		// Overhead press is contraindicated for shoulder impingement.
		if substitution.Exercise.ID == "overhead-press" {
			t.Error("expected overhead press to be excluded by the injury constraint")
		}
	}

	// An unknown exercise is a 404.
	resp, err = client.PostJSON(ctx, "/api/recommendations/substitutions", map[string]any{
		"exerciseId": "does-not-exist",
	})
	if err != nil {
		t.Fatalf("post substitutions: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
}

func Test_application_workoutRecommendation(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	registerTestUser(t, server, "free")

	resp, err := client.PostJSON(ctx, "/api/recommendations/workout", map[string]any{
		"goals": []string{"strength"},
	})
	if err != nil {
		t.Fatalf("post workout recommendation: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var recommendation prescription.WorkoutRecommendation
	if err = e2etest.DecodeJSON(resp, &recommendation); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(recommendation.Exercises) == 0 {
		t.Fatal("expected prescribed exercises")
	}
	for _, exercise := range recommendation.Exercises {
		if exercise.MinReps < 3 || exercise.MaxReps > 5 {
			t.Errorf("expected strength rep range, got %d-%d for %s",
				exercise.MinReps, exercise.MaxReps, exercise.Exercise.Name)
		}
	}
	if recommendation.EstimatedDuration <= 20 {
		t.Errorf("expected warmup, work, and cooldown time, got %v", recommendation.EstimatedDuration)
	}
}

func Test_application_deload(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	registerTestUser(t, server, "free")

	markers := []fitness.FatigueMarker{
		{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Value: 8, Type: "rpe"},
		{Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), Value: 8.5, Type: "rpe"},
		{Date: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), Value: 9, Type: "rpe"},
	}
	resp, err := client.PostJSON(ctx, "/api/recommendations/deload", map[string]any{
		"fatigueMarkers": markers,
	})
	if err != nil {
		t.Fatalf("post deload: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var recommendation prescription.DeloadRecommendation
	if err = e2etest.DecodeJSON(resp, &recommendation); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if recommendation.Severity != fitness.SeverityHigh {
		t.Errorf("expected high severity, got %q", recommendation.Severity)
	}
	if recommendation.Timing != "Inmediato" {
		t.Errorf("expected immediate deload, got %q", recommendation.Timing)
	}
}

func Test_application_schedule(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	userID := registerTestUser(t, server, "free")

	postWeeklyWorkouts(t, server, userID, "back-squat", []float64{2000, 2000, 2000, 2000})

	slots := []fitness.TimeSlot{
		{Day: time.Monday, StartHour: 18, Duration: 60},
		{Day: time.Thursday, StartHour: 7, Duration: 60},
		{Day: time.Saturday, StartHour: 21, Duration: 45, LastResort: true},
	}
	resp, err := client.PostJSON(ctx, "/api/users/"+strconv.Itoa(userID)+"/recommendations/schedule", map[string]any{
		"availableSlots": slots,
	})
	if err != nil {
		t.Fatalf("post schedule: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var recommendation prescription.ScheduleRecommendation
	if err = e2etest.DecodeJSON(resp, &recommendation); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(recommendation.Slots) != 2 {
		t.Fatalf("expected last-resort slot to be excluded, got %d slots", len(recommendation.Slots))
	}
	if recommendation.AdherencePrediction != 0.7 {
		t.Errorf("expected adherence 0.7 for 2 slots, got %v", recommendation.AdherencePrediction)
	}
}
