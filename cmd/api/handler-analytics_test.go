package main

import (
	"math"
	"net/http"
	"strconv"
	"testing"

	"github.com/getSweetSpotcl/fitai/internal/analytics"
	"github.com/getSweetSpotcl/fitai/internal/e2etest"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
)

func Test_application_plateaus(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	userID := registerTestUser(t, server, "free")
	userPath := "/api/users/" + strconv.Itoa(userID)

	// Too little history is rejected as unprocessable.
	resp, err := client.Get(ctx, userPath+"/analytics/plateaus")
	if err != nil {
		t.Fatalf("get plateaus: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422 without history, got %d", resp.StatusCode)
	}

	// A stalled lift shows up as a plateau.
	postWeeklyWorkouts(t, server, userID, "back-squat",
		[]float64{3000, 3000, 3000, 3000, 3000, 3000, 3000, 3000})

	resp, err = client.Get(ctx, userPath+"/analytics/plateaus")
	if err != nil {
		t.Fatalf("get plateaus: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var body struct {
		Plateaus []analytics.PlateauPrediction `json:"plateaus"`
	}
	if err = e2etest.DecodeJSON(resp, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Plateaus) != 1 {
		t.Fatalf("expected 1 plateau, got %d", len(body.Plateaus))
	}
	plateau := body.Plateaus[0]
	if plateau.ExerciseID != "back-squat" {
		t.Errorf("unexpected exercise: %q", plateau.ExerciseID)
	}
	if plateau.Likelihood < 0.7 {
		t.Errorf("expected high plateau likelihood, got %v", plateau.Likelihood)
	}
}

func Test_application_volume(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	userID := registerTestUser(t, server, "free")
	userPath := "/api/users/" + strconv.Itoa(userID)

	postWeeklyWorkouts(t, server, userID, "back-squat", []float64{2000, 2100, 2200, 2300})

	resp, err := client.Get(ctx, userPath+"/analytics/volume")
	if err != nil {
		t.Fatalf("get volume: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var recommendation analytics.VolumeRecommendation
	if err = e2etest.DecodeJSON(resp, &recommendation); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	wantCurrent := (2000.0 + 2100 + 2200 + 2300) / 4
	if math.Abs(recommendation.CurrentVolume-wantCurrent) > 1e-9 {
		t.Errorf("expected current volume %v, got %v", wantCurrent, recommendation.CurrentVolume)
	}
	// The fixture catalog attributes squat volume to its muscle groups.
	if recommendation.MuscleGroupVolumes["quads"] == 0 {
		t.Errorf("expected quads volume attribution, got %v", recommendation.MuscleGroupVolumes)
	}
}

func Test_application_injuryRisk(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	userID := registerTestUser(t, server, "free")
	userPath := "/api/users/" + strconv.Itoa(userID)

	postWeeklyWorkouts(t, server, userID, "deadlift", []float64{2000, 2000, 2000, 2000, 2000, 2000})

	request := map[string]any{
		"movementPatterns": []fitness.MovementPattern{{
			Pattern:     "hinge",
			Consistency: 0.4,
			Asymmetries: []string{"hip shift"},
		}},
	}
	resp, err := client.PostJSON(ctx, userPath+"/analytics/injury-risk", request)
	if err != nil {
		t.Fatalf("post injury risk: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var assessment analytics.RiskAssessment
	if err = e2etest.DecodeJSON(resp, &assessment); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(assessment.RiskFactors) != 2 {
		t.Errorf("expected 2 movement risk factors, got %+v", assessment.RiskFactors)
	}
	for _, factor := range assessment.RiskFactors {
		if factor.Type != fitness.RiskBiomechanical {
			t.Errorf("expected biomechanical factor, got %q", factor.Type)
		}
	}
}

func Test_application_oneRepMax(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()
	registerTestUser(t, server, "free")

	resp, err := client.PostJSON(ctx, "/api/analytics/one-rep-max", map[string]any{
		"sets": []fitness.SetPerformance{{Reps: 5, Weight: 100}},
	})
	if err != nil {
		t.Fatalf("post one rep max: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var body struct {
		OneRepMax float64 `json:"oneRepMax"`
	}
	if err = e2etest.DecodeJSON(resp, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.OneRepMax != 116 {
		t.Errorf("expected estimated max 116, got %v", body.OneRepMax)
	}
}
