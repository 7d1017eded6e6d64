package main

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/getSweetSpotcl/fitai/internal/e2etest"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/ptr"
	"github.com/getSweetSpotcl/fitai/internal/testhelpers"
)

// testLookupEnv configures the server for in-process testing with a
// dynamically allocated port and an in-memory database.
func testLookupEnv(key string) (string, bool) {
	env := map[string]string{
		"FITAI_ADDR":           "localhost:0",
		"FITAI_SQLITE_URL":     ":memory:",
		"FITAI_SECURE_COOKIES": "false",
		"OPENAI_API_KEY":       "",
	}
	value, ok := env[key]
	return value, ok
}

func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("start server: %v", err)
	}
	return server
}

// registerTestUser creates and signs in an account, returning its ID.
func registerTestUser(t *testing.T, server *e2etest.Server, plan string) int {
	t.Helper()
	userID, err := server.Client().Register(t.Context(), "test-api-key-"+t.Name(), "Test User", plan, "intermediate")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return userID
}

// postWeeklyWorkouts stores count weekly sessions of the given exercise with
// per-session volumes derived from the volumes slice (repeating last value).
func postWeeklyWorkouts(t *testing.T, server *e2etest.Server, userID int, exerciseID string, volumes []float64) {
	t.Helper()
	ctx := t.Context()
	start := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC)
	for i, volume := range volumes {
		session := fitness.WorkoutHistory{
			ID:     "session-" + t.Name() + "-" + strconv.Itoa(i),
			UserID: strconv.Itoa(userID),
			Date:   start.AddDate(0, 0, 7*i),
			Exercises: []fitness.ExercisePerformance{{
				ExerciseID: exerciseID,
				Sets: []fitness.SetPerformance{
					{Reps: 5, Weight: volume / 10, RPE: ptr.Ref(7.5), RestTime: ptr.Ref(120)},
					{Reps: 5, Weight: volume / 10, RPE: ptr.Ref(8.0), RestTime: ptr.Ref(120)},
				},
				TotalVolume: volume,
				AvgRPE:      7.75,
			}},
			Duration:    60,
			TotalVolume: volume,
			AvgRPE:      7.75,
		}
		resp, err := server.Client().PostJSON(ctx, "/api/users/"+strconv.Itoa(userID)+"/workouts", session)
		if err != nil {
			t.Fatalf("post workout: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("post workout: unexpected status code %d", resp.StatusCode)
		}
	}
}

func Test_application_healthy(t *testing.T) {
	server := startTestServer(t)

	resp, err := server.Client().Get(t.Context(), "/api/healthy")
	if err != nil {
		t.Fatalf("get healthy: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}
