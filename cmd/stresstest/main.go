// Command stresstest loads a running deployment with concurrent users
// that upload workout history and hit the analytics endpoints.
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getSweetSpotcl/fitai/internal/e2etest"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/logging"
	"github.com/getSweetSpotcl/fitai/internal/ptr"
	"github.com/getSweetSpotcl/fitai/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	defaultNumUsers            = 20
	maxConcurrentRegistrations = 10
	maxConcurrentScenarios     = 20
	scenarioTimeout            = 5 * time.Minute
	workoutHistoryWeeks        = 26 // 6 months of weekly workouts
	baseVolume                 = 2000.0
	weeklyVolumeIncrement      = 25.0
	successRateThreshold       = 95.0
	percentageMultiplier       = 100
)

// authenticatedUser holds a client with a valid session.
type authenticatedUser struct {
	client *e2etest.Client
	userID int
}

// registerUser creates a new user with its own client and session.
func registerUser(ctx context.Context, url string, userIndex int) (*authenticatedUser, error) {
	client, err := e2etest.NewClient(url)
	if err != nil {
		return nil, fmt.Errorf("creating client for user %d: %w", userIndex, err)
	}

	apiKey := fmt.Sprintf("stresstest-%d-%s", userIndex, rand.Text())
	userID, err := client.Register(ctx, apiKey, fmt.Sprintf("Stress User %d", userIndex), "free", "intermediate")
	if err != nil {
		return nil, fmt.Errorf("registering user %d: %w", userIndex, err)
	}

	return &authenticatedUser{client: client, userID: userID}, nil
}

// setupUsers registers the given number of users with bounded concurrency.
func setupUsers(ctx context.Context, url string, numUsers int, logger *slog.Logger) ([]*authenticatedUser, error) {
	logger.LogAttrs(ctx, slog.LevelInfo, "starting user registration", slog.Int("num_users", numUsers))

	users := make([]*authenticatedUser, numUsers)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentRegistrations)
	for i := range numUsers {
		group.Go(func() error {
			user, err := registerUser(groupCtx, url, i)
			if err != nil {
				return err
			}
			users[i] = user
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("setup users: %w", err)
	}
	return users, nil
}

// uploadHistory posts six months of weekly workouts for the user.
func uploadHistory(ctx context.Context, user *authenticatedUser) error {
	start := time.Now().AddDate(0, 0, -7*workoutHistoryWeeks)
	basePath := "/api/users/" + strconv.Itoa(user.userID)
	for week := range workoutHistoryWeeks {
		volume := baseVolume + weeklyVolumeIncrement*float64(week)
		session := fitness.WorkoutHistory{
			ID:     fmt.Sprintf("stress-%d-%d", user.userID, week),
			UserID: strconv.Itoa(user.userID),
			Date:   start.AddDate(0, 0, 7*week),
			Exercises: []fitness.ExercisePerformance{{
				ExerciseID: "back-squat",
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
		if err := expectStatus(user.client.PostJSON(ctx, basePath+"/workouts", session)); err != nil {
			return fmt.Errorf("post workout week %d: %w", week, err)
		}
	}
	return nil
}

// runScenario exercises the analytics and recommendation endpoints.
func runScenario(ctx context.Context, user *authenticatedUser) error {
	basePath := "/api/users/" + strconv.Itoa(user.userID)

	if err := uploadHistory(ctx, user); err != nil {
		return err
	}
	if err := expectStatus(user.client.Get(ctx, basePath+"/analytics/plateaus")); err != nil {
		return fmt.Errorf("get plateaus: %w", err)
	}
	if err := expectStatus(user.client.Get(ctx, basePath+"/analytics/volume")); err != nil {
		return fmt.Errorf("get volume: %w", err)
	}
	if err := expectStatus(user.client.PostJSON(ctx, basePath+"/analytics/injury-risk",
		map[string]any{"movementPatterns": []fitness.MovementPattern{}})); err != nil {
		return fmt.Errorf("post injury risk: %w", err)
	}
	if err := expectStatus(user.client.PostJSON(ctx, "/api/recommendations/substitutions",
		map[string]any{"exerciseId": "back-squat"})); err != nil {
		return fmt.Errorf("post substitutions: %w", err)
	}
	return nil
}

// expectStatus drains the response and fails on non-2xx status codes.
func expectStatus(resp *http.Response, err error) error {
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) < 2 { //nolint:mnd // hostname is required, user count optional.
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname> [num-users]")
		os.Exit(1)
	}

	hostname := os.Args[1]
	numUsers := defaultNumUsers
	if len(os.Args) > 2 { //nolint:mnd // optional second argument.
		var err error
		if numUsers, err = strconv.Atoi(os.Args[2]); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "invalid num-users", slog.String("arg", os.Args[2]))
			os.Exit(1)
		}
	}

	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	probe, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = probe.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	start := time.Now()
	users, err := setupUsers(ctx, url, numUsers, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error setting up users", slog.Any("error", err))
		os.Exit(1)
	}

	var failures atomic.Int64
	scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
	defer cancel()
	group, groupCtx := errgroup.WithContext(scenarioCtx)
	group.SetLimit(maxConcurrentScenarios)
	for _, user := range users {
		group.Go(func() error {
			if scenarioErr := runScenario(groupCtx, user); scenarioErr != nil {
				failures.Add(1)
				logger.LogAttrs(groupCtx, slog.LevelWarn, "scenario failed",
					slog.Int("user_id", user.userID), slog.Any("error", scenarioErr))
			}
			// Individual failures count against the success rate instead of
			// aborting the run.
			return nil
		})
	}
	_ = group.Wait()

	successRate := float64(numUsers-int(failures.Load())) / float64(numUsers) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "stress test finished",
		slog.Float64("success_rate", successRate),
		slog.Int("num_users", numUsers),
		slog.Duration("duration", time.Since(start)))

	if successRate < successRateThreshold {
		logger.LogAttrs(ctx, slog.LevelError, "success rate below threshold",
			slog.Float64("threshold", successRateThreshold))
		os.Exit(1)
	}
	os.Exit(0)
}
