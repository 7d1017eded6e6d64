package main

import (
	"net/http"
	"strconv"

	"github.com/getSweetSpotcl/fitai/internal/analytics"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
)

// plateausGET analyzes the stored workout history for stalled lifts.
func (app *application) plateausGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	sessions, err := app.repo.ListWorkouts(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	predictions, err := analytics.DetectTrainingPlateaus(strconv.Itoa(userID), sessions)
	if err != nil {
		app.handleDomainError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"plateaus": predictions})
}

// volumeGET recommends a weekly training volume from the stored history.
func (app *application) volumeGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	profile, err := app.profileForUser(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	sessions, err := app.repo.ListWorkouts(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	catalog, err := app.repo.ListExercises(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	recommendation, err := analytics.CalculateOptimalVolume(strconv.Itoa(userID), sessions, profile, catalog)
	if err != nil {
		app.handleDomainError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, recommendation)
}

type injuryRiskRequest struct {
	MovementPatterns []fitness.MovementPattern `json:"movementPatterns"`
}

// injuryRiskPOST scores injury risk from the stored history plus optional
// movement pattern observations supplied by the client.
func (app *application) injuryRiskPOST(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	var req injuryRiskRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	sessions, err := app.repo.ListWorkouts(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	assessment := analytics.AssessInjuryRisk(strconv.Itoa(userID), sessions, req.MovementPatterns)
	app.writeJSON(w, r, http.StatusOK, assessment)
}

type oneRepMaxRequest struct {
	Sets []fitness.SetPerformance `json:"sets"`
}

func (app *application) oneRepMaxPOST(w http.ResponseWriter, r *http.Request) {
	var req oneRepMaxRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]float64{
		"oneRepMax": analytics.EstimateOneRepMax(req.Sets),
	})
}

type trainingStressRequest struct {
	Workout fitness.WorkoutHistory `json:"workout"`
}

func (app *application) trainingStressPOST(w http.ResponseWriter, r *http.Request) {
	var req trainingStressRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]float64{
		"trainingStressScore": analytics.CalculateTrainingStressScore(req.Workout),
	})
}
