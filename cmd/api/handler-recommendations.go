package main

import (
	"net/http"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/prescription"
)

type substitutionsRequest struct {
	ExerciseID  string               `json:"exerciseId"`
	Constraints []fitness.Constraint `json:"constraints"`
}

// substitutionsPOST suggests catalog alternatives for an exercise. When the
// request carries no constraints, the user's stored constraints apply.
func (app *application) substitutionsPOST(w http.ResponseWriter, r *http.Request) {
	var req substitutionsRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	original, err := app.repo.GetExercise(ctx, req.ExerciseID)
	if err != nil {
		app.handleDomainError(w, r, err)
		return
	}
	catalog, err := app.repo.ListExercises(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	constraints := req.Constraints
	if len(constraints) == 0 {
		user, userErr := app.sessionUser(r)
		if userErr != nil {
			app.serverError(w, r, userErr)
			return
		}
		if constraints, err = app.repo.ListConstraints(ctx, user.ID); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	substitutions := prescription.GenerateExerciseSubstitutions(original, catalog, constraints)
	app.writeJSON(w, r, http.StatusOK, map[string]any{"substitutions": substitutions})
}

type workoutRecommendationRequest struct {
	Goals       []string             `json:"goals"`
	Constraints []fitness.Constraint `json:"constraints"`
}

// workoutRecommendationPOST prescribes a session from the user's profile.
// Goals and constraints in the request override the stored ones.
func (app *application) workoutRecommendationPOST(w http.ResponseWriter, r *http.Request) {
	var req workoutRecommendationRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := app.sessionUser(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	profile, err := app.profileForUser(ctx, user.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if len(req.Goals) > 0 {
		profile.Goals = req.Goals
	}
	if len(req.Constraints) > 0 {
		profile.Constraints = req.Constraints
	}

	catalog, err := app.repo.ListExercises(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	recommendation := prescription.GenerateWorkoutRecommendation(profile, catalog)
	app.writeJSON(w, r, http.StatusOK, recommendation)
}

type deloadRequest struct {
	FatigueMarkers []fitness.FatigueMarker `json:"fatigueMarkers"`
}

func (app *application) deloadPOST(w http.ResponseWriter, r *http.Request) {
	var req deloadRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	app.writeJSON(w, r, http.StatusOK, prescription.RecommendDeloadWeek(req.FatigueMarkers))
}

type scheduleRequest struct {
	AvailableSlots []fitness.TimeSlot `json:"availableSlots"`
}

// schedulePOST ranks the user's available time slots by historical
// performance at that time of day.
func (app *application) schedulePOST(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	var req scheduleRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	sessions, err := app.repo.ListWorkouts(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	recommendation := prescription.OptimizeWorkoutTiming(req.AvailableSlots, sessions)
	app.writeJSON(w, r, http.StatusOK, recommendation)
}
