package main

import (
	"net/http"

	"github.com/getSweetSpotcl/fitai/internal/fitness"
)

// workoutsPOST stores a completed workout session.
func (app *application) workoutsPOST(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	var session fitness.WorkoutHistory
	if !app.decodeJSON(w, r, &session) {
		return
	}
	if session.ID == "" || session.Date.IsZero() {
		app.errorResponse(w, r, http.StatusBadRequest, "error.bad_request")
		return
	}

	if err := app.repo.SaveWorkout(r.Context(), userID, session); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, map[string]string{"id": session.ID})
}

// workoutsGET lists the user's workout history ordered by date.
func (app *application) workoutsGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	sessions, err := app.repo.ListWorkouts(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []fitness.WorkoutHistory{}
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"workouts": sessions})
}
