package main

import (
	"net/http"
)

// routineGeneratePOST generates a personalized routine with the language
// model tier matching the user's plan.
func (app *application) routineGeneratePOST(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	if app.routineGenerator == nil {
		app.errorResponse(w, r, http.StatusServiceUnavailable, "error.internal")
		return
	}

	ctx := r.Context()
	user, err := app.repo.GetUser(ctx, userID)
	if err != nil {
		app.handleDomainError(w, r, err)
		return
	}
	profile, err := app.profileForUser(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	generated, err := app.routineGenerator.Generate(ctx, user.Plan, profile)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, generated)
}
