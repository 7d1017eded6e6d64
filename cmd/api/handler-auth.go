package main

import (
	"net/http"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/history"
)

type registerRequest struct {
	APIKey      string `json:"apiKey"`
	DisplayName string `json:"displayName"`
	Plan        string `json:"plan"`
	Experience  string `json:"experience"`
}

// registerPOST creates an account and signs it in.
func (app *application) registerPOST(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	if req.APIKey == "" || req.DisplayName == "" {
		app.errorResponse(w, r, http.StatusBadRequest, "error.bad_request")
		return
	}
	if req.Plan == "" {
		req.Plan = "free"
	}
	experience := fitness.ExperienceLevel(req.Experience)
	if req.Experience == "" {
		experience = fitness.ExperienceBeginner
	}

	ctx := r.Context()
	userID, err := app.repo.CreateUser(ctx, req.APIKey, req.DisplayName, req.Plan, experience)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err = app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(ctx, sessionKeyUserID, userID)

	app.writeJSON(w, r, http.StatusCreated, map[string]int{"userId": userID})
}

type loginRequest struct {
	APIKey string `json:"apiKey"`
}

type loginResponse struct {
	UserID      int    `json:"userId"`
	DisplayName string `json:"displayName"`
	Plan        string `json:"plan"`
}

// loginPOST exchanges an API key for a session cookie.
func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := app.repo.AuthenticateAPIKey(ctx, req.APIKey)
	if errors.Is(err, history.ErrInvalidAPIKey) {
		app.errorResponse(w, r, http.StatusUnauthorized, "error.invalid_credentials")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	// Renew the token to avoid session fixation.
	if err = app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(ctx, sessionKeyUserID, user.ID)

	app.writeJSON(w, r, http.StatusOK, loginResponse{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Plan:        user.Plan,
	})
}

// logoutPOST destroys the session.
func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "destroy session"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
