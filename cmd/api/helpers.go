package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/getSweetSpotcl/fitai/internal/analytics"
	"github.com/getSweetSpotcl/fitai/internal/contexthelpers"
	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/history"
	"github.com/getSweetSpotcl/fitai/internal/i18n"
)

// sessionKeyUserID is the session key holding the authenticated account ID.
const sessionKeyUserID = "userID"

const maxRequestBodyBytes = 1 << 20

type errorEnvelope struct {
	Error string `json:"error"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
	}
}

// decodeJSON reads the request body into dst. It rejects unknown fields so
// that client typos fail loudly instead of being silently dropped.
func (app *application) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "decode request", errors.SlogError(err))
		app.errorResponse(w, r, http.StatusBadRequest, "error.bad_request")
		return false
	}
	return true
}

// errorResponse writes a localized JSON error message.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, messageKey string) {
	lang := contexthelpers.Language(r.Context())
	app.writeJSON(w, r, status, errorEnvelope{Error: i18n.Translate(lang, messageKey)})
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.errorResponse(w, r, http.StatusInternalServerError, "error.internal")
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "error.not_found")
}

// handleDomainError maps known domain errors to client responses and
// everything else to a 500.
func (app *application) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analytics.ErrInsufficientData):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "error.insufficient_data")
	case errors.Is(err, history.ErrNotFound):
		app.notFound(w, r)
	default:
		app.serverError(w, r, err)
	}
}

// authorizedUserID parses the "userID" path parameter and verifies it matches
// the authenticated account. On failure it sends the response itself.
func (app *application) authorizedUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userIDStr := r.PathValue("userID")
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		app.notFound(w, r)
		return 0, false
	}
	if contexthelpers.AuthenticatedUserID(r.Context()) != userIDStr {
		app.errorResponse(w, r, http.StatusForbidden, "error.unauthorized")
		return 0, false
	}
	return userID, true
}
