package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/getSweetSpotcl/fitai/internal/contexthelpers"
	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/history"
)

// sessionUser loads the account behind the authenticated request.
func (app *application) sessionUser(r *http.Request) (history.User, error) {
	userID, err := strconv.Atoi(contexthelpers.AuthenticatedUserID(r.Context()))
	if err != nil {
		return history.User{}, errors.Wrap(err, "parse authenticated user id")
	}
	return app.repo.GetUser(r.Context(), userID)
}

// profileForUser assembles the domain profile from the stored account
// and its constraints.
func (app *application) profileForUser(ctx context.Context, userID int) (fitness.UserProfile, error) {
	user, err := app.repo.GetUser(ctx, userID)
	if err != nil {
		return fitness.UserProfile{}, err
	}
	constraints, err := app.repo.ListConstraints(ctx, userID)
	if err != nil {
		return fitness.UserProfile{}, err
	}
	return fitness.UserProfile{
		UserID:          user.UserID(),
		ExperienceLevel: user.Experience,
		Constraints:     constraints,
	}, nil
}

func (app *application) constraintsGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	constraints, err := app.repo.ListConstraints(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if constraints == nil {
		constraints = []fitness.Constraint{}
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"constraints": constraints})
}

func (app *application) constraintsPOST(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	var constraint fitness.Constraint
	if !app.decodeJSON(w, r, &constraint) {
		return
	}
	if constraint.Type == "" || constraint.Description == "" {
		app.errorResponse(w, r, http.StatusBadRequest, "error.bad_request")
		return
	}
	if err := app.repo.AddConstraint(r.Context(), userID, constraint); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, constraint)
}

// exportUserDataGET streams a SQLite file with all data belonging to the user.
func (app *application) exportUserDataGET(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.authorizedUserID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	exportPath, err := app.repo.ExportUserData(ctx, userID, os.TempDir())
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "export user data"))
		return
	}
	defer func() {
		if removeErr := os.Remove(exportPath); removeErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelWarn, "failed to remove temporary export file",
				slog.String("path", exportPath), slog.Any("error", removeErr))
		}
	}()

	file, err := os.Open(exportPath)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "open export file"))
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelWarn, "failed to close export file",
				slog.String("path", exportPath), slog.Any("error", closeErr))
		}
	}()

	filename := filepath.Base(exportPath)
	w.Header().Set("Content-Type", "application/x-sqlite3")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err = io.Copy(w, file); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "failed to stream export file to client",
			slog.String("path", exportPath), slog.Any("error", err))
	}
}
