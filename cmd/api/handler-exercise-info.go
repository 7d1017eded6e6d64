package main

import (
	"bytes"
	"net/http"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown renders the catalog's exercise instructions.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// exercisesGET returns the exercise catalog.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.repo.ListExercises(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"exercises": exercises})
}

// exerciseInfoGET renders the exercise instructions as an HTML fragment.
func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	exerciseID := r.PathValue("exerciseID")

	info, err := app.repo.GetExerciseInfo(r.Context(), exerciseID)
	if err != nil {
		app.handleDomainError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err = markdown.Convert([]byte(info), &buf); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render exercise info"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
