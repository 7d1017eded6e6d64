package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
)

// ListExercises returns the full exercise catalog ordered by name.
func (r *Repository) ListExercises(ctx context.Context) (_ []fitness.Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, category, muscle_groups, equipment, difficulty, compound, contraindications, form_cues
		FROM exercises
		ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "query exercises")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close rows")
		}
	}()

	var exercises []fitness.Exercise
	for rows.Next() {
		var exercise fitness.Exercise
		if exercise, err = scanExercise(rows.Scan); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate exercises")
	}
	return exercises, nil
}

// GetExercise fetches a single catalog entry by ID.
func (r *Repository) GetExercise(ctx context.Context, exerciseID string) (fitness.Exercise, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, category, muscle_groups, equipment, difficulty, compound, contraindications, form_cues
		FROM exercises
		WHERE id = ?`, exerciseID)
	exercise, err := scanExercise(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return fitness.Exercise{}, ErrNotFound
	}
	if err != nil {
		return fitness.Exercise{}, errors.Wrap(err, "query exercise", slog.String("exercise_id", exerciseID))
	}
	return exercise, nil
}

// GetExerciseInfo returns the Markdown instructions for an exercise.
func (r *Repository) GetExerciseInfo(ctx context.Context, exerciseID string) (string, error) {
	var markdown string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT info_markdown
		FROM exercises
		WHERE id = ?`, exerciseID).Scan(&markdown)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "query exercise info", slog.String("exercise_id", exerciseID))
	}
	return markdown, nil
}

// scanExercise decodes one catalog row. The list columns are stored as JSON text.
func scanExercise(scan func(dest ...any) error) (fitness.Exercise, error) {
	var (
		exercise                                             fitness.Exercise
		muscleGroups, equipment, contraindications, formCues string
		compound                                             int
	)
	if err := scan(&exercise.ID, &exercise.Name, &exercise.Category, &muscleGroups, &equipment,
		&exercise.Difficulty, &compound, &contraindications, &formCues); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fitness.Exercise{}, err
		}
		return fitness.Exercise{}, errors.Wrap(err, "scan exercise")
	}
	exercise.Compound = compound != 0
	for _, column := range []struct {
		value  string
		target *[]string
	}{
		{muscleGroups, &exercise.MuscleGroups},
		{equipment, &exercise.Equipment},
		{contraindications, &exercise.Contraindications},
		{formCues, &exercise.FormCues},
	} {
		if err := json.Unmarshal([]byte(column.value), column.target); err != nil {
			return fitness.Exercise{}, errors.Wrap(err, "decode exercise column", slog.String("value", column.value))
		}
	}
	return exercise, nil
}
