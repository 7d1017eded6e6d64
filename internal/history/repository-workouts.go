package history

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"time"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// SaveWorkout stores a completed session with its exercises and sets.
func (r *Repository) SaveWorkout(ctx context.Context, userID int, session fitness.WorkoutHistory) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	committed := false
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && err == nil {
				err = errors.Wrap(rollbackErr, "rollback transaction")
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workout_sessions (id, user_id, workout_date, duration_min, total_volume, avg_rpe, recovery_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, userID, session.Date.UTC().Format(timestampFormat),
		session.Duration, session.TotalVolume, session.AvgRPE, session.RecoveryScore)
	if err != nil {
		return errors.Wrap(err, "insert workout session", slog.String("session_id", session.ID))
	}

	for position, perf := range session.Exercises {
		var result sql.Result
		result, err = tx.ExecContext(ctx, `
			INSERT INTO exercise_performances (session_id, exercise_id, position, total_volume, avg_rpe)
			VALUES (?, ?, ?, ?, ?)`,
			session.ID, perf.ExerciseID, position, perf.TotalVolume, perf.AvgRPE)
		if err != nil {
			return errors.Wrap(err, "insert exercise performance",
				slog.String("exercise_id", perf.ExerciseID))
		}
		var performanceID int64
		if performanceID, err = result.LastInsertId(); err != nil {
			return errors.Wrap(err, "last insert id")
		}

		for setPosition, set := range perf.Sets {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO set_performances (performance_id, position, reps, weight, rpe, rest_seconds)
				VALUES (?, ?, ?, ?, ?, ?)`,
				performanceID, setPosition, set.Reps, set.Weight, set.RPE, set.RestTime); err != nil {
				return errors.Wrap(err, "insert set performance")
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	committed = true
	return nil
}

// ListWorkouts returns the user's sessions ordered by date ascending,
// which is the ordering the windowed analytics assume.
func (r *Repository) ListWorkouts(ctx context.Context, userID int) (_ []fitness.WorkoutHistory, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, workout_date, duration_min, total_volume, avg_rpe, recovery_score
		FROM workout_sessions
		WHERE user_id = ?
		ORDER BY workout_date`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query workout sessions", slog.Int("user_id", userID))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close rows")
		}
	}()

	var sessions []fitness.WorkoutHistory
	for rows.Next() {
		var (
			session fitness.WorkoutHistory
			date    string
		)
		if err = rows.Scan(&session.ID, &date, &session.Duration,
			&session.TotalVolume, &session.AvgRPE, &session.RecoveryScore); err != nil {
			return nil, errors.Wrap(err, "scan workout session")
		}
		if session.Date, err = time.Parse(timestampFormat, date); err != nil {
			return nil, errors.Wrap(err, "parse workout date", slog.String("date", date))
		}
		session.UserID = strconv.Itoa(userID)
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate workout sessions")
	}

	for i := range sessions {
		if sessions[i].Exercises, err = r.listPerformances(ctx, sessions[i].ID); err != nil {
			return nil, errors.Wrap(err, "list performances", slog.String("session_id", sessions[i].ID))
		}
	}
	return sessions, nil
}

// listPerformances loads the exercises and sets of one session.
func (r *Repository) listPerformances(ctx context.Context, sessionID string) (_ []fitness.ExercisePerformance, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT p.id, p.exercise_id, e.name, p.total_volume, p.avg_rpe
		FROM exercise_performances AS p
		JOIN exercises AS e ON e.id = p.exercise_id
		WHERE p.session_id = ?
		ORDER BY p.position`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "query exercise performances")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close rows")
		}
	}()

	var (
		performances   []fitness.ExercisePerformance
		performanceIDs []int64
	)
	for rows.Next() {
		var (
			perf fitness.ExercisePerformance
			id   int64
		)
		if err = rows.Scan(&id, &perf.ExerciseID, &perf.Name, &perf.TotalVolume, &perf.AvgRPE); err != nil {
			return nil, errors.Wrap(err, "scan exercise performance")
		}
		performances = append(performances, perf)
		performanceIDs = append(performanceIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate exercise performances")
	}

	for i, performanceID := range performanceIDs {
		if performances[i].Sets, err = r.listSets(ctx, performanceID); err != nil {
			return nil, errors.Wrap(err, "list sets")
		}
	}
	return performances, nil
}

func (r *Repository) listSets(ctx context.Context, performanceID int64) (_ []fitness.SetPerformance, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT reps, weight, rpe, rest_seconds
		FROM set_performances
		WHERE performance_id = ?
		ORDER BY position`, performanceID)
	if err != nil {
		return nil, errors.Wrap(err, "query set performances")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close rows")
		}
	}()

	var sets []fitness.SetPerformance
	for rows.Next() {
		var set fitness.SetPerformance
		if err = rows.Scan(&set.Reps, &set.Weight, &set.RPE, &set.RestTime); err != nil {
			return nil, errors.Wrap(err, "scan set performance")
		}
		sets = append(sets, set)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate set performances")
	}
	return sets, nil
}
