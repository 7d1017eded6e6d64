// Package history persists users, the exercise catalog, and workout
// sessions in SQLite, and materializes them into the in-memory shapes
// the analytics and prescription code consumes.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"strconv"

	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/fitness"
	"github.com/getSweetSpotcl/fitai/internal/sqlite"
)

// ErrNotFound signals a missing row.
var ErrNotFound = errors.NewSentinel("not found")

// ErrInvalidAPIKey signals a failed API-key lookup.
var ErrInvalidAPIKey = errors.NewSentinel("invalid api key")

// Repository handles database operations for the fitness domain.
type Repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// NewRepository creates a SQLite-backed repository.
func NewRepository(db *sqlite.Database, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// User is an account row.
type User struct {
	ID          int
	DisplayName string
	Plan        string
	Experience  fitness.ExperienceLevel
}

// UserID returns the identifier in the string form used by the domain model.
func (u User) UserID() string {
	return strconv.Itoa(u.ID)
}

// HashAPIKey derives the stored digest for an API key.
func HashAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// CreateUser inserts an account and returns its ID.
func (r *Repository) CreateUser(
	ctx context.Context, apiKey, displayName, plan string, experience fitness.ExperienceLevel,
) (int, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (api_key_hash, display_name, plan, experience)
		VALUES (?, ?, ?, ?)`,
		HashAPIKey(apiKey), displayName, plan, string(experience))
	if err != nil {
		return 0, errors.Wrap(err, "insert user")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return int(id), nil
}

// AuthenticateAPIKey resolves an API key to its account.
func (r *Repository) AuthenticateAPIKey(ctx context.Context, apiKey string) (User, error) {
	var (
		user       User
		experience string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, display_name, plan, experience
		FROM users
		WHERE api_key_hash = ?`, HashAPIKey(apiKey)).Scan(
		&user.ID, &user.DisplayName, &user.Plan, &experience)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidAPIKey
	}
	if err != nil {
		return User{}, errors.Wrap(err, "query user by api key")
	}
	user.Experience = fitness.ExperienceLevel(experience)
	return user, nil
}

// GetUser fetches an account by ID.
func (r *Repository) GetUser(ctx context.Context, userID int) (User, error) {
	var (
		user       User
		experience string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, display_name, plan, experience
		FROM users
		WHERE id = ?`, userID).Scan(
		&user.ID, &user.DisplayName, &user.Plan, &experience)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "query user", slog.Int("user_id", userID))
	}
	user.Experience = fitness.ExperienceLevel(experience)
	return user, nil
}

// ExportUserData writes a SQLite file with every row belonging to the user
// and returns its path. The caller owns the file.
func (r *Repository) ExportUserData(ctx context.Context, userID int, basePath string) (string, error) {
	path, err := r.db.CreateUserExport(ctx, userID, basePath)
	if err != nil {
		return "", errors.Wrap(err, "create user export", slog.Int("user_id", userID))
	}
	return path, nil
}

// ListConstraints returns the user's active constraints.
func (r *Repository) ListConstraints(ctx context.Context, userID int) (_ []fitness.Constraint, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT type, severity, description
		FROM user_constraints
		WHERE user_id = ?
		ORDER BY id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query constraints", slog.Int("user_id", userID))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close rows")
		}
	}()

	var constraints []fitness.Constraint
	for rows.Next() {
		var (
			constraint    fitness.Constraint
			typ, severity string
		)
		if err = rows.Scan(&typ, &severity, &constraint.Description); err != nil {
			return nil, errors.Wrap(err, "scan constraint")
		}
		constraint.Type = fitness.ConstraintType(typ)
		constraint.Severity = fitness.Severity(severity)
		constraints = append(constraints, constraint)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate constraints")
	}
	return constraints, nil
}

// AddConstraint stores a constraint for the user.
func (r *Repository) AddConstraint(ctx context.Context, userID int, constraint fitness.Constraint) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO user_constraints (user_id, type, severity, description)
		VALUES (?, ?, ?, ?)`,
		userID, string(constraint.Type), string(constraint.Severity), constraint.Description)
	if err != nil {
		return errors.Wrap(err, "insert constraint", slog.Int("user_id", userID))
	}
	return nil
}
