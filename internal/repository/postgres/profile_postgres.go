package postgres

import (
	"context"
	"database/sql"

	"agencydash/internal/model"
	"agencydash/internal/repository"
)

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

// FindByUserID fetches a profile by user id.
func (r *ProfilePostgres) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	const q = `
		SELECT user_id, email, app_role, created_at
		FROM profiles
		WHERE user_id = $1
	`
	var p model.Profile
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&p.UserID,
		&p.Email,
		&p.AppRole,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// SessionPostgres is a PostgreSQL implementation of repository.SessionRepository.
type SessionPostgres struct {
	db *sql.DB
}

// NewSessionPostgres creates a new SessionPostgres repository.
func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

var _ repository.SessionRepository = (*SessionPostgres)(nil)

// FindByToken fetches a not-yet-expired session by token.
func (r *SessionPostgres) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	const q = `
		SELECT token, user_id, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > now()
	`
	var s model.Session
	if err := r.db.QueryRowContext(ctx, q, token).Scan(
		&s.Token,
		&s.UserID,
		&s.ExpiresAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
