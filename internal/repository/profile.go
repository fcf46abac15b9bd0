package repository

import (
	"context"

	"agencydash/internal/model"
)

// ProfileRepository defines data access for staff profiles.
type ProfileRepository interface {
	// FindByUserID returns the profile for the given user id.
	// Returns sql.ErrNoRows via the driver when the profile does not exist.
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

// SessionRepository defines read access to provider-minted sessions.
type SessionRepository interface {
	// FindByToken returns the session for the given token if it has not expired.
	FindByToken(ctx context.Context, token string) (*model.Session, error)
}
