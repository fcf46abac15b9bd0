package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agencydash/internal/model"
	"agencydash/internal/repository"
)

// ErrUnauthenticated is returned when no valid session backs the request.
var ErrUnauthenticated = errors.New("unauthenticated")

// AuthService resolves a session token to the caller's identity and role.
// Tokens are minted by the external identity provider; this service only
// validates them and attaches the app-level role from profiles.
type AuthService interface {
	Resolve(ctx context.Context, token string) (*model.Identity, error)
}

type authService struct {
	sessions repository.SessionRepository
	profiles repository.ProfileRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(sessions repository.SessionRepository, profiles repository.ProfileRepository) AuthService {
	return &authService{sessions: sessions, profiles: profiles}
}

// Resolve returns the identity behind the token, or ErrUnauthenticated for a
// missing, unknown, or expired token. A session whose profile is gone counts
// as unauthenticated too.
func (s *authService) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	profile, err := s.profiles.FindByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &model.Identity{UserID: profile.UserID, Role: profile.AppRole}, nil
}
