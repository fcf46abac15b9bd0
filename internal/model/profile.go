package model

import "time"

// Application roles stored in profiles.app_role.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// Profile is a staff user's application profile. Accounts themselves live in
// the external identity provider; profiles only carry the app-level role.
type Profile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	AppRole   string    `json:"app_role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a provider-minted session token row. This service never creates
// sessions; it only resolves them.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity is the resolved caller: who they are and what they may do.
type Identity struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity may perform admin-only operations.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
