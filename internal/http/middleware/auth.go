package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"agencydash/internal/model"
	"agencydash/internal/service"
)

const (
	// IdentityLocalKey stores the resolved *model.Identity in Fiber's context locals.
	IdentityLocalKey = "auth_identity"
	// AuthErrorLocalKey stores an unexpected auth backend error, so page
	// handlers can redirect to the error route instead of treating the caller
	// as merely unauthenticated.
	AuthErrorLocalKey = "auth_error"
)

// Session resolves the caller's identity from the session cookie or an
// Authorization bearer token and stores it in context locals. It never rejects
// by itself; RequireAuth/RequireAdmin and the page handlers decide what an
// absent identity means for their route.
func Session(auth service.AuthService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}

		id, err := auth.Resolve(c.UserContext(), token)
		switch {
		case err == nil:
			c.Locals(IdentityLocalKey, id)
		case errors.Is(err, service.ErrUnauthenticated):
			// no identity; downstream decides
		default:
			c.Locals(AuthErrorLocalKey, err)
		}

		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Session, or nil.
func IdentityFromCtx(c *fiber.Ctx) *model.Identity {
	if v := c.Locals(IdentityLocalKey); v != nil {
		if id, ok := v.(*model.Identity); ok {
			return id
		}
	}
	return nil
}

// AuthErrorFromCtx returns an unexpected auth backend error stored by Session, or nil.
func AuthErrorFromCtx(c *fiber.Ctx) error {
	if v := c.Locals(AuthErrorLocalKey); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// RequireAuth rejects unauthenticated API requests with 401. Backend failures
// during resolution surface as 500, not 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if AuthErrorFromCtx(c) != nil {
			return fiber.ErrInternalServerError
		}
		if IdentityFromCtx(c) == nil {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}

// RequireAdmin rejects unauthenticated API requests with 401 and authenticated
// non-admins with 403. No handler behind it runs, so no writes can happen.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if AuthErrorFromCtx(c) != nil {
			return fiber.ErrInternalServerError
		}
		id := IdentityFromCtx(c)
		if id == nil {
			return fiber.ErrUnauthorized
		}
		if !id.IsAdmin() {
			return fiber.ErrForbidden
		}
		return c.Next()
	}
}
