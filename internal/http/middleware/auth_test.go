package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"agencydash/internal/model"
	"agencydash/internal/service"
	serviceMocks "agencydash/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testCookie = "dash_session"

func newAuthedApp(authSvc service.AuthService, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(Session(authSvc, testCookie))
	app.Get("/guarded", guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestSession_TokenSources(t *testing.T) {
	t.Run("cookie token", func(t *testing.T) {
		authSvc := new(serviceMocks.MockAuthService)
		authSvc.On("Resolve", mock.Anything, "cookie-tok").
			Return(&model.Identity{UserID: "u1", Role: model.RoleStandard}, nil)

		app := newAuthedApp(authSvc, RequireAuth())

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "cookie-tok"})
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("bearer token", func(t *testing.T) {
		authSvc := new(serviceMocks.MockAuthService)
		authSvc.On("Resolve", mock.Anything, "bearer-tok").
			Return(&model.Identity{UserID: "u1", Role: model.RoleStandard}, nil)

		app := newAuthedApp(authSvc, RequireAuth())

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer bearer-tok")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("unauthenticated gets 401", func(t *testing.T) {
		authSvc := new(serviceMocks.MockAuthService)
		authSvc.On("Resolve", mock.Anything, "").Return(nil, service.ErrUnauthenticated)

		app := newAuthedApp(authSvc, RequireAuth())

		resp, _ := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("auth backend failure gets 500, not 401", func(t *testing.T) {
		authSvc := new(serviceMocks.MockAuthService)
		authSvc.On("Resolve", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		app := newAuthedApp(authSvc, RequireAuth())

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		authSvc := new(serviceMocks.MockAuthService)
		authSvc.On("Resolve", mock.Anything, "tok").
			Return(&model.Identity{UserID: "u1", Role: model.RoleAdmin}, nil)

		app := newAuthedApp(authSvc, RequireAdmin())

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("standard role gets 403", func(t *testing.T) {
		authSvc := new(serviceMocks.MockAuthService)
		authSvc.On("Resolve", mock.Anything, "tok").
			Return(&model.Identity{UserID: "u1", Role: model.RoleStandard}, nil)

		app := newAuthedApp(authSvc, RequireAdmin())

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("unauthenticated gets 401 before role check", func(t *testing.T) {
		authSvc := new(serviceMocks.MockAuthService)
		authSvc.On("Resolve", mock.Anything, "").Return(nil, service.ErrUnauthenticated)

		app := newAuthedApp(authSvc, RequireAdmin())

		resp, _ := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
