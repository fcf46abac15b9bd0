package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"agencydash/internal/http/middleware"
	"agencydash/internal/service"
)

// Services groups the injected use-case dependencies for route registration.
type Services struct {
	Auth   service.AuthService
	Upload service.UploadService
	Roster service.RosterService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers stay
// minimal; business logic lives in the service layer and authorization in
// middleware.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, sessionCookie string) {
	// OpenAPI document and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoints
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Session resolution for everything below
	session := middleware.Session(svcs.Auth, sessionCookie)

	// Static auth pages; no session required
	app.Get("/auth/login", LoginPage())
	app.Get("/auth/error", AuthErrorPage())
	app.Get("/unauthorized", UnauthorizedPage())

	// Server-rendered pages: redirect on auth failure
	app.Get("/manpower", session, ManpowerPage(svcs.Roster))
	app.Get("/upload", session, UploadPage())

	// JSON API
	api := app.Group("/api", session)
	api.Get("/manpower", middleware.RequireAuth(), ListManpower(svcs.Roster))

	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.Post("/upload/settled-apps", UploadSettledApps(svcs.Upload))
	admin.Post("/upload/settled-apps/file", UploadSettledAppsFile(svcs.Upload))
	admin.Post("/upload/fy-commission", UploadFYCommission(svcs.Upload))
	admin.Post("/upload/fy-commission/file", UploadFYCommissionFile(svcs.Upload))
}
