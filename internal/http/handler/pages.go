package handler

import (
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"agencydash/internal/http/middleware"
	"agencydash/internal/model"
	"agencydash/internal/service"
)

// Page handlers redirect on failure instead of writing JSON: unauthenticated
// callers go to /auth/login, non-admins to /unauthorized, unexpected failures
// to /auth/error.

var manpowerPageTmpl = template.Must(template.New("manpower").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Manpower</title>
</head>
<body>
  <h1>Manpower</h1>
  <table border="1" cellpadding="4">
    <tr><th>Advisor Code</th><th>Advisor Name</th><th>Team</th><th>Class</th><th>Status</th></tr>
    {{range .Records}}
    <tr>
      <td>{{.AdvisorCode}}</td>
      <td>{{.AdvisorName}}</td>
      <td>{{if .TeamName}}{{.TeamName}}{{end}}</td>
      <td>{{if .Class}}{{.Class}}{{end}}</td>
      <td>{{if .Status}}{{.Status}}{{end}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>`))

// ManpowerPage handles GET /manpower. Any authenticated staff member may view
// the roster; what rows they see is governed by the database.
func ManpowerPage(rosterSvc service.RosterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, redirect := pageIdentity(c); redirect != "" {
			return c.Redirect(redirect, fiber.StatusSeeOther)
		}

		records, err := rosterSvc.List(c.UserContext())
		if err != nil {
			return c.Redirect("/auth/error", fiber.StatusSeeOther)
		}

		var sb strings.Builder
		if err := manpowerPageTmpl.Execute(&sb, fiber.Map{"Records": records}); err != nil {
			return c.Redirect("/auth/error", fiber.StatusSeeOther)
		}
		return c.Type("html").SendString(sb.String())
	}
}

// UploadPage handles GET /upload. Admin only.
func UploadPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, redirect := pageIdentity(c)
		if redirect != "" {
			return c.Redirect(redirect, fiber.StatusSeeOther)
		}
		if !id.IsAdmin() {
			return c.Redirect("/unauthorized", fiber.StatusSeeOther)
		}

		const page = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>Upload</title></head>
<body>
  <h1>Bulk Upload</h1>
  <form method="post" action="/api/admin/upload/settled-apps/file" enctype="multipart/form-data">
    <fieldset>
      <legend>Settled Apps workbook</legend>
      <input type="file" name="file" accept=".xlsx" />
      <button type="submit">Upload</button>
    </fieldset>
  </form>
  <form method="post" action="/api/admin/upload/fy-commission/file" enctype="multipart/form-data">
    <fieldset>
      <legend>FY Commission workbook</legend>
      <input type="file" name="file" accept=".xlsx" />
      <button type="submit">Upload</button>
    </fieldset>
  </form>
</body>
</html>`
		return c.Type("html").SendString(page)
	}
}

// pageIdentity resolves the caller for a page route. The second return value
// is the redirect target when the request cannot proceed, or "".
func pageIdentity(c *fiber.Ctx) (*model.Identity, string) {
	if middleware.AuthErrorFromCtx(c) != nil {
		return nil, "/auth/error"
	}
	id := middleware.IdentityFromCtx(c)
	if id == nil {
		return nil, "/auth/login"
	}
	return id, ""
}

// LoginPage handles GET /auth/login. Sign-in itself happens at the identity
// provider; this page only tells the user where to go.
func LoginPage() fiber.Handler {
	return staticPage("Sign in", "<p>Please sign in through the identity provider, then return to the dashboard.</p>")
}

// AuthErrorPage handles GET /auth/error.
func AuthErrorPage() fiber.Handler {
	return staticPage("Something went wrong", "<p>We could not complete your request. Please try again later.</p>")
}

// UnauthorizedPage handles GET /unauthorized.
func UnauthorizedPage() fiber.Handler {
	return staticPage("Unauthorized", "<p>Your account does not have access to this page.</p>")
}

func staticPage(title, body string) fiber.Handler {
	page := `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>` + template.HTMLEscapeString(title) + `</title></head>
<body>
  <h1>` + template.HTMLEscapeString(title) + `</h1>
  ` + body + `
</body>
</html>`
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(page)
	}
}
