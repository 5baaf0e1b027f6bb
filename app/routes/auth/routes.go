package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/cache"
	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

type handler struct {
	*web.Deps
}

func SetupAuthRoutes(app *fiber.App, d *web.Deps) {
	h := &handler{d}
	auth := app.Group("/auth")

	// Public routes
	auth.Get("/login", h.ShowLoginPage)
	auth.Post("/login", LoginRateLimiter(), h.LoginAPI)
	auth.Post("/logout", h.LogoutAPI)
}

func (h *handler) ShowLoginPage(c *fiber.Ctx) error {
	// Check if already logged in
	if tok := c.Cookies(web.TokenCookie); tok != "" {
		if u, err := web.ParseToken(tok); err == nil {
			return c.Redirect(HomeFor(u.Role))
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title":    "Kirish - " + web.AppName,
		"Flashes":  h.Sessions.TakeFlashes(c),
		"Username": c.Query("username"),
	}, "")
}

// AuthMiddleware decodes the access token cookie and puts the user, the
// token and the cache scope on the request.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(web.TokenCookie)

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return unauthorized(c)
	}

	user, err := web.ParseToken(tokenString)
	if err != nil {
		c.ClearCookie(web.TokenCookie)
		return unauthorized(c)
	}

	scope := web.TokenScope(tokenString)
	ctx := client.WithToken(c.UserContext(), tokenString)
	ctx = cache.WithScope(ctx, scope)
	c.SetUserContext(ctx)
	web.SetUser(c, user, scope)

	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	if web.IsFragment(c.Path()) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Avtorizatsiya talab qilinadi"})
	}
	return c.Redirect("/auth/login")
}

// RoleMiddleware checks if user has one of the allowed roles
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := web.User(c)
		if user != nil {
			for _, allowed := range allowedRoles {
				if user.Role == allowed {
					return c.Next()
				}
			}
		}

		if web.IsFragment(c.Path()) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Ruxsat yo'q"})
		}
		return fiber.NewError(fiber.StatusForbidden, "Ruxsat yo'q")
	}
}

// Admins lets admins and super admins through.
var Admins = []models.Role{models.RoleAdmin, models.RoleSuperAdmin}

// HomeFor is where a role lands after login.
func HomeFor(role models.Role) string {
	if role == models.RoleTeacher {
		return "/teacher/attendance"
	}
	return "/dashboard"
}
