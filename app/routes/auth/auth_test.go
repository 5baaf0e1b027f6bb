package auth

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahmadjon0038/new-lms/app/blobs"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
	"github.com/Rahmadjon0038/new-lms/app/web/webtest"
)

func setup(app *fiber.App, d *web.Deps) {
	SetupAuthRoutes(app, d)
	app.Get("/dashboard", AuthMiddleware, RoleMiddleware(Admins...), func(c *fiber.Ctx) error {
		return c.SendString("hi " + web.User(c).Name)
	})
	app.Get("/x/ping", AuthMiddleware, func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/x/scope", AuthMiddleware, func(c *fiber.Ctx) error { return c.SendString(web.Scope(c)) })
}

func TestLoginSetsCookieAndRedirectsByRole(t *testing.T) {
	tok := webtest.Token(3, models.RoleAdmin)
	env := webtest.New(t, map[string]http.HandlerFunc{
		"POST /api/users/login": webtest.JSON(200, `{"accessToken":"`+tok+`","user":{"id":3,"role":"admin"}}`),
	}, setup)

	resp := env.Do(t, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "secret"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	assert.JSONEq(t, `{"username":"admin","password":"secret"}`, env.Backend.Last("POST", "/api/users/login").Body)

	var found bool
	for _, ck := range resp.Cookies() {
		if ck.Name == web.TokenCookie {
			found = true
			assert.True(t, ck.HttpOnly)
			assert.Equal(t, tok, ck.Value)
		}
	}
	assert.True(t, found)

	resp = env.Do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginFailureFlashesServerMessage(t *testing.T) {
	env := webtest.New(t, map[string]http.HandlerFunc{
		"POST /api/users/login": webtest.JSON(401, `{"message":"Login yoki parol xato"}`),
	}, setup)

	resp := env.Do(t, http.MethodPost, "/auth/login", map[string]string{"username": "ali", "password": "x"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login?username=ali", resp.Header.Get("Location"))

	flashes := env.Flashes(t)
	require.Len(t, flashes, 1)
	assert.Equal(t, "Login yoki parol xato", flashes[0].Text)
}

func TestLoginGuardSkipsBackend(t *testing.T) {
	env := webtest.New(t, nil, setup)
	env.Do(t, http.MethodPost, "/auth/login", map[string]string{"username": "", "password": ""})
	assert.Empty(t, env.Backend.Calls)
}

func TestMiddleware(t *testing.T) {
	env := webtest.New(t, nil, setup)

	resp := env.Do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))

	resp = env.Do(t, http.MethodGet, "/x/ping", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	env.Login(9, models.RoleTeacher)
	resp = env.Do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	name, _ := env.Views.Last()
	assert.Equal(t, "error", name)

	resp = env.Do(t, http.MethodGet, "/x/ping", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestScopeIsTheTokenFingerprint(t *testing.T) {
	env := webtest.New(t, nil, setup)
	env.Login(3, models.RoleAdmin)
	resp := env.Do(t, http.MethodGet, "/x/scope", nil)
	first, _ := io.ReadAll(resp.Body)
	assert.Equal(t, env.Scope(), string(first))

	env.UseToken(webtest.Sign(3, models.RoleAdmin, "other"))
	resp = env.Do(t, http.MethodGet, "/x/scope", nil)
	second, _ := io.ReadAll(resp.Body)
	assert.NotEqual(t, string(first), string(second), "equal claims must not share a scope")
}

func TestLogoutClearsCookie(t *testing.T) {
	env := webtest.New(t, nil, setup)
	env.Login(3, models.RoleAdmin)
	env.Deps.Blobs.Open(blobs.Viewer{Owner: env.Scope(), Lesson: 1}, "pdfs", nil)

	resp := env.Do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 0, env.Deps.Blobs.Live())

	resp = env.Do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/dashboard", HomeFor(models.RoleSuperAdmin))
	assert.Equal(t, "/teacher/attendance", HomeFor(models.RoleTeacher))
}
