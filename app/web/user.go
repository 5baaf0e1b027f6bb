package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

var timeNow = time.Now

const (
	TokenCookie = "accessToken"
	userLocal   = "user"
	scopeLocal  = "scope"
)

// Claims are the token fields the pages need. The signature is checked by
// the backend on every call, never here.
type Claims struct {
	UID     any         `json:"id"`
	UserID  any         `json:"user_id"`
	Name    string      `json:"name"`
	Surname string      `json:"surname"`
	Role    models.Role `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken decodes the token payload without verifying it.
func ParseToken(token string) (*models.User, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, errors.Wrap(err, "web: decode token")
	}
	if exp := claims.ExpiresAt; exp != nil && exp.Before(timeNow()) {
		return nil, errors.New("web: token expired")
	}

	uid, ok := numericID(claims.UID)
	if !ok {
		uid, ok = numericID(claims.UserID)
	}
	if !ok {
		uid, ok = numericID(claims.Subject)
	}
	if !ok {
		return nil, errors.New("web: token has no user id")
	}

	switch claims.Role {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RoleTeacher:
	default:
		return nil, errors.Errorf("web: unknown role %q", claims.Role)
	}
	return &models.User{ID: uid, Name: claims.Name, Surname: claims.Surname, Role: claims.Role}, nil
}

func numericID(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), n > 0
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return id, err == nil && id > 0
	}
	return 0, false
}

// SetUser stores the decoded user and the scope of the token it came from.
func SetUser(c *fiber.Ctx, u *models.User, scope string) {
	c.Locals(userLocal, u)
	c.Locals(scopeLocal, scope)
}

// User is the signed-in user. Only call it behind the auth middleware.
func User(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userLocal).(*models.User)
	return u
}

// Ctx is the request context carrying the token and the cache scope.
func Ctx(c *fiber.Ctx) context.Context {
	return c.UserContext()
}

// TokenScope fingerprints a token. Cached responses, drafts and open files
// are keyed by it, never by the unverified claims, so a token only reaches
// what the backend already served to that same token.
func TokenScope(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Scope is the token scope of the request. Only call it behind the auth
// middleware.
func Scope(c *fiber.Ctx) string {
	s, _ := c.Locals(scopeLocal).(string)
	return s
}
