package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/Rahmadjon0038/new-lms/app/web"
)

// LoginRateLimiter allows five login attempts per IP a minute.
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).Render("auth/login", fiber.Map{
				"Title":   "Kirish - " + web.AppName,
				"Flashes": []web.Flash{{Kind: web.FlashError, Text: "Juda ko'p urinish. Birozdan so'ng qayta urinib ko'ring."}},
			}, "")
		},
	})
}
