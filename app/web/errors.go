package web

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler answers fragment requests with JSON and renders error pages
// for everything else.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}

		if IsFragment(c.Path()) {
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
				"code":    code,
			})
		}

		m := fiber.Map{
			"CurrentPage": "",
			"ErrorCode":   code,
			"user":        User(c),
		}
		switch code {
		case fiber.StatusNotFound:
			m["Title"] = "Sahifa topilmadi - " + AppName
			m["ErrorTitle"] = "Sahifa topilmadi"
			m["ErrorMessage"] = "So'ralgan sahifa mavjud emas."
		case fiber.StatusForbidden:
			m["Title"] = "Ruxsat yo'q - " + AppName
			m["ErrorTitle"] = "Ruxsat yo'q"
			m["ErrorMessage"] = "Bu sahifani ko'rish uchun huquqingiz yetarli emas."
		case fiber.StatusUnauthorized:
			m["Title"] = "Kirish talab qilinadi - " + AppName
			m["ErrorTitle"] = "Kirish talab qilinadi"
			m["ErrorMessage"] = "Iltimos, tizimga qayta kiring."
		case fiber.StatusInternalServerError:
			m["Title"] = "Server xatosi - " + AppName
			m["ErrorTitle"] = "Server xatosi"
			m["ErrorMessage"] = "Texnik nosozlik. Birozdan so'ng qayta urinib ko'ring."
			m["ShowRetry"] = true
		default:
			m["Title"] = "Xatolik - " + AppName
			m["ErrorTitle"] = GenericError
			m["ErrorMessage"] = err.Error()
		}
		if u := User(c); u != nil {
			m["Nav"] = NavFor(u.Role)
		}
		return c.Status(code).Render("error", m)
	}
}
