package teachers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

type option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// teacherInput reads the teacher form. Names are trimmed, the username is
// lowercased and the phone keeps only digits and a leading plus.
func teacherInput(c *fiber.Ctx) models.TeacherInput {
	var in models.TeacherInput
	_ = c.BodyParser(&in)
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Phone = normalizePhone(in.Phone)
	return in
}

func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
