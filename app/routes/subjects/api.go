package subjects

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

func subjectInput(c *fiber.Ctx) models.SubjectInput {
	var in models.SubjectInput
	_ = c.BodyParser(&in)
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func (h *handler) CreateSubjectAPI(c *fiber.Ctx) error {
	if err := h.Data.CreateSubject(web.Ctx(c), subjectInput(c)); err != nil {
		return h.Fail(c, err, "/subjects")
	}
	return h.Done(c, "Fan qo'shildi", "/subjects")
}

func (h *handler) UpdateSubjectAPI(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Data.UpdateSubject(web.Ctx(c), id, subjectInput(c)); err != nil {
		return h.Fail(c, err, "/subjects")
	}
	return h.Done(c, "Fan yangilandi", "/subjects")
}

func (h *handler) DeleteSubjectAPI(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect("/subjects", fiber.StatusSeeOther)
	}
	if err := h.Data.DeleteSubject(web.Ctx(c), id); err != nil {
		return h.Fail(c, err, "/subjects")
	}
	return h.Done(c, "Fan o'chirildi", "/subjects")
}

// SubjectOptionsAPI returns the active subjects for selects.
func (h *handler) SubjectOptionsAPI(c *fiber.Ctx) error {
	subjects, err := h.Data.ActiveSubjects(web.Ctx(c))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   web.QueryError(err),
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": subjects})
}
