package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/web"
)

func (h *handler) CreateTeacherAPI(c *fiber.Ctx) error {
	if err := h.Data.CreateTeacher(web.Ctx(c), teacherInput(c)); err != nil {
		return h.Fail(c, err, "/teachers")
	}
	return h.Done(c, "O'qituvchi qo'shildi", "/teachers")
}

func (h *handler) UpdateTeacherAPI(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Data.UpdateTeacher(web.Ctx(c), id, teacherInput(c)); err != nil {
		return h.Fail(c, err, "/teachers?edit="+c.Params("id"))
	}
	return h.Done(c, "O'qituvchi yangilandi", "/teachers")
}

func (h *handler) DeleteTeacherAPI(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect("/teachers", fiber.StatusSeeOther)
	}
	if err := h.Data.DeleteTeacher(web.Ctx(c), id); err != nil {
		return h.Fail(c, err, "/teachers")
	}
	return h.Done(c, "O'qituvchi o'chirildi", "/teachers")
}

// TeacherOptionsAPI returns the active teachers as {id, name} pairs.
func (h *handler) TeacherOptionsAPI(c *fiber.Ctx) error {
	teachers, err := h.Data.ActiveTeachers(web.Ctx(c))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   web.QueryError(err),
		})
	}
	out := make([]option, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, option{ID: t.ID, Name: t.FullName()})
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}
