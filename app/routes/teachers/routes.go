package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

type handler struct {
	*web.Deps
}

func SetupTeachersRoutes(app *fiber.App, d *web.Deps) {
	h := &handler{d}
	admins := auth.RoleMiddleware(auth.Admins...)

	teachers := app.Group("/teachers", auth.AuthMiddleware, admins)
	teachers.Get("/", h.TeachersPage)
	teachers.Get("/:id/delete", h.ConfirmDeletePage)
	teachers.Post("/", h.CreateTeacherAPI)
	teachers.Post("/:id", h.UpdateTeacherAPI)
	teachers.Post("/:id/delete", h.DeleteTeacherAPI)

	// Option list for teacher selects
	app.Get("/x/teachers/options", auth.AuthMiddleware, admins, h.TeacherOptionsAPI)
}

func (h *handler) TeachersPage(c *fiber.Ctx) error {
	ctx := web.Ctx(c)
	teachers, err := h.Data.Teachers(ctx)
	subjects, _ := h.Data.ActiveSubjects(ctx)

	return h.Render(c, "teachers/index", "O'qituvchilar", "teachers", fiber.Map{
		"teachers": teachers,
		"subjects": subjects,
		// new accounts start without a preselected subject
		"SelectedSubject": int64(0),
		"LoadError":       web.QueryError(err),
		"EditID":          web.FormID(c, "edit"),
		"EmptyState":      err == nil && len(teachers) == 0,
	})
}

func (h *handler) ConfirmDeletePage(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	name := ""
	if teachers, err := h.Data.Teachers(web.Ctx(c)); err == nil {
		for _, t := range teachers {
			if t.ID == id {
				name = t.FullName()
			}
		}
	}
	return h.Render(c, "shared/confirm", "O'qituvchini o'chirish", "teachers", fiber.Map{
		"Heading": "O'qituvchini o'chirish",
		"Message": name + " o'chirilsinmi? Uning guruhlari o'qituvchisiz qoladi.",
		"Action":  c.Path(),
		"Cancel":  "/teachers",
	})
}
