package subjects

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

type handler struct {
	*web.Deps
}

func SetupSubjectsRoutes(app *fiber.App, d *web.Deps) {
	h := &handler{d}

	admins := auth.RoleMiddleware(auth.Admins...)

	subjects := app.Group("/subjects", auth.AuthMiddleware, admins)
	subjects.Get("/", h.SubjectsPage)
	subjects.Get("/:id/delete", h.ConfirmDeletePage)
	subjects.Post("/", h.CreateSubjectAPI)
	subjects.Post("/:id", h.UpdateSubjectAPI)
	subjects.Post("/:id/delete", h.DeleteSubjectAPI)

	// Option list for subject selects
	app.Get("/x/subjects/options", auth.AuthMiddleware, admins, h.SubjectOptionsAPI)
}

func (h *handler) SubjectsPage(c *fiber.Ctx) error {
	subjects, err := h.Data.Subjects(web.Ctx(c))
	return h.Render(c, "subjects/index", "Fanlar", "subjects", fiber.Map{
		"subjects":   subjects,
		"LoadError":  web.QueryError(err),
		"EditID":     web.FormID(c, "edit"),
		"EmptyState": err == nil && len(subjects) == 0,
	})
}

func (h *handler) ConfirmDeletePage(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	subjects, _ := h.Data.Subjects(web.Ctx(c))
	name := ""
	for _, s := range subjects {
		if s.ID == id {
			name = s.Name
		}
	}
	return h.Render(c, "shared/confirm", "Fanni o'chirish", "subjects", fiber.Map{
		"Heading": "Fanni o'chirish",
		"Message": "\"" + name + "\" fani o'chirilsinmi?",
		"Action":  c.Path(),
		"Cancel":  "/subjects",
	})
}
