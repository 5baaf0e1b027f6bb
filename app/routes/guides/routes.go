package guides

import (
	"cmp"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

// handler serves the guide pages under one prefix. The teacher prefix only
// gets the read routes.
type handler struct {
	*web.Deps
	prefix string
}

func SetupGuidesRoutes(app *fiber.App, d *web.Deps) {
	admin := &handler{Deps: d, prefix: "/admin/guides"}
	r := app.Group(admin.prefix, auth.AuthMiddleware, auth.RoleMiddleware(auth.Admins...))
	readRoutes(r, admin)
	writeRoutes(r, admin)

	teacher := &handler{Deps: d, prefix: "/teacher/guides"}
	readRoutes(app.Group(teacher.prefix, auth.AuthMiddleware, auth.RoleMiddleware(models.RoleTeacher)), teacher)

	app.Get("/blobs/:handle", auth.AuthMiddleware, admin.BlobAPI)
}

func readRoutes(r fiber.Router, h *handler) {
	r.Get("/", h.LevelsPage)
	r.Get("/levels/:levelId", h.LessonsPage)
	r.Get("/lessons/:lessonId", h.LessonPage)

	// Viewer
	r.Post("/lessons/:lessonId/open", h.OpenFileAPI)
	r.Post("/lessons/:lessonId/close", h.CloseViewerAPI)
}

func writeRoutes(r fiber.Router, h *handler) {
	r.Get("/levels/:levelId/delete", h.ConfirmDeleteLevelPage)
	r.Get("/lessons/:lessonId/delete", h.ConfirmDeleteLessonPage)
	r.Get("/lessons/:lessonId/materials/:kind/:materialId/delete", h.ConfirmDeleteMaterialPage)

	r.Post("/levels", h.CreateLevelAPI)
	r.Post("/levels/:levelId", h.UpdateLevelAPI)
	r.Post("/levels/:levelId/delete", h.DeleteLevelAPI)
	r.Post("/levels/:levelId/lessons", h.CreateLessonAPI)
	r.Post("/levels/:levelId/order/move", h.MoveLessonAPI)
	r.Post("/levels/:levelId/order/save", h.SaveOrderAPI)
	r.Post("/levels/:levelId/order/reset", h.ResetOrderAPI)

	r.Post("/lessons/:lessonId", h.UpdateLessonAPI)
	r.Post("/lessons/:lessonId/delete", h.DeleteLessonAPI)
	r.Post("/lessons/:lessonId/materials/:kind", h.CreateMaterialAPI)
	r.Post("/lessons/:lessonId/materials/:kind/:materialId", h.UpdateMaterialAPI)
	r.Post("/lessons/:lessonId/materials/:kind/:materialId/delete", h.DeleteMaterialAPI)
}

func (h *handler) guides(c *fiber.Ctx) *data.Guides {
	return h.Data.Guides(web.User(c).Role)
}

func (h *handler) LevelsPage(c *fiber.Ctx) error {
	g := h.guides(c)
	levels, err := g.Levels(web.Ctx(c))

	return h.Render(c, "guides/levels", "Qo'llanmalar", "guides", fiber.Map{
		"Prefix":     h.prefix,
		"levels":     levels,
		"ReadOnly":   g.ReadOnly(),
		"EditID":     web.FormID(c, "edit"),
		"LoadError":  web.QueryError(err),
		"EmptyState": err == nil && len(levels) == 0,
	})
}

func sortLessons(lessons []models.GuideLesson) {
	slices.SortStableFunc(lessons, func(a, b models.GuideLesson) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

func (h *handler) LessonsPage(c *fiber.Ctx) error {
	levelID, err := web.ParamID(c, "levelId")
	if err != nil {
		return err
	}
	ctx := web.Ctx(c)
	g := h.guides(c)

	level, err := g.Level(ctx, levelID)
	if err != nil {
		return h.Render(c, "guides/lessons", "Qo'llanmalar", "guides", fiber.Map{
			"Prefix":    h.prefix,
			"ReadOnly":  g.ReadOnly(),
			"LoadError": web.QueryError(err),
		})
	}
	lessons, err := g.Lessons(ctx, levelID)
	sortLessons(lessons)

	changed := false
	if err == nil && !g.ReadOnly() {
		staged := h.staged(c, levelID, lessons)
		lessons = arrange(lessons, staged.Order())
		changed = staged.Changed()
	}

	return h.Render(c, "guides/lessons", level.Title, "guides", fiber.Map{
		"Prefix":       h.prefix,
		"level":        level,
		"lessons":      lessons,
		"ReadOnly":     g.ReadOnly(),
		"OrderChanged": changed,
		"EditID":       web.FormID(c, "edit"),
		"LoadError":    web.QueryError(err),
		"EmptyState":   err == nil && len(lessons) == 0,
	})
}

func (h *handler) LessonPage(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	g := h.guides(c)
	lesson, err := g.Lesson(web.Ctx(c), lessonID)

	title := lesson.Title
	if title == "" {
		title = "Dars"
	}
	return h.Render(c, "guides/lesson", title, "guides", fiber.Map{
		"Prefix":    h.prefix,
		"lesson":    lesson,
		"Kinds":     kindViews(),
		"Open":      h.openHandles(c, lessonID),
		"ReadOnly":  g.ReadOnly(),
		"EditKind":  c.Query("edit_kind"),
		"EditID":    web.FormID(c, "edit"),
		"LoadError": web.QueryError(err),
	})
}

func (h *handler) confirm(c *fiber.Ctx, heading, message, cancel string) error {
	return h.Render(c, "shared/confirm", heading, "guides", fiber.Map{
		"Heading": heading,
		"Message": message,
		"Action":  c.OriginalURL(),
		"Cancel":  cancel,
	})
}

func (h *handler) ConfirmDeleteLevelPage(c *fiber.Ctx) error {
	if _, err := web.ParamID(c, "levelId"); err != nil {
		return err
	}
	return h.confirm(c, "Bosqichni o'chirish", "Bosqich va undagi barcha darslar o'chirilsinmi?", h.prefix)
}

func (h *handler) ConfirmDeleteLessonPage(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	return h.confirm(c, "Darsni o'chirish", "Dars va uning materiallari o'chirilsinmi?", h.lessonURL(lessonID))
}

func (h *handler) ConfirmDeleteMaterialPage(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	return h.confirm(c, "Materialni o'chirish", "Material o'chirilsinmi?", h.lessonURL(lessonID))
}
