package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/search"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

type handler struct {
	*web.Deps
}

func SetupPaymentsRoutes(app *fiber.App, d *web.Deps) {
	h := &handler{d}

	admin := app.Group("/payments", auth.AuthMiddleware, auth.RoleMiddleware(auth.Admins...))
	admin.Get("/", h.PaymentsPage)
	admin.Get("/reset", h.ConfirmResetPage)
	admin.Get("/export", h.ExportAPI)
	admin.Post("/pay", h.MakePaymentAPI)
	admin.Post("/discount", h.DiscountAPI)
	admin.Post("/reset", h.ResetPaymentAPI)
	admin.Post("/generate", h.GenerateAPI)
	admin.Post("/generate-new", h.GenerateForNewAPI)

	teacher := app.Group("/teacher/payments", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleTeacher))
	teacher.Get("/", h.TeacherPaymentsPage)

	// Fragment used by the student attendance modal
	app.Get("/x/payments/attendance", auth.AuthMiddleware, h.StudentAttendanceAPI)
}

func (h *handler) filter(c *fiber.Ctx) models.SnapshotFilter {
	var f models.SnapshotFilter
	_ = c.QueryParser(&f)
	f.Month = h.Month(c).String()
	return f
}

func (h *handler) PaymentsPage(c *fiber.Ctx) error {
	ctx := web.Ctx(c)
	f := h.filter(c)
	term := c.Query("q")

	page, err := h.Data.Snapshots(ctx, f)
	groups, _ := h.Data.Groups(ctx, "")
	teachers, _ := h.Data.ActiveTeachers(ctx)
	subjects, _ := h.Data.ActiveSubjects(ctx)

	rows := search.Snapshots(page.Rows, term)
	m := h.ThisMonth()
	sel, _ := monthOf(f.Month)

	return h.Render(c, "payments/index", "To'lovlar", "payments", fiber.Map{
		"filter":          f,
		"Search":          term,
		"rows":            rows,
		"summary":         page.Summary,
		"LoadError":       web.QueryError(err),
		"groups":          groups,
		"teachers":        teachers,
		"subjects":        subjects,
		"SelectedSubject": f.SubjectID,
		"SelectedTeacher": f.TeacherID,
		"MonthName":       sel.Label(),
		"PrevMonth":       sel.Prev().String(),
		"NextMonth":       sel.Next().String(),
		"IsCurrent":       sel == m,
		"Methods":         []models.PaymentMethod{models.PaymentCash, models.PaymentCard, models.PaymentTransfer},
		"EmptyState":      err == nil && len(rows) == 0,
		"NoMatches":       err == nil && len(rows) == 0 && len(page.Rows) > 0,
	})
}

// TeacherPaymentsPage is the read-only table of the teacher's own groups.
func (h *handler) TeacherPaymentsPage(c *fiber.Ctx) error {
	user := web.User(c)
	ctx := web.Ctx(c)

	f := h.filter(c)
	f.TeacherID = user.ID
	f.SubjectID = 0
	page, err := h.Data.Snapshots(ctx, f)
	groups, _ := h.Data.TeacherGroups(ctx, user.ID)
	term := c.Query("q")
	rows := search.Snapshots(page.Rows, term)
	sel, _ := monthOf(f.Month)

	return h.Render(c, "payments/teacher", "To'lovlar", "payments", fiber.Map{
		"filter":     f,
		"Search":     term,
		"rows":       rows,
		"summary":    page.Summary,
		"groups":     groups,
		"LoadError":  web.QueryError(err),
		"MonthName":  sel.Label(),
		"PrevMonth":  sel.Prev().String(),
		"NextMonth":  sel.Next().String(),
		"EmptyState": err == nil && len(rows) == 0,
	})
}

func (h *handler) ConfirmResetPage(c *fiber.Ctx) error {
	return h.Render(c, "payments/confirm_reset", "To'lovni bekor qilish", "payments", fiber.Map{
		"StudentID": web.FormID(c, "student_id"),
		"GroupID":   web.FormID(c, "group_id"),
		"Month":     h.Month(c).String(),
		"Name":      c.Query("name"),
	})
}
