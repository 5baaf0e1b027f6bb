package salary

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

type handler struct {
	*web.Deps
}

func SetupSalaryRoutes(app *fiber.App, d *web.Deps) {
	h := &handler{d}

	admin := app.Group("/salary", auth.AuthMiddleware, auth.RoleMiddleware(auth.Admins...))
	admin.Get("/", h.SalariesPage)
	admin.Get("/:teacherId", h.TeacherSalaryPage)
	admin.Get("/:teacherId/close", h.ConfirmClosePage)
	admin.Post("/:teacherId/percentage", h.PercentageAPI)
	admin.Post("/:teacherId/advance", h.AdvanceAPI)
	admin.Post("/:teacherId/close", h.CloseMonthAPI)

	teacher := app.Group("/teacher/salary", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleTeacher))
	teacher.Get("/", h.OwnSalaryPage)
}

func (h *handler) SalariesPage(c *fiber.Ctx) error {
	m := h.Month(c)
	rows, err := h.Data.Salaries(web.Ctx(c), m.String())

	var total, advances float64
	for _, r := range rows {
		total += r.FinalSalary
		advances += r.AdvancesTotal
	}

	return h.Render(c, "salary/index", "O'qituvchi maoshi", "salary", fiber.Map{
		"rows":       rows,
		"Total":      total,
		"Advances":   advances,
		"LoadError":  web.QueryError(err),
		"Month":      m.String(),
		"MonthName":  m.Label(),
		"PrevMonth":  m.Prev().String(),
		"NextMonth":  m.Next().String(),
		"EmptyState": err == nil && len(rows) == 0,
	})
}

func (h *handler) TeacherSalaryPage(c *fiber.Ctx) error {
	teacherID, err := web.ParamID(c, "teacherId")
	if err != nil {
		return err
	}
	m := h.Month(c)
	row, err := h.Data.TeacherSalary(web.Ctx(c), teacherID, m.String())

	return h.Render(c, "salary/detail", "O'qituvchi maoshi", "salary", fiber.Map{
		"salary":    row,
		"TeacherID": teacherID,
		"LoadError": web.QueryError(err),
		"Editable":  err == nil && !row.Closed,
		"Month":     m.String(),
		"MonthName": m.Label(),
		"PrevMonth": m.Prev().String(),
		"NextMonth": m.Next().String(),
	})
}

func (h *handler) ConfirmClosePage(c *fiber.Ctx) error {
	teacherID, err := web.ParamID(c, "teacherId")
	if err != nil {
		return err
	}
	m := h.Month(c)
	row, err := h.Data.TeacherSalary(web.Ctx(c), teacherID, m.String())
	return h.Render(c, "salary/confirm_close", "Oyni yopish", "salary", fiber.Map{
		"salary":    row,
		"TeacherID": teacherID,
		"LoadError": web.QueryError(err),
		"Month":     m.String(),
		"MonthName": m.Label(),
	})
}

// OwnSalaryPage shows the signed-in teacher's month.
func (h *handler) OwnSalaryPage(c *fiber.Ctx) error {
	ctx := web.Ctx(c)
	m := h.Month(c)

	// the profile is authoritative; the token id only covers a failed fetch
	teacherID := web.User(c).ID
	if p, err := h.Data.Profile(ctx); err == nil && p.ID > 0 {
		teacherID = p.ID
	}

	var row models.TeacherSalary
	var err error
	if teacherID == 0 {
		err = fiber.ErrUnauthorized
	} else {
		row, err = h.Data.TeacherSalary(ctx, teacherID, m.String())
	}

	return h.Render(c, "salary/detail", "Maosh", "salary", fiber.Map{
		"salary":    row,
		"TeacherID": teacherID,
		"LoadError": web.QueryError(err),
		"Editable":  false,
		"Own":       true,
		"Month":     m.String(),
		"MonthName": m.Label(),
		"PrevMonth": m.Prev().String(),
		"NextMonth": m.Next().String(),
	})
}
