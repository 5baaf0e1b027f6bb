package attendance

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/attendance"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

// handler serves the attendance pages of one role. Admin and teacher
// screens are the same pages under different prefixes.
type handler struct {
	*web.Deps
	prefix string
	saving sync.Map
}

func SetupAttendanceRoutes(app *fiber.App, d *web.Deps) {
	register(app.Group("/admin/attendance", auth.AuthMiddleware, auth.RoleMiddleware(auth.Admins...)),
		&handler{Deps: d, prefix: "/admin/attendance"})
	register(app.Group("/teacher/attendance", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleTeacher)),
		&handler{Deps: d, prefix: "/teacher/attendance"})
}

func register(r fiber.Router, h *handler) {
	// Routes
	r.Get("/", h.AttendancePage)
	r.Get("/groups/:groupId", h.LessonsPage)
	r.Get("/groups/:groupId/monthly", h.MonthlyPage)
	r.Get("/lessons/:lessonId", h.MarkPage)
	r.Get("/lessons/:lessonId/delete", h.ConfirmDeletePage)

	// Actions
	r.Post("/groups/:groupId/lessons", h.CreateLessonAPI)
	r.Get("/groups/:groupId/monthly/export", h.ExportAPI)
	r.Post("/groups/:groupId/students/:studentId/monthly-status", h.MonthlyStatusAPI)
	r.Post("/lessons/:lessonId/delete", h.DeleteLessonAPI)
	r.Post("/lessons/:lessonId/toggle/:studentId", h.ToggleAPI)
	r.Post("/lessons/:lessonId/all", h.MarkAllAPI)
	r.Post("/lessons/:lessonId/save", h.SaveAPI)
	r.Post("/lessons/:lessonId/discard", h.DiscardAPI)
}

func (h *handler) AttendancePage(c *fiber.Ctx) error {
	user := web.User(c)
	groups, err := h.Data.GroupsFor(web.Ctx(c), user)

	return h.Render(c, "attendance/index", "Davomat", "attendance", fiber.Map{
		"Prefix":     h.prefix,
		"groups":     groups,
		"LoadError":  web.QueryError(err),
		"Month":      h.ThisMonth().String(),
		"IsTeacher":  user.Role == models.RoleTeacher,
		"EmptyState": err == nil && len(groups) == 0,
	})
}

func (h *handler) group(c *fiber.Ctx) (*models.Group, error) {
	groupID, err := web.ParamID(c, "groupId")
	if err != nil {
		return nil, err
	}
	g, err := h.Data.Group(web.Ctx(c), web.User(c), groupID)
	if err == data.ErrNotFound {
		return nil, fiber.NewError(fiber.StatusNotFound, "Guruh topilmadi")
	}
	return g, err
}

func (h *handler) LessonsPage(c *fiber.Ctx) error {
	g, err := h.group(c)
	if err != nil {
		return err
	}
	m := h.Month(c)
	lessons, err := h.Data.Lessons(web.Ctx(c), g.ID, m.String())

	return h.Render(c, "attendance/lessons", g.Name+" darslari", "attendance", fiber.Map{
		"Prefix":    h.prefix,
		"group":     g,
		"lessons":   lessons,
		"LoadError": web.QueryError(err),
		"Month":     m.String(),
		"MonthName": m.Label(),
		"PrevMonth": m.Prev().String(),
		"NextMonth": m.Next().String(),
		"Today":     timeNow().In(h.Config.Location()).Format("2006-01-02"),
		"Blocked":   g.Status == models.GroupBlocked,
	})
}

// row is one student on the marking screen.
type row struct {
	Entry   models.RosterEntry
	Status  models.AttendanceStatus
	Changed bool
}

func (h *handler) MarkPage(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	roster, err := h.Data.Roster(web.Ctx(c), lessonID)
	if err != nil {
		return h.Render(c, "attendance/mark", "Davomat belgilash", "attendance", fiber.Map{
			"Prefix":    h.prefix,
			"LessonID":  lessonID,
			"GroupID":   c.Query("group"),
			"LoadError": web.QueryError(err),
		})
	}

	sheet := attendance.NewSheet(lessonID, roster)
	if draft := h.draft(c, lessonID); draft != nil {
		sheet.Rebase(draft)
	}

	rows := make([]row, 0, len(roster))
	present := 0
	for _, e := range roster {
		st := sheet.Status(e.StudentID)
		if st == models.Present {
			present++
		}
		rows = append(rows, row{Entry: e, Status: st, Changed: st != sheet.Initial[e.StudentID]})
	}

	return h.Render(c, "attendance/mark", "Davomat belgilash", "attendance", fiber.Map{
		"Prefix":     h.prefix,
		"LessonID":   lessonID,
		"GroupID":    c.Query("group"),
		"Month":      c.Query("month"),
		"rows":       rows,
		"Present":    present,
		"Absent":     len(rows) - present,
		"Dirty":      sheet.Dirty(),
		"Changed":    sheet.Changed(),
		"State":      string(sheet.State),
		"SaveError":  sheet.Error,
		"EmptyState": len(rows) == 0,
	})
}

func (h *handler) ConfirmDeletePage(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	return h.Render(c, "attendance/confirm_delete", "Darsni o'chirish", "attendance", fiber.Map{
		"Prefix":   h.prefix,
		"LessonID": lessonID,
		"GroupID":  c.Query("group"),
		"Month":    c.Query("month"),
		"Date":     c.Query("date"),
	})
}

func (h *handler) MonthlyPage(c *fiber.Ctx) error {
	g, err := h.group(c)
	if err != nil {
		return err
	}
	m := h.Month(c)
	grid, err := h.Data.MonthlyGrid(web.Ctx(c), g.ID, m.String())

	return h.Render(c, "attendance/monthly", g.Name+" oylik davomat", "attendance", fiber.Map{
		"Prefix":       h.prefix,
		"group":        g,
		"grid":         grid,
		"LoadError":    web.QueryError(err),
		"Month":        m.String(),
		"MonthName":    m.Label(),
		"PrevMonth":    m.Prev().String(),
		"NextMonth":    m.Next().String(),
		"NextName":     m.Next().Label(),
		"MonthChoices": m.Range(6),
		"EmptyState":   err == nil && len(grid.Rows) == 0,
	})
}
