package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/prefs"
	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

type handler struct {
	*web.Deps
}

func SetupDashboardRoutes(app *fiber.App, d *web.Deps) {
	h := &handler{d}

	dashboard := app.Group("/dashboard", auth.AuthMiddleware)
	dashboard.Get("/", h.DashboardPage)

	cards := dashboard.Group("/cards", auth.RoleMiddleware(models.RoleSuperAdmin))
	cards.Post("/:board/reset", h.ResetCardsAPI)
	cards.Post("/:board/:card/move", h.MoveCardAPI)
	cards.Post("/:board/:card/toggle", h.ToggleCardAPI)
}

// DashboardPage picks the dashboard of the signed-in role.
func (h *handler) DashboardPage(c *fiber.Ctx) error {
	switch web.User(c).Role {
	case models.RoleSuperAdmin:
		return h.superAdmin(c)
	case models.RoleTeacher:
		return h.teacher(c)
	default:
		return h.admin(c)
	}
}

func (h *handler) superAdmin(c *fiber.Ctx) error {
	ctx := web.Ctx(c)
	m := h.Month(c)
	editing := c.Query("edit") == "1"

	monthly, mErr := h.Data.SuperAdminMonthly(ctx, m.String())
	overall, oErr := h.Data.SuperAdminOverall(ctx)

	// without a confirmed profile the defaults are shown
	monthlyLayout, overallLayout := prefs.Default(prefs.Monthly), prefs.Default(prefs.Overall)
	if user, err := h.owner(c); err == nil {
		monthlyLayout = h.Prefs.Load(ctx, user, prefs.Monthly)
		overallLayout = h.Prefs.Load(ctx, user, prefs.Overall)
	} else {
		h.Log.Debug("card preferences skipped", zap.Error(err))
	}

	return h.Render(c, "dashboard/super_admin", "Bosh sahifa", "dashboard", fiber.Map{
		"MonthlyCards": Cards(prefs.Monthly, monthlyLayout, monthly, editing),
		"OverallCards": Cards(prefs.Overall, overallLayout, overall, editing),
		"Subjects":     monthly.Subjects,
		"MonthlyError": web.QueryError(mErr),
		"OverallError": web.QueryError(oErr),
		"Editing":      editing,
		"Month":        m.String(),
		"MonthName":    m.Label(),
		"PrevMonth":    m.Prev().String(),
		"NextMonth":    m.Next().String(),
	})
}

func (h *handler) admin(c *fiber.Ctx) error {
	m := h.Month(c)
	stats, err := h.Data.AdminDashboard(web.Ctx(c), m.String())

	return h.Render(c, "dashboard/admin", "Bosh sahifa", "dashboard", fiber.Map{
		"Cards":     Cards(prefs.Monthly, prefs.Default(prefs.Monthly), stats, false),
		"Subjects":  stats.Subjects,
		"LoadError": web.QueryError(err),
		"Month":     m.String(),
		"MonthName": m.Label(),
		"PrevMonth": m.Prev().String(),
		"NextMonth": m.Next().String(),
	})
}

func (h *handler) teacher(c *fiber.Ctx) error {
	m := h.Month(c)
	groups, err := h.Data.TeacherDashboard(web.Ctx(c), m.String())

	var students, paid, unpaid int
	for _, g := range groups {
		students += g.StudentCount
		paid += g.PaidCount
		unpaid += g.UnpaidCount
	}

	return h.Render(c, "dashboard/teacher", "Bosh sahifa", "dashboard", fiber.Map{
		"groups":     groups,
		"Students":   students,
		"Paid":       paid,
		"Unpaid":     unpaid,
		"LoadError":  web.QueryError(err),
		"EmptyState": err == nil && len(groups) == 0,
		"Month":      m.String(),
		"MonthName":  m.Label(),
		"PrevMonth":  m.Prev().String(),
		"NextMonth":  m.Next().String(),
	})
}
