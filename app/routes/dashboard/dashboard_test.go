package dashboard

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/prefs"
	"github.com/Rahmadjon0038/new-lms/app/web/webtest"
)

var superAdminRoutes = map[string]http.HandlerFunc{
	"GET /api/dashboard/super-admin/monthly": webtest.JSON(200, `{"data":{"month":"2026-03","cards":{"revenue":5000000,"debt":1200000,"new_students":14},"subjects":[{"subject_name":"Ingliz tili","group_count":3}]}}`),
	"GET /api/dashboard/super-admin/overall": webtest.JSON(200, `{"cards":{"total_students":240,"total_groups":18}}`),
	"GET /api/users/profile":                 webtest.JSON(200, `{"data":{"id":1,"name":"Bosh","role":"super_admin"}}`),
}

func ids(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestCardsFollowLayout(t *testing.T) {
	l := prefs.Layout{Order: []string{"total_groups", "total_students", "total_teachers"}, Hidden: []string{"total_teachers"}}
	stats := models.DashboardStats{Cards: map[string]float64{"total_students": 240}}

	cards := Cards(prefs.Overall, l, stats, false)
	assert.Equal(t, []string{"total_groups", "total_students"}, ids(cards))
	assert.True(t, cards[0].Missing)
	assert.Equal(t, 240.0, cards[1].Value)
	assert.True(t, cards[1].Last)

	cards = Cards(prefs.Overall, l, stats, true)
	require.Len(t, cards, 3)
	assert.True(t, cards[2].Hidden)
}

func TestSuperAdminDashboard(t *testing.T) {
	env := webtest.New(t, superAdminRoutes, SetupDashboardRoutes)
	env.Login(1, models.RoleSuperAdmin)

	resp := env.Do(t, http.MethodGet, "/dashboard?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view, m := env.Views.Last()
	assert.Equal(t, "dashboard/super_admin", view)
	monthly := m["MonthlyCards"].([]Card)
	assert.Equal(t, prefs.Monthly.Cards, ids(monthly))
	assert.Equal(t, 5000000.0, monthly[0].Value)
	assert.Len(t, m["Subjects"], 1)
}

func TestCardPreferencesPersistPerUser(t *testing.T) {
	env := webtest.New(t, superAdminRoutes, SetupDashboardRoutes)
	env.Login(1, models.RoleSuperAdmin)

	resp := env.Do(t, http.MethodPost, "/dashboard/cards/overall/total_groups/move", map[string]string{"dir": "up"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard?edit=1", resp.Header.Get("Location"))
	env.Do(t, http.MethodPost, "/dashboard/cards/overall/total_profit/toggle", map[string]string{})

	l := env.Deps.Prefs.Load(context.Background(), "1", prefs.Overall)
	assert.Equal(t, []string{"total_groups", "total_students", "total_teachers", "total_revenue", "total_expenses", "total_profit"}, l.Order)
	assert.Equal(t, []string{"total_profit"}, l.Hidden)

	env.Do(t, http.MethodGet, "/dashboard?month=2026-03", nil)
	_, m := env.Views.Last()
	assert.NotContains(t, ids(m["OverallCards"].([]Card)), "total_profit")

	other := env.Deps.Prefs.Load(context.Background(), "2", prefs.Overall)
	assert.Equal(t, prefs.Default(prefs.Overall), other)

	env.Do(t, http.MethodPost, "/dashboard/cards/overall/reset", map[string]string{})
	assert.Equal(t, prefs.Default(prefs.Overall), env.Deps.Prefs.Load(context.Background(), "1", prefs.Overall))
}

func TestUnknownCardOrBoard(t *testing.T) {
	env := webtest.New(t, superAdminRoutes, SetupDashboardRoutes)
	env.Login(1, models.RoleSuperAdmin)

	resp := env.Do(t, http.MethodPost, "/dashboard/cards/overall/revenue/toggle", map[string]string{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.Do(t, http.MethodPost, "/dashboard/cards/weekly/reset", map[string]string{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOnlySuperAdminCustomizes(t *testing.T) {
	env := webtest.New(t, superAdminRoutes, SetupDashboardRoutes)
	env.Login(2, models.RoleAdmin)

	resp := env.Do(t, http.MethodPost, "/dashboard/cards/overall/reset", map[string]string{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTeacherDashboard(t *testing.T) {
	env := webtest.New(t, map[string]http.HandlerFunc{
		"GET /api/dashboard/teacher/groups": webtest.JSON(200, `[
			{"group_id":4,"group_name":"Ingliz A1","student_count":12,"paid_count":9,"unpaid_count":3},
			{"group_id":5,"group_name":"Ingliz B1","student_count":8,"paid_count":8}
		]`),
	}, SetupDashboardRoutes)
	env.Login(3, models.RoleTeacher)

	resp := env.Do(t, http.MethodGet, "/dashboard?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view, m := env.Views.Last()
	assert.Equal(t, "dashboard/teacher", view)
	assert.Equal(t, 20, m["Students"])
	assert.Equal(t, 17, m["Paid"])
	assert.Equal(t, 3, m["Unpaid"])
}

func TestCardPreferencesFollowTheBackendProfile(t *testing.T) {
	env := webtest.New(t, nil, SetupDashboardRoutes)
	tok := webtest.Token(1, models.RoleSuperAdmin)
	for k, v := range superAdminRoutes {
		env.Backend.Routes[k] = webtest.OnlyToken(tok, v)
	}
	env.UseToken(tok)
	env.Do(t, http.MethodPost, "/dashboard/cards/overall/total_profit/toggle", map[string]string{})
	require.Equal(t, []string{"total_profit"}, env.Deps.Prefs.Load(context.Background(), "1", prefs.Overall).Hidden)

	// same claims, another signature: the backend refuses it, so the
	// stored layout is neither shown nor changed
	env.UseToken(webtest.Sign(1, models.RoleSuperAdmin, "forged"))
	env.Do(t, http.MethodPost, "/dashboard/cards/overall/reset", map[string]string{})
	assert.Equal(t, []string{"total_profit"}, env.Deps.Prefs.Load(context.Background(), "1", prefs.Overall).Hidden)

	resp := env.Do(t, http.MethodGet, "/dashboard?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, m := env.Views.Last()
	assert.Contains(t, ids(m["OverallCards"].([]Card)), "total_profit")
	assert.NotEmpty(t, m["OverallError"])
}
