package salary

import (
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web/webtest"
)

const salaries = `{"data":[
	{"teacher_id":3,"teacher_name":"Olim Qodirov","month":"2026-03","revenue":2000000,"percentage":40,"expected_salary":800000,"advances_total":100000,"final_salary":700000},
	{"teacher_id":4,"teacher_name":"Dilnoza Aliyeva","month":"2026-03","final_salary":500000,"is_closed":true}
]}`

func newEnv(t *testing.T, role models.Role, routes map[string]http.HandlerFunc) *webtest.Env {
	t.Helper()
	env := webtest.New(t, routes, SetupSalaryRoutes)
	env.Login(3, role)
	return env
}

func TestSalariesPageTotals(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/teacher-salary": webtest.JSON(200, salaries),
	})

	resp := env.Do(t, http.MethodGet, "/salary?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view, m := env.Views.Last()
	assert.Equal(t, "salary/index", view)
	assert.Equal(t, 1200000.0, m["Total"])
	assert.Equal(t, 100000.0, m["Advances"])
	assert.Equal(t, "2026-02", m["PrevMonth"])
}

func TestAdvance(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/teacher-salary":          webtest.JSON(200, salaries),
		"POST /api/teacher-salary/advance": webtest.JSON(200, `{}`),
	})

	resp := env.Do(t, http.MethodPost, "/salary/3/advance", map[string]string{
		"month":  "2026-03",
		"amount": "150000",
		"note":   "bayram",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/salary/3?month=2026-03", resp.Header.Get("Location"))

	var sent models.AdvanceInput
	require.NoError(t, sonic.UnmarshalString(env.Backend.Last("POST", "/api/teacher-salary/advance").Body, &sent))
	assert.Equal(t, models.AdvanceInput{TeacherID: 3, Month: "2026-03", Amount: 150000, Note: "bayram"}, sent)
}

func TestClosedMonthIsNotEditable(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/teacher-salary": webtest.JSON(200, salaries),
	})

	env.Do(t, http.MethodPost, "/salary/4/percentage", map[string]string{"month": "2026-03", "percentage": "50"})
	assert.Equal(t, 0, env.Backend.Count("PUT", "/api/teacher-salary/percentage"))

	flashes := env.Flashes(t)
	require.Len(t, flashes, 1)
	assert.Contains(t, flashes[0].Text, "yopilgan")
}

func TestCloseMonthNeedsConfirmation(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/teacher-salary":        webtest.JSON(200, salaries),
		"POST /api/teacher-salary/close": webtest.JSON(200, `{}`),
	})

	env.Do(t, http.MethodPost, "/salary/3/close", map[string]string{"month": "2026-03"})
	assert.Equal(t, 0, env.Backend.Count("POST", "/api/teacher-salary/close"))

	resp := env.Do(t, http.MethodPost, "/salary/3/close", map[string]string{"month": "2026-03", "confirm": "yes"})
	assert.Equal(t, "/salary?month=2026-03", resp.Header.Get("Location"))
	assert.Equal(t, 1, env.Backend.Count("POST", "/api/teacher-salary/close"))
}

func TestTeacherSeesOwnSalary(t *testing.T) {
	env := newEnv(t, models.RoleTeacher, map[string]http.HandlerFunc{
		"GET /api/users/profile":             webtest.JSON(200, `{"data":{"id":30,"name":"Olim","role":"teacher"}}`),
		"GET /api/teacher-salary/teacher/30": webtest.JSON(200, `{"data":{"teacher_id":30,"final_salary":700000}}`),
	})

	resp := env.Do(t, http.MethodGet, "/teacher/salary?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, m := env.Views.Last()
	assert.Equal(t, 700000.0, m["salary"].(models.TeacherSalary).FinalSalary)
	assert.Equal(t, false, m["Editable"])

	resp = env.Do(t, http.MethodGet, "/salary?month=2026-03", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
