package payments

import (
	"io"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web/webtest"
)

const snapshots = `{"data":[
	{"id":1,"student_id":11,"name":"Aziz","surname":"Karimov","phone":"+998 90 123 45 67","group_id":4,"group_name":"Ingliz A1","required_amount":400000,"paid_amount":400000,"status":"paid"},
	{"id":2,"student_id":12,"name":"Madina","surname":"Rustamova","phone":"+998 93 000 00 00","group_id":4,"group_name":"Ingliz A1","required_amount":400000,"debt":400000,"status":"unpaid"}
],"summary":{"total_required":800000,"total_paid":400000,"total_debt":400000,"student_count":2}}`

func newEnv(t *testing.T, role models.Role, routes map[string]http.HandlerFunc) *webtest.Env {
	t.Helper()
	env := webtest.New(t, routes, SetupPaymentsRoutes)
	env.Login(7, role)
	return env
}

func TestPaymentsPageSearchesLocally(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/snapshots":      webtest.JSON(200, snapshots),
		"GET /api/groups":         webtest.JSON(200, `[]`),
		"GET /api/users/teachers": webtest.JSON(200, `[]`),
		"GET /api/subjects":       webtest.JSON(200, `[]`),
	})

	resp := env.Do(t, http.MethodGet, "/payments?month=2026-03&status=unpaid&q=9300", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view, m := env.Views.Last()
	assert.Equal(t, "payments/index", view)
	rows := m["rows"].([]models.PaymentSnapshot)
	require.Len(t, rows, 1)
	assert.Equal(t, "Madina", rows[0].Name)
	assert.Equal(t, 800000.0, m["summary"].(models.SnapshotSummary).TotalRequired, "summary is the backend's, not the filtered rows'")

	assert.Equal(t, "month=2026-03&status=unpaid", env.Backend.Last("GET", "/api/snapshots").Query)

	// typing a new term does not refetch
	env.Do(t, http.MethodGet, "/payments?month=2026-03&status=unpaid&q=aziz", nil)
	assert.Equal(t, 1, env.Backend.Count("GET", "/api/snapshots"))
}

func TestCachedPageIsNotServedToAnotherToken(t *testing.T) {
	tok := webtest.Token(7, models.RoleAdmin)
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/snapshots": webtest.OnlyToken(tok, webtest.JSON(200, snapshots)),
	})
	env.UseToken(tok)

	env.Do(t, http.MethodGet, "/payments?month=2026-03", nil)
	_, m := env.Views.Last()
	require.Len(t, m["rows"], 2)

	// same id in the claims, different signature
	env.UseToken(webtest.Sign(7, models.RoleAdmin, "forged"))
	resp := env.Do(t, http.MethodGet, "/payments?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, m = env.Views.Last()
	assert.Empty(t, m["rows"])
	assert.Equal(t, "Token yaroqsiz", m["LoadError"])
	assert.Equal(t, 2, env.Backend.Count("GET", "/api/snapshots"), "the backend judges every new token")
}

func TestPaymentsPageShowsLoadError(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/snapshots": webtest.JSON(500, `{"message":"baza ishlamayapti"}`),
	})

	resp := env.Do(t, http.MethodGet, "/payments?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, m := env.Views.Last()
	assert.Equal(t, "baza ishlamayapti", m["LoadError"])
	assert.Equal(t, false, m["EmptyState"])
}

func TestMakePayment(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"POST /api/snapshots/make-payment": webtest.JSON(200, `{"message":"ok"}`),
	})

	resp := env.Do(t, http.MethodPost, "/payments/pay", map[string]string{
		"student_id":     "12",
		"group_id":       "4",
		"month":          "2026-03",
		"amount":         "200 000",
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/payments?month=2026-03", resp.Header.Get("Location"))

	var sent models.PaymentInput
	require.NoError(t, sonic.UnmarshalString(env.Backend.Last("POST", "/api/snapshots/make-payment").Body, &sent))
	assert.Equal(t, models.PaymentInput{
		StudentID: 12, GroupID: 4, Month: "2026-03", Amount: 200000, PaymentMethod: models.PaymentCash,
	}, sent)

	flashes := env.Flashes(t)
	require.Len(t, flashes, 1)
	assert.Equal(t, "To'lov qabul qilindi", flashes[0].Text)
}

func TestInvalidPaymentSendsNothing(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, nil)

	env.Do(t, http.MethodPost, "/payments/pay", map[string]string{
		"student_id":     "12",
		"group_id":       "4",
		"month":          "2026-03",
		"amount":         "0",
		"payment_method": "cash",
	})
	assert.Empty(t, env.Backend.Calls)
	flashes := env.Flashes(t)
	require.Len(t, flashes, 1)
	assert.Contains(t, flashes[0].Text, "amount")
}

func TestResetNeedsConfirmation(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"POST /api/snapshots/reset-payment": webtest.JSON(200, `{}`),
	})
	form := map[string]string{"student_id": "12", "group_id": "4", "month": "2026-03"}

	env.Do(t, http.MethodPost, "/payments/reset", form)
	assert.Equal(t, 0, env.Backend.Count("POST", "/api/snapshots/reset-payment"))

	form["confirm"] = "yes"
	env.Do(t, http.MethodPost, "/payments/reset", form)
	assert.Equal(t, 1, env.Backend.Count("POST", "/api/snapshots/reset-payment"))
}

func TestExport(t *testing.T) {
	env := newEnv(t, models.RoleSuperAdmin, map[string]http.HandlerFunc{
		"GET /api/snapshots/export": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("xlsx"))
		},
	})

	resp := env.Do(t, http.MethodGet, "/payments/export?month=2026-03&group_id=4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="tolovlar_2026-03.xlsx"`, resp.Header.Get("Content-Disposition"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "xlsx", string(body))
}

func TestTeacherSeesOwnGroupsOnly(t *testing.T) {
	env := newEnv(t, models.RoleTeacher, map[string]http.HandlerFunc{
		"GET /api/snapshots":        webtest.JSON(200, snapshots),
		"GET /api/groups/teacher/7": webtest.JSON(200, `[]`),
	})

	resp := env.Do(t, http.MethodGet, "/teacher/payments?month=2026-03&teacher_id=99", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "month=2026-03&teacher_id=7", env.Backend.Last("GET", "/api/snapshots").Query)

	resp = env.Do(t, http.MethodGet, "/payments?month=2026-03", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.Do(t, http.MethodPost, "/payments/pay", map[string]string{"month": "2026-03"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStudentAttendanceFragment(t *testing.T) {
	env := newEnv(t, models.RoleAdmin, map[string]http.HandlerFunc{
		"GET /api/attendance/student/12/monthly": webtest.JSON(200, `{"data":{"student":{"id":12,"name":"Madina"},"month":"2026-03","present_count":6,"absent_count":2}}`),
	})

	resp := env.Do(t, http.MethodGet, "/x/payments/attendance?student_id=12&group_id=4&month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Success bool                            `json:"success"`
		Data    models.StudentMonthlyAttendance `json:"data"`
	}
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, sonic.Unmarshal(body, &out))
	assert.True(t, out.Success)
	assert.Equal(t, int64(12), out.Data.Student.ID)
	assert.Equal(t, 6, out.Data.PresentCount)

	resp = env.Do(t, http.MethodGet, "/x/payments/attendance?month=2026-03", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
