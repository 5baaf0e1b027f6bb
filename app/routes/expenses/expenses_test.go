package expenses

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web/webtest"
)

func TestExpensesPage(t *testing.T) {
	timeNow = func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = time.Now })

	env := webtest.New(t, map[string]http.HandlerFunc{
		"GET /api/expenses": webtest.JSON(200, `{"data":[{"id":1,"reason":"Ijara","amount":3000000,"date":"2026-03-01"},{"id":2,"reason":"Internet","amount":250000,"date":"2026-03-05"}]}`),
	}, SetupExpensesRoutes)
	env.Login(1, models.RoleAdmin)

	resp := env.Do(t, http.MethodGet, "/expenses?month=2026-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, m := env.Views.Last()
	assert.Equal(t, 3250000.0, m["Total"], "sum when the backend sends no total")
	assert.Equal(t, "2026-03-15", m["Today"], "today in Tashkent")
	assert.Equal(t, "month=2026-03", env.Backend.Last("GET", "/api/expenses").Query)
}

func TestCreateExpense(t *testing.T) {
	env := webtest.New(t, map[string]http.HandlerFunc{
		"POST /api/expenses": webtest.JSON(201, `{}`),
	}, SetupExpensesRoutes)
	env.Login(1, models.RoleSuperAdmin)

	resp := env.Do(t, http.MethodPost, "/expenses", map[string]string{
		"month":  "2026-03",
		"reason": "Ijara",
		"amount": "3 000 000",
		"date":   "2026-03-01",
	})
	assert.Equal(t, "/expenses?month=2026-03", resp.Header.Get("Location"))
	assert.JSONEq(t, `{"reason":"Ijara","amount":3000000,"date":"2026-03-01"}`, env.Backend.Last("POST", "/api/expenses").Body)
}

func TestInvalidExpenseSendsNothing(t *testing.T) {
	env := webtest.New(t, nil, SetupExpensesRoutes)
	env.Login(1, models.RoleAdmin)

	env.Do(t, http.MethodPost, "/expenses", map[string]string{"reason": "Ijara", "amount": "-5", "date": "01.03.2026"})
	assert.Empty(t, env.Backend.Calls)
	flashes := env.Flashes(t)
	require.Len(t, flashes, 1)
	assert.Contains(t, flashes[0].Text, "amount")
	assert.Contains(t, flashes[0].Text, "date")
}
