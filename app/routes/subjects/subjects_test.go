package subjects

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web/webtest"
)

func TestSubjectsCRUD(t *testing.T) {
	env := webtest.New(t, map[string]http.HandlerFunc{
		"GET /api/subjects":      webtest.JSON(200, `[{"id":1,"name":"Ingliz tili","status":"active"}]`),
		"POST /api/subjects":     webtest.JSON(201, `{}`),
		"PUT /api/subjects/1":    webtest.JSON(200, `{}`),
		"DELETE /api/subjects/1": webtest.JSON(200, `{}`),
	}, SetupSubjectsRoutes)
	env.Login(1, models.RoleAdmin)

	resp := env.Do(t, http.MethodGet, "/subjects", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, m := env.Views.Last()
	assert.Len(t, m["subjects"], 1)

	env.Do(t, http.MethodPost, "/subjects", map[string]string{"name": "  Matematika "})
	assert.JSONEq(t, `{"name":"Matematika"}`, env.Backend.Last("POST", "/api/subjects").Body)

	// the list is refetched after the mutation
	env.Do(t, http.MethodGet, "/subjects", nil)
	assert.Equal(t, 2, env.Backend.Count("GET", "/api/subjects"))

	env.Do(t, http.MethodPost, "/subjects/1", map[string]string{"name": "Ingliz", "status": "inactive"})
	assert.JSONEq(t, `{"name":"Ingliz","status":"inactive"}`, env.Backend.Last("PUT", "/api/subjects/1").Body)

	env.Do(t, http.MethodPost, "/subjects/1/delete", map[string]string{})
	assert.Equal(t, 0, env.Backend.Count("DELETE", "/api/subjects/1"))
	env.Do(t, http.MethodPost, "/subjects/1/delete", map[string]string{"confirm": "yes"})
	assert.Equal(t, 1, env.Backend.Count("DELETE", "/api/subjects/1"))
}

func TestBlankSubjectNameIsRejected(t *testing.T) {
	env := webtest.New(t, nil, SetupSubjectsRoutes)
	env.Login(1, models.RoleSuperAdmin)

	env.Do(t, http.MethodPost, "/subjects", map[string]string{"name": "   "})
	assert.Empty(t, env.Backend.Calls)
	flashes := env.Flashes(t)
	require.Len(t, flashes, 1)
	assert.Contains(t, flashes[0].Text, "name")
}

func TestTeachersCannotManageSubjects(t *testing.T) {
	env := webtest.New(t, nil, SetupSubjectsRoutes)
	env.Login(5, models.RoleTeacher)

	resp := env.Do(t, http.MethodGet, "/subjects", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubjectOptions(t *testing.T) {
	env := webtest.New(t, map[string]http.HandlerFunc{
		"GET /api/subjects": webtest.JSON(200, `[{"id":1,"name":"Ingliz tili","status":"active"},{"id":2,"name":"Rus tili","status":"inactive"}]`),
	}, SetupSubjectsRoutes)
	env.Login(1, models.RoleAdmin)

	resp := env.Do(t, http.MethodGet, "/x/subjects/options", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"success":true,"data":[{"id":1,"name":"Ingliz tili","status":"active"}]}`, string(body))
}
