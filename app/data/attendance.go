package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/month"
)

func id(v int64) string { return strconv.FormatInt(v, 10) }

func monthQuery(m string) url.Values {
	return url.Values{"month": {m}}
}

func (s *Store) Lessons(ctx context.Context, groupID int64, m string) ([]models.Lesson, error) {
	if _, err := month.Parse(m); err != nil {
		return nil, invalid("month")
	}
	return list[models.Lesson](ctx, s, "/api/attendance/groups/"+id(groupID)+"/lessons", monthQuery(m))
}

func (s *Store) CreateLesson(ctx context.Context, in models.CreateLessonRequest) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/attendance/lessons/create", in, nil,
		"/api/attendance/groups/"+id(in.GroupID)+"/", "/api/dashboard")
}

func (s *Store) DeleteLesson(ctx context.Context, lessonID int64) error {
	return s.mutate(ctx, http.MethodDelete, "/api/attendance/lessons/"+id(lessonID), nil, nil,
		"/api/attendance/groups/", "/api/attendance/lessons/"+id(lessonID)+"/", "/api/dashboard")
}

// Roster is the marking screen of one lesson. It is read uncached so the
// edit buffer always starts from what the backend holds.
func (s *Store) Roster(ctx context.Context, lessonID int64) ([]models.RosterEntry, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/api/attendance/lessons/"+id(lessonID)+"/students", nil, &raw); err != nil {
		return nil, err
	}
	return unwrapList[models.RosterEntry](raw)
}

// Mark saves a whole roster in one request.
func (s *Store) Mark(ctx context.Context, req models.MarkRequest) error {
	if req.LessonID == 0 {
		return invalid("lesson_id")
	}
	for _, m := range req.AttendanceData {
		if !m.Status.Valid() {
			return invalid("status")
		}
	}
	return s.mutate(ctx, http.MethodPost, "/api/attendance/mark", req, nil,
		"/api/attendance/groups/", "/api/attendance/student/", "/api/dashboard")
}

func (s *Store) MonthlyGrid(ctx context.Context, groupID int64, m string) (models.MonthlyGrid, error) {
	if _, err := month.Parse(m); err != nil {
		return models.MonthlyGrid{}, invalid("month")
	}
	return object[models.MonthlyGrid](ctx, s, "/api/attendance/groups/"+id(groupID)+"/monthly", monthQuery(m))
}

// ExportMonthly downloads the group's monthly sheet. The filename is fixed
// regardless of what the backend suggests.
func (s *Store) ExportMonthly(ctx context.Context, groupID int64, m string) (*client.Blob, error) {
	if _, err := month.Parse(m); err != nil {
		return nil, invalid("month")
	}
	b, err := s.api.GetBlob(ctx, "/api/attendance/groups/"+id(groupID)+"/monthly/export", monthQuery(m))
	if err != nil {
		return nil, err
	}
	b.Filename = fmt.Sprintf("davomat_guruh_%d_%s.xlsx", groupID, m)
	b.ContentType = client.ExcelContentType
	return b, nil
}

func (s *Store) SetMonthlyStatus(ctx context.Context, req models.MonthlyStatusRequest) error {
	return s.mutate(ctx, http.MethodPut, "/api/attendance/student/monthly-status", req, nil,
		"/api/attendance/groups/", "/api/attendance/student/", "/api/snapshots", "/api/dashboard")
}

func (s *Store) StudentMonthly(ctx context.Context, studentID, groupID int64, m string) (models.StudentMonthlyAttendance, error) {
	q := monthQuery(m)
	q.Set("group_id", id(groupID))
	return object[models.StudentMonthlyAttendance](ctx, s, "/api/attendance/student/"+id(studentID)+"/monthly", q)
}
