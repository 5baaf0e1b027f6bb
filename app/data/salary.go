package data

import (
	"context"
	"net/http"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

func (s *Store) Salaries(ctx context.Context, m string) ([]models.TeacherSalary, error) {
	return list[models.TeacherSalary](ctx, s, "/api/teacher-salary", monthQuery(m))
}

func (s *Store) TeacherSalary(ctx context.Context, teacherID int64, m string) (models.TeacherSalary, error) {
	return object[models.TeacherSalary](ctx, s, "/api/teacher-salary/teacher/"+id(teacherID), monthQuery(m))
}

// ensureOpen rejects edits of a month the admin already closed. The
// backend locks closed months too.
func (s *Store) ensureOpen(ctx context.Context, teacherID int64, m string) error {
	rows, err := s.Salaries(ctx, m)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if r.TeacherID == teacherID && r.Closed {
			return ErrSalaryClosed
		}
	}
	return nil
}

// UpdatePercentage changes the teacher's share. m is the month on screen.
func (s *Store) UpdatePercentage(ctx context.Context, m string, in models.PercentageInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	if err := s.ensureOpen(ctx, in.TeacherID, m); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPut, "/api/teacher-salary/percentage", in, nil, "/api/teacher-salary", "/api/users/teachers")
}

func (s *Store) AddAdvance(ctx context.Context, in models.AdvanceInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	if err := s.ensureOpen(ctx, in.TeacherID, in.Month); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/teacher-salary/advance", in, nil, "/api/teacher-salary", "/api/dashboard")
}

func (s *Store) CloseMonth(ctx context.Context, in models.CloseMonthInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	if err := s.ensureOpen(ctx, in.TeacherID, in.Month); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/teacher-salary/close", in, nil, "/api/teacher-salary", "/api/dashboard")
}
