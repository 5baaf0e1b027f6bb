package data

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/models"
)

// Login exchanges credentials for an access token. Never cached.
func (s *Store) Login(ctx context.Context, in models.LoginRequest) (*models.LoginResult, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.api.Do(ctx, http.MethodPost, "/api/users/login", nil, in, &raw); err != nil {
		return nil, err
	}
	res, err := unwrapObject[models.LoginResult](raw)
	if err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, &client.ShapeError{Err: errEmptyBody}
	}
	return &res, nil
}

func (s *Store) Profile(ctx context.Context) (*models.User, error) {
	u, err := object[models.User](ctx, s, "/api/users/profile", nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) Teachers(ctx context.Context) ([]models.Teacher, error) {
	return list[models.Teacher](ctx, s, "/api/users/teachers", nil)
}

// ActiveTeachers is the option list of teacher selects.
func (s *Store) ActiveTeachers(ctx context.Context) ([]models.Teacher, error) {
	all, err := s.Teachers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Teacher, 0, len(all))
	for _, t := range all {
		if t.Active() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) CreateTeacher(ctx context.Context, in models.TeacherInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	if in.Password == "" {
		return invalid("password")
	}
	return s.mutate(ctx, http.MethodPost, "/api/users/teachers", in, nil, "/api/users/teachers")
}

// UpdateTeacher leaves the password unchanged when blank.
func (s *Store) UpdateTeacher(ctx context.Context, teacherID int64, in models.TeacherInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPut, "/api/users/teachers/"+id(teacherID), in, nil, "/api/users/teachers")
}

func (s *Store) DeleteTeacher(ctx context.Context, teacherID int64) error {
	return s.mutate(ctx, http.MethodDelete, "/api/users/teachers/"+id(teacherID), nil, nil, "/api/users/teachers", "/api/groups")
}
